package service

import (
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

func TestActivityService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewActivityService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())
	salon := f.provider("salon")
	spa := f.provider("spa")
	stylist, pa := f.employee(salon, domain.RoleProviderAdmin)
	masseur, _ := f.employee(spa, domain.RoleEmployee)

	in := ports.ActivityInput{
		Name:        "Cut",
		Price:       decimal.NewFromInt(20),
		Duration:    30,
		EmployeeIDs: []int64{stylist.ID},
		ProviderID:  spa.ID,
	}

	t.Run("provider admin writes into own provider", func(t *testing.T) {
		a, err := svc.Create(f.ctx, pa, in)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if a.ProviderID != salon.ID {
			t.Fatalf("expected provider %d, got %d", salon.ID, a.ProviderID)
		}
		stored, err := f.store.Activities().GetByID(f.ctx, a.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if !slices.Equal(stored.EmployeeIDs, []int64{stylist.ID}) {
			t.Fatalf("unexpected links %v", stored.EmployeeIDs)
		}
	})

	t.Run("foreign employee", func(t *testing.T) {
		foreign := in
		foreign.EmployeeIDs = []int64{stylist.ID, masseur.ID}
		_, err := svc.Create(f.ctx, pa, foreign)
		assertKind(t, err, domain.ErrValidation, domain.MsgForeignEmployees)
	})

	t.Run("admin must name the provider", func(t *testing.T) {
		missing := in
		missing.ProviderID = 0
		_, err := svc.Create(f.ctx, f.admin, missing)
		assertKind(t, err, domain.ErrNotFound, msgProviderNotFound)
	})

	t.Run("admin names the provider", func(t *testing.T) {
		atSpa := in
		atSpa.EmployeeIDs = []int64{masseur.ID}
		a, err := svc.Create(f.ctx, f.admin, atSpa)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if a.ProviderID != spa.ID {
			t.Fatalf("expected provider %d, got %d", spa.ID, a.ProviderID)
		}
	})

	t.Run("clients cannot create activities", func(t *testing.T) {
		_, cl := f.client()
		_, err := svc.Create(f.ctx, cl, in)
		assertKind(t, err, domain.ErrUnauthorized, msgRoleNotAllowed)
	})
}

func TestActivityService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewActivityService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())
	salon := f.provider("salon")
	first, pa := f.employee(salon, domain.RoleProviderAdmin)
	second, _ := f.employee(salon, domain.RoleEmployee)
	cut := f.activity(salon, "Cut", 30, 20, first)

	got, err := svc.Update(f.ctx, pa, cut.ID, ports.ActivityInput{
		Name:        "Long Cut",
		Price:       decimal.RequireFromString("25.50"),
		Duration:    45,
		EmployeeIDs: []int64{second.ID},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Duration != 45 || got.ProviderID != salon.ID {
		t.Fatalf("unexpected activity %+v", got)
	}

	stored, err := f.store.Activities().GetByID(f.ctx, cut.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !slices.Equal(stored.EmployeeIDs, []int64{second.ID}) {
		t.Fatalf("links not replaced: %v", stored.EmployeeIDs)
	}
	if stored.Price.StringFixed(2) != "25.50" {
		t.Fatalf("price not updated: %s", stored.Price)
	}
}

func TestActivityService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := NewActivityService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())
	salon := f.provider("salon")
	stylist, _ := f.employee(salon, domain.RoleEmployee)
	cl, _ := f.client()
	cut := f.activity(salon, "Cut", 30, 20, stylist)
	f.appointment(stylist, cl, cut, at(monday, 9, 0))

	if err := svc.Delete(f.ctx, f.admin, cut.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got := f.countAppointments(); got != 0 {
		t.Fatalf("expected appointments removed, found %d", got)
	}
	err := svc.Delete(f.ctx, f.admin, cut.ID)
	assertKind(t, err, domain.ErrNotFound, "Activity was not found!")
}
