package service

import (
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

func providerInput(name, businessDomain string) ports.ProviderInput {
	return ports.ProviderInput{
		Name:            name,
		Website:         "https://www." + businessDomain + ".com",
		BusinessDomain:  businessDomain,
		Phone:           "+15550100",
		WorkingDayStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingDayEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:     domain.Weekdays,
	}
}

func TestProviderService_Create(t *testing.T) {
	f := newFixture(t)
	audit := &recordingAudit{}
	svc := NewProviderService(f.store, f.guard, audit, zerolog.Nop())

	p, err := svc.Create(f.ctx, f.admin, providerInput("Hair Studio", "hairstudio"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == 0 || p.WorkingDays != domain.Weekdays {
		t.Fatalf("unexpected provider %+v", p)
	}
	if len(audit.events) != 1 || audit.events[0].Entity != "provider" {
		t.Fatalf("expected one provider audit event, got %+v", audit.events)
	}

	_, err = svc.Create(f.ctx, f.admin, providerInput("Hair Studio", "otherdomain"))
	assertKind(t, err, domain.ErrValidation, domain.MsgProviderNotUnique)
}

func TestProviderService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	svc := NewProviderService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())

	inverted := providerInput("Night Owls", "nightowls")
	inverted.WorkingDayStart, inverted.WorkingDayEnd = inverted.WorkingDayEnd, inverted.WorkingDayStart
	_, err := svc.Create(f.ctx, f.admin, inverted)
	assertKind(t, err, domain.ErrValidation, msgWorkingWindow)

	bad := providerInput("X", "bad domain")
	bad.Website = "not a url"
	bad.Phone = "call me"
	_, err = svc.Create(f.ctx, f.admin, bad)
	assertKind(t, err, domain.ErrValidation, "")
}

func TestProviderService_ProviderAdminScope(t *testing.T) {
	f := newFixture(t)
	svc := NewProviderService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())
	salon := f.provider("salon")
	spa := f.provider("spa")
	_, pa := f.employee(salon, domain.RoleProviderAdmin)

	updated, err := svc.Update(f.ctx, pa, salon.ID, providerInput("Salon Deluxe", "salon"))
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Salon Deluxe" {
		t.Fatalf("name not updated: %q", updated.Name)
	}

	_, err = svc.Update(f.ctx, pa, spa.ID, providerInput("Spa Deluxe", "spa"))
	assertKind(t, err, domain.ErrUnauthorized, msgForeignProvider)

	err = svc.Delete(f.ctx, pa, salon.ID)
	assertKind(t, err, domain.ErrUnauthorized, msgRoleNotAllowed)
}

func TestProviderService_Delete_Cascades(t *testing.T) {
	f := newFixture(t)
	svc := NewProviderService(f.store, f.guard, ports.NopAuditLog{}, zerolog.Nop())
	salon := f.provider("salon")
	spa := f.provider("spa")
	stylist, _ := f.employee(salon, domain.RoleEmployee)
	masseur, _ := f.employee(spa, domain.RoleEmployee)
	cl, _ := f.client()
	cut := f.activity(salon, "Cut", 30, 20, stylist)
	massage := f.activity(spa, "Massage", 60, 50, masseur)
	f.appointment(stylist, cl, cut, at(monday, 9, 0))
	kept := f.appointment(masseur, cl, massage, at(monday, 9, 0))

	if err := svc.Delete(f.ctx, f.admin, salon.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err := f.store.Providers().GetByID(f.ctx, salon.ID)
	assertKind(t, err, domain.ErrNotFound, "")
	_, err = f.store.Employees().GetByID(f.ctx, stylist.ID)
	assertKind(t, err, domain.ErrNotFound, "")
	_, err = f.store.Accounts().GetByID(f.ctx, stylist.AccountID)
	assertKind(t, err, domain.ErrNotFound, "")
	_, err = f.store.Activities().GetByID(f.ctx, cut.ID)
	assertKind(t, err, domain.ErrNotFound, "")

	if got := f.countAppointments(); got != 1 {
		t.Fatalf("expected only the spa appointment to remain, found %d", got)
	}
	if _, err := f.store.Appointments().GetByID(f.ctx, kept.ID); err != nil {
		t.Fatalf("spa appointment was removed: %v", err)
	}
	if _, err := f.store.Clients().GetByID(f.ctx, cl.ID); err != nil {
		t.Fatalf("client was removed: %v", err)
	}

	err = svc.Delete(f.ctx, f.admin, salon.ID)
	assertKind(t, err, domain.ErrNotFound, "Provider was not found!")
}
