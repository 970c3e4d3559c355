package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type scene struct {
	store    *Store
	provider *domain.Provider
	other    *domain.Provider
	employee *domain.Employee
	peer     *domain.Employee
	outsider *domain.Employee
	client   *domain.Client
	cut      *domain.Activity
	color    *domain.Activity
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(sqlite.Open("file::memory:"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func newScene(t *testing.T) *scene {
	t.Helper()
	ctx := context.Background()
	s := &scene{store: newTestStore(t)}

	provider := func(name string) *domain.Provider {
		p := &domain.Provider{
			Name:            name,
			Website:         "https://www." + name + ".com",
			BusinessDomain:  name,
			Phone:           "123",
			WorkingDayStart: datatypes.NewTime(9, 0, 0, 0),
			WorkingDayEnd:   datatypes.NewTime(17, 0, 0, 0),
			WorkingDays:     domain.Weekdays,
		}
		if err := s.store.Providers().Create(ctx, p); err != nil {
			t.Fatalf("create provider: %v", err)
		}
		return p
	}
	employee := func(p *domain.Provider, email string) *domain.Employee {
		e := &domain.Employee{
			Title:       "Stylist",
			Phone:       "123",
			RatePerHour: decimal.NewFromInt(10),
			HireDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ProviderID:  p.ID,
			Account:     &domain.Account{Email: email, FullName: "Staff", Role: domain.RoleEmployee, Username: email, PasswordHash: "x"},
		}
		if err := s.store.Employees().Create(ctx, e); err != nil {
			t.Fatalf("create employee: %v", err)
		}
		return e
	}
	activity := func(name string, minutes int, staff ...int64) *domain.Activity {
		a := &domain.Activity{Name: name, Price: decimal.NewFromInt(20), Duration: minutes, ProviderID: s.provider.ID, EmployeeIDs: staff}
		if err := s.store.Activities().Create(ctx, a); err != nil {
			t.Fatalf("create activity: %v", err)
		}
		return a
	}

	s.provider = provider("salon")
	s.other = provider("spa")
	s.employee = employee(s.provider, "ana@salon.com")
	s.peer = employee(s.provider, "bea@salon.com")
	s.outsider = employee(s.other, "cai@spa.com")

	s.client = &domain.Client{
		Phone:   "555",
		Address: "Main St",
		Account: &domain.Account{Email: "dee@mail.com", FullName: "Dee", Role: domain.RoleClient, Username: "dee", PasswordHash: "x"},
	}
	if err := s.store.Clients().Create(ctx, s.client); err != nil {
		t.Fatalf("create client: %v", err)
	}

	s.cut = activity("cut", 30, s.employee.ID, s.peer.ID)
	s.color = activity("color", 90, s.employee.ID)
	return s
}

func (s *scene) book(t *testing.T, start time.Time, a *domain.Activity) *domain.Appointment {
	t.Helper()
	appt := &domain.Appointment{
		StartDate:  start,
		EndDate:    start.Add(a.Length()),
		EmployeeID: s.employee.ID,
		ClientID:   s.client.ID,
		ActivityID: a.ID,
	}
	if err := s.store.Appointments().Create(context.Background(), appt); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return appt
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	s := newScene(t)
	dup := &domain.Account{Email: "ana@salon.com", FullName: "Ana", Role: domain.RoleClient, Username: "ana", PasswordHash: "x"}

	err := s.store.Accounts().Create(context.Background(), dup)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	if _, err := s.store.Clients().GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.store.Appointments().Delete(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestActivityRepository_EmployeeInAll(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	repo := s.store.Activities()

	tests := []struct {
		name     string
		employee int64
		ids      []int64
		want     bool
	}{
		{"performs both", s.employee.ID, []int64{s.cut.ID, s.color.ID}, true},
		{"duplicates collapse", s.employee.ID, []int64{s.cut.ID, s.cut.ID}, true},
		{"missing one", s.peer.ID, []int64{s.cut.ID, s.color.ID}, false},
		{"empty", s.employee.ID, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.EmployeeInAll(ctx, tc.employee, tc.ids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EmployeeInAll = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestActivityRepository_FindByIDs(t *testing.T) {
	s := newScene(t)

	found, err := s.store.Activities().FindByIDs(context.Background(), []int64{s.color.ID, s.color.ID, 999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[s.color.ID] == nil || found[s.color.ID].Duration != 90 {
		t.Fatalf("unexpected result %v", found)
	}
}

func TestActivityRepository_GetByID_LoadsEmployees(t *testing.T) {
	s := newScene(t)

	a, err := s.store.Activities().GetByID(context.Background(), s.cut.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.EmployeeIDs) != 2 {
		t.Fatalf("expected 2 linked employees, got %v", a.EmployeeIDs)
	}
}

func TestAppointmentRepository_ForEmployeeBetween(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	nine := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	first := s.book(t, nine, s.cut)
	s.book(t, nine.Add(time.Hour), s.color)

	got, err := s.store.Appointments().ForEmployeeBetween(ctx, s.employee.ID, nine.Add(30*time.Minute), nine.Add(time.Hour), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("touching windows should not match, got %v", got)
	}

	got, err = s.store.Appointments().ForEmployeeBetween(ctx, s.employee.ID, nine, nine.Add(2*time.Hour), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID {
		t.Fatalf("expected both appointments ordered by start, got %v", got)
	}

	got, err = s.store.Appointments().ForEmployeeBetween(ctx, s.employee.ID, nine, nine.Add(2*time.Hour), first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("excluded appointment should be skipped, got %v", got)
	}
}

func TestRelationRepository(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	rel := s.store.Relations()
	appt := s.book(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), s.cut)

	check := func(name string, got bool, err error, want bool) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if got != want {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}

	got, err := rel.AccountInProvider(ctx, s.employee.AccountID, s.provider.ID)
	check("AccountInProvider", got, err, true)
	got, err = rel.AccountInProvider(ctx, s.outsider.AccountID, s.provider.ID)
	check("AccountInProvider outsider", got, err, false)

	got, err = rel.AccountSharesProviderWithEmployee(ctx, s.peer.AccountID, s.employee.ID)
	check("AccountSharesProviderWithEmployee", got, err, true)
	got, err = rel.AccountSharesProviderWithEmployee(ctx, s.outsider.AccountID, s.employee.ID)
	check("AccountSharesProviderWithEmployee outsider", got, err, false)

	got, err = rel.ClientMatchesAccount(ctx, s.client.ID, s.client.AccountID)
	check("ClientMatchesAccount", got, err, true)

	got, err = rel.AppointmentEmployeeMatchesAccount(ctx, appt.ID, s.employee.AccountID)
	check("AppointmentEmployeeMatchesAccount", got, err, true)
	got, err = rel.AppointmentClientMatchesAccount(ctx, appt.ID, s.employee.AccountID)
	check("AppointmentClientMatchesAccount", got, err, false)
	got, err = rel.AppointmentSharesProviderWithAccount(ctx, appt.ID, s.peer.AccountID)
	check("AppointmentSharesProviderWithAccount", got, err, true)
	got, err = rel.AppointmentSharesProviderWithAccount(ctx, appt.ID, s.outsider.AccountID)
	check("AppointmentSharesProviderWithAccount outsider", got, err, false)

	pid, err := rel.ActivityProviderID(ctx, s.cut.ID)
	if err != nil || pid != s.provider.ID {
		t.Fatalf("ActivityProviderID = %d, %v", pid, err)
	}
	if pid, err := rel.ActivityProviderID(ctx, 999); err != nil || pid != 0 {
		t.Fatalf("missing activity should yield 0, got %d, %v", pid, err)
	}
}

func TestProviderRepository_DeleteCascades(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	s.book(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), s.cut)

	if err := s.store.Providers().Delete(ctx, s.provider.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	db := s.store.db
	counts := map[string]any{
		"employees":      &domain.Employee{},
		"activities":     &domain.Activity{},
		"activity links": &domain.ActivityEmployee{},
		"appointments":   &domain.Appointment{},
	}
	for name, model := range counts {
		var n int64
		q := db.Model(model)
		if name == "employees" {
			q = q.Where("provider_id = ?", s.provider.ID)
		}
		if err := q.Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Fatalf("expected no %s left, got %d", name, n)
		}
	}

	if _, err := s.store.Accounts().GetByEmail(ctx, "ana@salon.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("employee accounts should be removed, got %v", err)
	}
	if _, err := s.store.Employees().GetByID(ctx, s.outsider.ID); err != nil {
		t.Fatalf("other providers must be untouched: %v", err)
	}
	if _, err := s.store.Clients().GetByID(ctx, s.client.ID); err != nil {
		t.Fatalf("clients must survive provider deletion: %v", err)
	}
}

func TestStore_DoRollsBack(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.store.Do(ctx, func(tx ports.Store) error {
		if err := tx.Appointments().Create(ctx, &domain.Appointment{
			StartDate:  time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
			EmployeeID: s.employee.ID,
			ClientID:   s.client.ID,
			ActivityID: s.cut.ID,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_, total, err := s.store.Appointments().List(ctx, domain.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected rollback, found %d appointments", total)
	}
}

func TestPaginate(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.book(t, time.Date(2024, 6, 4, 9+i, 0, 0, 0, time.UTC), s.cut)
	}

	items, total, err := s.store.Appointments().List(ctx, domain.PageRequest{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 1 {
		t.Fatalf("expected 1 of 3 on page 2, got %d of %d", len(items), total)
	}
}
