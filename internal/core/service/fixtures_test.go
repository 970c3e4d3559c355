package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
	"github.com/rushhour/scheduling/internal/infrastructure/credentials"
	"github.com/rushhour/scheduling/internal/infrastructure/db/postgres"
)

const testPassword = "Secret.123"

// monday is a Monday in UTC.
var monday = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// fixture is a scheduling database on in-memory SQLite with helpers that
// insert rows directly through the repositories.
type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *postgres.Store
	creds *credentials.Store
	guard *AuthorizationGuard
	admin domain.Caller
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := postgres.Open(sqlite.Open("file::memory:"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := postgres.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: postgres.NewStore(gdb),
		creds: credentials.NewStore("test-secret", time.Hour, 1),
	}
	f.guard = NewAuthorizationGuard(f.store.Relations(), zerolog.Nop())

	admin := f.account("admin@rushhour.com", domain.RoleAdmin)
	if err := f.store.Accounts().Create(f.ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	f.admin = domain.Caller{AccountID: admin.ID, Role: domain.RoleAdmin}
	return f
}

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

func (f *fixture) account(email string, role domain.Role) *domain.Account {
	hash, salt, err := f.creds.HashPassword(testPassword)
	if err != nil {
		f.t.Fatalf("hash: %v", err)
	}
	return &domain.Account{
		Email:        email,
		FullName:     "Test-User",
		Username:     fmt.Sprintf("user%d", f.next()),
		Role:         role,
		PasswordHash: hash,
		Salt:         salt,
	}
}

// provider works Monday to Friday, 09:00 to 17:00.
func (f *fixture) provider(businessDomain string) *domain.Provider {
	p := &domain.Provider{
		Name:            "Provider " + businessDomain,
		Website:         "https://www." + businessDomain + ".com",
		BusinessDomain:  businessDomain,
		Phone:           "+15550100",
		WorkingDayStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingDayEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:     domain.Weekdays,
	}
	if err := f.store.Providers().Create(f.ctx, p); err != nil {
		f.t.Fatalf("create provider: %v", err)
	}
	return p
}

func (f *fixture) employee(p *domain.Provider, role domain.Role) (*domain.Employee, domain.Caller) {
	email := fmt.Sprintf("staff%d@%s.com", f.next(), p.BusinessDomain)
	e := &domain.Employee{
		Account:     f.account(email, role),
		Title:       "Stylist",
		Phone:       "5550101",
		RatePerHour: decimal.NewFromInt(25),
		HireDate:    monday.AddDate(-1, 0, 0),
		ProviderID:  p.ID,
	}
	if err := f.store.Employees().Create(f.ctx, e); err != nil {
		f.t.Fatalf("create employee: %v", err)
	}
	return e, domain.Caller{AccountID: e.AccountID, Role: role}
}

func (f *fixture) client() (*domain.Client, domain.Caller) {
	c := &domain.Client{
		Account: f.account(fmt.Sprintf("client%d@mail.com", f.next()), domain.RoleClient),
		Phone:   "5550102",
		Address: "1 Main Street",
	}
	if err := f.store.Clients().Create(f.ctx, c); err != nil {
		f.t.Fatalf("create client: %v", err)
	}
	return c, domain.Caller{AccountID: c.AccountID, Role: domain.RoleClient}
}

func (f *fixture) activity(p *domain.Provider, name string, minutes int, price int64, staff ...*domain.Employee) *domain.Activity {
	a := &domain.Activity{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Duration:   minutes,
		ProviderID: p.ID,
	}
	for _, e := range staff {
		a.EmployeeIDs = append(a.EmployeeIDs, e.ID)
	}
	if err := f.store.Activities().Create(f.ctx, a); err != nil {
		f.t.Fatalf("create activity: %v", err)
	}
	return a
}

func (f *fixture) appointment(e *domain.Employee, c *domain.Client, a *domain.Activity, start time.Time) *domain.Appointment {
	appt := &domain.Appointment{
		StartDate:  start,
		EndDate:    start.Add(a.Length()),
		EmployeeID: e.ID,
		ClientID:   c.ID,
		ActivityID: a.ID,
	}
	if err := f.store.Appointments().Create(f.ctx, appt); err != nil {
		f.t.Fatalf("create appointment: %v", err)
	}
	return appt
}

func (f *fixture) countAppointments() int64 {
	_, total, err := f.store.Appointments().List(f.ctx, domain.PageRequest{})
	if err != nil {
		f.t.Fatalf("list appointments: %v", err)
	}
	return total
}

// recordingAudit keeps every event it is handed.
type recordingAudit struct {
	events []domain.AuditEvent
}

func (r *recordingAudit) Record(_ context.Context, e domain.AuditEvent) {
	r.events = append(r.events, e)
}

func assertKind(t *testing.T, err, kind error, msg string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Error())
	}
}

var _ ports.AuditLog = (*recordingAudit)(nil)
