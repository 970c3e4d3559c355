package ports

import (
	"context"
	"time"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// ProviderRepository persists providers. Delete removes the whole provider
// graph in one transaction.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	Update(ctx context.Context, p *domain.Provider) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Provider, int64, error)
	// ForEmployee returns the provider the employee works for.
	ForEmployee(ctx context.Context, employeeID int64) (*domain.Provider, error)
}

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id int64, hash string, salt []byte) error
}

// EmployeeRepository persists employees together with their accounts.
type EmployeeRepository interface {
	// Create inserts e.Account and then e.
	Create(ctx context.Context, e *domain.Employee) error
	// Update writes the employee row and the profile fields of its account.
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Employee, int64, error)
	// LockForBooking loads the employee row with a write lock held until
	// the surrounding transaction ends.
	LockForBooking(ctx context.Context, id int64) (*domain.Employee, error)
	// ProviderIDByAccount resolves the provider of the employee owning accountID.
	ProviderIDByAccount(ctx context.Context, accountID int64) (int64, error)
	// AllInProvider reports whether every id exists and belongs to providerID.
	AllInProvider(ctx context.Context, employeeIDs []int64, providerID int64) (bool, error)
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Client, int64, error)
}

// ActivityRepository persists activities and their employee links.
type ActivityRepository interface {
	// Create inserts the activity and one link per a.EmployeeIDs.
	Create(ctx context.Context, a *domain.Activity) error
	// Update rewrites the activity and reconciles its links with a.EmployeeIDs.
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Activity, int64, error)
	// FindByIDs returns the distinct activities among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error)
	// EmployeeInAll reports whether the employee is linked to every activity.
	EmployeeInAll(ctx context.Context, employeeID int64, activityIDs []int64) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Appointment, int64, error)
	// ForEmployeeBetween returns the employee's appointments intersecting
	// [from, to), skipping excludeID when it is non-zero.
	ForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time, excludeID int64) ([]domain.Appointment, error)
}

// RelationReader answers the relationship questions the authorization guard
// asks about a caller's account and a target entity.
type RelationReader interface {
	AccountInProvider(ctx context.Context, accountID, providerID int64) (bool, error)
	AccountSharesProviderWithEmployee(ctx context.Context, accountID, employeeID int64) (bool, error)
	ActivityProviderID(ctx context.Context, activityID int64) (int64, error)
	EmployeeMatchesAccount(ctx context.Context, employeeID, accountID int64) (bool, error)
	ClientMatchesAccount(ctx context.Context, clientID, accountID int64) (bool, error)
	AppointmentEmployeeMatchesAccount(ctx context.Context, appointmentID, accountID int64) (bool, error)
	AppointmentClientMatchesAccount(ctx context.Context, appointmentID, accountID int64) (bool, error)
	AppointmentSharesProviderWithAccount(ctx context.Context, appointmentID, accountID int64) (bool, error)
}

// Store groups the repositories bound to one connection or transaction.
type Store interface {
	Providers() ProviderRepository
	Accounts() AccountRepository
	Employees() EmployeeRepository
	Clients() ClientRepository
	Activities() ActivityRepository
	Appointments() AppointmentRepository
	Relations() RelationReader
}

// UnitOfWork runs fn against a transactional Store. The transaction commits
// when fn returns nil and rolls back otherwise, including on panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Store) error) error
}

// Database is a Store that can also open units of work.
type Database interface {
	Store
	UnitOfWork
}
