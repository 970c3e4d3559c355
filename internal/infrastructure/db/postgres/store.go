package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

// Store binds every repository to one gorm handle, which is either the
// connection pool or an open transaction.
type Store struct {
	db *gorm.DB
}

var _ ports.Database = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Providers() ports.ProviderRepository       { return &providerRepository{db: s.db} }
func (s *Store) Accounts() ports.AccountRepository         { return &accountRepository{db: s.db} }
func (s *Store) Employees() ports.EmployeeRepository       { return &employeeRepository{db: s.db} }
func (s *Store) Clients() ports.ClientRepository           { return &clientRepository{db: s.db} }
func (s *Store) Activities() ports.ActivityRepository      { return &activityRepository{db: s.db} }
func (s *Store) Appointments() ports.AppointmentRepository { return &appointmentRepository{db: s.db} }
func (s *Store) Relations() ports.RelationReader           { return &relationRepository{db: s.db} }

// Do runs fn in a transaction. Nested calls become savepoints.
func (s *Store) Do(ctx context.Context, fn func(tx ports.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto domain errors at the repository boundary.
func translate(err error, notFound, duplicate string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != "":
		return domain.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicate != "":
		return domain.Validation(duplicate)
	}
	return err
}

const (
	msgProviderNotFound    = "Provider was not found!"
	msgAccountNotFound     = "Account was not found!"
	msgEmployeeNotFound    = "Employee was not found!"
	msgClientNotFound      = "Client was not found!"
	msgActivityNotFound    = "Activity was not found!"
	msgAppointmentNotFound = "Appointment was not found!"
)

func paginate(q *gorm.DB, page domain.PageRequest) *gorm.DB {
	page = page.Normalize()
	return q.Order("id").Limit(page.Size).Offset(page.Offset())
}

// distinct returns ids without duplicates, keeping first-seen order.
func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
