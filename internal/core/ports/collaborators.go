package ports

import (
	"context"
	"errors"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// CredentialStore hashes and verifies passwords and issues access tokens.
type CredentialStore interface {
	HashPassword(plaintext string) (hash string, salt []byte, err error)
	VerifyPassword(plaintext, hash string, salt []byte) bool
	IssueToken(accountID int64, role domain.Role) (string, error)
}

// ErrLockNotAcquired is returned by a BookingLocker when another request
// holds the employee's lock.
var ErrLockNotAcquired = errors.New("booking lock not acquired")

// BookingLocker serializes bookings per employee across processes.
type BookingLocker interface {
	WithEmployeeLock(ctx context.Context, employeeID int64, fn func(ctx context.Context) error) error
}

// AuditLog accepts audit events. Record must not block on storage.
type AuditLog interface {
	Record(ctx context.Context, event domain.AuditEvent)
}

// AuditRepository stores audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	List(ctx context.Context, page domain.PageRequest) ([]domain.AuditEvent, int64, error)
}

// NopLocker runs fn without locking. Used when no Redis is configured.
type NopLocker struct{}

func (NopLocker) WithEmployeeLock(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NopAuditLog drops every event.
type NopAuditLog struct{}

func (NopAuditLog) Record(context.Context, domain.AuditEvent) {}
