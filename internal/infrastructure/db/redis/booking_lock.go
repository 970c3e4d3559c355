package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rushhour/scheduling/internal/core/ports"
)

const defaultLockTTL = 10 * time.Second

// BookingLocker serializes bookings per employee with a Redis key.
// Key format: lock:employee:<employee_id>
type BookingLocker struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.BookingLocker = (*BookingLocker)(nil)

// NewBookingLocker creates a locker whose keys expire after ttl, so a crashed
// holder cannot block an employee forever.
func NewBookingLocker(client *redis.Client, ttl time.Duration) *BookingLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &BookingLocker{client: client, ttl: ttl}
}

// WithEmployeeLock runs fn while holding the employee's lock. fn's context is
// bounded by the lock TTL. ports.ErrLockNotAcquired is returned when another
// holder has the key.
func (l *BookingLocker) WithEmployeeLock(ctx context.Context, employeeID int64, fn func(ctx context.Context) error) error {
	key := lockKey(employeeID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	if !ok {
		return ports.ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// unlockScript deletes the key only if it still holds our token.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *BookingLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release booking lock: %w", err)
	}
	return nil
}

func lockKey(employeeID int64) string {
	return fmt.Sprintf("lock:employee:%d", employeeID)
}
