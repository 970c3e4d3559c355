package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type memoryRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	fail   bool
}

func (r *memoryRepo) Insert(_ context.Context, e *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("mongo unavailable")
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *memoryRepo) List(context.Context, domain.PageRequest) ([]domain.AuditEvent, int64, error) {
	return nil, 0, nil
}

func (r *memoryRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

var _ ports.AuditRepository = (*memoryRepo)(nil)

func stop(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestDispatcher_DrainsOnStop(t *testing.T) {
	repo := &memoryRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start()

	for i := 0; i < 50; i++ {
		d.Record(context.Background(), domain.AuditEvent{ID: "e", Entity: "appointment"})
	}
	stop(t, d)

	if got := len(repo.snapshot()); got != 50 {
		t.Fatalf("expected 50 stored events, got %d", got)
	}
}

func TestDispatcher_KeepsOrderPerEntity(t *testing.T) {
	repo := &memoryRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start()

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		d.Record(context.Background(), domain.AuditEvent{ID: id, Entity: "provider"})
		d.Record(context.Background(), domain.AuditEvent{ID: "x" + id, Entity: "client"})
	}
	stop(t, d)

	var got []string
	for _, e := range repo.snapshot() {
		if e.Entity == "provider" {
			got = append(got, e.ID)
		}
	}
	if len(got) != len(ids) {
		t.Fatalf("expected %d provider events, got %v", len(ids), got)
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("order lost: %v", got)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &memoryRepo{}, zerolog.Nop())
	first := d.shardIndex("employee")
	for i := 0; i < 10; i++ {
		if d.shardIndex("employee") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_RecordAfterStop(t *testing.T) {
	repo := &memoryRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start()
	stop(t, d)

	d.Record(context.Background(), domain.AuditEvent{ID: "late", Entity: "client"})
	stop(t, d)

	if got := len(repo.snapshot()); got != 0 {
		t.Fatalf("expected no events after stop, got %d", got)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &memoryRepo{}, zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Record(context.Background(), domain.AuditEvent{Entity: "account"})
	}
	if got := d.Pending(); got != channelBuffer {
		t.Fatalf("expected %d pending, got %d", channelBuffer, got)
	}

	d.Start()
	stop(t, d)
	if got := d.Pending(); got != 0 {
		t.Fatalf("expected drained queue, got %d", got)
	}
}

func TestDispatcher_WriteFailureDoesNotStopWorker(t *testing.T) {
	repo := &memoryRepo{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start()

	d.Record(context.Background(), domain.AuditEvent{ID: "1", Entity: "client"})
	d.Record(context.Background(), domain.AuditEvent{ID: "2", Entity: "client"})
	stop(t, d)

	if got := d.Pending(); got != 0 {
		t.Fatalf("failed writes should still be consumed, %d pending", got)
	}
}
