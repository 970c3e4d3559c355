package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type auditService struct {
	repo  ports.AuditRepository
	guard *AuthorizationGuard
	log   zerolog.Logger
}

// NewAuditService returns an AuditService reading from repo.
func NewAuditService(repo ports.AuditRepository, guard *AuthorizationGuard, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, guard: guard, log: log}
}

func (s *auditService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.AuditEvent], error) {
	if err := s.guard.Authorize(ctx, caller, OpAuditList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}

// record hands a mutation to the audit log. It never fails the caller.
func record(ctx context.Context, log ports.AuditLog, caller domain.Caller, action domain.AuditAction, entity string, ids ...int64) {
	if log == nil {
		return
	}
	log.Record(ctx, domain.AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Entity:     entity,
		EntityIDs:  ids,
		ActorID:    caller.AccountID,
		ActorRole:  caller.Role,
		OccurredAt: time.Now().UTC(),
	})
}
