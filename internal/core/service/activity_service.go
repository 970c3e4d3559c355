package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

const msgProviderNotFound = "Provider was not found!"

type activityService struct {
	db    ports.Database
	guard *AuthorizationGuard
	audit ports.AuditLog
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService backed by db.
func NewActivityService(db ports.Database, guard *AuthorizationGuard, audit ports.AuditLog, log zerolog.Logger) ports.ActivityService {
	return &activityService{db: db, guard: guard, audit: audit, log: log}
}

func (s *activityService) Create(ctx context.Context, caller domain.Caller, in ports.ActivityInput) (*domain.Activity, error) {
	if err := s.guard.Authorize(ctx, caller, OpActivityCreate, Targets{}); err != nil {
		return nil, err
	}

	providerID, err := s.callerProvider(ctx, caller, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in, providerID); err != nil {
		return nil, err
	}

	a := &domain.Activity{ProviderID: providerID}
	applyActivity(a, in)
	err = s.db.Do(ctx, func(tx ports.Store) error {
		return tx.Activities().Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditCreate, "activity", a.ID)
	s.log.Info().Int64("activity_id", a.ID).Int64("provider_id", providerID).Msg("activity created")
	return a, nil
}

func (s *activityService) Update(ctx context.Context, caller domain.Caller, id int64, in ports.ActivityInput) (*domain.Activity, error) {
	if err := s.guard.Authorize(ctx, caller, OpActivityUpdate, Targets{ActivityID: id}); err != nil {
		return nil, err
	}

	a, err := s.db.Activities().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in, a.ProviderID); err != nil {
		return nil, err
	}

	applyActivity(a, in)
	err = s.db.Do(ctx, func(tx ports.Store) error {
		return tx.Activities().Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditUpdate, "activity", a.ID)
	s.log.Info().Int64("activity_id", a.ID).Int64("provider_id", a.ProviderID).Msg("activity updated")
	return a, nil
}

func (s *activityService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if err := s.guard.Authorize(ctx, caller, OpActivityDelete, Targets{ActivityID: id}); err != nil {
		return err
	}
	if err := s.db.Activities().Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditDelete, "activity", id)
	s.log.Info().Int64("activity_id", id).Msg("activity deleted")
	return nil
}

func (s *activityService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Activity, error) {
	if err := s.guard.Authorize(ctx, caller, OpActivityRead, Targets{ActivityID: id}); err != nil {
		return nil, err
	}
	return s.db.Activities().GetByID(ctx, id)
}

func (s *activityService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Activity], error) {
	if err := s.guard.Authorize(ctx, caller, OpActivityList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.db.Activities().List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}

// callerProvider resolves the provider an activity is written into. Admins
// name it explicitly; provider admins always use their own.
func (s *activityService) callerProvider(ctx context.Context, caller domain.Caller, requested int64) (int64, error) {
	if !caller.IsAdmin() {
		return s.db.Employees().ProviderIDByAccount(ctx, caller.AccountID)
	}
	if requested == 0 {
		return 0, domain.NotFound(msgProviderNotFound)
	}
	if _, err := s.db.Providers().GetByID(ctx, requested); err != nil {
		return 0, err
	}
	return requested, nil
}

func (s *activityService) validate(ctx context.Context, in ports.ActivityInput, providerID int64) error {
	msgs := fieldProblems(in)
	if len(in.EmployeeIDs) > 0 {
		ok, err := s.db.Employees().AllInProvider(ctx, in.EmployeeIDs, providerID)
		if err != nil {
			return err
		}
		msgs.addIf(!ok, domain.MsgForeignEmployees)
	}
	return Check(msgs)
}

func applyActivity(a *domain.Activity, in ports.ActivityInput) {
	a.Name = in.Name
	a.Price = in.Price
	a.Duration = in.Duration
	a.EmployeeIDs = append([]int64(nil), in.EmployeeIDs...)
}
