package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

const msgWorkingWindow = "The start of the working day should be before its end!"

type providerService struct {
	db    ports.Database
	guard *AuthorizationGuard
	audit ports.AuditLog
	log   zerolog.Logger
}

// NewProviderService returns a ProviderService backed by db.
func NewProviderService(db ports.Database, guard *AuthorizationGuard, audit ports.AuditLog, log zerolog.Logger) ports.ProviderService {
	return &providerService{db: db, guard: guard, audit: audit, log: log}
}

func (s *providerService) Create(ctx context.Context, caller domain.Caller, in ports.ProviderInput) (*domain.Provider, error) {
	if err := s.guard.Authorize(ctx, caller, OpProviderCreate, Targets{}); err != nil {
		return nil, err
	}
	if err := validateProvider(in); err != nil {
		return nil, err
	}

	p := &domain.Provider{}
	applyProvider(p, in)
	if err := s.db.Providers().Create(ctx, p); err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditCreate, "provider", p.ID)
	s.log.Info().Int64("provider_id", p.ID).Str("name", p.Name).Msg("provider created")
	return p, nil
}

func (s *providerService) Update(ctx context.Context, caller domain.Caller, id int64, in ports.ProviderInput) (*domain.Provider, error) {
	if err := s.guard.Authorize(ctx, caller, OpProviderUpdate, Targets{ProviderID: id}); err != nil {
		return nil, err
	}
	if err := validateProvider(in); err != nil {
		return nil, err
	}

	p, err := s.db.Providers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProvider(p, in)
	if err := s.db.Providers().Update(ctx, p); err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditUpdate, "provider", p.ID)
	s.log.Info().Int64("provider_id", p.ID).Msg("provider updated")
	return p, nil
}

func (s *providerService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if err := s.guard.Authorize(ctx, caller, OpProviderDelete, Targets{ProviderID: id}); err != nil {
		return err
	}
	if err := s.db.Providers().Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditDelete, "provider", id)
	s.log.Info().Int64("provider_id", id).Msg("provider deleted")
	return nil
}

func (s *providerService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Provider, error) {
	if err := s.guard.Authorize(ctx, caller, OpProviderRead, Targets{ProviderID: id}); err != nil {
		return nil, err
	}
	return s.db.Providers().GetByID(ctx, id)
}

func (s *providerService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Provider], error) {
	if err := s.guard.Authorize(ctx, caller, OpProviderList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.db.Providers().List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}

func validateProvider(in ports.ProviderInput) error {
	msgs := fieldProblems(in)
	msgs.addIf(in.WorkingDayStart >= in.WorkingDayEnd, msgWorkingWindow)
	return Check(msgs)
}

func applyProvider(p *domain.Provider, in ports.ProviderInput) {
	p.Name = in.Name
	p.Website = in.Website
	p.BusinessDomain = in.BusinessDomain
	p.Phone = in.Phone
	p.WorkingDayStart = in.WorkingDayStart
	p.WorkingDayEnd = in.WorkingDayEnd
	p.WorkingDays = in.WorkingDays
}
