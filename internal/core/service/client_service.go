package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type clientService struct {
	db    ports.Database
	guard *AuthorizationGuard
	creds ports.CredentialStore
	audit ports.AuditLog
	log   zerolog.Logger
}

// NewClientService returns a ClientService backed by db.
func NewClientService(db ports.Database, guard *AuthorizationGuard, creds ports.CredentialStore, audit ports.AuditLog, log zerolog.Logger) ports.ClientService {
	return &clientService{db: db, guard: guard, creds: creds, audit: audit, log: log}
}

func (s *clientService) Create(ctx context.Context, caller domain.Caller, in ports.NewClientInput) (*domain.Client, error) {
	if err := s.guard.Authorize(ctx, caller, OpClientCreate, Targets{}); err != nil {
		return nil, err
	}
	if err := Check(fieldProblems(in)); err != nil {
		return nil, err
	}

	hash, salt, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	c := &domain.Client{
		Phone:   in.Phone,
		Address: in.Address,
		Account: &domain.Account{
			Email:        in.Email,
			FullName:     in.FullName,
			Username:     in.Username,
			Role:         domain.RoleClient,
			PasswordHash: hash,
			Salt:         salt,
		},
	}
	err = s.db.Do(ctx, func(tx ports.Store) error {
		return tx.Clients().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditCreate, "client", c.ID)
	s.log.Info().Int64("client_id", c.ID).Msg("client created")
	return c, nil
}

func (s *clientService) Update(ctx context.Context, caller domain.Caller, id int64, in ports.ClientInput) (*domain.Client, error) {
	if err := s.guard.Authorize(ctx, caller, OpClientUpdate, Targets{ClientID: id}); err != nil {
		return nil, err
	}
	if err := Check(fieldProblems(in)); err != nil {
		return nil, err
	}

	var c *domain.Client
	err := s.db.Do(ctx, func(tx ports.Store) error {
		var err error
		if c, err = tx.Clients().GetByID(ctx, id); err != nil {
			return err
		}
		if c.Account == nil {
			c.Account = &domain.Account{ID: c.AccountID, Role: domain.RoleClient}
		}
		c.Phone = in.Phone
		c.Address = in.Address
		c.Account.Email = in.Email
		c.Account.FullName = in.FullName
		c.Account.Username = in.Username
		return tx.Clients().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditUpdate, "client", c.ID)
	s.log.Info().Int64("client_id", c.ID).Msg("client updated")
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if err := s.guard.Authorize(ctx, caller, OpClientDelete, Targets{ClientID: id}); err != nil {
		return err
	}
	if err := s.db.Clients().Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditDelete, "client", id)
	s.log.Info().Int64("client_id", id).Msg("client deleted")
	return nil
}

func (s *clientService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Client, error) {
	if err := s.guard.Authorize(ctx, caller, OpClientRead, Targets{ClientID: id}); err != nil {
		return nil, err
	}
	return s.db.Clients().GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Client], error) {
	if err := s.guard.Authorize(ctx, caller, OpClientList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.db.Clients().List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}
