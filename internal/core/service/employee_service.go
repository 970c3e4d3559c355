package service

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type employeeService struct {
	db    ports.Database
	guard *AuthorizationGuard
	creds ports.CredentialStore
	audit ports.AuditLog
	log   zerolog.Logger
}

// NewEmployeeService returns an EmployeeService backed by db.
func NewEmployeeService(db ports.Database, guard *AuthorizationGuard, creds ports.CredentialStore, audit ports.AuditLog, log zerolog.Logger) ports.EmployeeService {
	return &employeeService{db: db, guard: guard, creds: creds, audit: audit, log: log}
}

func (s *employeeService) Create(ctx context.Context, caller domain.Caller, in ports.NewEmployeeInput) (*domain.Employee, error) {
	if err := s.guard.Authorize(ctx, caller, OpEmployeeCreate, Targets{ProviderID: in.ProviderID}); err != nil {
		return nil, err
	}

	msgs := fieldProblems(in)
	msgs.addIf(!in.Role.EmployeeAssignable(), domain.MsgEmployeeRoleOnCreate)
	if err := s.checkEmailDomain(ctx, &msgs, in.Email, in.ProviderID); err != nil {
		return nil, err
	}
	if err := Check(msgs); err != nil {
		return nil, err
	}

	hash, salt, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	e := &domain.Employee{
		Account: &domain.Account{
			Email:        in.Email,
			FullName:     in.FullName,
			Username:     in.Username,
			Role:         in.Role,
			PasswordHash: hash,
			Salt:         salt,
		},
		Title:       in.Title,
		Phone:       in.Phone,
		RatePerHour: in.RatePerHour,
		HireDate:    in.HireDate.UTC(),
		ProviderID:  in.ProviderID,
	}

	err = s.db.Do(ctx, func(tx ports.Store) error {
		return tx.Employees().Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditCreate, "employee", e.ID)
	s.log.Info().Int64("employee_id", e.ID).Int64("provider_id", e.ProviderID).Msg("employee created")
	return e, nil
}

func (s *employeeService) Update(ctx context.Context, caller domain.Caller, id int64, in ports.EmployeeInput) (*domain.Employee, error) {
	targets := Targets{EmployeeID: id, ProviderID: in.ProviderID}
	if err := s.guard.Authorize(ctx, caller, OpEmployeeUpdate, targets); err != nil {
		return nil, err
	}

	msgs := fieldProblems(in)
	msgs.addIf(!in.Role.EmployeeAssignable(), domain.MsgEmployeeRoleOnUpdate)
	if err := s.checkEmailDomain(ctx, &msgs, in.Email, in.ProviderID); err != nil {
		return nil, err
	}
	if err := Check(msgs); err != nil {
		return nil, err
	}

	var e *domain.Employee
	err := s.db.Do(ctx, func(tx ports.Store) error {
		var err error
		if e, err = tx.Employees().GetByID(ctx, id); err != nil {
			return err
		}
		if e.Account == nil {
			e.Account = &domain.Account{ID: e.AccountID}
		}
		if caller.Role == domain.RoleEmployee && in.Role != e.Account.Role {
			return domain.Unauthorized(msgOwnRoleChange)
		}
		e.Account.Email = in.Email
		e.Account.FullName = in.FullName
		e.Account.Username = in.Username
		e.Account.Role = in.Role
		applyEmployeeInput(e, in)
		return tx.Employees().Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditUpdate, "employee", e.ID)
	s.log.Info().Int64("employee_id", e.ID).Int64("provider_id", e.ProviderID).Msg("employee updated")
	return e, nil
}

func (s *employeeService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if err := s.guard.Authorize(ctx, caller, OpEmployeeDelete, Targets{EmployeeID: id}); err != nil {
		return err
	}
	if err := s.db.Employees().Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditDelete, "employee", id)
	s.log.Info().Int64("employee_id", id).Msg("employee deleted")
	return nil
}

func (s *employeeService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Employee, error) {
	if err := s.guard.Authorize(ctx, caller, OpEmployeeRead, Targets{EmployeeID: id}); err != nil {
		return nil, err
	}
	return s.db.Employees().GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Employee], error) {
	if err := s.guard.Authorize(ctx, caller, OpEmployeeList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.db.Employees().List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}

// checkEmailDomain appends the domain-mismatch message when email is not
// under the provider's business domain. A missing provider is NotFound.
func (s *employeeService) checkEmailDomain(ctx context.Context, msgs *problems, email string, providerID int64) error {
	if providerID == 0 || email == "" {
		return nil
	}
	p, err := s.db.Providers().GetByID(ctx, providerID)
	if err != nil {
		return err
	}
	msgs.addIf(!EmailInDomain(email, p.BusinessDomain), domain.MsgEmailDomainMismatch)
	return nil
}

// EmailInDomain reports whether email is a mailbox under businessDomain,
// e.g. "ana@salon.com" for "salon".
func EmailInDomain(email, businessDomain string) bool {
	re, err := regexp.Compile(`^[\w.-]+@(` + regexp.QuoteMeta(businessDomain) + `\.)+[\w-]{2,4}$`)
	if err != nil {
		return false
	}
	return re.MatchString(email)
}

func applyEmployeeInput(e *domain.Employee, in ports.EmployeeInput) {
	e.Title = in.Title
	e.Phone = in.Phone
	e.RatePerHour = in.RatePerHour
	e.HireDate = in.HireDate.UTC()
	e.ProviderID = in.ProviderID
}
