package ports

import (
	"context"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// Every use case receives the caller explicitly.

type ProviderService interface {
	Create(ctx context.Context, caller domain.Caller, in ProviderInput) (*domain.Provider, error)
	Update(ctx context.Context, caller domain.Caller, id int64, in ProviderInput) (*domain.Provider, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Provider, error)
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Provider], error)
}

type EmployeeService interface {
	Create(ctx context.Context, caller domain.Caller, in NewEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, caller domain.Caller, id int64, in EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Employee, error)
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Employee], error)
}

type ClientService interface {
	Create(ctx context.Context, caller domain.Caller, in NewClientInput) (*domain.Client, error)
	Update(ctx context.Context, caller domain.Caller, id int64, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Client, error)
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Client], error)
}

type ActivityService interface {
	Create(ctx context.Context, caller domain.Caller, in ActivityInput) (*domain.Activity, error)
	Update(ctx context.Context, caller domain.Caller, id int64, in ActivityInput) (*domain.Activity, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Activity, error)
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Activity], error)
}

type AppointmentService interface {
	Create(ctx context.Context, caller domain.Caller, in NewAppointmentInput) (*ChainResult, error)
	Update(ctx context.Context, caller domain.Caller, id int64, in AppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Appointment, error)
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Appointment], error)
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (string, error)
}

type AccountService interface {
	ChangePassword(ctx context.Context, caller domain.Caller, in ChangePasswordInput) error
}

type AuditService interface {
	List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.AuditEvent], error)
}
