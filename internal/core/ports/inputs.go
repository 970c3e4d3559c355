package ports

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// ProviderInput carries the writable provider fields.
type ProviderInput struct {
	Name            string             `validate:"required,min=3,max=100"`
	Website         string             `validate:"required,website"`
	BusinessDomain  string             `validate:"required,min=2,max=100,alphanum"`
	Phone           string             `validate:"required,phone"`
	WorkingDayStart datatypes.Time     `validate:"gte=0"`
	WorkingDayEnd   datatypes.Time     `validate:"gt=0"`
	WorkingDays     domain.WorkingDays `validate:"required"`
}

// AccountInput carries the account part of an employee or client.
type AccountInput struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required,min=3,max=100,fullname"`
	Username string `validate:"required"`
}

// NewEmployeeInput creates an employee and its account.
type NewEmployeeInput struct {
	AccountInput
	Password    string          `validate:"required,password"`
	Role        domain.Role     `validate:"required"`
	Title       string          `validate:"required,min=2,max=100,title"`
	Phone       string          `validate:"required,phone"`
	RatePerHour decimal.Decimal `validate:"gte=0"`
	HireDate    time.Time       `validate:"required"`
	ProviderID  int64           `validate:"required"`
}

// EmployeeInput updates an employee and its account profile.
type EmployeeInput struct {
	AccountInput
	Role        domain.Role     `validate:"required"`
	Title       string          `validate:"required,min=2,max=100,title"`
	Phone       string          `validate:"required,phone"`
	RatePerHour decimal.Decimal `validate:"gte=0"`
	HireDate    time.Time       `validate:"required"`
	ProviderID  int64           `validate:"required"`
}

// NewClientInput creates a client and its account.
type NewClientInput struct {
	AccountInput
	Password string `validate:"required,password"`
	Phone    string `validate:"required,phone"`
	Address  string `validate:"required,min=3"`
}

// ClientInput updates a client and its account profile.
type ClientInput struct {
	AccountInput
	Phone   string `validate:"required,phone"`
	Address string `validate:"required,min=3"`
}

// ActivityInput creates or updates an activity. ProviderID is only read for
// admin callers; provider admins always write into their own provider.
type ActivityInput struct {
	Name        string          `validate:"required,min=2,max=100"`
	Price       decimal.Decimal `validate:"gte=0"`
	Duration    int             `validate:"gte=0"`
	EmployeeIDs []int64         `validate:"dive,gt=0"`
	ProviderID  int64
}

// NewAppointmentInput books activities back to back, in order.
type NewAppointmentInput struct {
	StartDate   time.Time `validate:"required"`
	EmployeeID  int64     `validate:"required"`
	ClientID    int64     `validate:"required"`
	ActivityIDs []int64   `validate:"required,min=1,dive,gt=0"`
}

// AppointmentInput moves or changes a single appointment.
type AppointmentInput struct {
	StartDate  time.Time `validate:"required"`
	EmployeeID int64     `validate:"required"`
	ClientID   int64     `validate:"required"`
	ActivityID int64     `validate:"required"`
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

// ChainResult is the outcome of a multi-activity booking.
type ChainResult struct {
	Appointments []domain.Appointment `json:"appointments"`
	TotalPrice   decimal.Decimal      `json:"totalPrice"`
}
