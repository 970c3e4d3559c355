package handler

import (
	"github.com/shopspring/decimal"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// providerRequest carries the working window as "HH:MM" strings and the
// working days as weekday names.
type providerRequest struct {
	Name            string   `json:"name"`
	Website         string   `json:"website"`
	BusinessDomain  string   `json:"businessDomain"`
	Phone           string   `json:"phone"`
	WorkingDayStart string   `json:"workingDayStart" example:"09:00"`
	WorkingDayEnd   string   `json:"workingDayEnd"   example:"17:00"`
	WorkingDays     []string `json:"workingDays"     example:"Monday,Tuesday"`
}

type providerResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Website         string             `json:"website"`
	BusinessDomain  string             `json:"businessDomain"`
	Phone           string             `json:"phone"`
	WorkingDayStart string             `json:"workingDayStart"`
	WorkingDayEnd   string             `json:"workingDayEnd"`
	WorkingDays     domain.WorkingDays `json:"workingDays" swaggertype:"array,string"`
}

type employeeRequest struct {
	Email       string          `json:"email"`
	FullName    string          `json:"fullName"`
	Username    string          `json:"username"`
	Password    string          `json:"password,omitempty"`
	Role        string          `json:"role" example:"EMPLOYEE"`
	Title       string          `json:"title"`
	Phone       string          `json:"phone"`
	RatePerHour decimal.Decimal `json:"ratePerHour" swaggertype:"number"`
	HireDate    string          `json:"hireDate" example:"2024-01-15"`
	ProviderID  int64           `json:"providerId"`
}

type clientRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type activityRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Duration    int             `json:"duration" example:"30"`
	EmployeeIDs []int64         `json:"employeeIds"`
	ProviderID  int64           `json:"providerId,omitempty"`
}

type createAppointmentRequest struct {
	StartDate   string  `json:"startDate" example:"2024-06-03T09:00:00Z"`
	EmployeeID  int64   `json:"employeeId"`
	ClientID    int64   `json:"clientId"`
	ActivityIDs []int64 `json:"activityIds"`
}

type updateAppointmentRequest struct {
	StartDate  string `json:"startDate" example:"2024-06-03T09:00:00Z"`
	EmployeeID int64  `json:"employeeId"`
	ClientID   int64  `json:"clientId"`
	ActivityID int64  `json:"activityId"`
}

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}
