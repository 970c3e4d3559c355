package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee works for exactly one provider and owns one account.
type Employee struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:100;not null"`
	Phone       string          `json:"phone" gorm:"size:30;not null"`
	RatePerHour decimal.Decimal `json:"ratePerHour" gorm:"type:numeric(12,2);not null"`
	HireDate    time.Time       `json:"hireDate" gorm:"not null"`
	ProviderID  int64           `json:"providerId" gorm:"not null;index"`
	AccountID   int64           `json:"-" gorm:"not null;uniqueIndex"`
	Account     *Account        `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

// Client books appointments and owns one account.
type Client struct {
	ID        int64    `json:"id" gorm:"primaryKey"`
	Phone     string   `json:"phone" gorm:"size:30;not null"`
	Address   string   `json:"address" gorm:"not null"`
	AccountID int64    `json:"-" gorm:"not null;uniqueIndex"`
	Account   *Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}

// Activity is a bookable service with a fixed price and duration.
type Activity struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Duration    int             `json:"duration" gorm:"not null"`
	ProviderID  int64           `json:"providerId" gorm:"not null;index"`
	EmployeeIDs []int64         `json:"employeeIds" gorm:"-"`
}

// Length is the activity duration as a time.Duration.
func (a *Activity) Length() time.Duration {
	return time.Duration(a.Duration) * time.Minute
}

// ActivityEmployee links an employee to an activity they perform.
type ActivityEmployee struct {
	ActivityID int64 `gorm:"primaryKey"`
	EmployeeID int64 `gorm:"primaryKey;index"`
}
