package domain

import "strings"

// Role is the closed set of caller roles.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleProviderAdmin Role = "PROVIDER_ADMIN"
	RoleEmployee      Role = "EMPLOYEE"
	RoleClient        Role = "CLIENT"
)

// Roles lists every role, in privilege order.
var Roles = []Role{RoleAdmin, RoleProviderAdmin, RoleEmployee, RoleClient}

// ParseRole converts s (case-insensitive) into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleProviderAdmin, RoleEmployee, RoleClient:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// EmployeeAssignable reports whether an employee account may hold r.
func (r Role) EmployeeAssignable() bool {
	return r == RoleEmployee || r == RoleProviderAdmin
}

// Account holds credentials and identity. It is owned by exactly one
// Employee or Client.
type Account struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	FullName     string `json:"fullName" gorm:"size:100;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Salt         []byte `json:"-"`
	Role         Role   `json:"role" gorm:"size:20;not null"`
	Username     string `json:"username" gorm:"size:100;not null"`
}

// Caller is the authenticated identity of the current request.
type Caller struct {
	AccountID int64
	Role      Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }
