package domain

import "errors"

// Error kinds. Match with errors.Is; the message of the concrete *Error is
// what gets reported to the caller.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain failure carrying one of the kinds above and a
// human-readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// NotFound reports a referenced entity that does not exist.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Validation reports a field-level or business-rule violation.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// Unauthorized reports a failed guard. It is distinct from "unauthenticated",
// which the HTTP layer handles before any core call.
func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

const (
	MsgEmployeeBusy           = "The employee is busy in that time or is not working!"
	MsgEmployeeBeingBooked    = "The employee is being booked by another request, please retry!"
	MsgEmployeesNotInActivity = "One or more employees are not part of this activity!"
	MsgEmployeeNotInActivity  = "The employee is not part of this activity!"
	MsgForeignEmployees       = "One or more employee/s are not from the logged user's provider!"
	MsgEmailDomainMismatch    = "The email domain should match the provider business domain!"
	MsgEmployeeRoleOnCreate   = "Employee can not be created with a client or an admin role!"
	MsgEmployeeRoleOnUpdate   = "Employee can not be updated to a client or an admin role!"
	MsgInvalidCredentials     = "Invalid email and/or password!"
	MsgInvalidOldPassword     = "Invalid old password!"
	MsgEmailNotUnique         = "The email should be unique!"
	MsgProviderNotUnique      = "The name and the business domain should be unique!"
)
