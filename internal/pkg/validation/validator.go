// Package validation wraps go-playground/validator with the field rules used
// across the scheduling API and renders failures as readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rushhour/scheduling/internal/core/domain"
)

var (
	phonePattern    = regexp.MustCompile(`^[+]?[0-9]*$`)
	titlePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	fullNamePattern = regexp.MustCompile(`^[A-Za-z'-]+$`)
	websitePattern  = regexp.MustCompile(`^(https?://(www\.)?|www\.)[a-zA-Z0-9][a-zA-Z0-9-]*\.\S{2,}$`)
)

const passwordSymbols = "@$!%*.+?&"

// Validator checks tagged structs.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom tags registered:
// phone, title, fullname, website and password.
func New() *Validator {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	must(v.RegisterValidation("phone", matches(phonePattern)))
	must(v.RegisterValidation("title", matches(titlePattern)))
	must(v.RegisterValidation("fullname", matches(fullNamePattern)))
	must(v.RegisterValidation("website", matches(websitePattern)))
	must(v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	}))
	return &Validator{v: v}
}

// Messages returns one message per failing field; nil when i is valid.
func (ev *Validator) Messages(i any) []string {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return msgs
	}
	return []string{err.Error()}
}

// Validate satisfies the echo.Validator interface.
func (ev *Validator) Validate(i any) error {
	if msgs := ev.Messages(i); len(msgs) > 0 {
		return domain.Validation(strings.Join(msgs, "; "))
	}
	return nil
}

// StrongPassword reports whether s has at least 8 characters drawn from
// letters, digits and passwordSymbols, with one of each class.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return lower && upper && digit && symbol
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s should be a positive number", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "alphanum":
		return field + " should contain only letters and numbers"
	case "phone":
		return field + " should contain only numbers and optionally could start with a +"
	case "title":
		return field + " should contain only numbers and letters and start with a letter"
	case "fullname":
		return field + " should contain only letters, hyphens, and apostrophes"
	case "website":
		return field + " should be a valid URL"
	case "password":
		return field + " should be at least 8 characters, one uppercase, one lowercase, one digit, and a special symbol"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
