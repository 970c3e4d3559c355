package service

import (
	"strings"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/pkg/validation"
)

var fields = validation.New()

// Check is the terminal validation gate: it fails with one aggregated
// validation error when messages is non-empty.
func Check(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return domain.Validation(strings.Join(messages, "; "))
}

// problems collects field-level and business-rule messages for Check.
type problems []string

func fieldProblems(in any) problems {
	return problems(fields.Messages(in))
}

func (p *problems) add(msg string) {
	*p = append(*p, msg)
}

func (p *problems) addIf(cond bool, msg string) {
	if cond {
		p.add(msg)
	}
}
