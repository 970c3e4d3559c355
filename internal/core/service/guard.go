package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

// Targets identifies the entities an operation touches. Zero means absent.
type Targets struct {
	ProviderID    int64
	EmployeeID    int64
	ClientID      int64
	ActivityID    int64
	AppointmentID int64
}

// AuthorizationGuard evaluates the permission table for a caller.
type AuthorizationGuard struct {
	relations ports.RelationReader
	log       zerolog.Logger
}

func NewAuthorizationGuard(relations ports.RelationReader, log zerolog.Logger) *AuthorizationGuard {
	return &AuthorizationGuard{relations: relations, log: log}
}

// Authorize returns an Unauthorized error when caller may not perform op on
// targets. It performs no writes.
func (g *AuthorizationGuard) Authorize(ctx context.Context, caller domain.Caller, op Operation, targets Targets) error {
	p, ok := policies[op]
	if !ok {
		return fmt.Errorf("guard: unknown operation %q", op)
	}
	if caller.IsAdmin() {
		return nil
	}
	if !slices.Contains(p.allowed, caller.Role) {
		g.deny(caller, op, 0)
		return domain.Unauthorized(msgRoleNotAllowed)
	}

	for _, req := range p.require {
		if req.role != caller.Role {
			continue
		}
		holds, err := g.holds(ctx, caller.AccountID, req.relation, targets)
		if err != nil {
			return fmt.Errorf("guard %s: %w", op, err)
		}
		if !holds {
			g.deny(caller, op, req.relation)
			return domain.Unauthorized(req.relation.message())
		}
	}
	return nil
}

func (g *AuthorizationGuard) holds(ctx context.Context, accountID int64, rel Relation, t Targets) (bool, error) {
	r := g.relations
	switch rel {
	case MemberOfProvider:
		return r.AccountInProvider(ctx, accountID, t.ProviderID)
	case SameProviderAsEmployee:
		return r.AccountSharesProviderWithEmployee(ctx, accountID, t.EmployeeID)
	case ProviderOfActivity:
		providerID, err := r.ActivityProviderID(ctx, t.ActivityID)
		if err != nil || providerID == 0 {
			return false, err
		}
		return r.AccountInProvider(ctx, accountID, providerID)
	case ProviderOfAppointment:
		return r.AppointmentSharesProviderWithAccount(ctx, t.AppointmentID, accountID)
	case OwnEmployee:
		return r.EmployeeMatchesAccount(ctx, t.EmployeeID, accountID)
	case OwnClient:
		return r.ClientMatchesAccount(ctx, t.ClientID, accountID)
	case EmployeeOfAppointment:
		return r.AppointmentEmployeeMatchesAccount(ctx, t.AppointmentID, accountID)
	case ClientOfAppointment:
		return r.AppointmentClientMatchesAccount(ctx, t.AppointmentID, accountID)
	}
	return false, fmt.Errorf("unknown relation %d", rel)
}

func (g *AuthorizationGuard) deny(caller domain.Caller, op Operation, rel Relation) {
	g.log.Debug().
		Int64("account_id", caller.AccountID).
		Str("role", caller.Role.String()).
		Str("operation", string(op)).
		Int("relation", int(rel)).
		Msg("guard denied")
}
