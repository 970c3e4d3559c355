package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

// AppointmentOrchestrator turns booking requests into persisted
// appointments. It writes only through the Store it is handed, so running it
// inside a unit of work makes a chain all-or-nothing.
type AppointmentOrchestrator struct{}

func NewAppointmentOrchestrator() *AppointmentOrchestrator {
	return &AppointmentOrchestrator{}
}

// CreateChain books in.ActivityIDs back to back starting at in.StartDate.
// The employee, the client and every activity must exist before anything is
// written.
func (o *AppointmentOrchestrator) CreateChain(ctx context.Context, tx ports.Store, in ports.NewAppointmentInput) (*ports.ChainResult, error) {
	if _, err := tx.Employees().GetByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := tx.Clients().GetByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	found, err := tx.Activities().FindByIDs(ctx, in.ActivityIDs)
	if err != nil {
		return nil, err
	}
	ordered := make([]*domain.Activity, 0, len(in.ActivityIDs))
	for _, id := range in.ActivityIDs {
		a, ok := found[id]
		if !ok {
			return nil, domain.NotFound(msgActivitiesNotFound)
		}
		ordered = append(ordered, a)
	}

	chain, total := PlanChain(in.StartDate, in.EmployeeID, in.ClientID, ordered)
	for i := range chain {
		if err := tx.Appointments().Create(ctx, &chain[i]); err != nil {
			return nil, err
		}
	}
	return &ports.ChainResult{Appointments: chain, TotalPrice: total}, nil
}

// PlanChain lays activities out back to back from start and sums their prices.
func PlanChain(start time.Time, employeeID, clientID int64, activities []*domain.Activity) ([]domain.Appointment, decimal.Decimal) {
	chain := make([]domain.Appointment, 0, len(activities))
	total := decimal.Zero
	cursor := start
	for _, a := range activities {
		end := cursor.Add(a.Length())
		chain = append(chain, domain.Appointment{
			StartDate:  cursor,
			EndDate:    end,
			EmployeeID: employeeID,
			ClientID:   clientID,
			ActivityID: a.ID,
		})
		total = total.Add(a.Price)
		cursor = end
	}
	return chain, total
}

// Update rewrites a single appointment and recomputes its end from the
// (possibly new) activity.
func (o *AppointmentOrchestrator) Update(ctx context.Context, tx ports.Store, id int64, in ports.AppointmentInput) (*domain.Appointment, error) {
	appt, err := tx.Appointments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Employees().GetByID(ctx, in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := tx.Clients().GetByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	activity, err := tx.Activities().GetByID(ctx, in.ActivityID)
	if err != nil {
		return nil, err
	}

	appt.StartDate = in.StartDate
	appt.EndDate = in.StartDate.Add(activity.Length())
	appt.EmployeeID = in.EmployeeID
	appt.ClientID = in.ClientID
	appt.ActivityID = in.ActivityID

	if err := tx.Appointments().Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}
