package service

import (
	"context"
	"time"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

const msgActivitiesNotFound = "One or more activities were not found!"

// AvailabilityChecker decides whether an employee can take a booking. Build
// one per unit of work so its reads run inside the booking transaction.
type AvailabilityChecker struct {
	store ports.Store
}

func NewAvailabilityChecker(store ports.Store) *AvailabilityChecker {
	return &AvailabilityChecker{store: store}
}

// IsEmployeeFree reports whether activityIDs, booked back to back from start,
// fit the employee's working window without overlapping their appointments.
// Only the aggregate window of the chain is checked against working hours.
func (c *AvailabilityChecker) IsEmployeeFree(ctx context.Context, employeeID int64, start time.Time, activityIDs []int64) (bool, error) {
	provider, err := c.store.Providers().ForEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if !provider.WorkingDays.Has(start.Weekday()) {
		return false, nil
	}

	activities, err := c.store.Activities().FindByIDs(ctx, activityIDs)
	if err != nil {
		return false, err
	}
	var total time.Duration
	for _, id := range activityIDs {
		a, ok := activities[id]
		if !ok {
			return false, domain.NotFound(msgActivitiesNotFound)
		}
		total += a.Length()
	}

	return c.fits(ctx, provider, employeeID, start, start.Add(total), 0)
}

// IsEmployeeFreeForUpdate is IsEmployeeFree for moving an existing
// appointment. An unchanged (activity, start, employee) tuple is always free.
func (c *AvailabilityChecker) IsEmployeeFreeForUpdate(ctx context.Context, appointmentID, employeeID int64, start time.Time, activityID int64) (bool, error) {
	current, err := c.store.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		return false, err
	}
	if current.SameBooking(activityID, start, employeeID) {
		return true, nil
	}

	provider, err := c.store.Providers().ForEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if !provider.WorkingDays.Has(start.Weekday()) {
		return false, nil
	}
	activity, err := c.store.Activities().GetByID(ctx, activityID)
	if err != nil {
		return false, err
	}

	return c.fits(ctx, provider, employeeID, start, start.Add(activity.Length()), appointmentID)
}

func (c *AvailabilityChecker) fits(ctx context.Context, p *domain.Provider, employeeID int64, start, end time.Time, excludeID int64) (bool, error) {
	if !WithinWorkingWindow(p, start, end) {
		return false, nil
	}
	existing, err := c.store.Appointments().ForEmployeeBetween(ctx, employeeID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if existing[i].ID != excludeID && existing[i].Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// WithinWorkingWindow reports whether [start, end) falls on one of the
// provider's working days and inside its daily hours. Windows that cross
// midnight never fit.
func WithinWorkingWindow(p *domain.Provider, start, end time.Time) bool {
	if !p.WorkingDays.Has(start.Weekday()) {
		return false
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}
	from, to := p.WorkingWindow()
	return from <= domain.TimeOfDay(start) && domain.TimeOfDay(end) <= to
}
