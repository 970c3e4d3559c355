package domain

import "time"

// Appointment is one scheduled activity. EndDate is always derived from
// StartDate and the activity duration.
type Appointment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	StartDate  time.Time `json:"startDate" gorm:"not null;index:idx_appointments_employee_window,priority:2"`
	EndDate    time.Time `json:"endDate" gorm:"not null;index:idx_appointments_employee_window,priority:3"`
	EmployeeID int64     `json:"employeeId" gorm:"not null;index:idx_appointments_employee_window,priority:1"`
	ClientID   int64     `json:"clientId" gorm:"not null;index"`
	ActivityID int64     `json:"activityId" gorm:"not null;index"`
}

// Overlaps reports whether [start, end) intersects the appointment's window.
// Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndDate) && end.After(a.StartDate)
}

// SameBooking reports whether the (activity, start, employee) tuple is unchanged.
func (a *Appointment) SameBooking(activityID int64, start time.Time, employeeID int64) bool {
	return a.ActivityID == activityID && a.EmployeeID == employeeID && a.StartDate.Equal(start)
}
