package domain

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Provider is a tenant business. Only the time of day of the working window
// is meaningful.
type Provider struct {
	ID              int64          `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Website         string         `json:"website" gorm:"not null"`
	BusinessDomain  string         `json:"businessDomain" gorm:"size:100;not null;uniqueIndex"`
	Phone           string         `json:"phone" gorm:"size:30;not null"`
	WorkingDayStart datatypes.Time `json:"workingDayStart" gorm:"not null"`
	WorkingDayEnd   datatypes.Time `json:"workingDayEnd" gorm:"not null"`
	WorkingDays     WorkingDays    `json:"workingDays" gorm:"not null"`
}

// WorkingWindow reports the daily [start, end] range as offsets from midnight.
func (p *Provider) WorkingWindow() (start, end time.Duration) {
	return time.Duration(p.WorkingDayStart), time.Duration(p.WorkingDayEnd)
}

// TimeOfDay returns t's offset from its own midnight.
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}
