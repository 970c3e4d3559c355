package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WorkingDays is a bit set of weekdays; bit i corresponds to time.Weekday(i).
type WorkingDays uint8

const (
	Sunday WorkingDays = 1 << iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday

	Weekdays = Monday | Tuesday | Wednesday | Thursday | Friday
	AllDays  = Weekdays | Saturday | Sunday
)

// DaysOf builds a set from individual weekdays.
func DaysOf(days ...time.Weekday) WorkingDays {
	var d WorkingDays
	for _, w := range days {
		d |= 1 << uint(w)
	}
	return d
}

// Has reports whether w is in the set.
func (d WorkingDays) Has(w time.Weekday) bool {
	return d&(1<<uint(w)) != 0
}

// Days returns the members of the set, Sunday first.
func (d WorkingDays) Days() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for w := time.Sunday; w <= time.Saturday; w++ {
		if d.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

func (d WorkingDays) String() string {
	names := make([]string, 0, 7)
	for _, w := range d.Days() {
		names = append(names, w.String())
	}
	return strings.Join(names, ", ")
}

// ParseWorkingDays accepts weekday names ("Monday", "mon").
func ParseWorkingDays(names []string) (WorkingDays, error) {
	var d WorkingDays
	for _, n := range names {
		w, ok := parseWeekday(n)
		if !ok {
			return 0, fmt.Errorf("unknown weekday %q", n)
		}
		d |= 1 << uint(w)
	}
	return d, nil
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if s == name || s == name[:3] {
			return w, true
		}
	}
	return 0, false
}

func (d WorkingDays) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 7)
	for _, w := range d.Days() {
		names = append(names, w.String())
	}
	return json.Marshal(names)
}

func (d *WorkingDays) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParseWorkingDays(names)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
