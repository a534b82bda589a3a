package domain

import "time"

// DateRange is an inclusive calendar range used by exports and tax estimates.
// A zero From or To leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}
