package normalize

import "time"

// ClampEnd resolves the coverage end date: a missing end date, or one before
// the start date, falls back to the start date, so EndDate >= StartDate
// always holds.
func ClampEnd(start time.Time, end *time.Time) time.Time {
	if end == nil || end.Before(start) {
		return start
	}
	return *end
}
