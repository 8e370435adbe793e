package source

import (
	"fmt"
	"time"
)

// WindowMode selects the extraction time window. The legacy queries toggled
// between these by commenting SQL in and out; here the mode is configuration
// consumed by a single parameterized query.
type WindowMode string

const (
	// WindowMonthToDate selects rows created on/after the first calendar
	// day of the reference instant's month.
	WindowMonthToDate WindowMode = "month-to-date"
	// WindowToday selects rows created on/after the reference day's midnight.
	WindowToday WindowMode = "today"
	// WindowRecentHours selects rows created within the last N hours.
	WindowRecentHours WindowMode = "recent-hours"
)

// ParseWindowMode validates a configured mode string.
func ParseWindowMode(s string) (WindowMode, error) {
	switch WindowMode(s) {
	case WindowMonthToDate, WindowToday, WindowRecentHours:
		return WindowMode(s), nil
	case "":
		return WindowMonthToDate, nil
	default:
		return "", fmt.Errorf("unknown window mode %q (want month-to-date, today or recent-hours)", s)
	}
}

// Window is a resolved extraction window.
type Window struct {
	Mode        WindowMode
	RecentHours int // used by WindowRecentHours only
}

// Since computes the lower bound of the window relative to now. The modes
// are mutually exclusive by construction.
func (w Window) Since(now time.Time) (time.Time, error) {
	switch w.Mode {
	case WindowMonthToDate:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case WindowToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case WindowRecentHours:
		if w.RecentHours <= 0 {
			return time.Time{}, fmt.Errorf("recent-hours window needs a positive hour count, got %d", w.RecentHours)
		}
		return now.Add(-time.Duration(w.RecentHours) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unknown window mode %q", w.Mode)
	}
}
