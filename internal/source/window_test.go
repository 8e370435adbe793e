package source

import (
	"testing"
	"time"
)

func TestWindowSince(t *testing.T) {
	now := time.Date(2024, time.June, 17, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		w    Window
		want time.Time
	}{
		{"month-to-date", Window{Mode: WindowMonthToDate}, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"today", Window{Mode: WindowToday}, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)},
		{"recent-hours", Window{Mode: WindowRecentHours, RecentHours: 4}, now.Add(-4 * time.Hour)},
	}
	for _, tc := range cases {
		got, err := tc.w.Since(now)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWindowSince_Invalid(t *testing.T) {
	now := time.Now()
	if _, err := (Window{Mode: WindowRecentHours}).Since(now); err == nil {
		t.Error("expected error for recent-hours without hour count")
	}
	if _, err := (Window{Mode: "weekly"}).Since(now); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestParseWindowMode(t *testing.T) {
	if m, err := ParseWindowMode(""); err != nil || m != WindowMonthToDate {
		t.Errorf("empty mode should default to month-to-date, got %q / %v", m, err)
	}
	if _, err := ParseWindowMode("hourly"); err == nil {
		t.Error("expected error for unknown mode string")
	}
	for _, s := range []string{"month-to-date", "today", "recent-hours"} {
		if _, err := ParseWindowMode(s); err != nil {
			t.Errorf("ParseWindowMode(%q): %v", s, err)
		}
	}
}
