package normalize

import (
	"testing"
	"time"
)

func TestClampEnd(t *testing.T) {
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	later := start.AddDate(0, 0, 5)
	earlier := start.AddDate(0, 0, -5)

	if got := ClampEnd(start, nil); !got.Equal(start) {
		t.Errorf("missing end date should fall back to start, got %v", got)
	}
	if got := ClampEnd(start, &later); !got.Equal(later) {
		t.Errorf("valid end date should pass through, got %v", got)
	}
	if got := ClampEnd(start, &earlier); !got.Equal(start) {
		t.Errorf("end before start should clamp to start, got %v", got)
	}
	if got := ClampEnd(start, &start); got.Before(start) {
		t.Errorf("end == start must satisfy end >= start, got %v", got)
	}
}
