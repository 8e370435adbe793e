package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.June, 17, hour, min, 0, 0, time.UTC)
}

func TestBlackoutContains(t *testing.T) {
	cases := []struct {
		name string
		b    Blackout
		t    time.Time
		want bool
	}{
		{"wrapping, late evening", Blackout{23, 2}, at(23, 30), true},
		{"wrapping, after midnight", Blackout{23, 2}, at(1, 15), true},
		{"wrapping, at end hour", Blackout{23, 2}, at(2, 0), false},
		{"wrapping, midday", Blackout{23, 2}, at(12, 0), false},
		{"non-wrapping, inside", Blackout{9, 17}, at(10, 0), true},
		{"non-wrapping, outside", Blackout{9, 17}, at(18, 0), false},
		{"disabled", Blackout{0, 0}, at(0, 30), false},
	}
	for _, tc := range cases {
		if got := tc.b.Contains(tc.t); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

func TestBlackoutNextEnd(t *testing.T) {
	b := Blackout{23, 2}

	// Before midnight: the window ends tomorrow at 02:00.
	end := b.NextEnd(at(23, 30))
	want := time.Date(2024, time.June, 18, 2, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("NextEnd(23:30) = %v, want %v", end, want)
	}

	// After midnight: the window ends today at 02:00.
	end = b.NextEnd(at(1, 0))
	want = time.Date(2024, time.June, 17, 2, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("NextEnd(01:00) = %v, want %v", end, want)
	}

	// Outside the window the time passes through unchanged.
	outside := at(12, 0)
	if got := b.NextEnd(outside); !got.Equal(outside) {
		t.Errorf("NextEnd outside window = %v, want %v", got, outside)
	}
}

func TestGuarded_SkipsInsideBlackout(t *testing.T) {
	now := time.Now()
	covering := Blackout{StartHour: now.Hour(), EndHour: (now.Hour() + 1) % 24}

	ran := false
	s := New(time.Hour, covering, func(ctx context.Context) { ran = true }, zerolog.Nop())
	s.guarded(context.Background())
	if ran {
		t.Error("job ran inside blackout window")
	}

	s = New(time.Hour, Blackout{}, func(ctx context.Context) { ran = true }, zerolog.Nop())
	s.guarded(context.Background())
	if !ran {
		t.Error("job did not run with blackout disabled")
	}
}
