// Package scheduler drives the periodic extraction runs: first run on
// start, then a fixed interval, with overlapping runs skipped rather than
// queued and a nightly blackout window in which runs are suppressed.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Blackout is a daily quiet window during which scheduled runs are skipped.
// The window may wrap midnight (e.g. 23 → 2). StartHour == EndHour disables
// it.
type Blackout struct {
	StartHour int
	EndHour   int
}

func (b Blackout) Enabled() bool { return b.StartHour != b.EndHour }

// Contains reports whether t falls inside the blackout window.
func (b Blackout) Contains(t time.Time) bool {
	if !b.Enabled() {
		return false
	}
	h := t.Hour()
	if b.StartHour < b.EndHour {
		return h >= b.StartHour && h < b.EndHour
	}
	return h >= b.StartHour || h < b.EndHour
}

// NextEnd returns the first instant at/after t that is outside the window.
func (b Blackout) NextEnd(t time.Time) time.Time {
	if !b.Contains(t) {
		return t
	}
	end := time.Date(t.Year(), t.Month(), t.Day(), b.EndHour, 0, 0, 0, t.Location())
	if !end.After(t) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// Scheduler runs the job function on a fixed interval.
type Scheduler struct {
	interval time.Duration
	blackout Blackout
	run      func(ctx context.Context)
	log      zerolog.Logger
}

func New(interval time.Duration, blackout Blackout, run func(ctx context.Context), log zerolog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		blackout: blackout,
		run:      run,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Run executes the job once immediately (delayed to the end of the blackout
// window if the daemon starts inside it), then on every interval tick until
// ctx is cancelled. A tick that fires while the previous run is still in
// flight is skipped, so the same extractor never runs twice concurrently.
func (s *Scheduler) Run(ctx context.Context) error {
	now := time.Now()
	if s.blackout.Contains(now) {
		wait := s.blackout.NextEnd(now).Sub(now)
		s.log.Info().
			Dur("wait", wait).
			Int("blackout_start", s.blackout.StartHour).
			Int("blackout_end", s.blackout.EndHour).
			Msg("started inside blackout window, delaying first run")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.log.Info().Msg("running first job")
	s.guarded(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.log})))
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() { s.guarded(ctx) }))

	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	c.Start()

	<-ctx.Done()
	s.log.Info().Msg("stopping scheduler, waiting for in-flight run")
	<-c.Stop().Done()
	return ctx.Err()
}

func (s *Scheduler) guarded(ctx context.Context) {
	if s.blackout.Contains(time.Now()) {
		s.log.Info().Msg("skipping run inside blackout window")
		return
	}
	s.run(ctx)
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
