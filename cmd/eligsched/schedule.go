package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/exitcode"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run as a daemon: extract and submit on a fixed interval",
	RunE:  runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVar(&cfg.Source, "source", "all", "Source to extract: visitmgt, oasis or all")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Extract and archive but skip submission and write-back")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	log := setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, closeAll, err := buildRunner(ctx, log)
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		os.Exit(exitcode.DBConnError)
	}
	defer closeAll()

	blackout := scheduler.Blackout{
		StartHour: cfg.Schedule.BlackoutStart,
		EndHour:   cfg.Schedule.BlackoutEnd,
	}
	sched := scheduler.New(cfg.Schedule.Interval, blackout, func(ctx context.Context) {
		// Failures are logged and alerted inside the runner; the daemon
		// keeps its schedule.
		_, _ = runner.RunAll(ctx, time.Now())
	}, log)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("scheduler stopped")
		os.Exit(exitcode.ExtractError)
	}
	log.Info().Msg("shutdown complete")
	return nil
}
