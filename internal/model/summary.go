package model

import (
	"time"

	"github.com/google/uuid"
)

// ExtractResult holds the records and counters from one extraction.
type ExtractResult struct {
	Records     []EligibilityRecord
	RowsRead    int64
	RowsSkipped int64
	Duration    time.Duration
}

// RunSummary captures metrics from a single extract-and-submit run.
type RunSummary struct {
	RunID     uuid.UUID
	Source    string
	StartedAt time.Time

	RowsRead     int64
	RowsSkipped  int64
	Records      int64
	Submitted    int64
	SubmitFailed int64
	ArchivePath  string

	DurationExtract time.Duration
	DurationSubmit  time.Duration
	DurationTotal   time.Duration
}
