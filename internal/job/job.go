package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/store"
)

// Extractor pulls eligibility records out of one source system.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, now time.Time) (*model.ExtractResult, error)
}

// Submitter posts one record to the eligibility service.
type Submitter interface {
	Submit(ctx context.Context, rec *model.EligibilityRecord) (*model.SubmissionResult, error)
}

// Archiver snapshots a run's record set to disk.
type Archiver interface {
	Write(source string, runID uuid.UUID, at time.Time, recs []model.EligibilityRecord) (string, error)
}

// ResponseStore lands records and API replies in the warehouse.
type ResponseStore interface {
	SaveRecords(ctx context.Context, runID uuid.UUID, at time.Time, recs []model.EligibilityRecord) error
	SaveResponses(ctx context.Context, rows []store.ResponseRow) error
}

// Alerter reports failed runs.
type Alerter interface {
	RunFailed(extractor, kind string, err error, at time.Time)
}

// Params wires a Runner. Archive, Store and Alert may be nil to disable the
// respective side channel; Submit may be nil only together with DryRun.
type Params struct {
	Extractors []Extractor
	Submit     Submitter
	Archive    Archiver
	Store      ResponseStore
	Alert      Alerter
	DryRun     bool
	Log        zerolog.Logger
}

// Runner executes one extract → archive → submit → store pass per extractor.
type Runner struct {
	p Params
}

func NewRunner(p Params) *Runner {
	return &Runner{p: p}
}

// RunAll runs every extractor concurrently (the source systems are
// independent) and collects the per-source summaries. A failed extractor
// never blocks the other one; each failure is alerted and joined into the
// returned error.
func (r *Runner) RunAll(ctx context.Context, now time.Time) ([]*model.RunSummary, error) {
	type outcome struct {
		summary *model.RunSummary
		err     error
	}
	results := make(chan outcome, len(r.p.Extractors))

	for _, ex := range r.p.Extractors {
		go func(ex Extractor) {
			summary, err := r.runOne(ctx, ex, now)
			results <- outcome{summary, err}
		}(ex)
	}

	var summaries []*model.RunSummary
	var errs []error
	for range r.p.Extractors {
		o := <-results
		if o.summary != nil {
			summaries = append(summaries, o.summary)
		}
		if o.err != nil {
			errs = append(errs, o.err)
			r.reportFailure(o.err)
		}
	}
	return summaries, errors.Join(errs...)
}

func (r *Runner) reportFailure(err error) {
	name, kind := "unknown", KindQuery
	var runErr *RunError
	if errors.As(err, &runErr) {
		name, kind = runErr.Extractor, runErr.Kind
	}
	r.p.Log.Error().Err(err).Str("source", name).Str("kind", string(kind)).Msg("run failed")
	if r.p.Alert != nil {
		r.p.Alert.RunFailed(name, string(kind), err, time.Now())
	}
}

func (r *Runner) runOne(ctx context.Context, ex Extractor, now time.Time) (*model.RunSummary, error) {
	runID := uuid.New()
	log := r.p.Log.With().Str("source", ex.Name()).Str("run_id", runID.String()).Logger()
	totalStart := time.Now()

	log.Info().Time("reference", now).Msg("run started")

	res, err := ex.Extract(ctx, now)
	if err != nil {
		return nil, err
	}

	summary := &model.RunSummary{
		RunID:           runID,
		Source:          ex.Name(),
		StartedAt:       now,
		RowsRead:        res.RowsRead,
		RowsSkipped:     res.RowsSkipped,
		Records:         int64(len(res.Records)),
		DurationExtract: res.Duration,
	}

	if len(res.Records) == 0 {
		summary.DurationTotal = time.Since(totalStart)
		log.Info().Msg("no new records to process")
		return summary, nil
	}

	if r.p.Archive != nil {
		path, err := r.p.Archive.Write(ex.Name(), runID, now, res.Records)
		if err != nil {
			log.Warn().Err(err).Msg("archive write failed (non-fatal)")
		} else {
			summary.ArchivePath = path
		}
	}

	if r.p.Store != nil && !r.p.DryRun {
		if err := r.p.Store.SaveRecords(ctx, runID, now, res.Records); err != nil {
			log.Warn().Err(err).Msg("record write-back failed (non-fatal)")
		}
	}

	if r.p.DryRun {
		summary.DurationTotal = time.Since(totalStart)
		log.Info().Int64("records", summary.Records).Msg("dry run: submission skipped")
		return summary, nil
	}

	submitStart := time.Now()
	responses := make([]store.ResponseRow, 0, len(res.Records))
	for i := range res.Records {
		rec := &res.Records[i]

		if err := ctx.Err(); err != nil {
			kind := KindSubmission
			if errors.Is(err, context.DeadlineExceeded) {
				kind = KindTimeout
			}
			summary.DurationSubmit = time.Since(submitStart)
			summary.DurationTotal = time.Since(totalStart)
			return summary, &RunError{Extractor: ex.Name(), Kind: kind, Err: fmt.Errorf("submission interrupted: %w", err)}
		}

		result, err := r.p.Submit.Submit(ctx, rec)
		if err != nil {
			summary.SubmitFailed++
			log.Warn().Err(err).Str("visit_id", rec.VisitID).Msg("submission failed for record")
			continue
		}
		summary.Submitted++
		responses = append(responses, store.ResponseRow{
			RunID:         runID.String(),
			Source:        rec.Source,
			PatientID:     rec.PatientID,
			VisitID:       rec.VisitID,
			Outcome:       result.Outcome,
			Class:         result.Class,
			Note:          result.Note,
			InsertionDate: now,
		})
	}
	summary.DurationSubmit = time.Since(submitStart)

	if r.p.Store != nil {
		if err := r.p.Store.SaveResponses(ctx, responses); err != nil {
			log.Warn().Err(err).Msg("response write-back failed (non-fatal)")
		}
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_skipped", summary.RowsSkipped).
		Int64("records", summary.Records).
		Int64("submitted", summary.Submitted).
		Int64("submit_failed", summary.SubmitFailed).
		Str("archive", summary.ArchivePath).
		Dur("duration", summary.DurationTotal).
		Msg("run complete")

	if summary.Submitted == 0 && summary.SubmitFailed > 0 {
		return summary, &RunError{
			Extractor: ex.Name(),
			Kind:      KindSubmission,
			Err:       fmt.Errorf("all %d submissions failed", summary.SubmitFailed),
		}
	}
	return summary, nil
}
