package visitmgt

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/job"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/normalize"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/source"
)

const name = "visitmgt"

// Extractor reads visits from the SQL Server VisitMgt/MPI schema and
// normalizes them into eligibility records.
type Extractor struct {
	db       *sqlx.DB
	window   source.Window
	facility normalize.Facility
	codes    normalize.Codes
	timeout  time.Duration
	log      zerolog.Logger
}

func New(db *sqlx.DB, window source.Window, facility normalize.Facility, codes normalize.Codes, timeout time.Duration, log zerolog.Logger) *Extractor {
	return &Extractor{
		db:       db,
		window:   window,
		facility: facility,
		codes:    codes,
		timeout:  timeout,
		log:      log.With().Str("extractor", name).Logger(),
	}
}

func (e *Extractor) Name() string { return name }

// Extract runs the visit query for the configured window relative to now.
// Rows that fail normalization are skipped and counted; connection, query
// and deadline failures abort the extraction.
func (e *Extractor) Extract(ctx context.Context, now time.Time) (*model.ExtractResult, error) {
	start := time.Now()

	since, err := e.window.Since(now)
	if err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.KindQuery, Err: err}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if err := e.db.PingContext(ctx); err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.KindConnection, Err: err}
	}

	e.log.Info().Time("since", since).Str("window", string(e.window.Mode)).Msg("fetching visits")

	rows, err := e.db.QueryxContext(ctx, Visits, since)
	if err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.QueryKind(err), Err: err}
	}
	defer rows.Close()

	res := &model.ExtractResult{}
	for rows.Next() {
		var r model.VisitRow
		if err := rows.StructScan(&r); err != nil {
			// Scan failure means the result shape does not match the
			// expected columns: abort, this is not a per-row problem.
			return nil, &job.RunError{Extractor: name, Kind: job.KindQuery, Err: err}
		}
		res.RowsRead++

		rec, err := normalize.FromVisitRow(&r, e.facility, e.codes)
		if err != nil {
			res.RowsSkipped++
			e.log.Warn().Err(err).Str("visit_id", r.VisitID).Msg("row skipped")
			continue
		}
		res.Records = append(res.Records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.QueryKind(err), Err: err}
	}

	res.Duration = time.Since(start)
	e.log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_skipped", res.RowsSkipped).
		Int("records", len(res.Records)).
		Dur("duration", res.Duration).
		Msg("visit extraction complete")

	return res, nil
}
