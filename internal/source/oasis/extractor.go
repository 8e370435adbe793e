package oasis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/job"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/normalize"
)

const name = "oasis"

// Extractor reads episode/delivery-charge records from the Oracle OASIS
// schema and normalizes them into eligibility records.
type Extractor struct {
	db            *sqlx.DB
	amendedHours  int
	facility      normalize.Facility
	codes         normalize.Codes
	timeout       time.Duration
	log           zerolog.Logger
}

// New builds the OASIS extractor. amendedHours bounds the amendment window
// (records amended within the last N hours); the episode start window is
// always the current calendar month.
func New(db *sqlx.DB, amendedHours int, facility normalize.Facility, codes normalize.Codes, timeout time.Duration, log zerolog.Logger) *Extractor {
	return &Extractor{
		db:           db,
		amendedHours: amendedHours,
		facility:     facility,
		codes:        codes,
		timeout:      timeout,
		log:          log.With().Str("extractor", name).Logger(),
	}
}

func (e *Extractor) Name() string { return name }

// groupEpisodeRows splits the ordered identification fan-out into one slice
// per (patient_id, episode_no) pair, preserving row order within each group.
// One group becomes exactly one record, which is what keeps the result set
// distinct per episode.
func groupEpisodeRows(rows []model.EpisodeRow) [][]model.EpisodeRow {
	var groups [][]model.EpisodeRow
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) ||
			rows[i].PatientID != rows[start].PatientID ||
			rows[i].EpisodeNo != rows[start].EpisodeNo {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}

// Extract runs the episode query for the current month relative to now,
// regroups the identification fan-out per (patient, episode), and
// normalizes each group into one record. Groups that fail normalization are
// skipped and counted.
func (e *Extractor) Extract(ctx context.Context, now time.Time) (*model.ExtractResult, error) {
	start := time.Now()

	query, err := BuildEpisodeQuery(len(e.codes.RecognizedIDTypes))
	if err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.KindQuery, Err: err}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	amendSince := now.Add(-time.Duration(e.amendedHours) * time.Hour)

	args := []interface{}{
		sql.Named("month_start", monthStart),
		sql.Named("amend_since", amendSince),
	}
	for i, code := range e.codes.RecognizedIDTypes {
		args = append(args, sql.Named(fmt.Sprintf("idt%d", i+1), code))
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if err := e.db.PingContext(ctx); err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.KindConnection, Err: err}
	}

	e.log.Info().
		Time("month_start", monthStart).
		Time("amend_since", amendSince).
		Msg("fetching episodes")

	rows, err := e.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.QueryKind(err), Err: err}
	}
	defer rows.Close()

	res := &model.ExtractResult{}

	var raw []model.EpisodeRow
	for rows.Next() {
		var r model.EpisodeRow
		if err := rows.StructScan(&r); err != nil {
			return nil, &job.RunError{Extractor: name, Kind: job.KindQuery, Err: err}
		}
		res.RowsRead++
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &job.RunError{Extractor: name, Kind: job.QueryKind(err), Err: err}
	}

	for _, group := range groupEpisodeRows(raw) {
		rec, err := normalize.FromEpisodeRows(group, e.facility, e.codes)
		if err != nil {
			res.RowsSkipped += int64(len(group))
			e.log.Warn().Err(err).
				Str("patient_id", group[0].PatientID).
				Str("episode_no", group[0].EpisodeNo).
				Msg("episode skipped")
			continue
		}
		res.Records = append(res.Records, *rec)
	}

	res.Duration = time.Since(start)
	e.log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_skipped", res.RowsSkipped).
		Int("records", len(res.Records)).
		Dur("duration", res.Duration).
		Msg("episode extraction complete")

	return res, nil
}
