// Package store lands each run's normalized records and API responses in
// the reporting warehouse, mirroring what downstream dashboards read.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// insertBatchSize bounds one INSERT statement. SQL Server caps a request at
// 2100 bind parameters; at 19 columns per record row a batch of 100 stays
// well under it.
const insertBatchSize = 100

// batches splits rows into consecutive slices of at most size elements.
func batches[T any](rows []T, size int) [][]T {
	var out [][]T
	for len(rows) > size {
		out = append(out, rows[:size])
		rows = rows[size:]
	}
	if len(rows) > 0 {
		out = append(out, rows)
	}
	return out
}

// Store batch-inserts run output into the warehouse.
type Store struct {
	db             *sqlx.DB
	recordsTable   string
	responsesTable string
	log            zerolog.Logger
}

func New(db *sqlx.DB, recordsTable, responsesTable string, log zerolog.Logger) *Store {
	return &Store{
		db:             db,
		recordsTable:   recordsTable,
		responsesTable: responsesTable,
		log:            log.With().Str("component", "store").Logger(),
	}
}

type recordRow struct {
	RunID         string     `db:"run_id"`
	Source        string     `db:"source"`
	VisitID       string     `db:"visit_id"`
	PatientID     string     `db:"patient_id"`
	StartDate     time.Time  `db:"start_date"`
	EndDate       time.Time  `db:"end_date"`
	PatientName   string     `db:"patient_name"`
	DateOfBirth   *time.Time `db:"date_of_birth"`
	Gender        string     `db:"gender"`
	MaritalCode   *string    `db:"marital_code"`
	Occupation    *string    `db:"occupation"`
	Nationality   string     `db:"nationality_classification"`
	NationalID    *string    `db:"national_id"`
	InsurerCode   *string    `db:"insurer_code"`
	InsurerName   *string    `db:"insurer_name"`
	PayerLicense  *string    `db:"payer_license"`
	PurchaserName *string    `db:"purchaser_name"`
	PolicyCode    *string    `db:"policy_code"`
	InsertionDate time.Time  `db:"insertion_date"`
}

// SaveRecords inserts the normalized record snapshot for one run.
func (s *Store) SaveRecords(ctx context.Context, runID uuid.UUID, at time.Time, recs []model.EligibilityRecord) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([]recordRow, len(recs))
	for i := range recs {
		r := &recs[i]
		rows[i] = recordRow{
			RunID:         runID.String(),
			Source:        r.Source,
			VisitID:       r.VisitID,
			PatientID:     r.PatientID,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			PatientName:   r.PatientName,
			DateOfBirth:   r.DateOfBirth,
			Gender:        string(r.Gender),
			MaritalCode:   r.MaritalCode,
			Occupation:    r.Occupation,
			Nationality:   string(r.Nationality),
			NationalID:    r.NationalID,
			InsurerCode:   r.InsurerCode,
			InsurerName:   r.InsurerName,
			PayerLicense:  r.PayerLicense,
			PurchaserName: r.PurchaserName,
			PolicyCode:    r.PolicyCode,
			InsertionDate: at,
		}
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		run_id, source, visit_id, patient_id, start_date, end_date,
		patient_name, date_of_birth, gender, marital_code, occupation,
		nationality_classification, national_id, insurer_code, insurer_name,
		payer_license, purchaser_name, policy_code, insertion_date
	) VALUES (
		:run_id, :source, :visit_id, :patient_id, :start_date, :end_date,
		:patient_name, :date_of_birth, :gender, :marital_code, :occupation,
		:nationality_classification, :national_id, :insurer_code, :insurer_name,
		:payer_license, :purchaser_name, :policy_code, :insertion_date
	)`, s.recordsTable)

	for _, batch := range batches(rows, insertBatchSize) {
		if _, err := s.db.NamedExecContext(ctx, query, batch); err != nil {
			return fmt.Errorf("insert %d records into %s: %w", len(batch), s.recordsTable, err)
		}
	}
	s.log.Info().Int("records", len(rows)).Str("table", s.recordsTable).Msg("records stored")
	return nil
}

// ResponseRow is one eligibility API reply keyed back to its record.
type ResponseRow struct {
	RunID         string    `db:"run_id"`
	Source        string    `db:"source"`
	PatientID     string    `db:"patient_id"`
	VisitID       string    `db:"visit_id"`
	Outcome       string    `db:"outcome"`
	Class         string    `db:"class"`
	Note          string    `db:"note"`
	InsertionDate time.Time `db:"insertion_date"`
}

// SaveResponses inserts the API replies of one run.
func (s *Store) SaveResponses(ctx context.Context, rows []ResponseRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		run_id, source, patient_id, visit_id, outcome, class, note, insertion_date
	) VALUES (
		:run_id, :source, :patient_id, :visit_id, :outcome, :class, :note, :insertion_date
	)`, s.responsesTable)

	for _, batch := range batches(rows, insertBatchSize) {
		if _, err := s.db.NamedExecContext(ctx, query, batch); err != nil {
			return fmt.Errorf("insert %d responses into %s: %w", len(batch), s.responsesTable, err)
		}
	}
	s.log.Info().Int("responses", len(rows)).Str("table", s.responsesTable).Msg("responses stored")
	return nil
}
