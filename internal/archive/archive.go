package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// Format selects the on-disk snapshot format.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// ParseFormat validates a configured format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatParquet, FormatCSV:
		return Format(s), nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown archive format %q (want parquet or csv)", s)
	}
}

// Writer snapshots each run's normalized record set under
// <dir>/<source>/eligibility_<timestamp>.<format>.
type Writer struct {
	dir    string
	format Format
}

func NewWriter(dir string, format Format) *Writer {
	return &Writer{dir: dir, format: format}
}

// Write stores the record set and returns the written file path.
func (w *Writer) Write(source string, runID uuid.UUID, at time.Time, recs []model.EligibilityRecord) (string, error) {
	dir := filepath.Join(w.dir, source)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive directory: %w", err)
	}

	name := fmt.Sprintf("eligibility_%s.%s", at.Format("2006-01-02_15-04-05"), w.format)
	path := filepath.Join(dir, name)

	rows := make([]snapshotRow, len(recs))
	for i := range recs {
		rows[i] = toSnapshotRow(&recs[i], runID, at)
	}

	var err error
	switch w.format {
	case FormatParquet:
		err = writeParquet(path, rows)
	case FormatCSV:
		err = writeCSV(path, rows)
	default:
		err = fmt.Errorf("unknown archive format %q", w.format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// snapshotRow is the flattened, string-typed archive schema shared by both
// formats.
type snapshotRow struct {
	RunID         string `parquet:"run_id"`
	Source        string `parquet:"source"`
	VisitID       string `parquet:"visit_id"`
	PatientID     string `parquet:"patient_id"`
	StartDate     string `parquet:"start_date"`
	EndDate       string `parquet:"end_date"`
	PatientName   string `parquet:"patient_name"`
	DateOfBirth   string `parquet:"date_of_birth"`
	Gender        string `parquet:"gender"`
	MaritalCode   string `parquet:"marital_code"`
	MaritalDesc   string `parquet:"marital_desc"`
	Occupation    string `parquet:"occupation"`
	Nationality   string `parquet:"nationality_classification"`
	NationalID    string `parquet:"national_id"`
	InsurerCode   string `parquet:"insurer_code"`
	InsurerName   string `parquet:"insurer_name"`
	PayerLicense  string `parquet:"payer_license"`
	PurchaserName string `parquet:"purchaser_name"`
	PolicyCode    string `parquet:"policy_code"`
	InsertionDate string `parquet:"insertion_date"`
}

const (
	dateLayout      = "2006-01-02"
	insertionLayout = "2006-01-02 15:04"
)

func toSnapshotRow(rec *model.EligibilityRecord, runID uuid.UUID, at time.Time) snapshotRow {
	dob := ""
	if rec.DateOfBirth != nil {
		dob = rec.DateOfBirth.Format(dateLayout)
	}
	return snapshotRow{
		RunID:         runID.String(),
		Source:        rec.Source,
		VisitID:       rec.VisitID,
		PatientID:     rec.PatientID,
		StartDate:     rec.StartDate.Format(dateLayout),
		EndDate:       rec.EndDate.Format(dateLayout),
		PatientName:   rec.PatientName,
		DateOfBirth:   dob,
		Gender:        string(rec.Gender),
		MaritalCode:   deref(rec.MaritalCode),
		MaritalDesc:   deref(rec.MaritalDesc),
		Occupation:    deref(rec.Occupation),
		Nationality:   string(rec.Nationality),
		NationalID:    deref(rec.NationalID),
		InsurerCode:   deref(rec.InsurerCode),
		InsurerName:   deref(rec.InsurerName),
		PayerLicense:  deref(rec.PayerLicense),
		PurchaserName: deref(rec.PurchaserName),
		PolicyCode:    deref(rec.PolicyCode),
		InsertionDate: at.Format(insertionLayout),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
