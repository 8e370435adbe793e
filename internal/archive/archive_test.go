package archive

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

func sampleRecords() []model.EligibilityRecord {
	nid := "1012345678"
	start := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	return []model.EligibilityRecord{
		{
			Source:           "visitmgt",
			VisitID:          "V-5001",
			PatientID:        "P-12",
			StartDate:        start,
			EndDate:          start,
			PatientName:      "Sara Aziz",
			Gender:           model.GenderFemale,
			Nationality:      model.NationalityNI,
			NationalID:       &nid,
			OrganizationCode: "AHJ",
		},
		{
			Source:      "visitmgt",
			VisitID:     "V-5002",
			PatientID:   "P-13",
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 2),
			Gender:      model.GenderUnknown,
			Nationality: model.NationalityPRC,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, FormatCSV)
	at := time.Date(2024, time.June, 5, 12, 30, 0, 0, time.UTC)

	path, err := w.Write("visitmgt", uuid.New(), at, sampleRecords())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "visitmgt") {
		t.Errorf("archive landed in %s", path)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Errorf("expected .csv path, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 { // header + 2 records
		t.Fatalf("expected 3 csv rows, got %d", len(rows))
	}
	if rows[0][2] != "visit_id" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "V-5001" || rows[1][12] != "NI" {
		t.Errorf("unexpected first record: %v", rows[1])
	}
}

func TestWriteParquet(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, FormatParquet)

	path, err := w.Write("oasis", uuid.New(), time.Now(), sampleRecords())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, ".parquet") {
		t.Errorf("expected .parquet path, got %s", path)
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat archive: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("parquet archive is empty")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatCSV {
		t.Errorf("empty format should default to csv, got %q / %v", f, err)
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("expected error for unknown format")
	}
}
