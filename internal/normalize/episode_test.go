package normalize

import (
	"reflect"
	"testing"
	"time"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func testFacility() Facility {
	return Facility{
		OrganizationCode: "AHJ",
		OrganizationName: "Andalusia Hospital Jeddah",
		ProviderLicense:  "PR-FHIR-001",
	}
}

func episodeRow(idRow int64, idType, idValue string, expired *time.Time) model.EpisodeRow {
	start := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	return model.EpisodeRow{
		EpisodeNo:     "EP-1001",
		PatientID:     "P-77",
		StartDate:     start,
		FirstName:     strPtr("Omar"),
		LastName:      strPtr("Khalil"),
		GenderDesc:    strPtr("M"),
		MaritalCode:   strPtr("S"),
		NationalityID: strPtr("840"),
		IDRowID:       int64Ptr(idRow),
		IDTypeCode:    strPtr(idType),
		IDValue:       strPtr(idValue),
		IDWhenExpired: expired,
		PolicyLicense: strPtr("POL-LIC-9"),
		PurchaserName: strPtr("Bupa"),
	}
}

func TestFromEpisodeRows_PicksMostRecentIdentification(t *testing.T) {
	rows := []model.EpisodeRow{
		episodeRow(1, "IQA", "2400000001", datePtr(2024, time.January, 1)),
		episodeRow(2, "IQA", "2400000002", datePtr(2024, time.June, 1)),
	}
	rec, err := FromEpisodeRows(rows, testFacility(), testCodes())
	if err != nil {
		t.Fatalf("FromEpisodeRows: %v", err)
	}
	if rec.NationalID == nil || *rec.NationalID != "2400000002" {
		t.Errorf("expected national id 2400000002, got %v", rec.NationalID)
	}
	if rec.VisitID != "EP-1001" || rec.PatientID != "P-77" {
		t.Errorf("unexpected keys: %s / %s", rec.VisitID, rec.PatientID)
	}
}

func TestFromEpisodeRows_EndDateFallsBackToStart(t *testing.T) {
	rows := []model.EpisodeRow{episodeRow(1, "IQA", "X", nil)}
	rec, err := FromEpisodeRows(rows, testFacility(), testCodes())
	if err != nil {
		t.Fatalf("FromEpisodeRows: %v", err)
	}
	if rec.EndDate.Before(rec.StartDate) {
		t.Errorf("end date %v before start date %v", rec.EndDate, rec.StartDate)
	}
	if !rec.EndDate.Equal(rec.StartDate) {
		t.Errorf("missing end date should default to start, got %v", rec.EndDate)
	}
}

func TestFromEpisodeRows_MaritalAndLicense(t *testing.T) {
	rows := []model.EpisodeRow{episodeRow(1, "IQA", "X", nil)}
	rec, err := FromEpisodeRows(rows, testFacility(), testCodes())
	if err != nil {
		t.Fatalf("FromEpisodeRows: %v", err)
	}
	if rec.MaritalCode == nil || *rec.MaritalCode != "U" {
		t.Errorf("marital S should map to U, got %v", rec.MaritalCode)
	}
	if rec.PayerLicense == nil || *rec.PayerLicense != "POL-LIC-9" {
		t.Errorf("policy license should win, got %v", rec.PayerLicense)
	}
}

func TestFromEpisodeRows_MissingKeysRejected(t *testing.T) {
	row := episodeRow(1, "IQA", "X", nil)
	row.PatientID = ""
	if _, err := FromEpisodeRows([]model.EpisodeRow{row}, testFacility(), testCodes()); err == nil {
		t.Error("expected error for missing patient id")
	}
	if _, err := FromEpisodeRows(nil, testFacility(), testCodes()); err == nil {
		t.Error("expected error for empty group")
	}
}

func TestFromEpisodeRows_Idempotent(t *testing.T) {
	rows := []model.EpisodeRow{
		episodeRow(1, "IQA", "A", datePtr(2024, time.March, 1)),
		episodeRow(2, "PPT", "B", datePtr(2024, time.April, 1)),
	}
	first, err := FromEpisodeRows(rows, testFacility(), testCodes())
	if err != nil {
		t.Fatalf("FromEpisodeRows: %v", err)
	}
	second, err := FromEpisodeRows(rows, testFacility(), testCodes())
	if err != nil {
		t.Fatalf("FromEpisodeRows (second run): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
