package eligibility

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

func testRecord() *model.EligibilityRecord {
	nid := "2400000001"
	return &model.EligibilityRecord{
		Source:           "oasis",
		VisitID:          "EP-1001",
		PatientID:        "P-77",
		StartDate:        time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		PatientName:      "Omar Khalil",
		Gender:           model.GenderMale,
		Nationality:      model.NationalityPRC,
		NationalID:       &nid,
		OrganizationCode: "AHJ",
		OrganizationName: "Andalusia Hospital Jeddah",
		ProviderLicense:  "PR-FHIR-001",
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:  baseURL,
		Token:    "test-token",
		Timeout:  2 * time.Second,
		RetryMax: 0,
	}, zerolog.Nop())
}

func TestSubmit_ParsesResponse(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"outcome":"complete","class":{"code":"IPD","name":"Inpatient"},"notes":["covered","copay 20%"]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Submit(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Outcome != "complete" || res.Class != "IPD" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Note != "covered; copay 20%" {
		t.Errorf("notes not joined: %q", res.Note)
	}
	if gotPath != "/eligibility/check" {
		t.Errorf("posted to %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("auth header %q", gotAuth)
	}
	if gotBody["visit_id"] != "EP-1001" || gotBody["nationality_classification"] != "PRC" {
		t.Errorf("payload fields missing: %v", gotBody)
	}
	if gotBody["start_date"] != "2024-06-03" {
		t.Errorf("start_date formatted as %v", gotBody["start_date"])
	}
}

func TestSubmit_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown payer"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Submit(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error for 422 response")
	}
}

func TestSubmit_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Submit(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestBuildPayload_OmitsEmptyOptionals(t *testing.T) {
	rec := testRecord()
	rec.NationalID = nil
	b, err := json.Marshal(buildPayload(rec))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	json.Unmarshal(b, &m)
	if _, ok := m["national_id"]; ok {
		t.Error("empty national_id should be omitted")
	}
	if _, ok := m["organization_code"]; !ok {
		t.Error("organization_code must always be present")
	}
}
