package model

import "time"

// Gender is the normalized patient gender.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// NationalityClass is the identification classification submitted to the
// eligibility API: NI for holders of the domestic national id, PPN for
// passport holders, PRC for everyone else (permanent resident card).
type NationalityClass string

const (
	NationalityNI  NationalityClass = "NI"
	NationalityPPN NationalityClass = "PPN"
	NationalityPRC NationalityClass = "PRC"
)

// EligibilityRecord is the shared output schema produced by both extractors.
// One record per visit (VisitMgt) or episode (OASIS).
type EligibilityRecord struct {
	// Source is the extractor that produced the record, "visitmgt" or "oasis".
	Source string

	// VisitID is the source-system primary key (visit id or episode number),
	// unique within one extraction result.
	VisitID   string
	PatientID string

	// Coverage window. EndDate falls back to StartDate when the source has
	// no end date, so EndDate >= StartDate always holds.
	StartDate time.Time
	EndDate   time.Time

	// Demographics
	PatientName   string
	DateOfBirth   *time.Time
	Gender        Gender
	MaritalCode   *string
	MaritalDesc   *string
	Occupation    *string
	Nationality   NationalityClass
	NationalID    *string

	// Payer attribution
	InsurerCode   *string
	InsurerName   *string
	PayerLicense  *string
	PurchaserName *string
	PolicyCode    *string

	// Facility constants, identical on every record of a run.
	OrganizationCode string
	OrganizationName string
	ProviderLicense  string
}

// SubmissionResult is the parsed eligibility API response for one record.
type SubmissionResult struct {
	Outcome string
	Class   string
	Note    string
}
