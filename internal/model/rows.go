package model

import "time"

// VisitRow mirrors one row of the VisitMgt/MPI visit query (SQL Server).
// Reference joins are left-outer, so everything beyond the visit keys is
// nullable.
type VisitRow struct {
	VisitID   string    `db:"visit_id"`
	PatientID string    `db:"patient_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`

	FirstName  *string `db:"first_name"`
	SecondName *string `db:"second_name"`
	ThirdName  *string `db:"third_name"`
	LastName   *string `db:"last_name"`

	DateOfBirth *time.Time `db:"date_of_birth"`
	GenderDesc  *string    `db:"gender"`
	MaritalCode *string    `db:"marital_code"`
	MaritalDesc *string    `db:"marital_desc"`
	Occupation  *string    `db:"occupation"`

	NationalityID *string `db:"nationality_id"`
	IDTypeCode    *string `db:"id_type_code"`
	NationalID    *string `db:"national_id"`

	InsurerCode   *string `db:"insurer_code"`
	InsurerName   *string `db:"insurer_name"`
	PayerLicense  *string `db:"payer_license"`
	PurchaserName *string `db:"purchaser_name"`
	PolicyCode    *string `db:"policy_code"`
}

// EpisodeRow mirrors one row of the OASIS episode query (Oracle). The query
// fans out over all recognized identification rows of the patient, so one
// episode can appear on several rows; the extractor regroups them before
// normalization.
type EpisodeRow struct {
	EpisodeNo string     `db:"episode_no"`
	PatientID string     `db:"patient_id"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`

	FirstName  *string `db:"first_name"`
	SecondName *string `db:"second_name"`
	ThirdName  *string `db:"third_name"`
	LastName   *string `db:"last_name"`

	DateOfBirth *time.Time `db:"date_of_birth"`
	GenderDesc  *string    `db:"gender"`
	MaritalCode *string    `db:"marital_code"`
	MaritalDesc *string    `db:"marital_desc"`
	Occupation  *string    `db:"occupation"`

	NationalityID *string `db:"nationality_id"`

	// Identification candidate carried by this row (null when the patient
	// has no identification of a recognized type).
	IDRowID       *int64     `db:"id_row_id"`
	IDTypeCode    *string    `db:"id_type_code"`
	IDValue       *string    `db:"id_value"`
	IDWhenExpired *time.Time `db:"id_when_expired"`

	InsurerCode      *string `db:"insurer_code"`
	InsurerName      *string `db:"insurer_name"`
	PolicyLicense    *string `db:"policy_license"`
	PurchaserLicense *string `db:"purchaser_license"`
	PurchaserName    *string `db:"purchaser_name"`
	PolicyCode       *string `db:"policy_code"`
}
