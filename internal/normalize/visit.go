package normalize

import (
	"fmt"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// FromVisitRow converts a raw VisitMgt/MPI row into the shared eligibility
// record. Pure: any I/O failure has already happened by the time a row
// reaches this function. An error marks the row as unmappable; the caller
// skips it without aborting the batch.
func FromVisitRow(r *model.VisitRow, f Facility, c Codes) (*model.EligibilityRecord, error) {
	if r.VisitID == "" {
		return nil, fmt.Errorf("visit row missing visit id")
	}
	if r.PatientID == "" {
		return nil, fmt.Errorf("visit %s: missing patient id", r.VisitID)
	}
	if r.StartDate.IsZero() {
		return nil, fmt.Errorf("visit %s: missing start date", r.VisitID)
	}

	return &model.EligibilityRecord{
		Source:    "visitmgt",
		VisitID:   r.VisitID,
		PatientID: r.PatientID,
		StartDate: r.StartDate,
		EndDate:   ClampEnd(r.StartDate, r.EndDate),

		PatientName: DisplayName(r.FirstName, r.SecondName, r.ThirdName, r.LastName),
		DateOfBirth: r.DateOfBirth,
		Gender:      ParseGender(r.GenderDesc),
		MaritalCode: MapMaritalCode(r.MaritalCode),
		MaritalDesc: r.MaritalDesc,
		Occupation:  r.Occupation,
		Nationality: ClassifyNationality(r.NationalityID, r.IDTypeCode, c),
		NationalID:  r.NationalID,

		InsurerCode:   r.InsurerCode,
		InsurerName:   r.InsurerName,
		PayerLicense:  r.PayerLicense,
		PurchaserName: r.PurchaserName,
		PolicyCode:    r.PolicyCode,

		OrganizationCode: f.OrganizationCode,
		OrganizationName: f.OrganizationName,
		ProviderLicense:  f.ProviderLicense,
	}, nil
}
