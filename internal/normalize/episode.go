package normalize

import (
	"fmt"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// FromEpisodeRows converts the fan-out rows of one (patient, episode) pair
// into a single eligibility record. All rows carry the same episode and
// demographic fields; they differ only in the identification candidate, from
// which SelectIdentification picks one. Emitting one record per group is
// what keeps the result set distinct per (patient_id, episode_no).
func FromEpisodeRows(rows []model.EpisodeRow, f Facility, c Codes) (*model.EligibilityRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty episode row group")
	}
	r := &rows[0]
	if r.EpisodeNo == "" {
		return nil, fmt.Errorf("episode row missing episode no")
	}
	if r.PatientID == "" {
		return nil, fmt.Errorf("episode %s: missing patient id", r.EpisodeNo)
	}
	if r.StartDate.IsZero() {
		return nil, fmt.Errorf("episode %s: missing start date", r.EpisodeNo)
	}

	candidates := make([]IDCandidate, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.IDRowID == nil || row.IDTypeCode == nil || row.IDValue == nil {
			continue
		}
		candidates = append(candidates, IDCandidate{
			RowID:       *row.IDRowID,
			TypeCode:    *row.IDTypeCode,
			Value:       *row.IDValue,
			WhenExpired: row.IDWhenExpired,
		})
	}

	var nationalID *string
	var idTypeCode *string
	if id := SelectIdentification(candidates, c.RecognizedIDTypes); id != nil {
		nationalID = &id.Value
		idTypeCode = &id.TypeCode
	}

	return &model.EligibilityRecord{
		Source:    "oasis",
		VisitID:   r.EpisodeNo,
		PatientID: r.PatientID,
		StartDate: r.StartDate,
		EndDate:   ClampEnd(r.StartDate, r.EndDate),

		PatientName: DisplayName(r.FirstName, r.SecondName, r.ThirdName, r.LastName),
		DateOfBirth: r.DateOfBirth,
		Gender:      ParseGender(r.GenderDesc),
		MaritalCode: MapMaritalCode(r.MaritalCode),
		MaritalDesc: r.MaritalDesc,
		Occupation:  r.Occupation,
		Nationality: ClassifyNationality(r.NationalityID, idTypeCode, c),
		NationalID:  nationalID,

		InsurerCode:   r.InsurerCode,
		InsurerName:   r.InsurerName,
		PayerLicense:  PayerLicense(r.PolicyLicense, r.PurchaserLicense),
		PurchaserName: r.PurchaserName,
		PolicyCode:    r.PolicyCode,

		OrganizationCode: f.OrganizationCode,
		OrganizationName: f.OrganizationName,
		ProviderLicense:  f.ProviderLicense,
	}, nil
}
