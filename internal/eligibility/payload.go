package eligibility

import (
	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

const dateLayout = "2006-01-02"

// payload is the JSON body submitted per record. This shape is the contract
// the eligibility service consumes; the record schema is its source.
type payload struct {
	VisitID     string `json:"visit_id"`
	PatientID   string `json:"patient_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PatientName string `json:"patient_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender"`

	MaritalCode string `json:"marital_status,omitempty"`
	Occupation  string `json:"occupation,omitempty"`

	Nationality string `json:"nationality_classification"`
	NationalID  string `json:"national_id,omitempty"`

	InsurerCode   string `json:"insurer_code,omitempty"`
	InsurerName   string `json:"insurer_name,omitempty"`
	PayerLicense  string `json:"payer_license,omitempty"`
	PurchaserName string `json:"purchaser_name,omitempty"`
	PolicyCode    string `json:"policy_code,omitempty"`

	OrganizationCode string `json:"organization_code"`
	OrganizationName string `json:"organization_name"`
	ProviderLicense  string `json:"provider_license"`
}

func buildPayload(rec *model.EligibilityRecord) payload {
	p := payload{
		VisitID:     rec.VisitID,
		PatientID:   rec.PatientID,
		StartDate:   rec.StartDate.Format(dateLayout),
		EndDate:     rec.EndDate.Format(dateLayout),
		PatientName: rec.PatientName,
		Gender:      string(rec.Gender),
		Nationality: string(rec.Nationality),

		OrganizationCode: rec.OrganizationCode,
		OrganizationName: rec.OrganizationName,
		ProviderLicense:  rec.ProviderLicense,
	}
	if rec.DateOfBirth != nil {
		p.DateOfBirth = rec.DateOfBirth.Format(dateLayout)
	}
	p.MaritalCode = deref(rec.MaritalCode)
	p.Occupation = deref(rec.Occupation)
	p.NationalID = deref(rec.NationalID)
	p.InsurerCode = deref(rec.InsurerCode)
	p.InsurerName = deref(rec.InsurerName)
	p.PayerLicense = deref(rec.PayerLicense)
	p.PurchaserName = deref(rec.PurchaserName)
	p.PolicyCode = deref(rec.PolicyCode)
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// apiResponse is the wire shape of the eligibility service reply.
type apiResponse struct {
	Outcome string `json:"outcome"`
	Class   struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"class"`
	Notes []string `json:"notes"`
}

func (r *apiResponse) toResult() *model.SubmissionResult {
	note := ""
	for i, n := range r.Notes {
		if i > 0 {
			note += "; "
		}
		note += n
	}
	return &model.SubmissionResult{
		Outcome: r.Outcome,
		Class:   r.Class.Code,
		Note:    note,
	}
}
