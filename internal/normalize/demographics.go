package normalize

import (
	"strings"

	"github.com/Andalusia-Data-Science-Team/Eligibilty-api-schedule/internal/model"
)

// Codes holds the configured identification and nationality code constants
// used by classification. They are injected from configuration, never baked
// into mapping logic.
type Codes struct {
	// DomesticNationality is the nationality id that maps to class NI.
	DomesticNationality string
	// PassportIDType is the identification type code that maps to class PPN.
	PassportIDType string
	// RecognizedIDTypes restricts which identification rows are candidates
	// for the national id value.
	RecognizedIDTypes []string
}

// Facility holds the provider-identifying constants stamped on every record.
type Facility struct {
	OrganizationCode string
	OrganizationName string
	ProviderLicense  string
}

// ParseGender maps a source gender code or description onto the shared enum.
// Unknown and absent values map to GenderUnknown, never an error.
func ParseGender(v *string) model.Gender {
	if v == nil {
		return model.GenderUnknown
	}
	switch strings.ToUpper(strings.TrimSpace(*v)) {
	case "M", "MALE", "1":
		return model.GenderMale
	case "F", "FEMALE", "2":
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}

// MapMaritalCode remaps the single-letter code S to U; every other code
// passes through unchanged, including empty and multi-letter codes.
func MapMaritalCode(code *string) *string {
	if code == nil {
		return nil
	}
	if strings.TrimSpace(*code) == "S" {
		u := "U"
		return &u
	}
	return code
}

// ClassifyNationality derives the identification classification: the
// domestic nationality id yields NI, a passport-type identification yields
// PPN, and everything else yields PRC. The output is always exactly one of
// the three values.
func ClassifyNationality(nationalityID, idTypeCode *string, c Codes) model.NationalityClass {
	if nationalityID != nil && strings.TrimSpace(*nationalityID) == c.DomesticNationality {
		return model.NationalityNI
	}
	if idTypeCode != nil && strings.TrimSpace(*idTypeCode) == c.PassportIDType {
		return model.NationalityPPN
	}
	return model.NationalityPRC
}
