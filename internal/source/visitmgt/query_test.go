package visitmgt

import (
	"strings"
	"testing"
)

func TestVisitsQuery_Shape(t *testing.T) {
	if !strings.Contains(Visits, "@p1") {
		t.Error("query lost its window bind @p1")
	}
	// Reference joins must stay left-outer so missing reference rows yield
	// null fields instead of dropped visits.
	for _, table := range []string{"[dbo].[Patient]", "[dbo].[Gender]", "[dbo].[Marital_Status]", "[dbo].[Occupation]", "[dbo].[Purchaser_Mapping]"} {
		if !strings.Contains(Visits, "LEFT JOIN "+table) {
			t.Errorf("%s is not left-joined", table)
		}
	}
	for _, col := range []string{"visit_id", "patient_id", "start_date", "national_id", "payer_license"} {
		if !strings.Contains(Visits, "AS "+col) {
			t.Errorf("query missing output column %s", col)
		}
	}
}
