package archive

import (
	"encoding/csv"
	"fmt"
	"os"
)

var csvHeader = []string{
	"run_id", "source", "visit_id", "patient_id", "start_date", "end_date",
	"patient_name", "date_of_birth", "gender", "marital_code", "marital_desc",
	"occupation", "nationality_classification", "national_id",
	"insurer_code", "insurer_name", "payer_license", "purchaser_name",
	"policy_code", "insertion_date",
}

func writeCSV(path string, rows []snapshotRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv archive: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.RunID, r.Source, r.VisitID, r.PatientID, r.StartDate, r.EndDate,
			r.PatientName, r.DateOfBirth, r.Gender, r.MaritalCode, r.MaritalDesc,
			r.Occupation, r.Nationality, r.NationalID,
			r.InsurerCode, r.InsurerName, r.PayerLicense, r.PurchaserName,
			r.PolicyCode, r.InsertionDate,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
