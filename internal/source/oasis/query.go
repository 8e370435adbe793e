package oasis

import (
	_ "embed"
	"fmt"
	"strings"
)

// episodesTemplate is the episode extraction query against the OASIS schema.
// Cancelled ('C') and reversed ('R') charges, package deals, charges with a
// payment type set and zero/null purchaser codes are excluded in SQL. The
// PATIENT_ID_NUMBERS join fans out to every identification row of a
// recognized type; the extractor regroups and picks one in Go so the
// recency rule stays pure and testable.
//
//go:embed queries/episodes.sql
var episodesTemplate string

// BuildEpisodeQuery expands the {{id_types}} placeholder into one named bind
// per recognized identification type code (:idt1, :idt2, ...).
func BuildEpisodeQuery(numIDTypes int) (string, error) {
	if numIDTypes <= 0 {
		return "", fmt.Errorf("at least one recognized identification type code is required")
	}
	binds := make([]string, numIDTypes)
	for i := range binds {
		binds[i] = fmt.Sprintf(":idt%d", i+1)
	}
	return strings.Replace(episodesTemplate, "{{id_types}}", strings.Join(binds, ", "), 1), nil
}
