package visitmgt

import (
	_ "embed"
)

// Visits is the visit extraction query against the VisitMgt/MPI schema.
// Every reference join is a left join: a missing occupation, gender, marital
// status or payer-mapping row yields null fields, not a dropped visit.
// @p1 is the window lower bound computed from the configured WindowMode.
//
//go:embed queries/visits.sql
var Visits string
