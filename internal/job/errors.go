package job

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a run failure for reporting and alerting.
type Kind string

const (
	// KindConnection: the source system could not be reached.
	KindConnection Kind = "connection"
	// KindQuery: the query failed or the schema shape did not match.
	KindQuery Kind = "query"
	// KindTimeout: the extraction exceeded its bounded duration.
	KindTimeout Kind = "timeout"
	// KindTransform: normalization failed at the batch level. Individual
	// row failures are skipped and counted, never surfaced as this kind.
	KindTransform Kind = "transform"
	// KindSubmission: the eligibility API rejected the payload or was
	// unreachable.
	KindSubmission Kind = "submission"
)

// RunError is a failed extractor run: which extractor, which failure class,
// and the underlying cause. Connection, query and timeout errors abort the
// whole run for that extractor and are surfaced to the scheduler; they are
// not retried inline.
type RunError struct {
	Extractor string
	Kind      Kind
	Err       error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Extractor, e.Kind, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// QueryKind maps a query execution error onto its failure class, promoting
// context deadline errors to the timeout kind.
func QueryKind(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindQuery
}
