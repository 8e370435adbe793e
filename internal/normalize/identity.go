package normalize

import "time"

// IDCandidate is one identification row of a patient, restricted to the
// recognized type codes by the caller or by SelectIdentification itself.
type IDCandidate struct {
	RowID       int64
	TypeCode    string
	Value       string
	WhenExpired *time.Time
}

// SelectIdentification picks the identification number to submit: among the
// candidates whose type code is recognized, the one with the most recent
// WhenExpired wins. This is dedup-by-recency over the expiry timestamp, not
// a latest-issued rule. Rows without an expiry sort behind any row that has
// one. Ties on the expiry timestamp break to the highest RowID. Returns nil
// when no candidate qualifies.
func SelectIdentification(candidates []IDCandidate, recognized []string) *IDCandidate {
	var best *IDCandidate
	for i := range candidates {
		c := &candidates[i]
		if !typeRecognized(c.TypeCode, recognized) {
			continue
		}
		if best == nil || expiresAfter(c, best) {
			best = c
		}
	}
	return best
}

func typeRecognized(code string, recognized []string) bool {
	for _, r := range recognized {
		if code == r {
			return true
		}
	}
	return false
}

func expiresAfter(a, b *IDCandidate) bool {
	switch {
	case a.WhenExpired == nil && b.WhenExpired == nil:
		return a.RowID > b.RowID
	case a.WhenExpired == nil:
		return false
	case b.WhenExpired == nil:
		return true
	case a.WhenExpired.Equal(*b.WhenExpired):
		return a.RowID > b.RowID
	default:
		return a.WhenExpired.After(*b.WhenExpired)
	}
}

// PayerLicense resolves the license to submit: the policy-level license wins
// when present, otherwise the purchaser-level license; nil when both are
// absent.
func PayerLicense(policy, purchaser *string) *string {
	if policy != nil && *policy != "" {
		return policy
	}
	if purchaser != nil && *purchaser != "" {
		return purchaser
	}
	return nil
}
