package normalize

import "strings"

// DisplayName concatenates the four patient name parts in order, separated
// by single spaces. Empty or null parts are dropped rather than preserved as
// double spaces (the source systems keep them; treated here as a defect and
// fixed).
func DisplayName(first, second, third, last *string) string {
	parts := make([]string, 0, 4)
	for _, p := range []*string{first, second, third, last} {
		if p == nil {
			continue
		}
		if s := strings.TrimSpace(*p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
