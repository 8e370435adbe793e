package normalize

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name                        string
		first, second, third, last  *string
		want                        string
	}{
		{"all parts", strPtr("Ahmed"), strPtr("Mohamed"), strPtr("Ali"), strPtr("Hassan"), "Ahmed Mohamed Ali Hassan"},
		{"empty middle dropped", strPtr("Ahmed"), strPtr(""), strPtr(""), strPtr("Hassan"), "Ahmed Hassan"},
		{"nil middle dropped", strPtr("Ahmed"), nil, nil, strPtr("Hassan"), "Ahmed Hassan"},
		{"whitespace trimmed", strPtr(" Ahmed "), nil, nil, strPtr(" Hassan"), "Ahmed Hassan"},
		{"all empty", nil, nil, strPtr(""), nil, ""},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.first, tc.second, tc.third, tc.last); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
