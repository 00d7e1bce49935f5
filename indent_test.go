package minpatch

import "testing"

// TestDetectIndent covers the heuristic's cases, inconsistent files
// included.
func TestDetectIndent(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"two spaces", "{\n  \"a\": 1\n}", "  "},
		{"four spaces", "{\n    \"a\": 1\n}", "    "},
		{"tab", "{\n\t\"a\": 1\n}", "\t"},
		{"tab wins over spaces", "{\n  \"a\": {\n\t\"b\": 1\n  }\n}", "\t"},
		{"minimum nonzero run", "{\n    \"a\": {\n  \"b\": 1\n    }\n}", "  "},
		{"compact defaults", `{"a":1}`, "  "},
		{"empty defaults", "", "  "},
		{"blank lines ignored", "{\n\n  \"a\": 1\n   \n}", "  "},
	}
	for _, tc := range cases {
		if got := detectIndent([]byte(tc.doc)); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
