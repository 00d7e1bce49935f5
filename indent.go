package minpatch

import "strings"

// defaultIndent is used when the sample text shows no indentation at all.
const defaultIndent = "  "

// detectIndent infers the indentation unit of a JSON text. The scan is a
// heuristic, not a validator: it tolerates inconsistent files. Any tab in a
// leading run wins a single tab; otherwise the smallest nonzero run of
// leading spaces becomes the unit.
func detectIndent(data []byte) string {
	minRun := -1
	for _, line := range strings.Split(string(data), "\n") {
		rest := strings.TrimLeft(line, " \t")
		if strings.TrimRight(rest, "\r") == "" {
			// Blank line, nothing to learn.
			continue
		}
		lead := line[:len(line)-len(rest)]
		if strings.ContainsRune(lead, '\t') {
			return "\t"
		}
		if len(lead) > 0 && (minRun < 0 || len(lead) < minRun) {
			minRun = len(lead)
		}
	}
	if minRun < 0 {
		return defaultIndent
	}
	return strings.Repeat(" ", minRun)
}
