package minpatch

import (
	"encoding/json"
	"strings"
)

// keyOrderMap records, per dot-joined path prefix, the order in which keys
// were first observed in the raw text at that nesting level. It is built by
// a line-oriented scan rather than a full parse and is only ever an ordering
// hint for re-emission, never ground truth for values.
type keyOrderMap map[string][]string

// lookup returns the recorded key order for a path, falling back to the
// same path with array-index segments removed. The extractor does not track
// indices, so keys inside array elements are recorded under the enclosing
// array's path.
func (m keyOrderMap) lookup(path string) []string {
	if ks, ok := m[path]; ok {
		return ks
	}
	if stripped := stripIndexSegments(path); stripped != path {
		return m[stripped]
	}
	return nil
}

func stripIndexSegments(path string) string {
	if path == "" {
		return path
	}
	parts := strings.Split(path, ".")
	kept := parts[:0]
	for _, p := range parts {
		if !isAllDigits(p) {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// buildKeyOrder scans the raw text line by line, pushing onto a path stack
// when a line opens a nested object or array after a key, and popping when a
// line starts with a closing bracket. Bare braces of array elements are not
// tracked, which is acceptable for a hint.
func buildKeyOrder(data []byte) keyOrderMap {
	m := keyOrderMap{}
	var stack []string
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if t[0] == '}' || t[0] == ']' {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		if t[0] != '"' {
			continue
		}
		key, rest, ok := splitKeyLine(t)
		if !ok {
			continue
		}
		prefix := strings.Join(stack, ".")
		m[prefix] = append(m[prefix], key)
		if rest == "" {
			// Line continuation: the value may open on the next line.
			rest = nextContentLine(lines, i+1)
		}
		// Only a bracket that stays open past this line starts a new level;
		// inline values like {} or ["a"] close on the same line.
		if rest == "{" || rest == "[" {
			stack = append(stack, key)
		}
	}
	return m
}

// splitKeyLine splits a trimmed `"key": value` line into the key and the
// trimmed remainder after the colon.
func splitKeyLine(t string) (key, rest string, ok bool) {
	end := -1
	for i := 1; i < len(t); i++ {
		if t[i] == '\\' {
			i++
			continue
		}
		if t[i] == '"' {
			end = i
			break
		}
	}
	if end < 0 {
		return "", "", false
	}
	after := strings.TrimLeft(t[end+1:], " \t")
	if !strings.HasPrefix(after, ":") {
		return "", "", false
	}
	key = t[1:end]
	if strings.Contains(key, "\\") {
		var unescaped string
		if err := json.Unmarshal([]byte(t[:end+1]), &unescaped); err == nil {
			key = unescaped
		}
	}
	return key, strings.TrimLeft(after[1:], " \t"), true
}

func nextContentLine(lines []string, from int) string {
	for _, line := range lines[from:] {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
