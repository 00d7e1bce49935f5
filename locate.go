package minpatch

import (
	"bytes"
	"encoding/json"
)

// Scanner state for string awareness. Kept as an explicit machine rather
// than boolean flags threaded through the scan loops.
type scanState uint8

const (
	scanNormal scanState = iota
	scanString
	scanEscape
)

// findValueRange locates the byte range [start, end) of the value addressed
// by path in a single forward scan. Object nesting depth counts braces only;
// array traversal does not add depth. On any miss the result is (-1, -1),
// never a partial or best-guess range.
func findValueRange(data []byte, path Path) (int, int) {
	pos, limit := 0, len(data)
	keysSeen := 0
	for i, seg := range path {
		last := i == len(path)-1
		if seg.IsIndex() {
			start, end := arrayElementRange(data, pos, limit, seg.Index)
			if start < 0 {
				return -1, -1
			}
			if last {
				return start, end
			}
			// Remaining segments resolve inside this element only.
			pos, limit = start, end
			continue
		}
		valueStart, ok := scanToKey(data, pos, limit, keysSeen, seg.Key)
		if !ok {
			return -1, -1
		}
		keysSeen++
		end := findValueEnd(data, valueStart, limit)
		if end < 0 {
			return -1, -1
		}
		if last {
			return valueStart, end
		}
		// A parent must actually be a container of the right kind; a
		// scalar or mismatched value is a missing parent, never a cue to
		// keep scanning sibling subtrees.
		if path[i+1].IsIndex() {
			if data[valueStart] != '[' {
				return -1, -1
			}
		} else if data[valueStart] != '{' {
			return -1, -1
		}
		pos, limit = valueStart, end
	}
	return -1, -1
}

// scanToKey advances from pos looking for a quoted key token at object depth
// baseDepth+1 followed by a colon. A quoted token is only a member key when
// a colon follows it; string values never match. The search gives up once
// the scan leaves the object it entered at the expected depth: a key that
// would only match in a sibling subtree is a miss, not a hit.
func scanToKey(data []byte, pos, limit, baseDepth int, key string) (int, bool) {
	want := baseDepth + 1
	depth := baseDepth
	entered := false
	i := pos
	for i < limit {
		switch data[i] {
		case '"':
			end := stringEnd(data, i, limit)
			if end < 0 {
				return -1, false
			}
			if depth == want {
				j := end
				for j < limit && data[j] <= ' ' {
					j++
				}
				if j < limit && data[j] == ':' {
					if keyTokenEquals(data[i:end], key) {
						j++
						for j < limit && data[j] <= ' ' {
							j++
						}
						if j >= limit {
							return -1, false
						}
						return j, true
					}
					i = j + 1
					continue
				}
			}
			i = end
		case '{':
			depth++
			if depth == want {
				entered = true
			}
			i++
		case '}':
			depth--
			if entered && depth < want {
				return -1, false
			}
			i++
		default:
			i++
		}
	}
	return -1, false
}

// arrayElementRange walks the array starting at the first non-space byte of
// data[pos:limit], counting top-level elements until index. Commas inside
// nested structures or strings are skipped by findValueEnd.
func arrayElementRange(data []byte, pos, limit, index int) (int, int) {
	i := pos
	for i < limit && data[i] <= ' ' {
		i++
	}
	if i >= limit || data[i] != '[' {
		return -1, -1
	}
	i++
	current := 0
	for i < limit {
		for i < limit && data[i] <= ' ' {
			i++
		}
		if i >= limit || data[i] == ']' {
			// Out of range is a miss, never a truncation.
			return -1, -1
		}
		end := findValueEnd(data, i, limit)
		if end < 0 {
			return -1, -1
		}
		if current == index {
			return i, end
		}
		i = end
		for i < limit && data[i] <= ' ' {
			i++
		}
		if i >= limit || data[i] != ',' {
			return -1, -1
		}
		i++
		current++
	}
	return -1, -1
}

// findValueEnd returns the index just past the value starting at start: the
// matching unescaped quote for a string, the balanced close for an object or
// array, and for any other primitive the position before the next comma,
// closing bracket, or newline, right-trimmed of spaces.
func findValueEnd(data []byte, start, limit int) int {
	if start >= limit {
		return -1
	}
	switch data[start] {
	case '{':
		return blockEnd(data, start, limit, '{', '}')
	case '[':
		return blockEnd(data, start, limit, '[', ']')
	case '"':
		return stringEnd(data, start, limit)
	default:
		i := start
		for i < limit {
			c := data[i]
			if c == ',' || c == '}' || c == ']' || c == '\n' || c == '\r' {
				break
			}
			i++
		}
		for i > start && (data[i-1] == ' ' || data[i-1] == '\t') {
			i--
		}
		if i == start {
			return -1
		}
		return i
	}
}

// stringEnd returns the index just past the closing quote of the string
// starting at start, or -1 when the string never closes.
func stringEnd(data []byte, start, limit int) int {
	state := scanString
	for i := start + 1; i < limit; i++ {
		switch state {
		case scanEscape:
			state = scanString
		case scanString:
			if data[i] == '\\' {
				state = scanEscape
			} else if data[i] == '"' {
				return i + 1
			}
		}
	}
	return -1
}

// blockEnd returns the index just past the bracket matching data[start],
// tracking nested strings so braces inside them do not count.
func blockEnd(data []byte, start, limit int, openChar, closeChar byte) int {
	depth := 1
	state := scanNormal
	for i := start + 1; i < limit; i++ {
		c := data[i]
		switch state {
		case scanEscape:
			state = scanString
		case scanString:
			if c == '\\' {
				state = scanEscape
			} else if c == '"' {
				state = scanNormal
			}
		default:
			switch c {
			case '"':
				state = scanString
			case openChar:
				depth++
			case closeChar:
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	}
	return -1
}

// findKeyRange scans backwards from a located value to the quoted key token
// that introduces it, skipping whitespace and the colon. Used by Delete.
// The returned range includes both quotes. The token must spell key.
func findKeyRange(data []byte, valueStart int, key string) (int, int) {
	i := valueStart - 1
	for i >= 0 && data[i] <= ' ' {
		i--
	}
	if i < 0 || data[i] != ':' {
		return -1, -1
	}
	i--
	for i >= 0 && data[i] <= ' ' {
		i--
	}
	if i < 0 || data[i] != '"' {
		return -1, -1
	}
	end := i
	for i--; i >= 0; i-- {
		if data[i] == '"' && !escapedAt(data, i) {
			if !keyTokenEquals(data[i:end+1], key) {
				return -1, -1
			}
			return i, end + 1
		}
	}
	return -1, -1
}

// escapedAt reports whether the byte at i is preceded by an odd run of
// backslashes.
func escapedAt(data []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && data[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// keyTokenEquals compares a quoted key token (quotes included) against a
// plain key, unescaping only when the token actually contains escapes.
func keyTokenEquals(token []byte, key string) bool {
	raw := token[1 : len(token)-1]
	if bytes.IndexByte(raw, '\\') < 0 {
		return string(raw) == key
	}
	var s string
	if err := json.Unmarshal(token, &s); err != nil {
		return false
	}
	return s == key
}

// checkBalanced verifies that quotes and brackets of the whole text balance.
// It is the up-front guard that keeps a malformed document from ever being
// partially patched.
func checkBalanced(data []byte) error {
	state := scanNormal
	var stack []byte
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch state {
		case scanEscape:
			state = scanString
		case scanString:
			if c == '\\' {
				state = scanEscape
			} else if c == '"' {
				state = scanNormal
			}
		default:
			switch c {
			case '"':
				state = scanString
			case '{':
				stack = append(stack, '}')
			case '[':
				stack = append(stack, ']')
			case '}', ']':
				if len(stack) == 0 || stack[len(stack)-1] != c {
					return ErrMalformedDocument
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if state != scanNormal || len(stack) != 0 {
		return ErrMalformedDocument
	}
	return nil
}
