package minpatch

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	// Key is the object key when Index is negative.
	Key string

	// Index is the array index, or -1 for an object key.
	Index int
}

// ObjectKey builds a key segment.
func ObjectKey(k string) Segment { return Segment{Key: k, Index: -1} }

// ArrayIndex builds an index segment.
func ArrayIndex(i int) Segment { return Segment{Index: i} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.Index >= 0 }

// Path is an ordered address into a JSON tree. Replace and Delete require a
// non-empty Path.
type Path []Segment

// ParsePath parses dot notation into a Path. A bare numeric segment and a
// bracketed one are equivalent: "items.2.name" and "items[2].name" parse to
// the same Path. A backslash escapes the next character, so keys containing
// dots stay literal ("a\.b" is the single key "a.b"). A leading ':' forces
// the segment to be treated as an object key even when it looks numeric
// (":5" is the key "5", not index 5).
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	var (
		path       Path
		buf        []byte
		pending    bool // current segment has consumed input
		forcedKey  bool // segment started with ':'
		sawEscape  bool // segment contains an escaped character
		justClosed bool // previous token was a bracket group
	)
	flush := func() error {
		if !pending {
			return nil
		}
		seg := string(buf)
		buf = buf[:0]
		pending = false
		if seg == "" && !forcedKey {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
		}
		if !forcedKey && !sawEscape && isAllDigits(seg) {
			n, err := strconv.Atoi(seg)
			if err != nil {
				return fmt.Errorf("%w: index %q", ErrInvalidPath, seg)
			}
			path = append(path, ArrayIndex(n))
		} else {
			path = append(path, ObjectKey(seg))
		}
		forcedKey = false
		sawEscape = false
		return nil
	}
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("%w: trailing escape in %q", ErrInvalidPath, s)
			}
			buf = append(buf, s[i+1])
			pending = true
			sawEscape = true
			justClosed = false
			i += 2
		case c == ':' && !pending && !justClosed:
			forcedKey = true
			pending = true
			justClosed = false
			i++
		case c == '.':
			if !pending && !justClosed {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
			}
			if err := flush(); err != nil {
				return nil, err
			}
			justClosed = false
			i++
		case c == '[':
			if err := flush(); err != nil {
				return nil, err
			}
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i+1 || j >= len(s) || s[j] != ']' {
				return nil, fmt.Errorf("%w: bad index in %q", ErrInvalidPath, s)
			}
			n, err := strconv.Atoi(s[i+1 : j])
			if err != nil {
				return nil, fmt.Errorf("%w: index %q", ErrInvalidPath, s[i+1:j])
			}
			path = append(path, ArrayIndex(n))
			justClosed = true
			i = j + 1
		default:
			buf = append(buf, c)
			pending = true
			justClosed = false
			i++
		}
	}
	if pending {
		if err := flush(); err != nil {
			return nil, err
		}
	} else if !justClosed {
		return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
	}
	return path, nil
}

// MustParsePath is ParsePath for paths known valid at compile time.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the canonical dot-notation form of the path: bare indices,
// escaped dots, and a ':' prefix on keys that would otherwise read as
// indices. ParsePath(p.String()) reproduces p.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		if seg.IsIndex() {
			b.WriteString(strconv.Itoa(seg.Index))
		} else {
			b.WriteString(escapeSegment(seg.Key))
		}
	}
	return b.String()
}

// hintString joins the raw segments with dots, matching the path spelling
// used by the key-order extractor. Unlike String it applies no escaping.
func (p Path) hintString() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		if seg.IsIndex() {
			b.WriteString(strconv.Itoa(seg.Index))
		} else {
			b.WriteString(seg.Key)
		}
	}
	return b.String()
}

func escapeSegment(k string) string {
	plain := k != "" && !isAllDigits(k) && !strings.ContainsAny(k, `.\[:`)
	if plain {
		return k
	}
	var b strings.Builder
	if k == "" || isAllDigits(k) {
		b.WriteByte(':')
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c == '.' || c == '\\' || c == '[' || (i == 0 && c == ':') {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
