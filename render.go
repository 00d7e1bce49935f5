package minpatch

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// renderValue serializes v at the given visual depth. Object keys follow the
// recorded order of the original document first, then keys new to the tree
// in lexicographic order. Empty containers render inline; everything else
// gets one element or member per line.
func renderValue(v Value, depth int, indent string, order keyOrderMap, path string) ([]byte, error) {
	return appendValue(nil, v, depth, indent, order, path)
}

func appendValue(dst []byte, v Value, depth int, indent string, order keyOrderMap, path string) ([]byte, error) {
	switch t := v.(type) {
	case Null:
		return append(dst, "null"...), nil
	case Bool:
		if t {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case Int:
		return strconv.AppendInt(dst, int64(t), 10), nil
	case Float:
		return appendFloat(dst, float64(t))
	case String:
		return appendJSONString(dst, string(t))
	case Array:
		return appendArray(dst, t, depth, indent, order, path)
	case Object:
		return appendObject(dst, t, depth, indent, order, path)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func appendArray(dst []byte, arr Array, depth int, indent string, order keyOrderMap, path string) ([]byte, error) {
	if len(arr) == 0 {
		return append(dst, "[]"...), nil
	}
	dst = append(dst, '[', '\n')
	var err error
	for i, e := range arr {
		dst = appendPad(dst, indent, depth+1)
		dst, err = appendValue(dst, e, depth+1, indent, order, childPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		if i < len(arr)-1 {
			dst = append(dst, ',')
		}
		dst = append(dst, '\n')
	}
	dst = appendPad(dst, indent, depth)
	return append(dst, ']'), nil
}

func appendObject(dst []byte, obj Object, depth int, indent string, order keyOrderMap, path string) ([]byte, error) {
	if len(obj) == 0 {
		return append(dst, "{}"...), nil
	}
	keys := orderedKeys(obj, order, path)
	dst = append(dst, '{', '\n')
	var err error
	for i, k := range keys {
		dst = appendPad(dst, indent, depth+1)
		dst, err = appendJSONString(dst, k)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ':', ' ')
		dst, err = appendValue(dst, obj[k], depth+1, indent, order, childPath(path, k))
		if err != nil {
			return nil, err
		}
		if i < len(keys)-1 {
			dst = append(dst, ',')
		}
		dst = append(dst, '\n')
	}
	dst = appendPad(dst, indent, depth)
	return append(dst, '}'), nil
}

// orderedKeys returns the keys of obj: recorded original order first, then
// keys absent from the record sorted lexicographically.
func orderedKeys(obj Object, order keyOrderMap, path string) []string {
	recorded := order.lookup(path)
	keys := make([]string, 0, len(obj))
	seen := make(map[string]bool, len(obj))
	for _, k := range recorded {
		if _, ok := obj[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(obj)-len(keys))
	for k := range obj {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func appendPad(dst []byte, indent string, depth int) []byte {
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

func childPath(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

func appendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v has no JSON representation", ErrUnsupportedValue, f)
	}
	// Match encoding/json: plain notation for the usual range, exponent
	// notation only when it would be unreadable otherwise.
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(dst, f, format, -1, 64), nil
}

const hexDigits = "0123456789abcdef"

func appendJSONString(dst []byte, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: invalid UTF-8 in %q", ErrEncodingFailure, s)
	}
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"'), nil
}
