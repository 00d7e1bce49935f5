package minpatch

import "fmt"

// Replace returns a copy of data with the value at path swapped for v. Only
// the located value's byte range changes; indentation, key order and every
// byte outside that range survive untouched. The replacement is rendered at
// the path's depth using the document's own indentation unit and recorded
// key order. Returns ErrPathNotFound when the path cannot be located, which
// callers are expected to answer with Rebuild. Missing intermediate objects
// are never synthesized here.
func Replace(data []byte, path Path, v Value) ([]byte, error) {
	return replace(data, path, v, detectIndent(data))
}

func replace(data []byte, path Path, v Value, indent string) ([]byte, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: replace needs a non-empty path", ErrInvalidPath)
	}
	if err := checkBalanced(data); err != nil {
		return nil, err
	}
	start, end := findValueRange(data, path)
	if start < 0 {
		return nil, ErrPathNotFound
	}
	rendered, err := renderValue(v, len(path), indent, buildKeyOrder(data), path.hintString())
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)-(end-start)+len(rendered))
	out = append(out, data[:start]...)
	out = append(out, rendered...)
	out = append(out, data[end:]...)
	return out, nil
}

// Delete returns a copy of data with the object member at path removed. The
// deletion span swallows exactly one adjacent comma: the trailing comma plus
// following whitespace when the member has a later sibling, or the previous
// sibling's comma when it was last. Deleting the only member collapses the
// object to {}. The final path segment must be an object key.
func Delete(data []byte, path Path) ([]byte, error) {
	return deleteMember(data, path)
}

func deleteMember(data []byte, path Path) ([]byte, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: delete needs a non-empty path", ErrInvalidPath)
	}
	last := path[len(path)-1]
	if last.IsIndex() {
		return nil, fmt.Errorf("%w: delete addresses an object member, not an array element", ErrInvalidPath)
	}
	if err := checkBalanced(data); err != nil {
		return nil, err
	}
	valStart, valEnd := findValueRange(data, path)
	if valStart < 0 {
		return nil, ErrPathNotFound
	}
	keyStart, _ := findKeyRange(data, valStart, last.Key)
	if keyStart < 0 {
		return nil, ErrPathNotFound
	}

	spanStart, spanEnd := keyStart, valEnd
	next := valEnd
	for next < len(data) && data[next] <= ' ' {
		next++
	}
	if next < len(data) && data[next] == ',' {
		// Not the last sibling: swallow the trailing comma and the
		// whitespace up to the next member, which then starts exactly
		// where the deleted key began.
		next++
		for next < len(data) && data[next] <= ' ' {
			next++
		}
		spanEnd = next
	} else {
		prev := keyStart - 1
		for prev >= 0 && data[prev] <= ' ' {
			prev--
		}
		switch {
		case prev >= 0 && data[prev] == ',':
			// Last sibling: the previous member's comma goes with it.
			spanStart = prev
		case prev >= 0 && data[prev] == '{':
			// Only member: collapse the object to {}.
			spanStart = prev + 1
			spanEnd = next
		}
	}

	out := make([]byte, 0, len(data)-(spanEnd-spanStart))
	out = append(out, data[:spanStart]...)
	out = append(out, data[spanEnd:]...)
	return out, nil
}
