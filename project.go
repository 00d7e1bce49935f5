package minpatch

// Project builds a minimal tree containing only the values at editedPaths
// plus the scaffolding needed to reach them. Intermediate objects are merged
// across paths, never overwritten. When a path crosses an array index, every
// sibling element up to and including that index is copied from the source
// so the index stays valid in the projection. A path absent from full is a
// normal not-found: it contributes nothing and projection continues.
func Project(full Value, editedPaths []string) (Value, error) {
	var result Value
	for _, p := range editedPaths {
		path, err := ParsePath(p)
		if err != nil {
			return nil, err
		}
		sub, ok := projectPath(full, path)
		if !ok {
			continue
		}
		if result == nil {
			result = sub
		} else {
			result = mergeValue(result, sub)
		}
	}
	if result == nil {
		if _, ok := full.(Array); ok {
			return Array{}, nil
		}
		return Object{}, nil
	}
	return result, nil
}

// projectPath copies the spine of one path out of src. Every node in the
// returned tree is freshly allocated, so later merges never reach back into
// the source tree.
func projectPath(src Value, path Path) (Value, bool) {
	if len(path) == 0 {
		return copyValue(src), true
	}
	seg := path[0]
	if seg.IsIndex() {
		arr, ok := src.(Array)
		if !ok || seg.Index >= len(arr) {
			return nil, false
		}
		child, ok := projectPath(arr[seg.Index], path[1:])
		if !ok {
			return nil, false
		}
		out := make(Array, seg.Index+1)
		for i := 0; i < seg.Index; i++ {
			out[i] = copyValue(arr[i])
		}
		out[seg.Index] = child
		return out, true
	}
	obj, ok := src.(Object)
	if !ok {
		return nil, false
	}
	inner, ok := obj[seg.Key]
	if !ok {
		return nil, false
	}
	child, ok := projectPath(inner, path[1:])
	if !ok {
		return nil, false
	}
	return Object{seg.Key: child}, true
}

// mergeValue folds add into dst. Objects union recursively, arrays merge
// element-wise with the longer tail kept, and on a scalar collision the
// value already in dst wins.
func mergeValue(dst, add Value) Value {
	switch d := dst.(type) {
	case Object:
		a, ok := add.(Object)
		if !ok {
			return dst
		}
		for k, av := range a {
			if dv, exists := d[k]; exists {
				d[k] = mergeValue(dv, av)
			} else {
				d[k] = av
			}
		}
		return d
	case Array:
		a, ok := add.(Array)
		if !ok {
			return dst
		}
		n := len(d)
		if len(a) > n {
			n = len(a)
		}
		out := make(Array, n)
		for i := 0; i < n; i++ {
			switch {
			case i < len(d) && i < len(a):
				out[i] = mergeValue(d[i], a[i])
			case i < len(d):
				out[i] = d[i]
			default:
				out[i] = a[i]
			}
		}
		return out
	default:
		return dst
	}
}
