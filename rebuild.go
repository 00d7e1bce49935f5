package minpatch

// Rebuild serializes the entire tree, reusing the key order and indentation
// unit observed in the original text. It is the fallback for edits that the
// targeted patch could not place: given a well-formed tree it always
// produces a valid, readably formatted document, even when original is
// empty or its text never contained the edited path.
func Rebuild(original []byte, tree Value) ([]byte, error) {
	return rebuild(original, tree, detectIndent(original))
}

func rebuild(original []byte, tree Value, indent string) ([]byte, error) {
	out, err := renderValue(tree, 0, indent, buildKeyOrder(original), "")
	if err != nil {
		return nil, err
	}
	if len(original) > 0 && original[len(original)-1] == '\n' {
		out = append(out, '\n')
	}
	return out, nil
}
