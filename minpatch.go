// Package minpatch edits JSON text in place while preserving its formatting.
//
// A generic parse/serialize round trip rewrites key order and whitespace,
// which turns a one-value change into a noisy version-control diff. minpatch
// instead locates the exact byte range of the value addressed by a path and
// splices the replacement into that range, leaving every byte outside the
// edited region untouched. When the targeted patch cannot locate a path, the
// caller falls back to Rebuild, which re-emits the whole tree using the key
// order and indentation harvested from the original text.
//
// All operations are pure functions over immutable inputs. The package keeps
// no shared state and performs no I/O; reading and writing the document is
// entirely the caller's concern.
package minpatch

import "errors"

// Error definitions for patch operations
var (
	// ErrPathNotFound is returned when a path cannot be located in the
	// document text. It is a normal outcome: callers are expected to fall
	// back to Rebuild on the in-memory tree.
	ErrPathNotFound = errors.New("path not found in document")

	// ErrInvalidPath is returned for paths the operation cannot accept,
	// such as an empty path or a delete path ending in an array index.
	ErrInvalidPath = errors.New("invalid path")

	// ErrMalformedDocument is returned when the input text has unbalanced
	// quotes or brackets. The operation aborts without producing output.
	ErrMalformedDocument = errors.New("malformed json document")

	// ErrUnsupportedValue is returned when a Go value cannot be expressed
	// as a JSON value, or a number has no JSON representation (NaN, Inf).
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrEncodingFailure is returned when a string cannot be emitted as
	// valid UTF-8 JSON text.
	ErrEncodingFailure = errors.New("text not representable in output encoding")
)

// Document pairs a JSON text with its detected indentation unit. Documents
// are immutable: every successful edit returns a new Document and leaves the
// receiver unchanged.
type Document struct {
	text   []byte
	indent string
}

// NewDocument wraps raw JSON text. The text is copied, and its indentation
// unit is detected once up front. Returns ErrMalformedDocument if quotes or
// brackets do not balance.
func NewDocument(data []byte) (Document, error) {
	if err := checkBalanced(data); err != nil {
		return Document{}, err
	}
	text := make([]byte, len(data))
	copy(text, data)
	return Document{text: text, indent: detectIndent(text)}, nil
}

// Bytes returns the document text. The returned slice is shared with the
// Document and must not be modified.
func (d Document) Bytes() []byte { return d.text }

// String returns the document text.
func (d Document) String() string { return string(d.text) }

// Indent returns the detected indentation unit.
func (d Document) Indent() string { return d.indent }

// Replace splices a new value into the byte range occupied by the value at
// path, preserving every byte outside that range. Returns ErrPathNotFound
// when the path cannot be located; the caller should then fall back to
// Rebuild.
func (d Document) Replace(path Path, v Value) (Document, error) {
	out, err := replace(d.text, path, v, d.indent)
	if err != nil {
		return Document{}, err
	}
	return Document{text: out, indent: d.indent}, nil
}

// Delete removes the object member at path along with exactly one adjacent
// comma, so the result never carries a dangling separator.
func (d Document) Delete(path Path) (Document, error) {
	out, err := deleteMember(d.text, path)
	if err != nil {
		return Document{}, err
	}
	return Document{text: out, indent: d.indent}, nil
}

// Rebuild re-emits the entire tree, reusing the receiver's key order and
// indentation. It is the fallback for edits that Replace or Delete could not
// apply textually.
func (d Document) Rebuild(tree Value) (Document, error) {
	out, err := rebuild(d.text, tree, d.indent)
	if err != nil {
		return Document{}, err
	}
	return Document{text: out, indent: d.indent}, nil
}

// Valid reports whether the quotes and brackets of data balance. It is a
// cheap structural check, not a full grammar validation.
func Valid(data []byte) bool {
	return checkBalanced(data) == nil
}
