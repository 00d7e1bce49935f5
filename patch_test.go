package minpatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

// TestReplaceScalarExact verifies the headline property: replacing one
// nested scalar changes only that token and nothing else.
func TestReplaceScalarExact(t *testing.T) {
	input := "{\n  \"feature\": {\n    \"enabled\": true,\n    \"count\": 5\n  }\n}"
	want := "{\n  \"feature\": {\n    \"enabled\": true,\n    \"count\": 7\n  }\n}"

	out, err := Replace([]byte(input), MustParsePath("feature.count"), Int(7))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if string(out) != want {
		t.Errorf("Replace rewrote more than the value token:\ngot  %q\nwant %q", out, want)
	}
}

// TestReplacePreservesKeyOrder checks that sibling keys keep their literal
// order around an edited member.
func TestReplacePreservesKeyOrder(t *testing.T) {
	input := []byte(`{"a":1,"b":2,"c":3}`)

	out, err := Replace(input, MustParsePath("b"), Int(9))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if string(out) != `{"a":1,"b":9,"c":3}` {
		t.Errorf("unexpected output: %s", out)
	}
}

// TestReplaceArrayElement confirms array sibling elements and formatting
// survive an index replacement.
func TestReplaceArrayElement(t *testing.T) {
	input := []byte(`[10, 20, 30]`)

	out, err := Replace(input, MustParsePath("[1]"), Int(25))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if string(out) != `[10, 25, 30]` {
		t.Errorf("unexpected output: %s", out)
	}
}

// TestReplaceIdempotent replaces values with their current contents and
// expects byte-identical output.
func TestReplaceIdempotent(t *testing.T) {
	input := "{\n  \"feature\": {\n    \"enabled\": true,\n    \"count\": 5\n  },\n  \"name\": \"prod\"\n}"

	for _, path := range []string{"feature.count", "feature.enabled", "name", "feature"} {
		p := MustParsePath(path)
		current, err := ValueAt([]byte(input), p)
		if err != nil {
			t.Fatalf("ValueAt(%s) failed: %v", path, err)
		}
		out, err := Replace([]byte(input), p, current)
		if err != nil {
			t.Fatalf("Replace(%s) failed: %v", path, err)
		}
		if string(out) != input {
			t.Errorf("Replace(%s) with current value changed the text:\ngot  %q\nwant %q", path, out, input)
		}
	}
}

// TestReplaceNestedValueTypes runs a replacement per value kind and checks
// the result through an independent reader.
func TestReplaceNestedValueTypes(t *testing.T) {
	input := []byte(`{"s":"old","i":1,"f":1.5,"b":false,"n":null,"arr":[1,2],"obj":{"x":1}}`)

	cases := []struct {
		path  string
		value Value
		check func(r gjson.Result) bool
	}{
		{"s", String("new"), func(r gjson.Result) bool { return r.String() == "new" }},
		{"i", Int(42), func(r gjson.Result) bool { return r.Int() == 42 }},
		{"f", Float(2.25), func(r gjson.Result) bool { return r.Float() == 2.25 }},
		{"b", Bool(true), func(r gjson.Result) bool { return r.Bool() }},
		{"n", String("set"), func(r gjson.Result) bool { return r.String() == "set" }},
		{"arr.1", Int(9), func(r gjson.Result) bool { return r.Int() == 9 }},
		{"obj.x", Null{}, func(r gjson.Result) bool { return r.Type == gjson.Null }},
	}
	for _, tc := range cases {
		out, err := Replace(input, MustParsePath(tc.path), tc.value)
		if err != nil {
			t.Fatalf("Replace(%s) failed: %v", tc.path, err)
		}
		if !gjson.ValidBytes(out) {
			t.Fatalf("Replace(%s) produced invalid JSON: %s", tc.path, out)
		}
		if !tc.check(gjson.GetBytes(out, tc.path)) {
			t.Errorf("Replace(%s): unexpected value in %s", tc.path, out)
		}
	}
}

// TestReplaceEscapedString makes sure rendered strings survive a round trip
// through escaping.
func TestReplaceEscapedString(t *testing.T) {
	input := []byte(`{"msg":"plain"}`)
	text := "line1\nline2\t\"quoted\" \\ end"

	out, err := Replace(input, MustParsePath("msg"), String(text))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := gjson.GetBytes(out, "msg").String(); got != text {
		t.Errorf("string did not round-trip: got %q want %q", got, text)
	}
}

// TestReplaceNotFound covers the recoverable miss cases: missing keys,
// missing parents, scalar parents, and out-of-range indices.
func TestReplaceNotFound(t *testing.T) {
	input := []byte(`{"a":{"b":1},"c":5,"arr":[1,2]}`)

	for _, path := range []string{"zzz", "a.zzz", "c.b", "a.b.c", "arr.2", "arr.5", "c.0"} {
		_, err := Replace(input, MustParsePath(path), Int(1))
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("Replace(%s): want ErrPathNotFound, got %v", path, err)
		}
	}
}

// TestReplaceSiblingSubtreeMiss pins the missing-parent policy: a key that
// exists only in a sibling subtree at the same depth must not match.
func TestReplaceSiblingSubtreeMiss(t *testing.T) {
	input := []byte(`{"a":5,"z":{"b":9}}`)

	_, err := Replace(input, MustParsePath("a.b"), Int(1))
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("want ErrPathNotFound, got %v", err)
	}
	if gjson.GetBytes(input, "z.b").Int() != 9 {
		t.Fatal("input mutated by failed replace")
	}
}

// TestReplaceInvalidInputs checks the abort cases that must never produce
// output.
func TestReplaceInvalidInputs(t *testing.T) {
	if _, err := Replace([]byte(`{"a":1}`), nil, Int(1)); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("empty path: want ErrInvalidPath, got %v", err)
	}
	for _, doc := range []string{`{"a":1`, `{"a":"1}`, `{"a":1]}`, `[1,2}`} {
		if _, err := Replace([]byte(doc), MustParsePath("a"), Int(1)); !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("doc %q: want ErrMalformedDocument, got %v", doc, err)
		}
	}
}

// TestDeleteMemberPositions deletes the first, middle, and last member and
// expects valid JSON with no dangling commas each time.
func TestDeleteMemberPositions(t *testing.T) {
	cases := []struct {
		doc  string
		path string
		want string
	}{
		{`{"a":1,"b":2,"c":3}`, "a", `{"b":2,"c":3}`},
		{`{"a":1,"b":2,"c":3}`, "b", `{"a":1,"c":3}`},
		{`{"a":1,"b":2,"c":3}`, "c", `{"a":1,"b":2}`},
		{`{"a":1}`, "a", `{}`},
		{
			"{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}",
			"b",
			"{\n  \"a\": 1,\n  \"c\": 3\n}",
		},
		{
			"{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}",
			"c",
			"{\n  \"a\": 1,\n  \"b\": 2\n}",
		},
		{
			"{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}",
			"a",
			"{\n  \"b\": 2,\n  \"c\": 3\n}",
		},
	}
	for _, tc := range cases {
		out, err := Delete([]byte(tc.doc), MustParsePath(tc.path))
		if err != nil {
			t.Fatalf("Delete(%s) from %q failed: %v", tc.path, tc.doc, err)
		}
		if string(out) != tc.want {
			t.Errorf("Delete(%s) from %q:\ngot  %q\nwant %q", tc.path, tc.doc, out, tc.want)
		}
		if !gjson.ValidBytes(out) {
			t.Errorf("Delete(%s) produced invalid JSON: %q", tc.path, out)
		}
	}
}

// TestDeleteNested removes a member two levels down and leaves the rest of
// the document byte-identical.
func TestDeleteNested(t *testing.T) {
	input := "{\n  \"outer\": {\n    \"keep\": true,\n    \"drop\": \"x\"\n  },\n  \"tail\": 0\n}"
	want := "{\n  \"outer\": {\n    \"keep\": true\n  },\n  \"tail\": 0\n}"

	out, err := Delete([]byte(input), MustParsePath("outer.drop"))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if string(out) != want {
		t.Errorf("unexpected output:\ngot  %q\nwant %q", out, want)
	}
}

// TestDeleteErrors covers the failure taxonomy for delete.
func TestDeleteErrors(t *testing.T) {
	input := []byte(`{"a":1,"arr":[1,2]}`)

	if _, err := Delete(input, MustParsePath("zzz")); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("missing key: want ErrPathNotFound, got %v", err)
	}
	if _, err := Delete(input, MustParsePath("arr.1")); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("index-terminal delete: want ErrInvalidPath, got %v", err)
	}
	if _, err := Delete(input, nil); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("empty path: want ErrInvalidPath, got %v", err)
	}
	if _, err := Delete([]byte(`{"a":`+"\x00"), MustParsePath("a")); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("malformed doc: want ErrMalformedDocument, got %v", err)
	}
}

// TestDocumentLifecycle exercises the immutable Document wrapper: edits
// return new values and never touch the receiver.
func TestDocumentLifecycle(t *testing.T) {
	input := "{\n\t\"a\": 1,\n\t\"b\": 2\n}"

	doc, err := NewDocument([]byte(input))
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if doc.Indent() != "\t" {
		t.Fatalf("detected indent %q, want tab", doc.Indent())
	}

	edited, err := doc.Replace(MustParsePath("a"), Int(10))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if doc.String() != input {
		t.Error("Replace mutated the receiver document")
	}
	if gjson.Get(edited.String(), "a").Int() != 10 {
		t.Errorf("edited document wrong: %s", edited)
	}

	smaller, err := edited.Delete(MustParsePath("b"))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gjson.Get(smaller.String(), "b").Exists() {
		t.Errorf("member b survived delete: %s", smaller)
	}
	if !strings.Contains(edited.String(), `"b"`) {
		t.Error("Delete mutated the receiver document")
	}

	if _, err := NewDocument([]byte(`{"a":`)); !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("NewDocument on malformed text: want ErrMalformedDocument, got %v", err)
	}
}
