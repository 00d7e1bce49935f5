package minpatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Value is the in-memory representation of a JSON value. It is a closed
// union: the only implementations are Null, Bool, Int, Float, String, Array
// and Object. Integer and floating-point numbers are distinct variants, so
// no code ever has to probe a boxed number for its float-ness.
type Value interface {
	isValue()
}

// Null is the JSON null value.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Int is a JSON number without a fraction or exponent.
type Int int64

// Float is a JSON number written with a fraction or exponent.
type Float float64

// String is a JSON string.
type String string

// Array is an ordered list of JSON values.
type Array []Value

// Object is a JSON object. Iteration order is not significant; emission
// order is decided by the recorded key order of the original document.
type Object map[string]Value

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Decode parses strict JSON text into a Value. Number literals are
// classified by their spelling: a literal containing '.', 'e' or 'E' becomes
// a Float, anything else an Int. An integer literal that overflows int64
// falls back to Float.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrMalformedDocument)
	}
	return FromInterface(raw)
}

func numberValue(n json.Number) (Value, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return Float(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		// Integer literal outside int64 range.
		f, ferr := n.Float64()
		if ferr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, ferr)
		}
		return Float(f), nil
	}
	return Int(i), nil
}

// FromInterface converts a Go value to a Value. The accepted types are
// closed: nil, bool, string, the integer kinds, float32/float64,
// json.Number, []interface{}, map[string]interface{}, and Value itself.
// Anything else returns ErrUnsupportedValue.
func FromInterface(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(t), nil
	case int16:
		return Int(t), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(int64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		if t > 1<<63-1 {
			return nil, fmt.Errorf("%w: uint64 %d overflows int64", ErrUnsupportedValue, t)
		}
		return Int(int64(t)), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return numberValue(t)
	case []interface{}:
		arr := make(Array, len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]interface{}:
		obj := make(Object, len(t))
		for k, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			obj[k] = ev
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// copyValue returns a deep copy of v. Scalar variants are value types and
// copy by assignment; only containers need new storage.
func copyValue(v Value) Value {
	switch t := v.(type) {
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case Object:
		out := make(Object, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// ValueAt locates the value at path in the document text and decodes it.
func ValueAt(data []byte, path Path) (Value, error) {
	if len(path) == 0 {
		return Decode(data)
	}
	start, end := findValueRange(data, path)
	if start < 0 {
		return nil, ErrPathNotFound
	}
	return Decode(data[start:end])
}
