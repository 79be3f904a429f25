// Package value provides Value, a JSON-shaped tagged union used as the
// element type of caches that hold heterogeneous settings.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is one of Empty, String, Number, Bool, Object or Array.
// The zero Value is Empty and encodes as JSON null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	arr  []Value
}

// Empty returns the empty Value.
func Empty() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array returns an Array holding a copy of vs.
func Array(vs ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value{}, vs...)}
}

// Object returns an Object holding a copy of m.
func Object(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindObject, obj: cp}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Str returns the string and whether v is a String.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the number and whether v is a Number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean and whether v is a Bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Field returns the member k of an Object.
func (v Value) Field(k string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.obj[k]
	return f, ok
}

// Keys returns the sorted member names of an Object.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the elements of an Array.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value{}, v.arr...)
}

// Len is the number of members of an Object or elements of an Array.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	default:
		return 0
	}
}

// Equal reports deep equality. NaN numbers never compare equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, x := range v.obj {
			y, ok := o.obj[k]
			if !ok || !x.Equal(y) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v to the plain Go shape encoding/json would produce:
// nil, string, float64, bool, map[string]any, []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, x := range v.obj {
			m[k] = x.Interface()
		}
		return m
	case KindArray:
		s := make([]any, len(v.arr))
		for i, x := range v.arr {
			s[i] = x.Interface()
		}
		return s
	default:
		return nil
	}
}

// From converts a plain Go value (as produced by encoding/json into any) to a Value.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Empty(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("member %q: %w", k, err)
			}
			m[k] = ev
		}
		return Value{kind: KindObject, obj: m}, nil
	case map[any]any:
		// binary decoders that allow non-string map keys
		m := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("value: object key %v is %T, not string", k, k)
			}
			ev, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("member %q: %w", ks, err)
			}
			m[ks] = ev
		}
		return Value{kind: KindObject, obj: m}, nil
	case []any:
		s := make([]Value, len(t))
		for i, e := range t {
			ev, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			s[i] = ev
		}
		return Value{kind: KindArray, arr: s}, nil
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", x)
	}
}

// Parse decodes JSON text into a Value. "null" yields Empty.
func Parse(b []byte) (Value, error) {
	var v Value
	err := json.Unmarshal(b, &v)
	return v, err
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber && (math.IsNaN(v.num) || math.IsInf(v.num, 0)) {
		return nil, fmt.Errorf("value: number %v has no JSON form", v.num)
	}
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	parsed, err := From(x)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%%!value(%v)", err)
	}
	return string(b)
}
