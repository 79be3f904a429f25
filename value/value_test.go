package value

import (
	"math"
	"testing"

	"github.com/unkn0wn-root/keyedcache/codec"
)

func TestParseKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{`null`, KindEmpty},
		{`"s"`, KindString},
		{`4`, KindNumber},
		{`-0.25e2`, KindNumber},
		{`false`, KindBool},
		{`{"a":null}`, KindObject},
		{`[]`, KindArray},
	}
	for _, tt := range tests {
		v, err := Parse([]byte(tt.in))
		if err != nil {
			t.Fatalf("Parse(%s): %v", tt.in, err)
		}
		if v.Kind() != tt.kind {
			t.Fatalf("Parse(%s) kind=%v want %v", tt.in, v.Kind(), tt.kind)
		}
		if got := v.String(); tt.in != `-0.25e2` && got != tt.in {
			t.Fatalf("String()=%s want %s", got, tt.in)
		}
	}
	if n, ok := mustParse(t, `-0.25e2`).Num(); !ok || n != -25 {
		t.Fatalf("Num=%v ok=%v", n, ok)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{``, `{`, `nul`, `[1,]`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("Parse(%q) should fail", in)
		}
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, `{"x":[1,"y",{"z":true}],"w":null}`)
	b := mustParse(t, `{"w":null,"x":[1,"y",{"z":true}]}`)
	if !a.Equal(b) {
		t.Fatalf("member order must not matter")
	}
	c := mustParse(t, `{"x":[1,"y",{"z":false}],"w":null}`)
	if a.Equal(c) {
		t.Fatalf("nested difference not detected")
	}
	if String("1").Equal(Number(1)) {
		t.Fatalf("kinds differ")
	}
	if Array().Equal(Empty()) || Object(nil).Equal(Empty()) {
		t.Fatalf("empty containers are values, not Empty")
	}
	if Number(math.NaN()).Equal(Number(math.NaN())) {
		t.Fatalf("NaN must not equal itself")
	}
}

func TestAccessors(t *testing.T) {
	v := mustParse(t, `{"b":2,"a":"x","c":[true]}`)
	if got := v.Keys(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("Keys=%v", got)
	}
	if f, ok := v.Field("a"); !ok || !f.Equal(String("x")) {
		t.Fatalf("Field(a)=%v ok=%v", f, ok)
	}
	if _, ok := v.Field("missing"); ok {
		t.Fatalf("Field(missing) ok")
	}
	c, _ := v.Field("c")
	items := c.Items()
	items[0] = Bool(false)
	if again, _ := v.Field("c"); !again.Items()[0].Equal(Bool(true)) {
		t.Fatalf("Items must return a copy")
	}
	if v.Len() != 3 || c.Len() != 1 || String("abc").Len() != 0 {
		t.Fatalf("Len wrong")
	}
	if _, ok := Number(1).Str(); ok {
		t.Fatalf("Str on Number")
	}
}

func TestObjectCopiesInput(t *testing.T) {
	m := map[string]Value{"a": Number(1)}
	v := Object(m)
	m["a"] = Number(2)
	if f, _ := v.Field("a"); !f.Equal(Number(1)) {
		t.Fatalf("Object shares caller map")
	}
}

func TestFrom(t *testing.T) {
	v, err := From(map[any]any{"n": uint64(3), "l": []any{int8(-1), nil}})
	if err != nil {
		t.Fatal(err)
	}
	if want := mustParse(t, `{"n":3,"l":[-1,null]}`); !v.Equal(want) {
		t.Fatalf("From=%v want %v", v, want)
	}
	if _, err := From(map[any]any{1: "x"}); err == nil {
		t.Fatalf("non-string key accepted")
	}
	if _, err := From(struct{}{}); err == nil {
		t.Fatalf("unsupported type accepted")
	}
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	if _, err := Number(math.Inf(1)).MarshalJSON(); err == nil {
		t.Fatalf("Inf marshalled")
	}
	if _, err := Array(Number(math.NaN())).MarshalJSON(); err == nil {
		t.Fatalf("nested NaN marshalled")
	}
}

func TestThroughCodecs(t *testing.T) {
	cb, err := codec.NewCBOR[any](0)
	if err != nil {
		t.Fatal(err)
	}
	codecs := map[string]codec.Codec[Value]{
		"cbor":    Through{Inner: cb},
		"msgpack": Through{Inner: codec.Msgpack[any]{}},
		"json":    Through{Inner: codec.JSON[any]{}},
	}
	in := mustParse(t, `{"token":"","randNames":true,"n":1.5,"prs":[{"id":7,"labels":[]}],"none":null}`)
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			b, err := c.Encode(in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			out, err := c.Decode(b)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !out.Equal(in) {
				t.Fatalf("round trip=%v want %v", out, in)
			}

			// the empty marker must be stable
			e1, _ := c.Encode(Empty())
			e2, _ := c.Encode(Value{})
			if string(e1) != string(e2) {
				t.Fatalf("empty encodings differ")
			}
			if _, err := c.Encode(Number(math.Inf(-1))); err == nil {
				t.Fatalf("non-finite number encoded")
			}
		})
	}
}

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%s): %v", s, err)
	}
	return v
}
