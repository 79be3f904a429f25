package value

import (
	"fmt"
	"math"

	"github.com/unkn0wn-root/keyedcache/codec"
)

// Through adapts a codec for plain Go values (CBOR, msgpack) to Value.
// Encode hands Inner the shape returned by Interface; Decode converts the
// result back with From.
type Through struct {
	Inner codec.Codec[any]
}

var _ codec.Codec[Value] = Through{}

func (c Through) Encode(v Value) ([]byte, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	return c.Inner.Encode(v.Interface())
}

func (c Through) Decode(b []byte) (Value, error) {
	x, err := c.Inner.Decode(b)
	if err != nil {
		return Value{}, err
	}
	return From(x)
}

func checkFinite(v Value) error {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return fmt.Errorf("value: number %v is not finite", v.num)
		}
	case KindObject:
		for _, x := range v.obj {
			if err := checkFinite(x); err != nil {
				return err
			}
		}
	case KindArray:
		for _, x := range v.arr {
			if err := checkFinite(x); err != nil {
				return err
			}
		}
	}
	return nil
}
