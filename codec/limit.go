package codec

import "fmt"

// Limit wraps another codec to bound payload sizes in both directions.
// Synced browser storage rejects items over its per-item quota, so an
// oversized Encode fails before the store is touched.
// A bound <= 0 disables that check.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxEncode is the maximum length of a produced payload.
	MaxEncode int
	// MaxDecode is the maximum length of an incoming payload. Decode fails
	// without invoking Inner when it is exceeded.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxEncode)
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
