package codec

import (
	"encoding/base64"
	"fmt"
)

// Text armours the output of a binary codec as standard base64 so it can be
// written to stores that only accept valid UTF-8 strings.
type Text[V any] struct {
	Inner Codec[V]
}

func (c Text[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out, nil
}

func (c Text[V]) Decode(b []byte) (V, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(b)))
	n, err := base64.StdEncoding.Decode(raw, b)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("text codec: %w", err)
	}
	return c.Inner.Decode(raw[:n])
}
