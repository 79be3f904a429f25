package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses the output of Inner. Large favorites lists shrink well,
// which keeps them under per-item store quotas. The result is binary; wrap
// it in Text for string-only stores.
type Zstd[V any] struct {
	inner Codec[V]
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewZstd builds a compressing codec around inner. level follows the zstd
// command line levels (1..22); 0 picks the library default.
func NewZstd[V any](inner Codec[V], level int) (*Zstd[V], error) {
	var eopts []zstd.EOption
	if level > 0 {
		eopts = append(eopts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	enc, err := zstd.NewWriter(nil, eopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Zstd[V]{inner: inner, enc: enc, dec: dec}, nil
}

func (c *Zstd[V]) Encode(v V) ([]byte, error) {
	b, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(b, nil), nil
}

func (c *Zstd[V]) Decode(b []byte) (V, error) {
	raw, err := c.dec.DecodeAll(b, nil)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("zstd decode: %w", err)
	}
	return c.inner.Decode(raw)
}

// Close releases encoder and decoder resources.
func (c *Zstd[V]) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}
