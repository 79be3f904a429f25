package codec

// Bytes is an identity codec for []byte values.
// The empty value of a Bytes cache is nil, which encodes to an empty payload.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String stores Go strings verbatim, without JSON quoting. Use it for stores
// shared with tools that write plain text (the keyring token, for one).
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
