// Package codec turns cached values into the payloads written to a persistent
// store and back. JSON is the default and matches what synced browser storage
// expects; binary codecs can be wrapped in Text for text-only stores.
package codec

// Codec encodes/decodes values V to []byte for storage.
// Encode of the empty value must be deterministic: the cache compares raw
// store payloads against it.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
