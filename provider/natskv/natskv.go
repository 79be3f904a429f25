// Package natskv stores keyedcache entries in a NATS JetStream key-value
// bucket, which replicates them to every client of the bucket the way synced
// browser storage does.
package natskv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Provider wraps a jetstream.KeyValue bucket.
type Provider struct {
	kv jetstream.KeyValue
	nc *nats.Conn // owned connection, nil when built with New
}

var _ pr.Provider = (*Provider)(nil)

// New wraps an existing bucket. The caller keeps ownership of the connection.
func New(kv jetstream.KeyValue) *Provider {
	return &Provider{kv: kv}
}

// Dial connects to url and opens (or creates) bucket. The provider owns the connection.
func Dial(ctx context.Context, url, bucket string) (*Provider, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("natskv: connect %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("natskv: jetstream: %w", err)
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "odoo-buddy settings",
		History:     1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("natskv: bucket %s: %w", bucket, err)
	}
	return &Provider{kv: kv, nc: nc}, nil
}

// Get retrieves a value from the bucket.
func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := p.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value(), true, nil
}

// Set stores a value in the bucket.
func (p *Provider) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.kv.Put(ctx, encodeKey(key), value)
	return err
}

// Del removes a value from the bucket.
func (p *Provider) Del(ctx context.Context, key string) error {
	err := p.kv.Delete(ctx, encodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (p *Provider) Close(_ context.Context) error {
	if p.nc != nil {
		p.nc.Close()
	}
	return nil
}

// NATS keys are limited to [-/_=.a-zA-Z0-9] and reject leading or doubled dots;
// everything but [-/=a-zA-Z0-9] is escaped as _XX.
func encodeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		ch := key[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '/', ch == '=':
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "_%02X", ch)
		}
	}
	return b.String()
}
