// Package providertest checks provider.Provider implementations against the
// contract the cache relies on.
package providertest

import (
	"bytes"
	"context"
	"testing"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// Contract exercises p with text payloads. Keys are namespaced by prefix so
// shared backends (redis, nats, postgres) can run it repeatedly.
func Contract(t *testing.T, p pr.Provider, prefix string) {
	t.Helper()
	ctx := context.Background()
	k := prefix + "community-pr"

	t.Run("miss", func(t *testing.T) {
		b, ok, err := p.Get(ctx, prefix+"never-written")
		if err != nil || ok || b != nil {
			t.Fatalf("Get miss: b=%q ok=%v err=%v", b, ok, err)
		}
	})

	t.Run("set-get", func(t *testing.T) {
		want := []byte(`[{"id":7,"title":"Fix ünïcode"}]`)
		if err := p.Set(ctx, k, want); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok, err := p.Get(ctx, k)
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get=%q want %q", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := p.Set(ctx, k, []byte("null")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, ok, err := p.Get(ctx, k)
		if err != nil || !ok || string(got) != "null" {
			t.Fatalf("Get=%q ok=%v err=%v", got, ok, err)
		}
	})

	t.Run("keys-are-distinct", func(t *testing.T) {
		other := prefix + "enterprise-pr"
		if err := p.Set(ctx, other, []byte("[]")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, _, err := p.Get(ctx, k)
		if err != nil || string(got) != "null" {
			t.Fatalf("neighbour write leaked: %q err=%v", got, err)
		}
		if err := p.Del(ctx, other); err != nil {
			t.Fatalf("Del: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := p.Del(ctx, k); err != nil {
			t.Fatalf("Del: %v", err)
		}
		if _, ok, err := p.Get(ctx, k); err != nil || ok {
			t.Fatalf("Get after Del: ok=%v err=%v", ok, err)
		}
		if err := p.Del(ctx, k); err != nil {
			t.Fatalf("Del missing: %v", err)
		}
	})
}
