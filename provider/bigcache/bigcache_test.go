package bigcache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/unkn0wn-root/keyedcache/internal/providertest"
	pr "github.com/unkn0wn-root/keyedcache/provider"
)

func newTestProvider(t *testing.T, cfg Config) *Provider {
	t.Helper()
	p, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestContract(t *testing.T) {
	providertest.Contract(t, newTestProvider(t, Config{}), "odoo-buddy-")
}

func TestLen(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t, Config{})
	for _, k := range []string{"a", "b", "c"} {
		if err := p.Set(ctx, k, []byte(k)); err != nil {
			t.Fatal(err)
		}
	}
	if p.Len() != 3 {
		t.Fatalf("Len=%d want 3", p.Len())
	}
}

func TestOversizedEntryIsRejected(t *testing.T) {
	p := newTestProvider(t, Config{HardMaxCacheSizeMB: 1, MaxEntrySize: 64})
	err := p.Set(context.Background(), "big", []byte(strings.Repeat("x", 2<<20)))
	if !errors.Is(err, pr.ErrRejected) {
		t.Fatalf("err=%v want ErrRejected", err)
	}
}
