package promhooks

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/unkn0wn-root/keyedcache"
	"github.com/unkn0wn-root/keyedcache/provider/memory"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestHooksCountPerCache(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	a := m.For("a")
	b := m.For("b")

	a.Loaded("k")
	a.Loaded("k")
	b.Missed("k")
	a.StoreError("set", "k", errors.New("x"))

	if v := counterValue(t, m.Loads.WithLabelValues("a")); v != 2 {
		t.Fatalf("loads{a}=%v want 2", v)
	}
	if v := counterValue(t, m.Loads.WithLabelValues("b")); v != 0 {
		t.Fatalf("loads{b}=%v want 0", v)
	}
	if v := counterValue(t, m.Misses.WithLabelValues("b")); v != 1 {
		t.Fatalf("misses{b}=%v want 1", v)
	}
	if v := counterValue(t, m.StoreErrors.WithLabelValues("a", "set")); v != 1 {
		t.Fatalf("store_errors{a,set}=%v want 1", v)
	}
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if _, err := NewMetrics(nil); err != nil {
		t.Fatalf("nil registerer: %v", err)
	}
}

func TestWiredIntoCache(t *testing.T) {
	ctx := context.Background()
	m, err := NewMetrics(nil)
	if err != nil {
		t.Fatal(err)
	}
	cc, err := keyedcache.New[string](keyedcache.Options[string]{
		Provider: memory.New(map[string]string{"odoo-buddy-seen": `"x"`}),
		Hooks:    m.For("settings"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := cc.Get(ctx, "seen"); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Get(ctx, "unseen"); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Set(ctx, "seen", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := cc.Default(ctx, "fresh", "d"); err != nil {
		t.Fatal(err)
	}

	checks := map[string]prometheus.Counter{
		"loads":    m.Loads.WithLabelValues("settings"),
		"misses":   m.Misses.WithLabelValues("settings"),
		"skips":    m.Skips.WithLabelValues("settings"),
		"defaults": m.Defaults.WithLabelValues("settings"),
	}
	want := map[string]float64{"loads": 1, "misses": 2, "skips": 1, "defaults": 1}
	for name, c := range checks {
		if v := counterValue(t, c); v != want[name] {
			t.Fatalf("%s=%v want %v", name, v, want[name])
		}
	}
}
