// Package promhooks counts keyedcache events with Prometheus metrics.
// Every series carries a "cache" label so several caches can share a registry.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/keyedcache"
)

// Metrics holds the collectors. Register them once per registry.
type Metrics struct {
	Loads        *prometheus.CounterVec
	Misses       *prometheus.CounterVec
	Skips        *prometheus.CounterVec
	Defaults     *prometheus.CounterVec
	DecodeErrors *prometheus.CounterVec
	StoreErrors  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg (nil => no registration).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_loads_total",
			Help: "Values loaded from the persistent store into the in-memory layer.",
		}, []string{"cache"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_misses_total",
			Help: "Reads for which the persistent store had no value.",
		}, []string{"cache"}),
		Skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_write_skips_total",
			Help: "Writes skipped because the cached value was unchanged.",
		}, []string{"cache"}),
		Defaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_defaults_total",
			Help: "Default values persisted for keys missing from the store.",
		}, []string{"cache"}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_decode_errors_total",
			Help: "Stored payloads that could not be decoded.",
		}, []string{"cache"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keyedcache_store_errors_total",
			Help: "Persistent store failures by operation.",
		}, []string{"cache", "op"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Loads, m.Misses, m.Skips, m.Defaults, m.DecodeErrors, m.StoreErrors} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks increments Metrics under a fixed cache label.
type Hooks struct {
	m     *Metrics
	cache string
}

var _ keyedcache.Hooks = (*Hooks)(nil)

// For returns hooks reporting under the given cache label (usually the key prefix).
func (m *Metrics) For(cache string) *Hooks {
	return &Hooks{m: m, cache: cache}
}

func (h *Hooks) Loaded(string)             { h.m.Loads.WithLabelValues(h.cache).Inc() }
func (h *Hooks) Missed(string)             { h.m.Misses.WithLabelValues(h.cache).Inc() }
func (h *Hooks) WriteSkipped(string)       { h.m.Skips.WithLabelValues(h.cache).Inc() }
func (h *Hooks) Defaulted(string)          { h.m.Defaults.WithLabelValues(h.cache).Inc() }
func (h *Hooks) DecodeError(string, error) { h.m.DecodeErrors.WithLabelValues(h.cache).Inc() }
func (h *Hooks) StoreError(op, _ string, _ error) {
	h.m.StoreErrors.WithLabelValues(h.cache, op).Inc()
}
