// Package sloghooks reports keyedcache events to a *slog.Logger.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    LoadEvery: 10, // sample logs: ~every 10th load
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := keyedcache.New[value.Value](keyedcache.Options[value.Value]{
//	    Provider: provider,
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/keyedcache"
)

type Options struct {
	// Sampling for the chatty events; 0/1 = log all.
	LoadEvery uint64
	MissEvery uint64
	SkipEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	loadCtr atomic.Uint64
	missCtr atomic.Uint64
	skipCtr atomic.Uint64
}

var _ keyedcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Loaded(storageKey string) {
	if h.l == nil || !sample(h.opts.LoadEvery, &h.loadCtr) {
		return
	}
	h.l.Debug("keyedcache.loaded", "key", h.redact(storageKey))
}

func (h *Hooks) Missed(storageKey string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("keyedcache.missed", "key", h.redact(storageKey))
}

func (h *Hooks) WriteSkipped(storageKey string) {
	if h.l == nil || !sample(h.opts.SkipEvery, &h.skipCtr) {
		return
	}
	h.l.Debug("keyedcache.write_skipped", "key", h.redact(storageKey))
}

func (h *Hooks) Defaulted(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Info("keyedcache.defaulted", "key", h.redact(storageKey))
}

func (h *Hooks) DecodeError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("keyedcache.decode_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) StoreError(op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("keyedcache.store_error",
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}
