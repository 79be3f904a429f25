package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/keyedcache"
)

func TestFieldsAndName(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(zap.New(core))

	l.Error("store write failed", keyedcache.Fields{"key": "config", "err": errors.New("quota")})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want 1", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "keyedcache" {
		t.Fatalf("logger name=%q", e.LoggerName)
	}
	ctx := e.ContextMap()
	if ctx["key"] != "config" || ctx["err"] != "quota" {
		t.Fatalf("fields=%v", ctx)
	}
}
