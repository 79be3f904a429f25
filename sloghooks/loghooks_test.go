package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSamplingLogsEveryNth(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{LoadEvery: 3})

	for i := 0; i < 9; i++ {
		h.Loaded("odoo-buddy-config")
	}
	if n := strings.Count(buf.String(), "keyedcache.loaded"); n != 3 {
		t.Fatalf("logged %d loads want 3", n)
	}
}

func TestRedactsKeysByDefault(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{})

	h.StoreError("set", "odoo-buddy-config", errors.New("quota"))
	out := buf.String()
	if strings.Contains(out, "odoo-buddy-config") {
		t.Fatalf("raw key leaked: %s", out)
	}
	if !strings.Contains(out, "op=set") || !strings.Contains(out, "quota") {
		t.Fatalf("missing fields: %s", out)
	}
}

func TestCustomRedact(t *testing.T) {
	var buf bytes.Buffer
	h := New(newTestLogger(&buf), Options{Redact: func(k string) string { return "k:" + k }})

	h.Defaulted("odoo-buddy-community-pr")
	if !strings.Contains(buf.String(), "k:odoo-buddy-community-pr") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	h := New(nil, Options{})
	h.Loaded("k")
	h.Missed("k")
	h.WriteSkipped("k")
	h.Defaulted("k")
	h.DecodeError("k", errors.New("x"))
	h.StoreError("get", "k", errors.New("x"))
}
