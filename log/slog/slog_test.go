package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/keyedcache"
)

func TestSortedAttrsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("hidden", keyedcache.Fields{"k": 1})
	l.Warn("stored value not decodable", keyedcache.Fields{"z": 1, "a": 2, "key": "config"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug logged below level: %s", out)
	}
	if !strings.Contains(out, "a=2 key=config z=1") {
		t.Fatalf("attrs not sorted: %s", out)
	}
}
