package zerolog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/unkn0wn-root/keyedcache"
)

func TestComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	l.Info("default persisted", keyedcache.Fields{"key": "community-pr"})

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("not JSON: %v (%s)", err, buf.String())
	}
	if ev["component"] != "keyedcache" || ev["key"] != "community-pr" || ev["level"] != "info" {
		t.Fatalf("event=%v", ev)
	}
}
