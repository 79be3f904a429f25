// Package zerolog adapts a zerolog.Logger to keyedcache.Logger.
package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/unkn0wn-root/keyedcache"
)

var _ keyedcache.Logger = Logger{}

type Logger struct{ L zerolog.Logger }

// New tags every event with component=keyedcache.
func New(l zerolog.Logger) Logger {
	return Logger{L: l.With().Str("component", "keyedcache").Logger()}
}

func (z Logger) Debug(msg string, f keyedcache.Fields) { z.L.Debug().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Info(msg string, f keyedcache.Fields)  { z.L.Info().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Warn(msg string, f keyedcache.Fields)  { z.L.Warn().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Error(msg string, f keyedcache.Fields) { z.L.Error().Fields(map[string]any(f)).Msg(msg) }
