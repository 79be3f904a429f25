// Package zap adapts a *zap.Logger to keyedcache.Logger.
package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/keyedcache"
)

var _ keyedcache.Logger = Logger{}

type Logger struct{ L *zap.Logger }

// New names the logger "keyedcache" so cache events are easy to filter.
func New(l *zap.Logger) Logger { return Logger{L: l.Named("keyedcache")} }

func (z Logger) Debug(msg string, f keyedcache.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f keyedcache.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f keyedcache.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f keyedcache.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f keyedcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
