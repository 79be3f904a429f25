// Package logrus adapts a *logrus.Entry to keyedcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/keyedcache"
)

var _ keyedcache.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

// New tags every entry with component=keyedcache.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "keyedcache")}
}

func (l Logger) Debug(msg string, f keyedcache.Fields) { l.E.WithFields(logrus.Fields(f)).Debug(msg) }
func (l Logger) Info(msg string, f keyedcache.Fields)  { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l Logger) Warn(msg string, f keyedcache.Fields)  { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l Logger) Error(msg string, f keyedcache.Fields) { l.E.WithFields(logrus.Fields(f)).Error(msg) }
