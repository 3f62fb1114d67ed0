package transport

import (
	"github.com/pion/logging"
	"github.com/sirupsen/logrus"
)

// pionLogger adapts a logrus.Entry to pion/logging's LeveledLogger shape,
// so a DatagramTransport/SecuredTransport implementation written to pion's
// own logging convention logs through this module's logrus output instead
// of needing its own sink wired in separately.
type pionLogger struct {
	entry *logrus.Entry
}

func (l *pionLogger) Trace(msg string)                          { l.entry.Trace(msg) }
func (l *pionLogger) Tracef(format string, args ...interface{}) { l.entry.Tracef(format, args...) }
func (l *pionLogger) Debug(msg string)                          { l.entry.Debug(msg) }
func (l *pionLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *pionLogger) Info(msg string)                           { l.entry.Info(msg) }
func (l *pionLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *pionLogger) Warn(msg string)                           { l.entry.Warn(msg) }
func (l *pionLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *pionLogger) Error(msg string)                          { l.entry.Error(msg) }
func (l *pionLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// pionLoggerFactory implements logging.LoggerFactory over logrus, scoped
// per subsystem name the way pion's own DefaultLoggerFactory is.
type pionLoggerFactory struct {
	base *logrus.Entry
}

// NewLoggerFactory returns a logging.LoggerFactory that hands out
// pion/logging-shaped loggers backed by base. It exists so a
// DatagramTransport/SecuredTransport implementation borrowed from the
// pion ecosystem can be constructed against this module's logrus output
// without the caller needing to stand up a second logging sink.
func NewLoggerFactory(base *logrus.Entry) logging.LoggerFactory {
	return &pionLoggerFactory{base: base}
}

func (f *pionLoggerFactory) NewLogger(scope string) logging.LeveledLogger {
	return &pionLogger{entry: f.base.WithField("pion_scope", scope)}
}
