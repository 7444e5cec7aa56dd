// Package logging provides the structured logger pathbuffer.Path uses to
// record what routine_cleanup decided on a given call. It builds
// directly on zapcore's own WriteSyncer/Core/Encoder pieces, the way
// the rest of the dependency pack wires zap up for its own services,
// rather than introducing a parallel hand-rolled formatting layer.
package logging

import (
	"bytes"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger threaded through pathbuffer.Path. It
// wraps a *zap.SugaredLogger; the zero value is usable and logs nowhere.
type Logger struct {
	sugar *zap.SugaredLogger
}

// encoderConfig mirrors zap's production defaults but logs timestamps
// in UTC, so cleanup-cycle logs from buffers running in different
// timezones can be compared directly, and writes level names in
// capitals.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z0700"))
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// NewLogger builds a Logger named name that writes entries at level and
// above to every syncer given, console-formatted. A nil syncers list
// defaults to stdout.
func NewLogger(name string, level zapcore.Level, syncers ...zapcore.WriteSyncer) Logger {
	if len(syncers) == 0 {
		syncers = []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.NewMultiWriteSyncer(syncers...), level)
	return Logger{sugar: zap.New(core, zap.AddCaller()).Named(name).Sugar()}
}

// NewTestLogger builds a Logger that writes through testing.TB's own
// logger, so buffer diagnostics interleave with test output and only
// surface under go test -v or on failure.
func NewTestLogger(tb testing.TB) Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(tbWriter{tb}), zapcore.DebugLevel)
	return Logger{sugar: zap.New(core, zap.AddCaller()).Sugar()}
}

// Debugw logs msg at debug level with alternating key-value pairs.
func (l Logger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugw(msg, keysAndValues...)
}

// Infow logs msg at info level with alternating key-value pairs.
func (l Logger) Infow(msg string, keysAndValues ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infow(msg, keysAndValues...)
}

// Warnw logs msg at warn level with alternating key-value pairs.
func (l Logger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnw(msg, keysAndValues...)
}

// Errorw logs msg at error level with alternating key-value pairs.
func (l Logger) Errorw(msg string, keysAndValues ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorw(msg, keysAndValues...)
}

// Sync flushes whatever syncers back this logger.
func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}

// tbWriter adapts a testing.TB into an io.Writer, trimming the trailing
// newline zap's console encoder always appends since tb.Logf adds its
// own.
type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Logf("%s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}
