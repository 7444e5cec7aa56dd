package logging

import (
	"io"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileSinkMaxSizeMB is effectively unbounded: flight logs are small and
// restart-rotated, not size-rotated.
const fileSinkMaxSizeMB = 1024 * 1024

// NewFileSyncer opens a restart-rotated log file sink at filename:
// lumberjack moves the previous run's file out of the way on open
// rather than appending to it or truncating it mid-flight, so each
// process start's log is self-contained. The returned io.Closer should
// be closed on shutdown. A non-nil error means the rotation itself
// failed; the returned syncer still appends to the existing file in
// that case, so callers can choose whether a rotation failure should
// block startup.
func NewFileSyncer(filename string) (zapcore.WriteSyncer, io.Closer, error) {
	rotator := &lumberjack.Logger{
		Filename: filename,
		MaxSize:  fileSinkMaxSizeMB,
	}
	err := rotator.Rotate()
	return zapcore.AddSync(rotator), rotator, err
}
