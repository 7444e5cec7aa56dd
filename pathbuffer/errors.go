package pathbuffer

import "github.com/pkg/errors"

// Sentinel errors for the buffer's error model. Once a buffer exists,
// only ErrOutOfMemory (and ErrBufferExhausted, which wraps it) is
// surfaced to a caller; ErrInvalidPoint is returned only by New for an
// invalid launch point and is otherwise absorbed by dropping the
// offending sample, and errDegenerateInput is a precondition violation
// that should never occur in practice.
var (
	// ErrOutOfMemory is returned by RoutineCleanup when no compaction
	// strategy can free enough slots. Terminal for the buffer.
	ErrOutOfMemory = errors.New("pathbuffer: out of memory, no compaction strategy freed enough slots")

	// ErrBufferExhausted is returned by AppendIfFarEnough once the buffer
	// has entered the terminal EXHAUSTED state. It wraps ErrOutOfMemory so
	// errors.Is(err, ErrOutOfMemory) still holds.
	ErrBufferExhausted = errors.Wrap(ErrOutOfMemory, "pathbuffer: buffer is exhausted, ingestion refused")

	// ErrInvalidPoint marks a sample with a non-finite coordinate. Only
	// returned by New when the launch point itself is invalid; once a
	// buffer exists, AppendIfFarEnough recovers from this locally by
	// dropping the sample instead of propagating the error.
	ErrInvalidPoint = errors.New("pathbuffer: point has a non-finite coordinate")

	// errDegenerateInput marks a geometric primitive invoked on a
	// precondition it explicitly disclaims (coincident line endpoints).
	// Callers must not trigger this; it exists so the panic raised in
	// that case carries a typed cause instead of a bare string.
	errDegenerateInput = errors.New("pathbuffer: geometric primitive called on degenerate (coincident) endpoints")
)
