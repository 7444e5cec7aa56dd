package pathbuffer

import (
	"time"

	"github.com/pkg/errors"
)

// Options is the buffer's entire external tuning surface, fixed at
// construction: the four tuning constants (three positive reals and a
// point capacity) plus the anytime passes' time slice.
type Options struct {
	// PositionDelta is the minimum step between appended samples, in
	// meters.
	PositionDelta float64
	// PruningDelta is the loop-closure threshold, in meters. Defaults to
	// 1.5 * PositionDelta.
	PruningDelta float64
	// RDPEpsilon is the simplification tolerance, in meters. Defaults to
	// 0.5 * PositionDelta.
	RDPEpsilon float64
	// MaxPathLen is the hard capacity on the number of stored points.
	MaxPathLen int

	// CleanupSlice bounds how long a single RoutineCleanup call lets
	// either anytime pass (RDP, loop detection) run before checking back
	// in. Defaults to 500µs.
	CleanupSlice time.Duration
}

const (
	// DefaultPositionDelta is the default minimum sample spacing, in meters.
	DefaultPositionDelta = 2.0
	// DefaultMaxPathLen is the default hard capacity on stored points.
	DefaultMaxPathLen = 100
	// defaultCleanupSlice is the recommended per-slice time budget for
	// the anytime passes inside RoutineCleanup.
	defaultCleanupSlice = 500 * time.Microsecond
	// cleanupGateSlack is the "-10" in "n >= max_path_len - 10": how
	// close to capacity the buffer must be before RoutineCleanup does
	// any work at all.
	cleanupGateSlack = 10
)

// DefaultOptions returns the default tuning surface: PositionDelta=2.0m,
// PruningDelta=1.5*PositionDelta, RDPEpsilon=0.5*PositionDelta,
// MaxPathLen=100.
func DefaultOptions() Options {
	return Options{
		PositionDelta: DefaultPositionDelta,
		PruningDelta:  1.5 * DefaultPositionDelta,
		RDPEpsilon:    0.5 * DefaultPositionDelta,
		MaxPathLen:    DefaultMaxPathLen,
		CleanupSlice:  defaultCleanupSlice,
	}
}

// Validate checks that every tuning constant is a positive real and that
// MaxPathLen leaves room for the cleanup gate to ever fire.
func (o Options) Validate() error {
	switch {
	case o.PositionDelta <= 0:
		return errors.New("pathbuffer: PositionDelta must be positive")
	case o.PruningDelta <= 0:
		return errors.New("pathbuffer: PruningDelta must be positive")
	case o.RDPEpsilon <= 0:
		return errors.New("pathbuffer: RDPEpsilon must be positive")
	case o.MaxPathLen <= cleanupGateSlack:
		return errors.Errorf("pathbuffer: MaxPathLen must be greater than %d", cleanupGateSlack)
	case o.CleanupSlice <= 0:
		return errors.New("pathbuffer: CleanupSlice must be positive")
	}
	return nil
}

// cleanupGate is the point count at or above which RoutineCleanup does
// real work instead of a no-op.
func (o Options) cleanupGate() int {
	return o.MaxPathLen - cleanupGateSlack
}
