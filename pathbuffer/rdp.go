package pathbuffer

import (
	"time"

	"github.com/benbjohnson/clock"
)

// rdpInterval is a pending (start, end) index range on the work stack.
type rdpInterval struct {
	start, end int
}

// RDPState is the anytime, resumable state of a Ramer-Douglas-Peucker
// simplification pass over a path of n points. It owns a work stack of
// index intervals and a keep-bitmap of length n; both are
// exogenous to any single Run call so a driver can pause and resume the
// algorithm across its own duty cycle.
//
// At every pause, Keep() is a safe over-approximation: every interval
// already popped and resolved has certified its kept points to within
// epsilon of the original path, and indices in not-yet-visited intervals
// remain marked true. No call ever clears a bit without having checked
// the neighborhood it governs.
type RDPState struct {
	stack []rdpInterval
	keep  []bool
}

// NewRDPState initializes fresh RDP state for a path of n points: the
// work stack holds the single interval (0, n-1) and every index starts
// marked kept.
func NewRDPState(n int) *RDPState {
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	var stack []rdpInterval
	if n > 1 {
		stack = []rdpInterval{{start: 0, end: n - 1}}
	}
	return &RDPState{stack: stack, keep: keep}
}

// Done reports whether the pass has converged (the work stack is empty).
func (s *RDPState) Done() bool {
	return len(s.stack) == 0
}

// Keep returns the current keep-bitmap. Valid to read at any time,
// including mid-pass; see the anytime guarantee on RDPState.
func (s *RDPState) Keep() []bool {
	return s.keep
}

// Run advances the pass against points under tolerance epsilon, checking
// the deadline (now clk.Now() + allowed) at the top of each outer
// iteration (each stack pop). It returns true once the stack empties
// (the pass has converged), or false if the time budget ran out first,
// in which case the stack and bitmap are left intact for a later Run
// call to resume.
func (s *RDPState) Run(points []Point, epsilon float64, allowed time.Duration, clk clock.Clock) bool {
	deadline := clk.Now().Add(allowed)
	for len(s.stack) > 0 {
		if !clk.Now().Before(deadline) {
			return false
		}
		top := len(s.stack) - 1
		iv := s.stack[top]
		s.stack = s.stack[:top]

		maxDist := -1.0
		maxIndex := -1
		for i := iv.start + 1; i < iv.end; i++ {
			if !s.keep[i] {
				continue
			}
			d := PointLineDistance(points[i], points[iv.start], points[iv.end])
			if d > maxDist {
				maxDist = d
				maxIndex = i
			}
		}

		if maxIndex == -1 {
			// Interval had no interior points left to consider; nothing
			// to simplify.
			continue
		}

		if maxDist > epsilon {
			s.stack = append(s.stack, rdpInterval{start: iv.start, end: maxIndex})
			s.stack = append(s.stack, rdpInterval{start: maxIndex, end: iv.end})
		} else {
			for i := iv.start + 1; i < iv.end; i++ {
				s.keep[i] = false
			}
		}
	}
	return true
}
