package pathbuffer

import (
	"time"

	"github.com/benbjohnson/clock"
)

// DetectedLoop records a prunable excursion: the points at indices
// [A, B) can be removed and replaced by the single bridging point C.
type DetectedLoop struct {
	A, B int
	C    Point
}

// removedCount is how many points applying this loop eliminates net of
// the one bridging point it inserts: (B - A - 1).
func (l DetectedLoop) removedCount() int {
	return l.B - l.A - 1
}

// LoopDetectorState is the anytime, resumable state of a scan over pairs
// of non-adjacent segments for near-self-intersections. It scans ordered
// pairs ((i,i+1), (j,j+1)) with j >= i+2, recording a DetectedLoop
// whenever the two segments pass within pruningDelta of each other.
//
// The floor jMin prevents nested loops: once a loop is recorded at some
// j, every later j-scan (for this or any later i) starts no earlier
// than that j, so a later-discovered loop can never be strictly
// contained inside an earlier one.
type LoopDetectorState struct {
	i, jMin int
	Loops   []DetectedLoop
}

// NewLoopDetectorState initializes fresh loop-detector state: resume
// index i=0 (the outer loop always starts its first Run from max(1,i)),
// jMin=0.
func NewLoopDetectorState() *LoopDetectorState {
	return &LoopDetectorState{i: 0, jMin: 0}
}

// Done reports whether the scan has completed (i == -1).
func (s *LoopDetectorState) Done() bool {
	return s.i == -1
}

// Run advances the scan over points, checking the deadline at the top of
// each outer (i) iteration. It returns true once the scan completes, or
// false if the time budget expired first, leaving (i, jMin) intact for a
// later Run call to resume from exactly where it left off.
func (s *LoopDetectorState) Run(points []Point, pruningDelta float64, allowed time.Duration, clk clock.Clock) bool {
	n := len(points)
	deadline := clk.Now().Add(allowed)

	i := s.i
	if i < 1 {
		i = 1
	}
	for ; i <= n-4; i++ {
		if !clk.Now().Before(deadline) {
			s.i = i
			return false
		}

		jStart := s.jMin
		if i+2 > jStart {
			jStart = i + 2
		}
		for j := jStart; j <= n-2; j++ {
			d, m := SegmentSegmentDistance(points[i], points[i+1], points[j], points[j+1])
			if d <= pruningDelta {
				s.Loops = append(s.Loops, DetectedLoop{A: i + 1, B: j + 1, C: m})
				s.jMin = j
				break
			}
		}
	}
	s.i = -1
	return true
}
