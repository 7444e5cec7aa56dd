package pathbuffer

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"go.viam.com/safertl/logging"
)

// State is a live buffer's position in its compaction state machine.
type State int

const (
	// StateGrowing is the default state: the buffer accepts samples and
	// is either below the cleanup gate or between cleanup cycles.
	StateGrowing State = iota
	// StateCompacting holds only for the duration of a RoutineCleanup
	// call.
	StateCompacting
	// StateExhausted is terminal: RoutineCleanup found no applicable
	// reduction. Further ingestion fails fast.
	StateExhausted
)

// String implements fmt.Stringer for log-friendly state names.
func (s State) String() string {
	switch s {
	case StateGrowing:
		return "GROWING"
	case StateCompacting:
		return "COMPACTING"
	case StateExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// Path is the live, memory-bounded breadcrumb trail a vehicle leaves
// behind it in flight. p[0] is the launch position and is never
// removed. Points() returns a copy; the buffer itself is mutated only
// by AppendIfFarEnough and the commit step of RoutineCleanup. The type
// is single-threaded and cooperative: callers must not share a *Path
// across goroutines without their own synchronization.
type Path struct {
	opts   Options
	points []Point
	state  State

	worstLength int

	id     uuid.UUID
	logger logging.Logger
	clock  clock.Clock
}

// New constructs a buffer with exactly one element, the launch position.
// opts is validated; logger may be the zero value, in which case it
// logs nowhere.
func New(initial Point, opts Options, logger logging.Logger) (*Path, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !finite(initial) {
		return nil, ErrInvalidPoint
	}
	return &Path{
		opts:        opts,
		points:      []Point{initial},
		state:       StateGrowing,
		worstLength: 1,
		id:          uuid.New(),
		logger:      logger,
		clock:       clock.New(),
	}, nil
}

// WithClock overrides the buffer's clock, for deterministic tests of the
// anytime passes' time-slicing.
func (p *Path) WithClock(clk clock.Clock) *Path {
	p.clock = clk
	return p
}

// Len returns the current number of stored points.
func (p *Path) Len() int {
	return len(p.points)
}

// WorstLength returns the maximum length the buffer has ever reached,
// for monitoring how close it runs to its cleanup gate over a flight.
func (p *Path) WorstLength() int {
	return p.worstLength
}

// State returns the buffer's current position in the state machine.
func (p *Path) State() State {
	return p.state
}

// ID is the buffer's correlation id, attached to every log line the
// cleanup cycle emits.
func (p *Path) ID() uuid.UUID {
	return p.id
}

// Points returns a defensive copy of the stored sequence.
func (p *Path) Points() []Point {
	return clonePoints(p.points)
}

// AppendIfFarEnough appends p if its squared distance from the current
// tail exceeds PositionDelta², updating WorstLength unconditionally.
// Non-finite coordinates are dropped silently (ErrInvalidPoint is
// absorbed locally, never returned). Once the buffer has reached
// StateExhausted, ingestion fails fast with ErrBufferExhausted.
func (p *Path) AppendIfFarEnough(pt Point) error {
	if p.state == StateExhausted {
		return ErrBufferExhausted
	}
	if !finite(pt) {
		p.logger.Warnw("dropping non-finite sample", "path_id", p.id, "point", pt)
		return nil
	}

	tail := p.points[len(p.points)-1]
	if tail.Sub(pt).Norm2() > p.opts.PositionDelta*p.opts.PositionDelta {
		p.points = append(p.points, pt)
	}
	if len(p.points) > p.worstLength {
		p.worstLength = len(p.points)
	}
	return nil
}

// RoutineCleanup is the compaction policy arbiter. It is a no-op
// returning nil when the buffer is below the cleanup gate
// (n < MaxPathLen - 10). Otherwise it runs loop detection and RDP
// simplification to completion (each time-sliced in CleanupSlice
// quanta, interruptible via ctx), then applies the cheapest adequate
// reduction. Returns ErrOutOfMemory, transitioning the buffer to
// StateExhausted, if no reduction frees enough room.
func (p *Path) RoutineCleanup(ctx context.Context) error {
	n := len(p.points)
	if n < p.opts.cleanupGate() || n <= 1 {
		return nil
	}

	p.state = StateCompacting
	p.logger.Debugw("routine cleanup starting", "path_id", p.id, "n", n)

	loops, err := p.runLoopDetection(ctx)
	if err != nil {
		p.state = StateGrowing
		return err
	}
	prunable := sumPrunable(loops)

	bitmap, err := p.runRDP(ctx)
	if err != nil {
		p.state = StateGrowing
		return err
	}
	simplifiable := n - popcount(bitmap)

	switch {
	case simplifiable > 10:
		p.points = applyBitmap(p.points, bitmap)
		p.logger.Debugw("cleanup applied RDP simplification", "path_id", p.id, "removed", simplifiable)
	case prunable > 0:
		p.points = applyLoopPrefix(p.points, loops, cleanupGateSlack)
		p.logger.Debugw("cleanup applied loop pruning", "path_id", p.id, "prunable", prunable)
	case simplifiable+prunable > 5:
		p.points = combineBitmapAndLoops(p.points, bitmap, loops)
		p.logger.Debugw("cleanup applied aggressive flyback compaction", "path_id", p.id)
	default:
		p.state = StateExhausted
		p.logger.Warnw("cleanup exhausted, no reduction applies", "path_id", p.id, "n", n)
		return ErrOutOfMemory
	}

	p.state = StateGrowing
	return nil
}

// runLoopDetection runs a fresh LoopDetectorState over the live points
// to completion, time-sliced in CleanupSlice quanta and interruptible
// via ctx.
func (p *Path) runLoopDetection(ctx context.Context) ([]DetectedLoop, error) {
	ld := NewLoopDetectorState()
	for !ld.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		ld.Run(p.points, p.opts.PruningDelta, p.opts.CleanupSlice, p.clock)
	}
	return ld.Loops, nil
}

// runRDP runs a fresh RDPState over the live points to completion,
// time-sliced in CleanupSlice quanta and interruptible via ctx.
func (p *Path) runRDP(ctx context.Context) ([]bool, error) {
	rdp := NewRDPState(len(p.points))
	for !rdp.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rdp.Run(p.points, p.opts.RDPEpsilon, p.opts.CleanupSlice, p.clock)
	}
	return rdp.Keep(), nil
}

func popcount(bitmap []bool) int {
	n := 0
	for _, b := range bitmap {
		if b {
			n++
		}
	}
	return n
}

func sumPrunable(loops []DetectedLoop) int {
	total := 0
	for _, l := range loops {
		total += l.removedCount()
	}
	return total
}

// applyBitmap keeps only the indices where bitmap is true.
func applyBitmap(points []Point, bitmap []bool) []Point {
	out := make([]Point, 0, popcount(bitmap))
	for i, keep := range bitmap {
		if keep {
			out = append(out, points[i])
		}
	}
	return out
}

// applyLoopPrefix applies loops in order until the cumulative removed
// count reaches minRemoved, blanking each loop's [A,B) range and writing
// its bridging point C in A's place, then compacting out the blanks.
// Loops are ascending in A (LoopDetectorState's scan order) but may
// overlap; a loop whose A falls inside a range already replaced is
// skipped.
func applyLoopPrefix(points []Point, loops []DetectedLoop, minRemoved int) []Point {
	var prefix []DetectedLoop
	removed := 0
	for _, l := range loops {
		prefix = append(prefix, l)
		removed += l.removedCount()
		if removed >= minRemoved {
			break
		}
	}
	return applyLoops(points, prefix)
}

func applyLoops(points []Point, loops []DetectedLoop) []Point {
	out := make([]Point, 0, len(points))
	li := 0
	for idx := 0; idx < len(points); {
		for li < len(loops) && loops[li].A < idx {
			li++ // starts inside a range already replaced
		}
		if li < len(loops) && idx == loops[li].A {
			out = append(out, loops[li].C)
			idx = loops[li].B
			li++
			continue
		}
		out = append(out, points[idx])
		idx++
	}
	return out
}

// combineBitmapAndLoops is the aggressive compaction pass shared by
// RoutineCleanup's third branch and GetFlybackPath: every index where
// bitmap is false is dropped, every index inside a detected
// loop's [A,B) range is dropped, except the midpoint slot
// floor((A+B)/2), which is resurrected to hold the loop's bridging
// point C.
func combineBitmapAndLoops(points []Point, bitmap []bool, loops []DetectedLoop) []Point {
	n := len(points)
	remove := make([]bool, n)
	for i, keep := range bitmap {
		if !keep {
			remove[i] = true
		}
	}

	resurrect := make(map[int]Point, len(loops))
	for _, l := range loops {
		for idx := l.A; idx < l.B; idx++ {
			remove[idx] = true
		}
		resurrect[(l.A+l.B)/2] = l.C
	}

	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if c, ok := resurrect[i]; ok {
			out = append(out, c)
			continue
		}
		if remove[i] {
			continue
		}
		out = append(out, points[i])
	}
	return out
}
