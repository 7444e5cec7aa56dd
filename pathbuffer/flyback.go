package pathbuffer

import "context"

// GetFlybackPath computes the path the vehicle would fly if RTL were
// activated right now, without mutating the live buffer. It takes a
// snapshot, runs loop detection and RDP to completion on that snapshot,
// then applies the same aggressive combined reduction the compaction
// policy's last-resort branch uses. Idempotent: calling it twice on an
// unchanged buffer yields identical results, and it never touches
// p.points.
func (p *Path) GetFlybackPath(ctx context.Context) ([]Point, error) {
	snapshot := clonePoints(p.points)
	if len(snapshot) <= 1 {
		return snapshot, nil
	}

	ld := NewLoopDetectorState()
	for !ld.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		ld.Run(snapshot, p.opts.PruningDelta, p.opts.CleanupSlice, p.clock)
	}

	rdp := NewRDPState(len(snapshot))
	for !rdp.Done() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rdp.Run(snapshot, p.opts.RDPEpsilon, p.opts.CleanupSlice, p.clock)
	}

	return combineBitmapAndLoops(snapshot, rdp.Keep(), ld.Loops), nil
}
