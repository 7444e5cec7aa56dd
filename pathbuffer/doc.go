// Package pathbuffer implements a memory-bounded breadcrumb trail for a
// return-to-launch safety feature. Position samples are pushed in as the
// vehicle flies; the buffer keeps itself below a fixed point budget by
// removing colinear points (simplification) and cutting through places
// where the trajectory loops back near itself (pruning), falling back to
// an aggressive combined pass before ever refusing a sample outright.
//
// The buffer is single-threaded and cooperative: the two expensive
// passes (RDP simplification and loop detection) are anytime algorithms
// that checkpoint their own progress so a caller's duty cycle can
// interleave them with other work instead of blocking on them.
package pathbuffer
