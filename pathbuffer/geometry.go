package pathbuffer

import "math"

// parallelThreshold is the minimum value of D = ac - b² below which two
// segments are treated as near-parallel by SegmentSegmentDistance.
const parallelThreshold = 1e-7

// PointLineDistance returns the perpendicular distance from p to the
// infinite line through a and b, via the triangle-area identity. The
// result is undefined (division by zero) when a == b; callers must never
// invoke it in that case, doing so panics with errDegenerateInput rather
// than silently returning NaN or Inf.
func PointLineDistance(p, a, b Point) float64 {
	ab := b.Sub(a).Norm()
	if ab == 0 {
		panic(errDegenerateInput)
	}
	pa := p.Sub(a).Norm()
	bp := b.Sub(p).Norm()

	s := (pa + ab + bp) / 2
	radicand := s * (s - pa) * (s - ab) * (s - bp)
	area := math.Sqrt(math.Max(0, radicand))
	return 2 * area / ab
}

// SegmentSegmentDistance returns the minimum Euclidean distance between
// segments [p1,p2] and [p3,p4] in 3D, and the midpoint of the shortest
// connecting segment between them.
//
// When the segments are near-parallel (D below parallelThreshold) this
// deliberately returns (+Inf, origin) rather than falling back to the
// minimum endpoint-to-endpoint distance: the loop detector must never
// collapse two genuinely disjoint parallel excursions, so a false
// negative here is the safe failure mode.
func SegmentSegmentDistance(p1, p2, p3, p4 Point) (float64, Point) {
	u := p2.Sub(p1)
	v := p4.Sub(p3)
	w := p1.Sub(p3)

	a := u.Dot(u)
	b := u.Dot(v)
	c := v.Dot(v)
	d := u.Dot(w)
	e := v.Dot(w)
	denom := a*c - b*b

	if denom < parallelThreshold {
		return math.Inf(1), Point{}
	}

	t1 := clamp01((b*e - c*d) / denom)
	t2 := clamp01((a*e - b*d) / denom)

	closest1 := p1.Add(u.Mul(t1))
	closest2 := p3.Add(v.Mul(t2))
	dP := closest1.Sub(closest2)
	mid := closest1.Add(closest2).Mul(0.5)

	return dP.Norm(), mid
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
