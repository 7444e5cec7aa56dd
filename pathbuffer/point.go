package pathbuffer

import (
	"math"

	"github.com/golang/geo/r3"
)

// Point is a position in meters relative to the launch origin. X is
// North-displacement, Y is East-displacement, Z is altitude above launch.
//
// We reuse r3.Vector rather than a hand-rolled triple: the arithmetic the
// geometric primitives need (dot products, subtraction, norms) is already
// on the type, and it's the same representation the rest of the pack's
// spatial code (motion planning, config fixtures) constructs literally.
type Point = r3.Vector

// finite reports whether every component of p is a finite real number.
func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
