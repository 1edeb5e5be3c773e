package railgeom

import (
	"fmt"
	"math"
)

// Point is a location in the plane of a plan's coordinate system. For plan
// geometry X is easting and Y is northing; for vertical profiles X is the
// station along the alignment and Y is the height.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// Near reports whether o lies within eps of pt.
func (pt Point) Near(o Point, eps float64) bool {
	return pt.DistanceSquared(o) <= eps*eps
}

// DirectionTo returns the direction from pt towards o, in radians, measured
// anti-clockwise from the positive x axis. The result is in [-π, π].
func (pt Point) DirectionTo(o Point) float64 {
	return o.Sub(pt).Angle()
}

// InDirection returns the point at distance dist from pt, in direction th.
func (pt Point) InDirection(dist, th float64) Point {
	return pt.Translate(VecFromAngle(th).Mul(dist))
}
