package railgeom

import (
	"math"
)

type Circle struct {
	Center Point
	Radius float64
}

// PointAtAngle returns the point of the circle in direction th from the
// center.
func (c Circle) PointAtAngle(th float64) Point {
	return pointOnCircle(c.Center, c.Radius, th)
}

// ArcLength returns the length of the shorter arc subtending a chord of the
// given length.
func (c Circle) ArcLength(chord float64) float64 {
	r := math.Abs(c.Radius)
	return 2 * r * math.Asin(min(1, chord/(2*r)))
}

// SubArcLength returns the length of the arc sweeping angle radians.
func (c Circle) SubArcLength(angle float64) float64 {
	return math.Abs(c.Radius * angle)
}

// SweepAngle returns the angle, in radians, swept by an arc of the given
// length.
func (c Circle) SweepAngle(length float64) float64 {
	return length / math.Abs(c.Radius)
}

// YAtX returns the y coordinate of the circle at x on its lower half if below
// is set, on its upper half otherwise. x outside the circle is clamped to the
// circle's extent.
func (c Circle) YAtX(x float64, below bool) float64 {
	dx := x - c.Center.X
	h := math.Sqrt(max(0, c.Radius*c.Radius-dx*dx))
	if below {
		return c.Center.Y - h
	}
	return c.Center.Y + h
}

func pointOnCircle(center Point, radius float64, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return center.Translate(
		Vec2{
			X: cos * radius,
			Y: sin * radius,
		})
}
