package railgeom

import "math"

const tau = 2 * math.Pi

// Design data stores directions in grads (gons): a full turn is 400 grads.
// Geodetic grads are measured clockwise from north; math radians
// anti-clockwise from east.

// GradsToRads converts an angle from grads to radians.
func GradsToRads(g float64) float64 { return g * math.Pi / 200 }

// RadsToGrads converts an angle from radians to grads.
func RadsToGrads(r float64) float64 { return r * 200 / math.Pi }

// RadsToDegrees converts an angle from radians to degrees.
func RadsToDegrees(r float64) float64 { return r * 180 / math.Pi }

// GeoGradsToRads converts a geodetic direction in grads (clockwise from north)
// to a math direction in radians (anti-clockwise from east).
func GeoGradsToRads(g float64) float64 { return GradsToRads(100 - g) }

// NormalizeAngle maps th into [-π, π).
func NormalizeAngle(th float64) float64 {
	r := math.Mod(th+math.Pi, tau)
	if r < 0 {
		r += tau
	}
	return r - math.Pi
}

// RotateAngle returns th rotated by delta, normalized into [-π, π).
func RotateAngle(th, delta float64) float64 {
	return NormalizeAngle(th + delta)
}

// RelativeAngle returns the signed rotation that turns a into b, in [-π, π).
func RelativeAngle(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// AngleDiff returns the absolute difference between two directions, in [0, π].
func AngleDiff(a, b float64) float64 {
	return math.Abs(RelativeAngle(a, b))
}

// Sweep returns the anti-clockwise rotation from a to b, in [0, 2π).
func Sweep(a, b float64) float64 {
	r := math.Mod(b-a, tau)
	if r < 0 {
		r += tau
	}
	return r
}

// AngleIsBetween reports whether direction v lies on the anti-clockwise arc
// from start to end, endpoints included.
func AngleIsBetween(start, end, v float64) bool {
	return Sweep(start, v) <= Sweep(start, end)
}
