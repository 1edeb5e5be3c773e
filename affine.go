package railgeom

import (
	"math"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// (A * B) * v == A * (B * v).
//
// Elements use affine transforms to move between a plan's coordinate system
// and the canonical frame in which an element's formulas are evaluated: origin
// at the element's reference point, tangent along the positive x axis.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY mirrors across the x axis. Canonical transition curves turn
// anti-clockwise; clockwise ones are evaluated through FlipY.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation by th radians.
// A positive angle rotates the positive x axis towards the positive y axis,
// which for northing-up plan coordinates is anti-clockwise.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Frame returns the transform that maps the canonical frame of an element
// onto the plan: the canonical origin lands on origin and the positive x axis
// points in direction th.
func Frame(origin Point, th float64) Affine {
	return Rotate(th).ThenTranslate(Vec2(origin))
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenTranslate creates aff followed by a translation of v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// PreFlipY creates a mirror across the x axis followed by aff.
func (aff Affine) PreFlipY() Affine {
	return aff.Mul(FlipY)
}

func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	return Affine{
		+invDet * aff.N3,
		-invDet * aff.N1,
		-invDet * aff.N2,
		+invDet * aff.N0,
		+invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		+invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}
}

// TransformVec applies the linear part of aff to v, ignoring translation.
func (aff Affine) TransformVec(v Vec2) Vec2 {
	return Vec2{
		X: aff.N0*v.X + aff.N2*v.Y,
		Y: aff.N1*v.X + aff.N3*v.Y,
	}
}
