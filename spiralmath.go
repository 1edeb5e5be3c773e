package railgeom

import "math"

// The functions in this file evaluate transition curves in their canonical
// frame: the curve leaves the origin along the positive x axis with infinite
// radius and turns anti-clockwise.

// ClothoidOffset returns the point at arc length l along a clothoid with
// flatness constant a, measured from the clothoid's origin.
//
// The Fresnel integrals are evaluated with their power series in the twist
// angle τ = l²/(2a²), which converges quickly for the twists found in track
// design.
func ClothoidOffset(a, l float64) Vec2 {
	if l == 0 {
		return Vec2{}
	}
	tau := ClothoidTwistAt(a, l)
	var x, y float64
	// p holds τᵏ/k!.
	p := 1.0
	for k := 0; k < 40; k++ {
		if k > 0 {
			p *= tau / float64(k)
		}
		term := p / float64(2*k+1)
		if (k/2)%2 == 1 {
			term = -term
		}
		if k%2 == 0 {
			x += term
		} else {
			y += term
		}
		if k > 2 && p < 1e-18 {
			break
		}
	}
	return Vec2{X: l * x, Y: l * y}
}

// ClothoidTwistAt returns the tangent direction change between a clothoid's
// origin and arc length l.
func ClothoidTwistAt(a, l float64) float64 {
	return l * l / (2 * a * a)
}

// ClothoidTwist returns the tangent direction change between a clothoid's
// origin and the point at arc length l, where the radius is r.
func ClothoidTwist(r, l float64) float64 {
	return l / (2 * r)
}

// ClothoidLengthAtRadius returns the arc length from the origin of a clothoid
// with flatness constant a to the point where its radius is r.
func ClothoidLengthAtRadius(a, r float64) float64 {
	return a * a / r
}

// ClothoidRadiusAtLength returns the radius of a clothoid with flatness
// constant a at arc length l from its origin.
func ClothoidRadiusAtLength(a, l float64) float64 {
	return a * a / l
}

// BiquadraticParabolaOffset returns the point at distance x along a
// biquadratic parabola (Schramm) easement of length l ending in radius r.
//
// The easement's x coordinate is taken to equal the distance along it. This
// matches the design formula and is accurate to a few centimeters for usual
// track geometry.
func BiquadraticParabolaOffset(x, r, l float64) Vec2 {
	var y float64
	if x <= l/2 {
		y = math.Pow(x, 4) / (6 * r * l * l)
	} else {
		y = -math.Pow(x, 4)/(6*r*l*l) +
			2*math.Pow(x, 3)/(3*r*l) -
			x*x/(2*r) +
			l*x/(6*r) -
			l*l/(48*r)
	}
	return Vec2{X: x, Y: y}
}
