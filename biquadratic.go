package railgeom

import "fmt"

// BiquadraticParabola is a transition spiral (Schramm easement) between a
// straight and a curve. Its shape is defined by its declared length.
type BiquadraticParabola struct {
	spiral
	length float64
	radius float64
	frame  Affine
}

// NewBiquadraticParabola returns a biquadratic parabola. Exactly one of
// spiral.RadiusStart and spiral.RadiusEnd must be set.
func NewBiquadraticParabola(data ElementData, sd SpiralData, sw SwitchData) (*BiquadraticParabola, error) {
	p := &BiquadraticParabola{}
	if err := p.init(data, sd, sw); err != nil {
		return nil, err
	}
	switch {
	case sd.RadiusStart == nil && sd.RadiusEnd == nil:
		return nil, fmt.Errorf("biquadratic parabola %q: %w", data.Name, ErrMissingRadius)
	case sd.RadiusStart != nil && sd.RadiusEnd != nil:
		return nil, fmt.Errorf("biquadratic parabola %q: %w", data.Name, ErrUnsupportedSpiral)
	case sd.RadiusStart != nil:
		p.radius = *sd.RadiusStart
	default:
		p.radius = *sd.RadiusEnd
	}
	if !(p.radius > 0) {
		return nil, fmt.Errorf("biquadratic parabola %q: radius %g: %w", data.Name, p.radius, ErrInvalidParameter)
	}
	if !(data.Length > 0) {
		return nil, fmt.Errorf("biquadratic parabola %q: length %g: %w", data.Name, data.Length, ErrInvalidParameter)
	}
	p.length = data.Length
	p.frame = p.canonicalFrame(p.segStart, p.segStartAngle)
	return p, nil
}

func (p *BiquadraticParabola) Type() ElementType { return BiquadraticParabolaType }

// CalculatedLength returns the declared length; the parabola has no closed
// form length.
func (p *BiquadraticParabola) CalculatedLength() float64 { return p.length }

func (p *BiquadraticParabola) PositionAt(d float64) Point {
	if !p.steepening {
		d = p.length - d
	}
	return Point(BiquadraticParabolaOffset(d, p.radius, p.length)).Transform(p.frame)
}

// LengthUntil projects target onto the chord from start to end. The error
// is of the same order as that of the parabola's position formula.
func (p *BiquadraticParabola) LengthUntil(target Point) float64 {
	return Line{p.data.Start, p.data.End}.ProjectedLength(target)
}

func (p *BiquadraticParabola) ContentEquals(other Element) bool {
	o, ok := other.(*BiquadraticParabola)
	return ok && p.contentEquals(&o.element) && p.sd.equal(o.sd)
}
