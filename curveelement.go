package railgeom

import (
	"fmt"
	"math"
	"sync"
)

// CurveData holds the design fields of a circular curve.
type CurveData struct {
	Rotation RotationDirection
	Radius   float64
	Chord    float64
	Center   Point
}

// CurveElement is a circular arc.
type CurveElement struct {
	element
	curve  CurveData
	circle Circle
	length float64

	boundsOnce sync.Once
	bounds     []Point
}

// NewCurveElement returns a circular arc from data.Start to data.End around
// curve.Center.
func NewCurveElement(data ElementData, curve CurveData, sw SwitchData) (*CurveElement, error) {
	e := &CurveElement{}
	if err := e.init(data, sw); err != nil {
		return nil, err
	}
	if !(curve.Radius > 0) {
		return nil, fmt.Errorf("curve %q: radius %g: %w", data.Name, curve.Radius, ErrInvalidParameter)
	}
	e.curve = curve
	e.circle = Circle{Center: curve.Center, Radius: curve.Radius}
	e.length = e.circle.ArcLength(curve.Chord)
	return e, nil
}

func (e *CurveElement) Type() ElementType           { return CurveType }
func (e *CurveElement) CurveData() CurveData        { return e.curve }
func (e *CurveElement) Center() Point               { return e.curve.Center }
func (e *CurveElement) Radius() float64             { return e.curve.Radius }
func (e *CurveElement) Rotation() RotationDirection { return e.curve.Rotation }

// CalculatedLength returns the arc length subtending the declared chord.
func (e *CurveElement) CalculatedLength() float64 { return e.length }

func (e *CurveElement) StartDirection() float64 { return e.tangentAt(e.data.Start) }
func (e *CurveElement) EndDirection() float64   { return e.tangentAt(e.data.End) }

func (e *CurveElement) tangentAt(pt Point) float64 {
	return RotateAngle(e.curve.Center.DirectionTo(pt), e.curve.Rotation.sign()*math.Pi/2)
}

func (e *CurveElement) PositionAt(d float64) Point {
	th := e.curve.Center.DirectionTo(e.data.Start) + e.curve.Rotation.sign()*e.circle.SweepAngle(d)
	return e.circle.PointAtAngle(th)
}

// BoundingExtent returns the corners of the arc's bounding box, oriented
// along its chord.
func (e *CurveElement) BoundingExtent() []Point {
	e.boundsOnce.Do(func() {
		chordDir := e.data.Start.DirectionTo(e.data.End)
		pts := []Point{e.data.Start, e.data.End}
		// Extreme points of the circle in the chord's frame, where the arc
		// passes them.
		for i := range 4 {
			th := NormalizeAngle(chordDir + float64(i)*math.Pi/2)
			if e.onArc(th) {
				pts = append(pts, e.circle.PointAtAngle(th))
			}
		}
		e.bounds = orientedBounds(Frame(e.data.Start, chordDir), pts...)
	})
	return e.bounds
}

// onArc reports whether the bearing th from the center falls within the arc.
func (e *CurveElement) onArc(th float64) bool {
	toStart := e.curve.Center.DirectionTo(e.data.Start)
	toEnd := e.curve.Center.DirectionTo(e.data.End)
	if e.curve.Rotation == CCW {
		return AngleIsBetween(toStart, toEnd, th)
	}
	return AngleIsBetween(toEnd, toStart, th)
}

// LengthUntil returns the arc length to target's bearing from the center. A
// target whose bearing falls outside the arc snaps to the angularly closer
// end; ties go to the start.
func (e *CurveElement) LengthUntil(target Point) float64 {
	c := e.curve.Center
	toStart := c.DirectionTo(e.data.Start)
	toEnd := c.DirectionTo(e.data.End)
	toTarget := c.DirectionTo(target)
	if e.onArc(toTarget) {
		if e.curve.Rotation == CCW {
			return e.circle.SubArcLength(Sweep(toStart, toTarget))
		}
		return e.circle.SubArcLength(Sweep(toTarget, toStart))
	}
	if AngleDiff(toStart, toTarget) <= AngleDiff(toEnd, toTarget) {
		return 0
	}
	return e.length
}

func (e *CurveElement) ContentEquals(other Element) bool {
	o, ok := other.(*CurveElement)
	return ok && e.contentEquals(&o.element) && e.curve == o.curve
}
