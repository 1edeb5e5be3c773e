package railgeom

import (
	"fmt"
	"math"
	"sync"
)

// maxSegmentTwist bounds the direction change across one estimation segment.
const maxSegmentTwist = math.Pi / 32

// Clothoid is a transition spiral whose curvature changes linearly with
// distance. Its flatness constant A satisfies A² = R·L, where L is the
// distance from the point of infinite radius.
type Clothoid struct {
	spiral
	constant float64
	length   float64

	// offset is the distance from the clothoid's origin to the element's
	// walking start. It is non-zero for spirals between two curves.
	offset float64
	// angle and origin place the canonical clothoid in the plan.
	angle  float64
	origin Point
	frame  Affine

	segmentsOnce sync.Once
	segments     []EstimationSegment
}

// EstimationSegment is a chord approximating a short stretch of a clothoid.
type EstimationSegment struct {
	StartLength float64
	EndLength   float64
	Line        Line
}

// NewClothoid returns a clothoid with flatness constant constant. At least one
// of spiral.RadiusStart and spiral.RadiusEnd must be set.
func NewClothoid(data ElementData, sd SpiralData, constant float64, sw SwitchData) (*Clothoid, error) {
	c := &Clothoid{}
	if err := c.init(data, sd, sw); err != nil {
		return nil, err
	}
	if sd.RadiusStart == nil && sd.RadiusEnd == nil {
		return nil, fmt.Errorf("clothoid %q: %w", data.Name, ErrMissingRadius)
	}
	if !(constant > 0) {
		return nil, fmt.Errorf("clothoid %q: constant %g: %w", data.Name, constant, ErrInvalidParameter)
	}
	for _, r := range []*float64{sd.RadiusStart, sd.RadiusEnd} {
		if r != nil && !(*r > 0) {
			return nil, fmt.Errorf("clothoid %q: radius %g: %w", data.Name, *r, ErrInvalidParameter)
		}
	}
	c.constant = constant
	c.length = math.Abs(c.lengthAtRadius(sd.RadiusStart) - c.lengthAtRadius(sd.RadiusEnd))
	c.offset = c.lengthAtRadius(c.segStartRadius)

	sign := -1.0
	if c.turnsCW {
		sign = 1
	}
	c.angle = c.segStartAngle + sign*ClothoidTwistAt(constant, c.offset)
	// Anchor the canonical curve so that its point at c.offset lands on the
	// walking start.
	c.frame = c.canonicalFrame(Point{}, c.angle)
	c.origin = c.segStart.Translate(c.frame.TransformVec(ClothoidOffset(constant, c.offset)).Negate())
	c.frame = c.canonicalFrame(c.origin, c.angle)
	return c, nil
}

func (c *Clothoid) lengthAtRadius(r *float64) float64 {
	if r == nil {
		return 0
	}
	return ClothoidLengthAtRadius(c.constant, *r)
}

func (c *Clothoid) Type() ElementType { return ClothoidType }

// Constant returns the flatness constant A.
func (c *Clothoid) Constant() float64 { return c.constant }

// CalculatedLength returns the distance between the points of the clothoid
// where it has the start and end radii.
func (c *Clothoid) CalculatedLength() float64 { return c.length }

// SegmentToClothoidDistance converts a distance along the element to a
// distance from the clothoid's origin.
func (c *Clothoid) SegmentToClothoidDistance(d float64) float64 {
	if c.steepening {
		return c.offset + d
	}
	return c.offset + c.length - d
}

func (c *Clothoid) PositionAt(d float64) Point {
	return Point(ClothoidOffset(c.constant, c.SegmentToClothoidDistance(d))).Transform(c.frame)
}

// DirectionAt returns the tangent direction, in the direction of travel, at
// distance d along the element.
func (c *Clothoid) DirectionAt(d float64) float64 {
	twist := ClothoidTwistAt(c.constant, c.SegmentToClothoidDistance(d))
	if c.turnsCW {
		twist = -twist
	}
	th := c.angle + twist
	if !c.steepening {
		th += math.Pi
	}
	return NormalizeAngle(th)
}

// EstimationSegments returns chords covering the clothoid, each spanning less
// than π/32 radians of direction change.
func (c *Clothoid) EstimationSegments() []EstimationSegment {
	c.segmentsOnce.Do(func() {
		c.segments = c.split(0, c.length, nil)
	})
	return c.segments
}

func (c *Clothoid) split(from, to float64, out []EstimationSegment) []EstimationSegment {
	if AngleDiff(c.DirectionAt(from), c.DirectionAt(to)) < maxSegmentTwist {
		return append(out, EstimationSegment{
			StartLength: from,
			EndLength:   to,
			Line:        Line{c.PositionAt(from), c.PositionAt(to)},
		})
	}
	mid := (from + to) / 2
	out = c.split(from, mid, out)
	return c.split(mid, to, out)
}

// LengthUntil projects target onto the estimation segments and returns the
// distance of the first projection that does not fall past its segment's end.
func (c *Clothoid) LengthUntil(target Point) float64 {
	for _, seg := range c.EstimationSegments() {
		if _, t := seg.Line.Nearest(target); t < 1 {
			return min(c.length, seg.StartLength+(seg.EndLength-seg.StartLength)*t)
		}
	}
	return c.length
}

func (c *Clothoid) ContentEquals(other Element) bool {
	o, ok := other.(*Clothoid)
	return ok &&
		c.contentEquals(&o.element) &&
		c.sd.equal(o.sd) &&
		c.constant == o.constant
}
