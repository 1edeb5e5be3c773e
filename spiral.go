package railgeom

import (
	"math"
	"sync"
)

// SpiralData holds the design fields shared by transition spirals.
type SpiralData struct {
	Rotation RotationDirection
	// DirectionStart and DirectionEnd are the design's tangent directions in
	// radians. They are informational: elements derive their directions from
	// PI.
	DirectionStart *float64
	DirectionEnd   *float64
	// RadiusStart and RadiusEnd are nil where the spiral meets a straight.
	RadiusStart *float64
	RadiusEnd   *float64
	// PI is the intersection of the start and end tangents.
	PI Point
}

func (s SpiralData) equal(o SpiralData) bool {
	return s.Rotation == o.Rotation &&
		s.PI == o.PI &&
		equalOptional(s.DirectionStart, o.DirectionStart) &&
		equalOptional(s.DirectionEnd, o.DirectionEnd) &&
		equalOptional(s.RadiusStart, o.RadiusStart) &&
		equalOptional(s.RadiusEnd, o.RadiusEnd)
}

// spiral holds the frame shared by clothoids and biquadratic parabolas.
//
// The canonical transition curve starts straight and steepens while turning
// anti-clockwise. A spiral that flattens is evaluated backwards from its end,
// and one that turns clockwise in that walking direction is mirrored.
type spiral struct {
	element
	sd SpiralData

	startDir   float64
	endDir     float64
	steepening bool
	turnsCW    bool
	// segStart, segStartRadius and segStartAngle describe the end of the
	// element that the canonical curve is walked from.
	segStart       Point
	segStartRadius *float64
	segStartAngle  float64

	boundsOnce sync.Once
	bounds     []Point
}

func (s *spiral) init(data ElementData, sd SpiralData, sw SwitchData) error {
	if err := s.element.init(data, sw); err != nil {
		return err
	}
	s.sd = sd
	s.startDir = data.Start.DirectionTo(sd.PI)
	s.endDir = sd.PI.DirectionTo(data.End)
	s.steepening = orInf(sd.RadiusStart) >= orInf(sd.RadiusEnd)
	s.turnsCW = (sd.Rotation == CW) == s.steepening
	if s.steepening {
		s.segStart = data.Start
		s.segStartRadius = sd.RadiusStart
		s.segStartAngle = s.startDir
	} else {
		s.segStart = data.End
		s.segStartRadius = sd.RadiusEnd
		s.segStartAngle = s.endDir - math.Pi
	}
	return nil
}

func (s *spiral) SpiralData() SpiralData        { return s.sd }
func (s *spiral) Rotation() RotationDirection   { return s.sd.Rotation }
func (s *spiral) StartDirection() float64       { return s.startDir }
func (s *spiral) EndDirection() float64         { return s.endDir }
func (s *spiral) RadiusStart() (float64, bool)  { return optional(s.sd.RadiusStart) }
func (s *spiral) RadiusEnd() (float64, bool)    { return optional(s.sd.RadiusEnd) }
func (s *spiral) PI() Point                     { return s.sd.PI }

// IsSteepening reports whether the radius decreases from start to end.
func (s *spiral) IsSteepening() bool { return s.steepening }

// canonicalFrame maps the canonical curve, anchored at origin with its
// straight direction along th, onto the plan.
func (s *spiral) canonicalFrame(origin Point, th float64) Affine {
	f := Frame(origin, th)
	if s.turnsCW {
		f = f.PreFlipY()
	}
	return f
}

// BoundingExtent returns the corners of the spiral's bounding box, oriented
// along the tangent of its flatter end.
func (s *spiral) BoundingExtent() []Point {
	s.boundsOnce.Do(func() {
		if s.steepening {
			s.bounds = orientedBounds(Frame(s.data.Start, s.startDir), s.data.Start, s.data.End)
		} else {
			s.bounds = orientedBounds(Frame(s.data.End, s.endDir), s.data.Start, s.data.End)
		}
	})
	return s.bounds
}

func optional(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
