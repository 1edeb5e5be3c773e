package railgeom

import "math"

// A ProfileSegment is one piece of a profile's height line. Its start and end
// X are non-decreasing.
//
// It is implemented by *LinearSegment and *CurvedSegment.
type ProfileSegment interface {
	Start() Point
	End() Point
	// VI returns the index of the vertical intersection the segment was
	// derived from.
	VI() int
	// IsValid reports whether the segment's heights can be trusted.
	IsValid() bool
	StartAngle() float64
	EndAngle() float64
	// HeightAt returns the segment's height at distance x.
	HeightAt(x float64) (float64, bool)
}

var (
	_ ProfileSegment = (*LinearSegment)(nil)
	_ ProfileSegment = (*CurvedSegment)(nil)
)

// LinearSegment is a straight grade. An invalid linear segment stands in for
// geometry that could not be computed and has no heights.
type LinearSegment struct {
	Line
	Intersection int
	Valid        bool
}

func (s *LinearSegment) VI() int             { return s.Intersection }
func (s *LinearSegment) IsValid() bool       { return s.Valid }
func (s *LinearSegment) StartAngle() float64 { return s.Direction() }
func (s *LinearSegment) EndAngle() float64   { return s.Direction() }

func (s *LinearSegment) HeightAt(x float64) (float64, bool) {
	if !s.Valid {
		return 0, false
	}
	return s.YAtX(x), true
}

// CurvedSegment is a circular vertical curve. Radius is positive for sag and
// negative for crest curves.
type CurvedSegment struct {
	P0           Point
	P1           Point
	Center       Point
	Radius       float64
	Intersection int
}

func (s *CurvedSegment) Start() Point        { return s.P0 }
func (s *CurvedSegment) End() Point          { return s.P1 }
func (s *CurvedSegment) VI() int             { return s.Intersection }
func (s *CurvedSegment) IsValid() bool       { return true }
func (s *CurvedSegment) StartAngle() float64 { return s.tangentAt(s.P0) }
func (s *CurvedSegment) EndAngle() float64   { return s.tangentAt(s.P1) }

func (s *CurvedSegment) tangentAt(pt Point) float64 {
	return NormalizeAngle(s.Center.DirectionTo(pt) + math.Copysign(math.Pi/2, s.Radius))
}

func (s *CurvedSegment) HeightAt(x float64) (float64, bool) {
	return Circle{s.Center, s.Radius}.YAtX(x, s.Radius > 0), true
}
