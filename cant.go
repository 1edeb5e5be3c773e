package railgeom

import (
	"fmt"
	"strings"
)

// TransitionType selects how cant changes from a cant point to the next.
type TransitionType int

const (
	LinearTransition TransitionType = iota
	// BiquadraticParabolaTransition is an S-shaped transition with zero slope
	// at both ends.
	BiquadraticParabolaTransition
)

func (t TransitionType) String() string {
	switch t {
	case LinearTransition:
		return "LINEAR"
	case BiquadraticParabolaTransition:
		return "BIQUADRATIC_PARABOLA"
	default:
		return fmt.Sprintf("TransitionType(%d)", int(t))
	}
}

// ParseTransitionType parses a transition type. The empty string is linear.
func ParseTransitionType(s string) (TransitionType, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return LinearTransition, nil
	case "biquadratic_parabola", "biquadraticparabola":
		return BiquadraticParabolaTransition, nil
	default:
		return 0, fmt.Errorf("invalid cant transition type %q", s)
	}
}

// ease maps the relative position f ∈ [0, 1] within a transition to the
// share of the cant change applied there.
func (t TransitionType) ease(f float64) float64 {
	if t == BiquadraticParabolaTransition {
		if f <= 0.5 {
			return 2 * f * f
		}
		return 1 - 2*(1-f)*(1-f)
	}
	return f
}

// RotationPoint is the rail about which the track is tilted.
type RotationPoint int

const (
	RotationPointUnset RotationPoint = iota
	InsideRail
	CenterRail
)

func (r RotationPoint) String() string {
	switch r {
	case RotationPointUnset:
		return ""
	case InsideRail:
		return "INSIDE_RAIL"
	case CenterRail:
		return "CENTER"
	default:
		return fmt.Sprintf("RotationPoint(%d)", int(r))
	}
}

// ParseRotationPoint parses "insideRail" or "center", case-insensitively.
// The empty string is RotationPointUnset.
func ParseRotationPoint(s string) (RotationPoint, error) {
	switch strings.ToLower(s) {
	case "":
		return RotationPointUnset, nil
	case "insiderail", "inside_rail":
		return InsideRail, nil
	case "center":
		return CenterRail, nil
	default:
		return 0, fmt.Errorf("invalid cant rotation point %q", s)
	}
}

type CantPoint struct {
	// Station is the distance along the alignment.
	Station     float64
	AppliedCant float64
	Curvature   RotationDirection
	// Transition applies from this point to the next.
	Transition TransitionType
}

// Cant describes the tilt of the track along an alignment. Points are
// ordered by station.
type Cant struct {
	Name          string
	Description   string
	Gauge         float64
	RotationPoint RotationPoint
	Points        []CantPoint
}

// CantAt returns the applied cant at station. It reports false if no point
// lies at or before station, or none at or after it.
func (c *Cant) CantAt(station float64) (float64, bool) {
	prev, next := -1, -1
	for i, p := range c.Points {
		if p.Station <= station {
			prev = i
		}
		if next == -1 && p.Station >= station {
			next = i
		}
	}
	if prev == -1 || next == -1 {
		return 0, false
	}
	p0, p1 := c.Points[prev], c.Points[next]
	return p0.AppliedCant + cantDelta(p0, p1, station), true
}

func cantDelta(p0, p1 CantPoint, station float64) float64 {
	interval := p1.Station - p0.Station
	if interval == 0 {
		return 0
	}
	t := (station - p0.Station) / interval
	return p0.Transition.ease(t) * (p1.AppliedCant - p0.AppliedCant)
}
