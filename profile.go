package railgeom

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrInfeasibleCurve is returned when a circular vertical curve cannot be
// fitted between the legs of its vertical intersection.
var ErrInfeasibleCurve = errors.New("infeasible vertical curve")

// A VerticalIntersection is a point of the vertical profile, in the plane of
// distance along the alignment (X) and height (Y).
//
// It is implemented by VIPoint and VICircularCurve.
type VerticalIntersection interface {
	Location() Point
	Label() string
	isVerticalIntersection()
}

// VIPoint is a plain break point of the profile.
type VIPoint struct {
	Description string
	Point       Point
}

// VICircularCurve is a vertical intersection rounded off by a circular
// vertical curve. The curve is only computed when both Radius and a non-zero
// Length are present.
type VICircularCurve struct {
	Description string
	Point       Point
	// Radius is the curve radius. Its sign is ignored; the profile derives it
	// from the slopes of the adjoining legs.
	Radius *float64
	Length *float64
}

func (v VIPoint) Location() Point { return v.Point }
func (v VIPoint) Label() string   { return v.Description }
func (VIPoint) isVerticalIntersection() {}

func (v VICircularCurve) Location() Point { return v.Point }
func (v VICircularCurve) Label() string   { return v.Description }
func (VICircularCurve) isVerticalIntersection() {}

// Profile is the vertical geometry of an alignment: a named, ordered list of
// vertical intersections from which profile segments are derived.
type Profile struct {
	name string
	vis  []VerticalIntersection

	segmentsOnce sync.Once
	segments     []ProfileSegment
}

// NewProfile returns a profile over vis. Circular curves with a zero radius
// are rejected.
func NewProfile(name string, vis []VerticalIntersection) (*Profile, error) {
	for i, vi := range vis {
		if c, ok := vi.(VICircularCurve); ok && c.Radius != nil && *c.Radius == 0 {
			return nil, fmt.Errorf("profile %q: vertical intersection %d (%s): zero radius: %w", name, i, c.Description, ErrInvalidParameter)
		}
	}
	return &Profile{
		name: name,
		vis:  append([]VerticalIntersection(nil), vis...),
	}, nil
}

func (p *Profile) Name() string { return p.name }

// Intersections returns the profile's vertical intersections. The returned
// slice must not be modified.
func (p *Profile) Intersections() []VerticalIntersection { return p.vis }

// Segments returns the profile segments derived from the vertical
// intersections. The result is computed once and must not be modified.
func (p *Profile) Segments() []ProfileSegment {
	p.segmentsOnce.Do(func() {
		p.segments = p.buildSegments()
	})
	return p.segments
}

// HeightAt returns the profile's height at distance x. Distances before the
// first or after the last vertical intersection return the height of that
// intersection. It reports false if the profile has no segments, or if x
// falls on an invalid linear segment.
func (p *Profile) HeightAt(x float64) (float64, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return 0, false
	}
	first := p.vis[0].Location()
	last := p.vis[len(p.vis)-1].Location()
	switch {
	case x <= first.X:
		return first.Y, true
	case x >= last.X:
		return last.Y, true
	}
	for _, s := range segs {
		if s.Start().X <= x && x <= s.End().X {
			return s.HeightAt(x)
		}
	}
	panic(fmt.Sprintf("railgeom: profile %q: distance %g in [%g, %g] not covered by any segment", p.name, x, first.X, last.X))
}

func (p *Profile) buildSegments() []ProfileSegment {
	switch len(p.vis) {
	case 0, 1:
		return nil
	case 2:
		return appendLinear(nil, p.vis[0].Location(), p.vis[1].Location(), 1, true)
	}

	var segs []ProfileSegment
	start := p.vis[0].Location()
	valid := true
	for i := 1; i < len(p.vis); i++ {
		var next VerticalIntersection
		if i+1 < len(p.vis) {
			next = p.vis[i+1]
		}
		segs, start, valid = p.fold(segs, start, valid, i, next)
	}
	return segs
}

// fold appends the segments of the i'th vertical intersection, starting at
// start, and returns the point and validity the next intersection starts
// from.
func (p *Profile) fold(segs []ProfileSegment, start Point, valid bool, i int, next VerticalIntersection) ([]ProfileSegment, Point, bool) {
	vi := p.vis[i]
	pt := vi.Location()
	if pt.X <= start.X {
		p.logAnomaly(vi, fmt.Errorf("station %g does not increase from %g", pt.X, start.X))
		return segs, pt, false
	}

	switch vi := vi.(type) {
	case VIPoint:
		return appendLinear(segs, start, pt, i, valid), pt, true
	case VICircularCurve:
		if vi.Radius != nil && vi.Length != nil && *vi.Length != 0 && next != nil {
			radius := math.Abs(*vi.Radius) * radiusSign(start, pt, next.Location())
			t1, t2, err := TangentPointsOfPVI(start, pt, next.Location(), radius)
			if err == nil {
				segs = appendLinear(segs, start, t1, i, valid)
				if t1.X < t2.X {
					segs = append(segs, &CurvedSegment{
						P0:           t1,
						P1:           t2,
						Center:       CircularCurveCenter(radius, t1, pt),
						Radius:       radius,
						Intersection: i,
					})
				}
				return segs, t2, true
			}
			p.logAnomaly(vi, err)
		}
		return appendLinear(segs, start, pt, i, false), pt, false
	default:
		panic(fmt.Sprintf("railgeom: unexpected vertical intersection type %T", vi))
	}
}

func (p *Profile) logAnomaly(vi VerticalIntersection, cause error) {
	Logger.WithFields(logrus.Fields{
		"profile": p.name,
		"vi":      vi.Label(),
		"station": vi.Location().X,
		"cause":   cause,
	}).Warn("profile segment calculation failed")
}

// radiusSign returns 1 for a sag curve, where the slope increases at mid,
// and -1 for a crest.
func radiusSign(left, mid, right Point) float64 {
	leftRun := mid.X - left.X
	rightRun := right.X - mid.X
	leftRise := mid.Y - left.Y
	rightRise := right.Y - mid.Y
	if leftRise*rightRun < rightRise*leftRun {
		return 1
	}
	return -1
}

func appendLinear(segs []ProfileSegment, start, end Point, vi int, valid bool) []ProfileSegment {
	if start.X >= end.X {
		return segs
	}
	return append(segs, &LinearSegment{
		Line:         Line{start, end},
		Intersection: vi,
		Valid:        valid,
	})
}

// TangentPointsOfPVI returns the points where a circular vertical curve of
// the given radius touches the legs left-mid and mid-right. A positive
// radius is a sag curve, a negative one a crest.
func TangentPointsOfPVI(left, mid, right Point, radius float64) (Point, Point, error) {
	if !(left.X < mid.X) {
		return Point{}, Point{}, fmt.Errorf("preceding point %s not before %s: %w", left, mid, ErrInfeasibleCurve)
	}
	if !(mid.X < right.X) {
		return Point{}, Point{}, fmt.Errorf("following point %s not after %s: %w", right, mid, ErrInfeasibleCurve)
	}
	l, err := tangentLength(left, mid, right, radius)
	if err != nil {
		return Point{}, Point{}, err
	}
	return Line{mid, left}.PointAtDistance(l), Line{mid, right}.PointAtDistance(l), nil
}

func tangentLength(left, mid, right Point, radius float64) (float64, error) {
	dyLeft, dyRight := left.Y-mid.Y, right.Y-mid.Y
	if radius < 0 {
		dyLeft, dyRight = -dyLeft, -dyRight
	}
	a1, err := halfAngle(mid.X-left.X, dyLeft)
	if err != nil {
		return 0, err
	}
	a2, err := halfAngle(right.X-mid.X, dyRight)
	if err != nil {
		return 0, err
	}
	avg := (a1 + a2) / 2
	if !(avg > 0) || !(avg < math.Pi/2) {
		return 0, fmt.Errorf("deflection half-angle %g not in (0, π/2) for radius %g: %w", avg, radius, ErrInfeasibleCurve)
	}
	l := math.Abs(radius) / math.Tan(avg)
	if !(l > 0) {
		return 0, fmt.Errorf("tangent length %g not positive: %w", l, ErrInfeasibleCurve)
	}
	return l, nil
}

// halfAngle returns the angle between one leg of a vertical intersection and
// the vertical through it, on the side of the curve's center.
func halfAngle(dx, dy float64) (float64, error) {
	var a float64
	switch {
	case dy == 0:
		a = math.Pi / 2
	case dy > 0:
		a = math.Atan(dx / dy)
	default:
		a = math.Pi/2 + math.Abs(math.Atan(dy/dx))
	}
	if !(a > 0) || !(a < math.Pi) {
		return 0, fmt.Errorf("half-angle %g not in (0, π): %w", a, ErrInfeasibleCurve)
	}
	return a, nil
}

// CircularCurveCenter returns the center of the circular vertical curve that
// touches the leg from pvi back to leftTangent at leftTangent.
func CircularCurveCenter(radius float64, leftTangent, pvi Point) Point {
	return leftTangent.InDirection(radius, pvi.DirectionTo(leftTangent)-math.Pi/2)
}
