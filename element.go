package railgeom

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// RotationDirection is the direction in which a curved element turns when
// travelled from its start to its end.
type RotationDirection int

const (
	CCW RotationDirection = iota
	CW
)

func (r RotationDirection) String() string {
	switch r {
	case CCW:
		return "ccw"
	case CW:
		return "cw"
	default:
		return fmt.Sprintf("RotationDirection(%d)", int(r))
	}
}

// ParseRotationDirection parses "cw" or "ccw", case-insensitively.
func ParseRotationDirection(s string) (RotationDirection, error) {
	switch strings.ToLower(s) {
	case "ccw":
		return CCW, nil
	case "cw":
		return CW, nil
	default:
		return 0, fmt.Errorf("invalid rotation direction %q", s)
	}
}

// sign returns 1 for anti-clockwise and -1 for clockwise rotation.
func (r RotationDirection) sign() float64 {
	if r == CW {
		return -1
	}
	return 1
}

type ElementType int

const (
	LineType ElementType = iota + 1
	CurveType
	ClothoidType
	BiquadraticParabolaType
)

func (t ElementType) String() string {
	switch t {
	case LineType:
		return "LINE"
	case CurveType:
		return "CURVE"
	case ClothoidType:
		return "CLOTHOID"
	case BiquadraticParabolaType:
		return "BIQUADRATIC_PARABOLA"
	default:
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
}

var (
	// ErrDegenerateElement is returned for elements whose start and end
	// points coincide.
	ErrDegenerateElement = errors.New("element start and end coincide")
	// ErrMissingRadius is returned for transition spirals that have neither a
	// start nor an end radius.
	ErrMissingRadius = errors.New("spiral has neither start nor end radius")
	// ErrUnsupportedSpiral is returned for biquadratic parabolas that connect
	// two curves.
	ErrUnsupportedSpiral = errors.New("biquadratic parabola between two curves is not supported")
	// ErrInvalidParameter is returned for non-positive radii, clothoid
	// constants and parabola lengths.
	ErrInvalidParameter = errors.New("invalid element parameter")
)

// ElementData holds the fields common to all element types, as given by the
// design.
type ElementData struct {
	Name    string
	OIDPart string
	Start   Point
	End     Point
	// StaStart is the station of the element's start.
	StaStart float64
	// Length is the declared length. Elements also compute their own length;
	// see [Element.CalculatedLength].
	Length float64
}

func (d ElementData) check() error {
	if d.Start == d.End {
		return fmt.Errorf("element %q at %s: %w", d.Name, d.Start, ErrDegenerateElement)
	}
	return nil
}

// SwitchData links an element to a switch. Joint numbers are zero when unset.
type SwitchData struct {
	SwitchID   string
	StartJoint int
	EndJoint   int
}

// ContentEquals compares the joint numbers of s and o. The switch id is a
// storage reference and does not take part in the comparison.
func (s SwitchData) ContentEquals(o SwitchData) bool {
	return s.StartJoint == o.StartJoint && s.EndJoint == o.EndJoint
}

// Element is one piece of an alignment's plan geometry. Implementations are
// immutable and safe for concurrent use.
//
// Distances passed to and returned from elements are measured along the
// element from its start.
type Element interface {
	Type() ElementType
	// ID identifies the element. It is not part of the element's content.
	ID() uuid.UUID
	Data() ElementData
	Switch() SwitchData
	Start() Point
	End() Point
	// Length returns the declared length.
	Length() float64
	// CalculatedLength returns the length derived from the element's
	// geometry.
	CalculatedLength() float64
	// BoundingExtent returns points whose convex hull contains the element.
	BoundingExtent() []Point
	StartDirection() float64
	EndDirection() float64
	PositionAt(distance float64) Point
	// LengthUntil returns the distance along the element to the point of the
	// element closest to target.
	LengthUntil(target Point) float64
	// ContentEquals reports whether other has the same type and content,
	// ignoring identity.
	ContentEquals(other Element) bool
}

var (
	_ Element = (*LineElement)(nil)
	_ Element = (*CurveElement)(nil)
	_ Element = (*Clothoid)(nil)
	_ Element = (*BiquadraticParabola)(nil)
)

type element struct {
	id   uuid.UUID
	data ElementData
	sw   SwitchData
}

func (e *element) init(data ElementData, sw SwitchData) error {
	if err := data.check(); err != nil {
		return err
	}
	e.id = uuid.New()
	e.data = data
	e.sw = sw
	return nil
}

func (e *element) ID() uuid.UUID      { return e.id }
func (e *element) Data() ElementData  { return e.data }
func (e *element) Switch() SwitchData { return e.sw }
func (e *element) Start() Point       { return e.data.Start }
func (e *element) End() Point         { return e.data.End }
func (e *element) Length() float64    { return e.data.Length }

func (e *element) contentEquals(o *element) bool {
	return e.data == o.data && e.sw.ContentEquals(o.sw)
}

// orientedBounds returns the corners of the bounding box of pts in the frame
// described by frame, mapped back to plan coordinates.
func orientedBounds(frame Affine, pts ...Point) []Point {
	inv := frame.Invert()
	local := make([]Point, len(pts))
	for i, pt := range pts {
		local[i] = pt.Transform(inv)
	}
	r, _ := BoundingRect(local...)
	corners := r.Corners()
	out := make([]Point, len(corners))
	for i, c := range corners {
		out[i] = c.Transform(frame)
	}
	return out
}

func equalOptional(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// orInf dereferences r, treating a missing radius as infinite.
func orInf(r *float64) float64 {
	if r == nil {
		return math.Inf(1)
	}
	return *r
}
