package railgeom

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Alignment is a railway centerline: an ordered sequence of elements with
// optional vertical geometry and cant.
//
// Consecutive elements are expected, not required, to join up; see package
// validate.
type Alignment struct {
	Name     string
	Elements []Element
	Profile  *Profile
	Cant     *Cant
}

func (a *Alignment) lengths() []float64 {
	ls := make([]float64, len(a.Elements))
	for i, e := range a.Elements {
		ls[i] = e.CalculatedLength()
	}
	return ls
}

// Length returns the sum of the elements' calculated lengths.
func (a *Alignment) Length() float64 {
	return floats.Sum(a.lengths())
}

// StaStart returns the station of the alignment's start.
func (a *Alignment) StaStart() float64 {
	if len(a.Elements) == 0 {
		return 0
	}
	return a.Elements[0].Data().StaStart
}

// ElementAt returns the element covering distance m along the alignment and
// the distance along that element. Distances are accumulated from calculated
// lengths. It reports false for an empty alignment or m outside
// [0, Length].
func (a *Alignment) ElementAt(m float64) (Element, float64, bool) {
	if len(a.Elements) == 0 || m < 0 {
		return nil, 0, false
	}
	ends := a.lengths()
	floats.CumSum(ends, ends)
	if m > ends[len(ends)-1] {
		return nil, 0, false
	}
	i := sort.SearchFloat64s(ends, m)
	start := 0.0
	if i > 0 {
		start = ends[i-1]
	}
	return a.Elements[i], m - start, true
}

// StartLength returns the distance along the alignment at which the i'th
// element starts.
func (a *Alignment) StartLength(i int) float64 {
	return floats.Sum(a.lengths()[:i])
}

// PositionAt returns the plan position at distance m along the alignment.
func (a *Alignment) PositionAt(m float64) (Point, bool) {
	e, d, ok := a.ElementAt(m)
	if !ok {
		return Point{}, false
	}
	return e.PositionAt(d), true
}

// HeightAt returns the profile height at distance m along the alignment.
// Profiles are indexed by station, so m is offset by the alignment's start
// station.
func (a *Alignment) HeightAt(m float64) (float64, bool) {
	if a.Profile == nil {
		return 0, false
	}
	return a.Profile.HeightAt(a.StaStart() + m)
}

// CantAt returns the applied cant at distance m along the alignment.
func (a *Alignment) CantAt(m float64) (float64, bool) {
	if a.Cant == nil {
		return 0, false
	}
	return a.Cant.CantAt(m)
}

// Bounds returns the bounding extents of all elements.
func (a *Alignment) Bounds() []Point {
	var pts []Point
	for _, e := range a.Elements {
		pts = append(pts, e.BoundingExtent()...)
	}
	return pts
}

// Plan is a design plan: a set of alignments in one coordinate system.
type Plan struct {
	Name       string
	Alignments []*Alignment
	// KmPosts are the locations of kilometer posts.
	KmPosts []Point
}
