package railgeom

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/proj"
	"github.com/sirupsen/logrus"
)

// A Transform maps a point from a plan's coordinate system to another one.
type Transform func(Point) (Point, error)

// IdentityTransform returns its input.
func IdentityTransform(pt Point) (Point, error) { return pt, nil }

// ProjTransform adapts t to a Transform.
func ProjTransform(t proj.Transformer) Transform {
	return func(pt Point) (Point, error) {
		x, y, err := t(pt.X, pt.Y)
		if err != nil {
			return Point{}, err
		}
		return Pt(x, y), nil
	}
}

// NewProjTransform returns a transform between two spatial references given
// as proj4 strings.
func NewProjTransform(src, dst string) (Transform, error) {
	srcSR, err := proj.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("railgeom: while parsing source projection: %v", err)
	}
	dstSR, err := proj.Parse(dst)
	if err != nil {
		return nil, fmt.Errorf("railgeom: while parsing target projection: %v", err)
	}
	t, err := srcSR.NewTransform(dstSR)
	if err != nil {
		return nil, fmt.Errorf("railgeom: while creating transform: %v", err)
	}
	return ProjTransform(t), nil
}

var errDegenerateHull = errors.New("convex hull has fewer than three vertices")

// BoundingPolygon returns the convex hull of the bounding extents of the
// plan's alignments and its kilometer posts, mapped through tf. The hull is
// computed in the plan's coordinate system.
//
// An empty result means the bounds are unavailable: the hull was degenerate
// or tf failed for at least one vertex.
func BoundingPolygon(plan *Plan, tf Transform) []Point {
	pts := append([]Point(nil), plan.KmPosts...)
	for _, a := range plan.Alignments {
		pts = append(pts, a.Bounds()...)
	}
	return boundingPolygon(pts, tf, logrus.Fields{"plan": plan.Name})
}

// AlignmentsBoundingPolygon is like BoundingPolygon for a set of alignments.
func AlignmentsBoundingPolygon(alignments []*Alignment, tf Transform) []Point {
	var pts []Point
	for _, a := range alignments {
		pts = append(pts, a.Bounds()...)
	}
	return boundingPolygon(pts, tf, logrus.Fields{"alignments": len(alignments)})
}

// BoundingPolygons computes the bounding polygons of plans concurrently. The
// i'th result belongs to the i'th plan.
func BoundingPolygons(plans []*Plan, tf Transform) [][]Point {
	out := make([][]Point, len(plans))
	var wg sync.WaitGroup
	for i, plan := range plans {
		wg.Add(1)
		go func(i int, plan *Plan) {
			defer wg.Done()
			out[i] = BoundingPolygon(plan, tf)
		}(i, plan)
	}
	wg.Wait()
	return out
}

func boundingPolygon(pts []Point, tf Transform, fields logrus.Fields) (out []Point) {
	defer func() {
		if r := recover(); r != nil {
			Logger.WithFields(fields).WithField("cause", r).Debug("bounding polygon unavailable")
			out = nil
		}
	}()
	out, err := transformHull(ConvexHull(pts), tf)
	if err != nil {
		Logger.WithFields(fields).WithField("cause", err).Debug("bounding polygon unavailable")
		return nil
	}
	return out
}

func transformHull(hull []Point, tf Transform) ([]Point, error) {
	if len(hull) < 3 {
		return nil, errDegenerateHull
	}
	out := make([]Point, len(hull))
	for i, pt := range hull {
		t, err := tf(pt)
		if err != nil {
			return nil, fmt.Errorf("transforming %s: %w", pt, err)
		}
		out[i] = t
	}
	return out, nil
}

// Polygon returns pts as a single closed ring.
func Polygon(pts []Point) geom.Polygon {
	if len(pts) == 0 {
		return nil
	}
	ring := make([]geom.Point, 0, len(pts)+1)
	for _, pt := range pts {
		ring = append(ring, geom.Point{X: pt.X, Y: pt.Y})
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

// GeoJSON encodes pts as a GeoJSON polygon geometry.
func GeoJSON(pts []Point) ([]byte, error) {
	return geojson.Encode(Polygon(pts))
}
