package railgeom

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// ConvexHull returns the vertices of the convex hull of pts, without repeating
// the first vertex at the end.
//
// A single distinct point yields that point. Collinear input yields a
// degenerate hull of fewer than three points. Empty input yields nil.
func ConvexHull(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	flat := make([]float64, 0, 2*len(pts))
	for _, pt := range pts {
		flat = append(flat, pt.X, pt.Y)
	}
	hull := xy.ConvexHull(geom.NewMultiPointFlat(geom.XY, flat))
	if hull == nil {
		return nil
	}
	coords := hull.FlatCoords()
	stride := hull.Stride()
	if stride < 2 {
		return nil
	}
	out := make([]Point, 0, len(coords)/stride)
	for i := 0; i+1 < len(coords); i += stride {
		out = append(out, Pt(coords[i], coords[i+1]))
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
