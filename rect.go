package railgeom

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// BoundingRect returns the smallest rectangle containing all of pts. It
// reports false if pts is empty.
func BoundingRect(pts ...Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r, true
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Contains reports whether pt lies inside r or on its boundary.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.MinX() &&
		pt.X <= r.MaxX() &&
		pt.Y >= r.MinY() &&
		pt.Y <= r.MaxY()
}

// UnionPoint computes the union with one point.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Inflate expands a rectangle by a constant amount in both directions.
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

// Corners returns the four corners of r, anti-clockwise starting from
// (X0, Y0).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X0, r.Y0},
		{r.X1, r.Y0},
		{r.X1, r.Y1},
		{r.X0, r.Y1},
	}
}
