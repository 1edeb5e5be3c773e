package railgeom

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Direction returns the direction from P0 to P1 in radians.
func (l Line) Direction() float64 {
	return l.P0.DirectionTo(l.P1)
}

// Eval returns the point at parameter t, where t = 0 is P0 and t = 1 is P1.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// PointAtDistance returns the point that lies dist units from P0 in the
// direction of P1. Distances outside [0, Length] extrapolate along the line.
func (l Line) PointAtDistance(dist float64) Point {
	return l.P0.Translate(l.P1.Sub(l.P0).Normalize().Mul(dist))
}

// Nearest returns the squared distance from pt to the closest point on the
// segment, and that point's parameter t ∈ [0, 1].
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// ProjectedLength returns the distance from P0 to the point of the segment
// closest to pt.
func (l Line) ProjectedLength(pt Point) float64 {
	_, t := l.Nearest(pt)
	return l.P0.Distance(l.Eval(t))
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

// YAtX returns the y coordinate of the infinite line through P0 and P1 at x.
// Vertical lines return P0.Y.
func (l Line) YAtX(x float64) float64 {
	dx := l.P1.X - l.P0.X
	if dx == 0 {
		return l.P0.Y
	}
	return l.P0.Y + (x-l.P0.X)*(l.P1.Y-l.P0.Y)/dx
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }
