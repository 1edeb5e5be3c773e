package railgeom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Vec(3, -1), Pt(4, 1).Sub(Pt(1, 2)))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.DistanceSquared(p4); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
	if !p3.Near(Pt(-11, 1.0005), 0.001) || p3.Near(p4, 4.9) {
		t.Error("Near disagrees with Distance")
	}
}

func TestPointDirection(t *testing.T) {
	const epsilon = 1e-12
	o := Pt(1, 1)
	assertClose(t, o.DirectionTo(Pt(2, 1)), 0, epsilon)
	assertClose(t, o.DirectionTo(Pt(1, 2)), math.Pi/2, epsilon)
	assertClose(t, o.DirectionTo(Pt(0, 0)), -3*math.Pi/4, epsilon)

	assertNear(t, o.InDirection(2, math.Pi/2), Pt(1, 3), epsilon)
	assertNear(t, o.InDirection(-1, 0), Pt(0, 1), epsilon)
}
