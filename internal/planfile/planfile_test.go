package planfile

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"honnef.co/go/railgeom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("unexpected difference (-want +got):\n%s", d)
	}
}

func TestLoad(t *testing.T) {
	plan, err := Load("testdata/plan.toml")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "example", plan.Name)
	diff(t, []railgeom.Point{railgeom.Pt(0, -10)}, plan.KmPosts)
	if len(plan.Alignments) != 1 {
		t.Fatalf("got %d alignments, want 1", len(plan.Alignments))
	}
	a := plan.Alignments[0]
	diff(t, "track 1", a.Name)

	var types []railgeom.ElementType
	for _, e := range a.Elements {
		types = append(types, e.Type())
	}
	diff(t, []railgeom.ElementType{railgeom.LineType, railgeom.CurveType, railgeom.LineType}, types)

	c := a.Elements[1].(*railgeom.CurveElement)
	diff(t, railgeom.CCW, c.Rotation())
	diff(t, railgeom.Pt(0, 200), c.Center())
	if d := math.Abs(c.CalculatedLength() - 100*math.Pi); d > 1e-9 {
		t.Errorf("curve length off by %g", d)
	}
	diff(t, railgeom.ElementData{
		Name:     "curve",
		OIDPart:  "2",
		Start:    railgeom.Pt(0, 0),
		End:      railgeom.Pt(200, 200),
		StaStart: 100,
		Length:   314.159265,
	}, c.Data())
	diff(t, railgeom.SwitchData{SwitchID: "V001", StartJoint: 1, EndJoint: 2}, a.Elements[2].Switch())

	vis := a.Profile.Intersections()
	if len(vis) != 3 {
		t.Fatalf("got %d vertical intersections, want 3", len(vis))
	}
	if _, ok := vis[0].(railgeom.VIPoint); !ok {
		t.Errorf("got %T, want VIPoint", vis[0])
	}
	curve, ok := vis[1].(railgeom.VICircularCurve)
	if !ok {
		t.Fatalf("got %T, want VICircularCurve", vis[1])
	}
	diff(t, "crest", curve.Label())
	diff(t, 500.0, *curve.Radius)
	diff(t, 40.0, *curve.Length)
	if h, ok := a.HeightAt(150); !ok || math.Abs(h-1) > 1e-9 {
		t.Errorf("got height %g, %t at 150, want 1", h, ok)
	}

	diff(t, &railgeom.Cant{
		Name:          "cant 1",
		Gauge:         1.524,
		RotationPoint: railgeom.InsideRail,
		Points: []railgeom.CantPoint{
			{Station: 0, AppliedCant: 0.2, Transition: railgeom.BiquadraticParabolaTransition},
			{Station: 1.1, AppliedCant: 0.1, Curvature: railgeom.CW},
			{Station: 2.1, AppliedCant: 0.15},
		},
	}, a.Cant)
}

func TestDecodeSpirals(t *testing.T) {
	const src = `
[[alignment]]
name = "spirals"

[[alignment.element]]
type = "clothoid"
rotation = "cw"
start = [0, 0]
end = [39.99, -0.27]
pi = [26.67, 0]
radius_end = 1000
direction_start = 100
constant = 200
length = 40

[[alignment.element]]
type = "biquadratic_parabola"
rotation = "ccw"
start = [0, 0]
end = [99.99, 0.83]
pi = [50, 0]
radius_end = 1000
length = 100
`
	plan, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	els := plan.Alignments[0].Elements
	c, ok := els[0].(*railgeom.Clothoid)
	if !ok {
		t.Fatalf("got %T, want *Clothoid", els[0])
	}
	diff(t, 200.0, c.Constant())
	sd := c.SpiralData()
	// Geodetic 100 grads point east.
	if sd.DirectionStart == nil || math.Abs(*sd.DirectionStart) > 1e-12 {
		t.Errorf("got start direction %v, want 0", sd.DirectionStart)
	}
	if sd.DirectionEnd != nil {
		t.Errorf("got end direction %g, want none", *sd.DirectionEnd)
	}
	if r, ok := c.RadiusEnd(); !ok || r != 1000 {
		t.Errorf("got end radius %g, %t", r, ok)
	}
	if _, ok := els[1].(*railgeom.BiquadraticParabola); !ok {
		t.Errorf("got %T, want *BiquadraticParabola", els[1])
	}
	if plan.Alignments[0].Profile != nil || plan.Alignments[0].Cant != nil {
		t.Error("got a profile or cant that was not described")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		is   error
	}{
		{"syntax", `name = `, "", nil},
		{"unknown key", "name = \"x\"\ncolour = \"red\"", "unknown keys: colour", nil},
		{"unknown element type", "[[alignment]]\n[[alignment.element]]\ntype = \"spline\"\nstart = [0, 0]\nend = [1, 0]\nrotation = \"cw\"", `unknown element type "spline"`, nil},
		{"rotation", "[[alignment]]\n[[alignment.element]]\ntype = \"curve\"\nstart = [0, 0]\nend = [1, 0]\nrotation = \"left\"", `invalid rotation direction "left"`, nil},
		{"degenerate", "[[alignment]]\n[[alignment.element]]\ntype = \"line\"\nstart = [1, 1]\nend = [1, 1]", "", railgeom.ErrDegenerateElement},
		{"zero radius", "[[alignment]]\n[alignment.profile]\nvi = [{ station = 0, height = 0 }, { station = 1, height = 0, radius = 0 }]", "", railgeom.ErrInvalidParameter},
		{"rotation point", "[[alignment]]\n[alignment.cant]\nrotation_point = \"outside\"", `invalid cant rotation point "outside"`, nil},
		{"transition", "[[alignment]]\n[alignment.cant]\npoints = [{ station = 0, applied_cant = 0, transition = \"cubic\" }]", `invalid cant transition type "cubic"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got error %q, want it to contain %q", err, tt.want)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("got error %q, want %v", err, tt.is)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("testdata/missing.toml"); err == nil {
		t.Error("expected an error")
	}
}
