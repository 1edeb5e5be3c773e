package validate

import (
	"math"
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

func keys(issues []Issue) []string {
	var out []string
	for _, is := range issues {
		out = append(out, is.Key)
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func line(t *testing.T, name string, sta, length float64, start, end railgeom.Point) railgeom.Element {
	t.Helper()
	e, err := railgeom.NewLineElement(railgeom.ElementData{
		Name: name, Start: start, End: end, StaStart: sta, Length: length,
	}, railgeom.SwitchData{})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// quarterCurve turns anti-clockwise from heading east at (0, 0) to heading
// north at (r, r).
func quarterCurve(t *testing.T, sta, r float64, center railgeom.Point) railgeom.Element {
	t.Helper()
	e, err := railgeom.NewCurveElement(
		railgeom.ElementData{Name: "curve", Start: railgeom.Pt(0, 0), End: railgeom.Pt(r, r), StaStart: sta, Length: math.Pi * r / 2},
		railgeom.CurveData{Rotation: railgeom.CCW, Radius: r, Chord: r * math.Sqrt2, Center: center},
		railgeom.SwitchData{})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func profile(t *testing.T, vis ...railgeom.VerticalIntersection) *railgeom.Profile {
	t.Helper()
	p, err := railgeom.NewProfile("profile", vis)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func vi(x, y float64) railgeom.VerticalIntersection {
	return railgeom.VIPoint{Point: railgeom.Pt(x, y)}
}

func cant(rp railgeom.RotationPoint, gauge float64, points ...[2]float64) *railgeom.Cant {
	c := &railgeom.Cant{Name: "cant", Gauge: gauge, RotationPoint: rp}
	for _, p := range points {
		c.Points = append(c.Points, railgeom.CantPoint{Station: p[0], AppliedCant: p[1]})
	}
	return c
}

func validCant() *railgeom.Cant {
	return cant(railgeom.InsideRail, 1.524, [2]float64{0, 0.2}, [2]float64{1.1, 0.1}, [2]float64{2.1, 0.15})
}

func validAlignment(t *testing.T) *railgeom.Alignment {
	t.Helper()
	const r = 200.0
	return &railgeom.Alignment{
		Name: "track",
		Elements: []railgeom.Element{
			line(t, "approach", 0, 100, railgeom.Pt(-100, 0), railgeom.Pt(0, 0)),
			quarterCurve(t, 100, r, railgeom.Pt(0, r)),
			line(t, "exit", 100+math.Pi*r/2, 100, railgeom.Pt(r, r), railgeom.Pt(r, r+100)),
		},
		Profile: profile(t,
			vi(0, 0),
			railgeom.VICircularCurve{Point: railgeom.Pt(100, 2), Radius: ptr(500), Length: ptr(40)},
			vi(200, 0),
		),
		Cant: validCant(),
	}
}

func TestValidPlan(t *testing.T) {
	plan := &railgeom.Plan{
		Name:       "plan",
		Alignments: []*railgeom.Alignment{validAlignment(t)},
		KmPosts:    []railgeom.Point{railgeom.Pt(0, 0)},
	}
	if issues := Plan(plan, DefaultOptions); len(issues) != 0 {
		t.Errorf("got issues for a valid plan: %v", issues)
	}
}

func TestPlanIssues(t *testing.T) {
	a, b := validAlignment(t), validAlignment(t)
	plan := &railgeom.Plan{Name: "plan", Alignments: []*railgeom.Alignment{a, b}}
	issues := Plan(plan, DefaultOptions)
	diff(t, []string{"plan.km-posts-missing", "alignment.duplicate-name"}, keys(issues))
	diff(t, "plan", issues[0].Parent)
	diff(t, "track", issues[1].Parent)
}

func TestElementLength(t *testing.T) {
	tests := []struct {
		length float64
		want   []string
	}{
		{100, nil},
		{100.0005, nil},
		{100.05, []string{"element.field-inaccurate-length"}},
		{101, []string{"element.field-incorrect-length"}},
		{0, []string{"element.field-invalid-length"}},
	}
	for _, tt := range tests {
		a := &railgeom.Alignment{Name: "track", Elements: []railgeom.Element{
			line(t, "line", 0, tt.length, railgeom.Pt(0, 0), railgeom.Pt(100, 0)),
		}}
		issues := AlignmentGeometry(a)
		diff(t, tt.want, keys(issues))
	}
}

func TestElementSeverities(t *testing.T) {
	a := &railgeom.Alignment{Name: "track", Elements: []railgeom.Element{
		line(t, "line", 0, 101, railgeom.Pt(0, 0), railgeom.Pt(100, 0)),
	}}
	issues := AlignmentGeometry(a)
	if len(issues) != 1 {
		t.Fatalf("got %v", issues)
	}
	diff(t, Issue{
		Key:      "element.field-incorrect-length",
		Severity: ObservationMajor,
		Parent:   "track",
		Name:     "LINE line",
		Value:    "101 <> 100.000",
	}, issues[0])
}

func TestElementsNotContinuous(t *testing.T) {
	a := &railgeom.Alignment{Name: "track", Elements: []railgeom.Element{
		line(t, "first", 0, 100, railgeom.Pt(-100, 0), railgeom.Pt(0, 0)),
		line(t, "second", 100, 100, railgeom.Pt(0, 1), railgeom.Pt(100, 1)),
	}}
	diff(t, []string{"element.coordinates-not-continuous"}, keys(AlignmentGeometry(a)))

	a.Elements[1] = line(t, "second", 100, 100, railgeom.Pt(0, 0.01), railgeom.Pt(100, 0.01))
	diff(t, []string{"element.coordinates-inaccurate"}, keys(AlignmentGeometry(a)))

	a.Elements[1] = line(t, "second", 100, 100, railgeom.Pt(0, 0), railgeom.Pt(0, 100))
	diff(t, []string{"element.directions-not-continuous"}, keys(AlignmentGeometry(a)))

	a.Elements[1] = line(t, "second", 0, 100, railgeom.Pt(0, 0), railgeom.Pt(100, 0))
	diff(t, []string{"element.station-not-increasing"}, keys(AlignmentGeometry(a)))
}

func TestCurveIssues(t *testing.T) {
	a := &railgeom.Alignment{Name: "track", Elements: []railgeom.Element{
		quarterCurve(t, 0, 100, railgeom.Pt(0, 100)),
	}}
	diff(t, []string{"element.curve-steep"}, keys(AlignmentGeometry(a)))

	// A misplaced center moves the computed end point too. The declared end
	// is only slightly off the circle.
	a.Elements[0] = quarterCurve(t, 0, 200, railgeom.Pt(0, 201))
	got := keys(AlignmentGeometry(a))
	want := []string{
		"element.incorrect-start-point",
		"element.incorrect-end-point",
		"element.curve-radius-incorrect-start",
		"element.curve-radius-inaccurate-end",
	}
	diff(t, want, got)
}

func TestProfileIssues(t *testing.T) {
	tests := []struct {
		name string
		vis  []railgeom.VerticalIntersection
		want []string
	}{
		{
			"valid",
			[]railgeom.VerticalIntersection{vi(1, 0.02), vi(2, 0.01), vi(3, 0.04)},
			nil,
		},
		{
			"station",
			[]railgeom.VerticalIntersection{vi(1, 0.02), vi(0.1, 0.01), vi(3.0, 0.04)},
			[]string{"profile.incorrect-station", "profile.calculation-failed"},
		},
		{
			"slope",
			[]railgeom.VerticalIntersection{vi(1, 1), vi(2, 2.5), vi(3, 2.6)},
			[]string{"profile.incorrect-slope"},
		},
		{
			// Exactly 45° is allowed.
			"steepest",
			[]railgeom.VerticalIntersection{vi(1, 1), vi(2, 2)},
			nil,
		},
		{
			"missing curve fields",
			[]railgeom.VerticalIntersection{
				vi(0, 0),
				railgeom.VICircularCurve{Description: "pvi", Point: railgeom.Pt(100, 2)},
				vi(200, 0),
			},
			[]string{"profile.curve-length-missing", "profile.curve-radius-missing", "profile.calculation-failed", "profile.calculation-failed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &railgeom.Alignment{Name: "track", Profile: profile(t, tt.vis...)}
			diff(t, tt.want, keys(AlignmentProfile(a)))
		})
	}
}

func TestProfileIssueNames(t *testing.T) {
	a := &railgeom.Alignment{Name: "track", Profile: profile(t,
		vi(0, 0),
		railgeom.VICircularCurve{Description: "pvi", Point: railgeom.Pt(100, 2), Radius: ptr(500)},
		vi(200, 0),
	)}
	issues := AlignmentProfile(a)
	want := []Issue{
		{Key: "profile.curve-length-missing", Severity: ObservationMajor, Parent: "profile", Name: "pvi"},
		{Key: "profile.calculation-failed", Severity: ObservationMajor, Parent: "profile", Name: "pvi"},
		{Key: "profile.calculation-failed", Severity: ObservationMajor, Parent: "profile", Name: "200.000"},
	}
	diff(t, want, issues)
}

func TestMissingProfileAndCant(t *testing.T) {
	a := validAlignment(t)
	a.Profile = nil
	a.Cant = nil
	diff(t, []string{"alignment.no-profile", "alignment.no-cant"}, keys(Alignment(a, DefaultOptions)))
}

func TestCantIssues(t *testing.T) {
	tests := []struct {
		name string
		cant *railgeom.Cant
		opts Options
		want []string
	}{
		{"valid", validCant(), DefaultOptions, nil},
		{
			"value",
			cant(railgeom.InsideRail, 1.524, [2]float64{0, 0.1}, [2]float64{1, 2.0}),
			DefaultOptions,
			[]string{"cant.value-incorrect"},
		},
		{
			"negative",
			cant(railgeom.InsideRail, 1.524, [2]float64{0, -0.1}),
			DefaultOptions,
			[]string{"cant.value-incorrect"},
		},
		{
			"stations",
			cant(railgeom.InsideRail, 1.524, [2]float64{1, 0.1}, [2]float64{0.5, 0.1}, [2]float64{3, 0.1}),
			DefaultOptions,
			[]string{"cant.station-not-continuous"},
		},
		{
			"rotation point unset",
			cant(railgeom.RotationPointUnset, 1.524, [2]float64{0, 0.1}),
			DefaultOptions,
			[]string{"alignment.cant-rotation-point-undefined"},
		},
		{
			"rotation point center",
			cant(railgeom.CenterRail, 1.524, [2]float64{0, 0.1}),
			DefaultOptions,
			[]string{"alignment.cant-rotation-point-center"},
		},
		{
			"gauge",
			validCant(),
			Options{Gauge: 1.435},
			[]string{"cant.cant-gauge-invalid"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &railgeom.Alignment{Name: "track", Cant: tt.cant}
			diff(t, tt.want, keys(AlignmentCant(a, tt.opts)))
		})
	}
}

func TestIssueString(t *testing.T) {
	is := Issue{Key: "cant.value-incorrect", Severity: ObservationMajor, Parent: "cant", Name: "1.000", Value: "2"}
	diff(t, "[OBSERVATION_MAJOR] cant.value-incorrect in cant at 1.000: 2", is.String())
	diff(t, "[VALIDATION_ERROR] alignment.no-cant", Issue{Key: "alignment.no-cant"}.String())
}
