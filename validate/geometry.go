package validate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"honnef.co/go/railgeom"
)

// AlignmentGeometry validates a's plan elements, each on its own and against
// the element before it.
func AlignmentGeometry(a *railgeom.Alignment) []Issue {
	return pieces(a.Elements,
		func(e railgeom.Element) []Issue { return element(a.Name, e) },
		func(e, prev railgeom.Element) []Issue { return elementVsPrevious(a.Name, e, prev) },
	)
}

func elementName(e railgeom.Element) string {
	d := e.Data()
	if d.Name != "" {
		return d.Name
	}
	return d.OIDPart
}

func elementIssue(alignment string, e railgeom.Element, key string, sev Severity, value string) Issue {
	return Issue{
		Key:      ElementKey + "." + key,
		Severity: sev,
		Parent:   alignment,
		Name:     fmt.Sprintf("%s %s", e.Type(), elementName(e)),
		Value:    value,
	}
}

func element(alignment string, e railgeom.Element) []Issue {
	var issues []Issue
	add := func(key string, sev Severity, value string) {
		issues = append(issues, elementIssue(alignment, e, key, sev, value))
	}

	length, calculated := e.Length(), e.CalculatedLength()
	if !(length > 0) {
		add("field-invalid-length", ObservationMajor, fmt.Sprint(length))
	} else if delta := math.Abs(length - calculated); delta >= accurateLengthDelta {
		key, sev := graded(delta, lengthDelta, "field-incorrect-length", "field-inaccurate-length")
		add(key, sev, fmt.Sprintf("%g <> %.3f", length, calculated))
	}

	if e.Start().Near(e.End(), accurateCoordinateDelta) {
		add("start-end-same", ObservationMajor, "")
	}
	if d := e.PositionAt(0).Distance(e.Start()); d > accurateCoordinateDelta {
		key, sev := graded(d, coordinateDelta, "incorrect-start-point", "inaccurate-start-point")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}
	if d := e.PositionAt(calculated).Distance(e.End()); d > accurateCoordinateDelta {
		key, sev := graded(d, coordinateDelta, "incorrect-end-point", "inaccurate-end-point")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}

	switch e := e.(type) {
	case *railgeom.CurveElement:
		issues = append(issues, curve(alignment, e)...)
	case *railgeom.Clothoid:
		issues = append(issues, spiral(alignment, e, e.SpiralData())...)
		issues = append(issues, clothoid(alignment, e)...)
	case *railgeom.BiquadraticParabola:
		issues = append(issues, spiral(alignment, e, e.SpiralData())...)
	}
	return issues
}

func elementVsPrevious(alignment string, e, prev railgeom.Element) []Issue {
	var issues []Issue
	add := func(key string, sev Severity, value string) {
		issues = append(issues, elementIssue(alignment, e, key, sev, value))
	}
	if d := e.Start().Distance(prev.End()); d > accurateCoordinateDelta {
		key, sev := graded(d, coordinateDelta, "coordinates-not-continuous", "coordinates-inaccurate")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}
	if d := railgeom.AngleDiff(e.StartDirection(), prev.EndDirection()); d > accurateDirectionDelta {
		key, sev := graded(d, directionDelta, "directions-not-continuous", "directions-inaccurate")
		add(key, sev, fmt.Sprintf("%.3f <> %.3f", prev.EndDirection(), e.StartDirection()))
	}
	if staPrev, sta := prev.Data().StaStart, e.Data().StaStart; !(sta > staPrev) {
		add("station-not-increasing", ObservationMajor, fmt.Sprintf("%g >= %g", staPrev, sta))
	}
	return issues
}

func curve(alignment string, c *railgeom.CurveElement) []Issue {
	var issues []Issue
	add := func(key string, sev Severity, value string) {
		issues = append(issues, elementIssue(alignment, c, key, sev, value))
	}
	r := c.Radius()
	if d := math.Abs(c.Center().Distance(c.Start()) - r); d > accurateRadiusDelta {
		key, sev := graded(d, radiusDelta, "curve-radius-incorrect-start", "curve-radius-inaccurate-start")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}
	if d := math.Abs(c.Center().Distance(c.End()) - r); d > accurateRadiusDelta {
		key, sev := graded(d, radiusDelta, "curve-radius-incorrect-end", "curve-radius-inaccurate-end")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}
	if d := math.Abs(c.Start().Distance(c.End()) - c.CurveData().Chord); d > accurateLengthDelta {
		key, sev := graded(d, lengthDelta, "curve-chord-incorrect", "curve-chord-inaccurate")
		add(key, sev, fmt.Sprintf("%.3f", d))
	}
	if r < minimumTurnRadius {
		add("curve-steep", ObservationMajor, fmt.Sprint(r))
	}
	return issues
}

func spiral(alignment string, e railgeom.Element, sd railgeom.SpiralData) []Issue {
	var issues []Issue
	if r := sd.RadiusStart; r != nil && *r < minimumTurnRadius {
		issues = append(issues, elementIssue(alignment, e, "spiral-start-steep", ObservationMajor, fmt.Sprint(*r)))
	}
	if r := sd.RadiusEnd; r != nil && *r < minimumTurnRadius {
		issues = append(issues, elementIssue(alignment, e, "spiral-end-steep", ObservationMajor, fmt.Sprint(*r)))
	}
	return issues
}

// clothoid recomputes the constant from the declared radii and length.
func clothoid(alignment string, c *railgeom.Clothoid) []Issue {
	var calculated float64
	if r, ok := c.RadiusStart(); ok {
		calculated = math.Sqrt(r * c.SegmentToClothoidDistance(0))
	} else if r, ok := c.RadiusEnd(); ok {
		calculated = math.Sqrt(r * c.SegmentToClothoidDistance(c.Length()))
	} else {
		return nil
	}
	if scalar.EqualWithinAbs(calculated, c.Constant(), accurateConstantDelta) {
		return nil
	}
	d := math.Abs(calculated - c.Constant())
	key, sev := graded(d, constantDelta, "clothoid-incorrect-constant", "clothoid-inaccurate-constant")
	return []Issue{elementIssue(alignment, c, key, sev, fmt.Sprintf("%.6f", d))}
}
