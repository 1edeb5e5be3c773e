package validate

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"honnef.co/go/railgeom"
)

// AlignmentCant validates a's cant against the expected gauge in opts.
func AlignmentCant(a *railgeom.Alignment, opts Options) []Issue {
	c := a.Cant
	if c == nil {
		return []Issue{{Key: AlignmentKey + ".no-cant", Severity: ObservationMajor, Parent: a.Name}}
	}

	var issues []Issue
	switch c.RotationPoint {
	case railgeom.CenterRail:
		issues = append(issues, Issue{Key: AlignmentKey + ".cant-rotation-point-center", Severity: ValidationError, Parent: a.Name})
	case railgeom.RotationPointUnset:
		issues = append(issues, Issue{Key: AlignmentKey + ".cant-rotation-point-undefined", Severity: ObservationMajor, Parent: a.Name})
	}
	if !scalar.EqualWithinAbs(c.Gauge, opts.Gauge, accurateLengthDelta) {
		issues = append(issues, Issue{
			Key:      CantKey + ".cant-gauge-invalid",
			Severity: ObservationMajor,
			Parent:   c.Name,
			Value:    fmt.Sprintf("%g <> %g", c.Gauge, opts.Gauge),
		})
	}

	issue := func(p railgeom.CantPoint, key, value string) Issue {
		return Issue{
			Key:      CantKey + "." + key,
			Severity: ObservationMajor,
			Parent:   c.Name,
			Name:     fmt.Sprintf("%.3f", p.Station),
			Value:    value,
		}
	}
	return append(issues, pieces(c.Points,
		func(p railgeom.CantPoint) []Issue {
			if p.AppliedCant < 0 || p.AppliedCant > c.Gauge {
				return []Issue{issue(p, "value-incorrect", fmt.Sprint(p.AppliedCant))}
			}
			return nil
		},
		func(p, prev railgeom.CantPoint) []Issue {
			if !(p.Station > prev.Station) {
				return []Issue{issue(p, "station-not-continuous", fmt.Sprintf("%g <= %g", p.Station, prev.Station))}
			}
			return nil
		},
	)...)
}
