package validate

import (
	"fmt"
	"math"

	"honnef.co/go/railgeom"
)

// AlignmentProfile validates a's vertical intersections and the profile
// segments derived from them.
func AlignmentProfile(a *railgeom.Alignment) []Issue {
	if a.Profile == nil {
		return []Issue{{Key: AlignmentKey + ".no-profile", Severity: ObservationMajor, Parent: a.Name}}
	}
	p := a.Profile
	vis := p.Intersections()
	issue := func(vi railgeom.VerticalIntersection, key string, value string) Issue {
		return Issue{
			Key:      ProfileKey + "." + key,
			Severity: ObservationMajor,
			Parent:   p.Name(),
			Name:     viName(vi),
			Value:    value,
		}
	}

	issues := pieces(vis,
		func(vi railgeom.VerticalIntersection) []Issue {
			c, ok := vi.(railgeom.VICircularCurve)
			if !ok {
				return nil
			}
			var out []Issue
			if c.Length == nil {
				out = append(out, issue(vi, "curve-length-missing", ""))
			}
			if c.Radius == nil {
				out = append(out, issue(vi, "curve-radius-missing", ""))
			}
			return out
		},
		func(vi, prev railgeom.VerticalIntersection) []Issue {
			cur, last := vi.Location(), prev.Location()
			dx, dy := cur.X-last.X, cur.Y-last.Y
			if !(dx > 0) {
				return []Issue{issue(vi, "incorrect-station", fmt.Sprintf("%g <= %g", cur.X, last.X))}
			}
			if slope := railgeom.RadsToDegrees(math.Atan(dy / dx)); math.Abs(slope) > maxProfileSlopeDegrees {
				return []Issue{issue(vi, "incorrect-slope", fmt.Sprintf("%.1f°", slope))}
			}
			return nil
		},
	)

	segIssue := func(s railgeom.ProfileSegment, key string, value string) Issue {
		return issue(vis[s.VI()], key, value)
	}
	issues = append(issues, pieces(p.Segments(),
		func(s railgeom.ProfileSegment) []Issue {
			if s.IsValid() {
				return nil
			}
			return []Issue{issue(vis[s.VI()], "calculation-failed", "")}
		},
		func(s, prev railgeom.ProfileSegment) []Issue {
			var out []Issue
			start, end := s.Start(), prev.End()
			if d := math.Abs(start.X - end.X); d > profileContinuityDelta {
				out = append(out, segIssue(s, "segment-station-not-continuous", fmt.Sprintf("%.4f", d)))
			}
			if d := math.Abs(start.Y - end.Y); d > profileContinuityDelta {
				out = append(out, segIssue(s, "segment-height-not-continuous", fmt.Sprintf("%.4f", d)))
			}
			// Grades may break at a plain vertical intersection. Only curves
			// must meet their grades tangentially.
			if s.IsValid() && prev.IsValid() && (isCurved(s) || isCurved(prev)) {
				if d := railgeom.AngleDiff(s.StartAngle(), prev.EndAngle()); d > profileContinuityDelta {
					out = append(out, segIssue(s, "segment-angle-not-continuous", fmt.Sprintf("%.4f", d)))
				}
			}
			return out
		},
	)...)
	return issues
}

func viName(vi railgeom.VerticalIntersection) string {
	if l := vi.Label(); l != "" {
		return l
	}
	pt := vi.Location()
	return fmt.Sprintf("%.3f", pt.X)
}

func isCurved(s railgeom.ProfileSegment) bool {
	_, ok := s.(*railgeom.CurvedSegment)
	return ok
}
