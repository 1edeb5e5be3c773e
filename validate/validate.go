// Package validate checks railway design plans for inconsistencies between
// declared and computed geometry.
//
// Validation never fails. It reports its findings as a list of issues, each
// identified by a dotted key such as "element.field-incorrect-length".
// Issues are ordered by the piece they concern: for each alignment the
// geometry comes first, then the profile, then the cant.
package validate

import (
	"fmt"

	"honnef.co/go/railgeom"
)

// Severity ranks an issue.
type Severity int

const (
	// ValidationError marks data that cannot be used as is.
	ValidationError Severity = iota
	ObservationMajor
	ObservationMinor
)

func (s Severity) String() string {
	switch s {
	case ValidationError:
		return "VALIDATION_ERROR"
	case ObservationMajor:
		return "OBSERVATION_MAJOR"
	case ObservationMinor:
		return "OBSERVATION_MINOR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Key prefixes, naming the kind of piece an issue concerns.
const (
	PlanKey      = "plan"
	AlignmentKey = "alignment"
	ElementKey   = "element"
	ProfileKey   = "profile"
	CantKey      = "cant"
)

// Issue is a single validation finding.
type Issue struct {
	Key      string
	Severity Severity
	// Parent names the alignment, profile or cant the issue was found in.
	Parent string
	// Name identifies the element, vertical intersection or cant station.
	Name string
	// Value optionally shows the offending value.
	Value string
}

func (i Issue) String() string {
	s := fmt.Sprintf("[%s] %s", i.Severity, i.Key)
	if i.Parent != "" {
		s += " in " + i.Parent
	}
	if i.Name != "" {
		s += " at " + i.Name
	}
	if i.Value != "" {
		s += ": " + i.Value
	}
	return s
}

// Options configures validation.
type Options struct {
	// Gauge is the expected track gauge, in metres.
	Gauge float64
}

// DefaultOptions holds the Finnish rail gauge.
var DefaultOptions = Options{Gauge: 1.524}

const (
	coordinateDelta         = 0.1
	accurateCoordinateDelta = 0.001

	lengthDelta         = 0.1
	accurateLengthDelta = 0.001

	radiusDelta         = 0.1
	accurateRadiusDelta = 0.001

	directionDelta         = 0.1
	accurateDirectionDelta = 0.001

	constantDelta         = 0.001
	accurateConstantDelta = 0.00001

	maxProfileSlopeDegrees = 45.0
	profileContinuityDelta = 0.0001

	minimumTurnRadius = 180.0
)

// Plan validates all of plan's alignments.
func Plan(plan *railgeom.Plan, opts Options) []Issue {
	var issues []Issue
	if len(plan.KmPosts) == 0 {
		issues = append(issues, Issue{Key: PlanKey + ".km-posts-missing", Severity: ObservationMajor, Parent: plan.Name})
	}
	return append(issues, Alignments(plan.Alignments, opts)...)
}

// Alignments reports duplicate alignment names, then validates each
// alignment.
func Alignments(alignments []*railgeom.Alignment, opts Options) []Issue {
	var issues []Issue
	counts := make(map[string]int)
	for _, a := range alignments {
		counts[a.Name]++
	}
	for _, a := range alignments {
		if counts[a.Name] > 1 {
			issues = append(issues, Issue{Key: AlignmentKey + ".duplicate-name", Severity: ObservationMajor, Parent: a.Name})
			// Report each name once.
			counts[a.Name] = 0
		}
	}
	for _, a := range alignments {
		issues = append(issues, Alignment(a, opts)...)
	}
	return issues
}

// Alignment validates a's geometry, profile and cant.
func Alignment(a *railgeom.Alignment, opts Options) []Issue {
	var issues []Issue
	issues = append(issues, AlignmentGeometry(a)...)
	issues = append(issues, AlignmentProfile(a)...)
	issues = append(issues, AlignmentCant(a, opts)...)
	return issues
}

// pieces applies item to every piece and vsPrevious to every piece after the
// first, keeping each piece's issues together.
func pieces[T any](ps []T, item func(T) []Issue, vsPrevious func(cur, prev T) []Issue) []Issue {
	var issues []Issue
	for i, p := range ps {
		issues = append(issues, item(p)...)
		if i > 0 {
			issues = append(issues, vsPrevious(p, ps[i-1])...)
		}
	}
	return issues
}

// graded returns the incorrect key and major severity when delta exceeds
// limit, and the inaccurate key and minor severity otherwise.
func graded(delta, limit float64, incorrect, inaccurate string) (string, Severity) {
	if delta > limit {
		return incorrect, ObservationMajor
	}
	return inaccurate, ObservationMinor
}
