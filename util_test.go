package railgeom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func assertClose(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if d := math.Abs(got - want); d > epsilon {
		t.Errorf("got %v, want %v (off by %g)", got, want, d)
	}
}

func ptr(f float64) *float64 { return &f }
