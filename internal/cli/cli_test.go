package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"honnef.co/go/railgeom"
)

const testPlan = "../planfile/testdata/plan.toml"

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("unexpected difference (-want +got):\n%s", d)
	}
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	logger := railgeom.Logger
	t.Cleanup(func() { railgeom.Logger = logger })

	cfg := InitializeConfig()
	var out, errOut bytes.Buffer
	cfg.Root.SetOut(&out)
	cfg.Root.SetErr(&errOut)
	cfg.Root.SetArgs(args)
	err = cfg.Root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "railgeom v"+Version+"\n", out)
}

func TestValidateCommand(t *testing.T) {
	out, stderr, err := run(t, "validate", testPlan)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "", out)
	if !strings.Contains(stderr, "validated plan") || !strings.Contains(stderr, "issues=0") {
		t.Errorf("unexpected log output %q", stderr)
	}

	out, _, err = run(t, "validate", "--Gauge", "1.435", testPlan)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "[OBSERVATION_MAJOR] cant.cant-gauge-invalid in cant 1: 1.524 <> 1.435\n", out)

	_, stderr, err = run(t, "validate", "--LogLevel", "warn", testPlan)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "", stderr)
}

func TestValidateConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railgeom.toml")
	if err := os.WriteFile(path, []byte("Gauge = 1.435\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "validate", "--config", path, testPlan)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cant.cant-gauge-invalid") {
		t.Errorf("configuration file ignored, got %q", out)
	}

	t.Setenv("RAILGEOM_GAUGE", "1.435")
	out, _, err = run(t, "validate", testPlan)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cant.cant-gauge-invalid") {
		t.Errorf("environment ignored, got %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := [][]string{
		{"validate", "testdata/missing.toml"},
		{"validate"},
		{"validate", "--LogLevel", "loud", testPlan},
		{"validate", "--config", "testdata/missing.toml", testPlan},
		{"bounds", "--SourceProj", "nonsense", testPlan},
		{"sample", "--Step", "0", testPlan},
	}
	for _, args := range tests {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestBoundsCommand(t *testing.T) {
	const lcc = "+proj=lcc +lat_1=33.000000 +lat_2=45.000000 +lat_0=40.000000 +lon_0=-97.000000 +x_0=0 +y_0=0 +a=6370997.000000 +b=6370997.000000 +to_meter=1"
	out, _, err := run(t, "bounds", "--SourceProj", lcc, "--TargetProj", lcc, testPlan)
	if err != nil {
		t.Fatal(err)
	}
	var g struct {
		Type        string
		Coordinates [][][]float64
	}
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatal(err)
	}
	diff(t, "Polygon", g.Type)
	if len(g.Coordinates) != 1 {
		t.Fatalf("got %d rings, want 1", len(g.Coordinates))
	}
	ring := g.Coordinates[0]
	if len(ring) < 4 {
		t.Fatalf("got ring %v", ring)
	}
	diff(t, ring[0], ring[len(ring)-1])
	for _, c := range ring {
		// The plan spans (-100, -10) to (200, 300); curve bounds bulge out
		// of that box by less than the curve's radius.
		if c[0] < -300 || c[0] > 400 || c[1] < -210 || c[1] > 500 {
			t.Errorf("vertex %v far outside the plan", c)
		}
	}
}

func TestBoundsUnavailable(t *testing.T) {
	var out bytes.Buffer
	if err := Bounds(&out, &railgeom.Plan{Name: "empty"}, railgeom.IdentityTransform); err == nil {
		t.Error("expected an error")
	}
	diff(t, "", out.String())
}

func TestSampleCommand(t *testing.T) {
	out, _, err := run(t, "sample", "--Step", "100", testPlan)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 6 {
		t.Fatalf("got %d lines, want at least 6:\n%s", len(lines), out)
	}
	diff(t, []string{
		"alignment\tm\tx\ty\theight\tcant",
		"track 1\t0.000\t-100.000\t0.000\t0.000\t0.200",
		"track 1\t100.000\t0.000\t0.000\t1.900\t-",
	}, lines[:3])
}
