// Package planfile decodes plan descriptions written in TOML.
//
// A plan description looks like this:
//
//	name = "example"
//	km_posts = [[0, -10]]
//
//	[[alignment]]
//	name = "track 1"
//
//	[[alignment.element]]
//	type = "line"
//	start = [0, 0]
//	end = [100, 0]
//	length = 100
//
//	[alignment.profile]
//	name = "profile"
//	vi = [
//	  { station = 0, height = 10 },
//	  { station = 50, height = 11, radius = 2000, length = 20 },
//	  { station = 100, height = 10 },
//	]
//
//	[alignment.cant]
//	gauge = 1.524
//	rotation_point = "insideRail"
//	points = [
//	  { station = 0, applied_cant = 0 },
//	  { station = 100, applied_cant = 0.1 },
//	]
//
// Directions are given in geodetic grads. A vertical intersection that sets
// a radius or a length is a circular curve.
package planfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"honnef.co/go/railgeom"
)

// Plan is the TOML form of a plan.
type Plan struct {
	Name       string       `toml:"name"`
	KmPosts    [][2]float64 `toml:"km_posts"`
	Alignments []Alignment  `toml:"alignment"`
}

type Alignment struct {
	Name     string    `toml:"name"`
	Elements []Element `toml:"element"`
	Profile  *Profile  `toml:"profile"`
	Cant     *Cant     `toml:"cant"`
}

// Element holds the fields of all element types. Type selects which apply.
type Element struct {
	Type     string     `toml:"type"`
	Name     string     `toml:"name"`
	OID      string     `toml:"oid"`
	Start    [2]float64 `toml:"start"`
	End      [2]float64 `toml:"end"`
	StaStart float64    `toml:"sta_start"`
	Length   float64    `toml:"length"`

	Rotation string `toml:"rotation"`

	// Curves.
	Radius float64    `toml:"radius"`
	Chord  float64    `toml:"chord"`
	Center [2]float64 `toml:"center"`

	// Spirals.
	RadiusStart    *float64   `toml:"radius_start"`
	RadiusEnd      *float64   `toml:"radius_end"`
	DirectionStart *float64   `toml:"direction_start"`
	DirectionEnd   *float64   `toml:"direction_end"`
	PI             [2]float64 `toml:"pi"`
	Constant       float64    `toml:"constant"`

	SwitchID   string `toml:"switch_id"`
	StartJoint int    `toml:"start_joint"`
	EndJoint   int    `toml:"end_joint"`
}

type Profile struct {
	Name string `toml:"name"`
	VIs  []VI   `toml:"vi"`
}

type VI struct {
	Description string   `toml:"description"`
	Station     float64  `toml:"station"`
	Height      float64  `toml:"height"`
	Radius      *float64 `toml:"radius"`
	Length      *float64 `toml:"length"`
}

type Cant struct {
	Name          string      `toml:"name"`
	Description   string      `toml:"description"`
	Gauge         float64     `toml:"gauge"`
	RotationPoint string      `toml:"rotation_point"`
	Points        []CantPoint `toml:"points"`
}

type CantPoint struct {
	Station     float64 `toml:"station"`
	AppliedCant float64 `toml:"applied_cant"`
	Curvature   string  `toml:"curvature"`
	Transition  string  `toml:"transition"`
}

// Load reads and decodes the plan description in the named file.
func Load(path string) (*railgeom.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	plan, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// Decode reads a plan description from r and builds the plan it describes.
// Unknown keys are an error.
func Decode(r io.Reader) (*railgeom.Plan, error) {
	var p Plan
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return p.Build()
}

func pt(c [2]float64) railgeom.Point { return railgeom.Pt(c[0], c[1]) }

// Build converts p to the core model.
func (p *Plan) Build() (*railgeom.Plan, error) {
	plan := &railgeom.Plan{Name: p.Name}
	for _, c := range p.KmPosts {
		plan.KmPosts = append(plan.KmPosts, pt(c))
	}
	for i := range p.Alignments {
		a, err := p.Alignments[i].Build()
		if err != nil {
			return nil, fmt.Errorf("alignment %d (%s): %w", i, p.Alignments[i].Name, err)
		}
		plan.Alignments = append(plan.Alignments, a)
	}
	return plan, nil
}

func (a *Alignment) Build() (*railgeom.Alignment, error) {
	out := &railgeom.Alignment{Name: a.Name}
	for i := range a.Elements {
		e, err := a.Elements[i].Build()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Elements = append(out.Elements, e)
	}
	if a.Profile != nil {
		p, err := a.Profile.Build()
		if err != nil {
			return nil, err
		}
		out.Profile = p
	}
	if a.Cant != nil {
		c, err := a.Cant.Build()
		if err != nil {
			return nil, err
		}
		out.Cant = c
	}
	return out, nil
}

func (e *Element) Build() (railgeom.Element, error) {
	data := railgeom.ElementData{
		Name:     e.Name,
		OIDPart:  e.OID,
		Start:    pt(e.Start),
		End:      pt(e.End),
		StaStart: e.StaStart,
		Length:   e.Length,
	}
	sw := railgeom.SwitchData{SwitchID: e.SwitchID, StartJoint: e.StartJoint, EndJoint: e.EndJoint}

	typ := strings.ToLower(e.Type)
	if typ == "line" {
		return railgeom.NewLineElement(data, sw)
	}
	rot, err := railgeom.ParseRotationDirection(e.Rotation)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "curve":
		return railgeom.NewCurveElement(data, railgeom.CurveData{
			Rotation: rot,
			Radius:   e.Radius,
			Chord:    e.Chord,
			Center:   pt(e.Center),
		}, sw)
	case "clothoid":
		return railgeom.NewClothoid(data, e.spiralData(rot), e.Constant, sw)
	case "biquadratic_parabola", "biquadraticparabola":
		return railgeom.NewBiquadraticParabola(data, e.spiralData(rot), sw)
	default:
		return nil, fmt.Errorf("unknown element type %q", e.Type)
	}
}

func (e *Element) spiralData(rot railgeom.RotationDirection) railgeom.SpiralData {
	return railgeom.SpiralData{
		Rotation:       rot,
		DirectionStart: geoGrads(e.DirectionStart),
		DirectionEnd:   geoGrads(e.DirectionEnd),
		RadiusStart:    e.RadiusStart,
		RadiusEnd:      e.RadiusEnd,
		PI:             pt(e.PI),
	}
}

func geoGrads(g *float64) *float64 {
	if g == nil {
		return nil
	}
	r := railgeom.GeoGradsToRads(*g)
	return &r
}

func (p *Profile) Build() (*railgeom.Profile, error) {
	vis := make([]railgeom.VerticalIntersection, len(p.VIs))
	for i, vi := range p.VIs {
		loc := railgeom.Pt(vi.Station, vi.Height)
		if vi.Radius != nil || vi.Length != nil {
			vis[i] = railgeom.VICircularCurve{Description: vi.Description, Point: loc, Radius: vi.Radius, Length: vi.Length}
		} else {
			vis[i] = railgeom.VIPoint{Description: vi.Description, Point: loc}
		}
	}
	return railgeom.NewProfile(p.Name, vis)
}

func (c *Cant) Build() (*railgeom.Cant, error) {
	rp, err := railgeom.ParseRotationPoint(c.RotationPoint)
	if err != nil {
		return nil, err
	}
	out := &railgeom.Cant{
		Name:          c.Name,
		Description:   c.Description,
		Gauge:         c.Gauge,
		RotationPoint: rp,
	}
	for i, p := range c.Points {
		tr, err := railgeom.ParseTransitionType(p.Transition)
		if err != nil {
			return nil, fmt.Errorf("cant point %d: %w", i, err)
		}
		cp := railgeom.CantPoint{Station: p.Station, AppliedCant: p.AppliedCant, Transition: tr}
		if p.Curvature != "" {
			if cp.Curvature, err = railgeom.ParseRotationDirection(p.Curvature); err != nil {
				return nil, fmt.Errorf("cant point %d: %w", i, err)
			}
		}
		out.Points = append(out.Points, cp)
	}
	return out, nil
}
