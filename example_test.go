package railgeom_test

import (
	"fmt"

	"honnef.co/go/railgeom"
)

func ExampleProfile_HeightAt() {
	radius, length := 500.0, 40.0
	p, err := railgeom.NewProfile("crest", []railgeom.VerticalIntersection{
		railgeom.VIPoint{Point: railgeom.Pt(0, 0)},
		railgeom.VICircularCurve{Point: railgeom.Pt(100, 2), Radius: &radius, Length: &length},
		railgeom.VIPoint{Point: railgeom.Pt(200, 0)},
	})
	if err != nil {
		panic(err)
	}
	for _, x := range []float64{0, 50, 100, 150} {
		h, _ := p.HeightAt(x)
		fmt.Printf("%g: %.3f\n", x, h)
	}
	// Output:
	// 0: 0.000
	// 50: 1.000
	// 100: 1.900
	// 150: 1.000
}

func ExampleCant_CantAt() {
	c := &railgeom.Cant{
		Gauge: 1524,
		Points: []railgeom.CantPoint{
			{Station: 0, AppliedCant: 0, Transition: railgeom.BiquadraticParabolaTransition},
			{Station: 100, AppliedCant: 150},
		},
	}
	for _, m := range []float64{25, 50, 75} {
		v, _ := c.CantAt(m)
		fmt.Printf("%g: %g\n", m, v)
	}
	// Output:
	// 25: 18.75
	// 50: 75
	// 75: 131.25
}
