package railgeom

// LineElement is a straight piece of alignment.
type LineElement struct {
	element
	line Line
}

// NewLineElement returns a straight element from data.Start to data.End.
func NewLineElement(data ElementData, sw SwitchData) (*LineElement, error) {
	e := &LineElement{}
	if err := e.init(data, sw); err != nil {
		return nil, err
	}
	e.line = Line{data.Start, data.End}
	return e, nil
}

func (e *LineElement) Type() ElementType            { return LineType }
func (e *LineElement) CalculatedLength() float64    { return e.line.Length() }
func (e *LineElement) BoundingExtent() []Point      { return []Point{e.line.P0, e.line.P1} }
func (e *LineElement) StartDirection() float64      { return e.line.Direction() }
func (e *LineElement) EndDirection() float64        { return e.line.Direction() }
func (e *LineElement) PositionAt(d float64) Point   { return e.line.PointAtDistance(d) }
func (e *LineElement) LengthUntil(pt Point) float64 { return e.line.ProjectedLength(pt) }

func (e *LineElement) ContentEquals(other Element) bool {
	o, ok := other.(*LineElement)
	return ok && e.contentEquals(&o.element)
}
