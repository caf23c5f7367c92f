package model

import "math"

// Point is one waypoint of a line element. If ElementRef is set, the point
// is bound to the referenced element (or anchor) and (RelX, RelY) in the
// target's local [-1,1] frame are the authoritative coordinates; X and Y are
// then derived for rendering. Unbound points keep X and Y authoritative.
type Point struct {
	X float64
	Y float64

	ElementRef string
	RelX       float64
	RelY       float64
	// RelSet records whether relative coordinates were present in the source
	// document or have been computed by reconciliation.
	RelSet bool

	ArrowHead ArrowHeadType
}

// Bound reports whether the point is linked to another element.
func (p *Point) Bound() bool { return p.ElementRef != "" }

// Anchor is a fixed position along a line's path, itself linkable by id.
// Position runs from 0.0 (start point) to 1.0 (end point).
type Anchor struct {
	ElementID string
	Position  float64
	Shape     AnchorShapeType
}

// LineCore is the state shared by Interaction and GraphicalLine: stroke
// styling, an ordered waypoint sequence, and anchors. Waypoint order is
// semantically meaningful (it is the topology along the line), so it is
// preserved verbatim through decode and encode.
type LineCore struct {
	Core
	Style   LineStyleProps
	Points  []*Point
	Anchors []*Anchor
}

// StartPoint returns the first waypoint, or nil for a degenerate line.
func (l *LineCore) StartPoint() *Point {
	if len(l.Points) == 0 {
		return nil
	}
	return l.Points[0]
}

// EndPoint returns the last waypoint, or nil for a degenerate line.
func (l *LineCore) EndPoint() *Point {
	if len(l.Points) == 0 {
		return nil
	}
	return l.Points[len(l.Points)-1]
}

// AddPoint appends a waypoint.
func (l *LineCore) AddPoint(p *Point) { l.Points = append(l.Points, p) }

// AddAnchor appends an anchor.
func (l *LineCore) AddAnchor(a *Anchor) { l.Anchors = append(l.Anchors, a) }

// AnchorAbsolute returns the board coordinates of the anchor at the given
// position by linear interpolation along the line's waypoints. Degenerate
// lines (fewer than two points) return the sole point or the origin.
func (l *LineCore) AnchorAbsolute(position float64) (x, y float64) {
	switch len(l.Points) {
	case 0:
		return 0, 0
	case 1:
		return l.Points[0].X, l.Points[0].Y
	}

	if position <= 0 {
		return l.Points[0].X, l.Points[0].Y
	}
	if position >= 1 {
		p := l.Points[len(l.Points)-1]
		return p.X, p.Y
	}

	// Walk segments proportionally to their length.
	total := 0.0
	lengths := make([]float64, len(l.Points)-1)
	for i := 0; i < len(l.Points)-1; i++ {
		lengths[i] = segmentLength(l.Points[i], l.Points[i+1])
		total += lengths[i]
	}
	if total == 0 {
		return l.Points[0].X, l.Points[0].Y
	}

	target := position * total
	for i, seg := range lengths {
		if target <= seg || i == len(lengths)-1 {
			t := 0.0
			if seg > 0 {
				t = target / seg
			}
			a, b := l.Points[i], l.Points[i+1]
			return a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)
		}
		target -= seg
	}
	return l.Points[0].X, l.Points[0].Y
}

func segmentLength(a, b *Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Interaction is a biological interaction between pathway entities.
type Interaction struct {
	LineCore
	Xref Xref
}

// Kind implements Element.
func (*Interaction) Kind() string { return KindInteraction }

// ElementCore implements Element.
func (i *Interaction) ElementCore() *Core { return &i.Core }

// GraphicalLine is a line with no biological meaning (a visual connector).
type GraphicalLine struct {
	LineCore
}

// Kind implements Element.
func (*GraphicalLine) Kind() string { return KindGraphicalLine }

// ElementCore implements Element.
func (g *GraphicalLine) ElementCore() *Core { return &g.Core }

// LineElement is implemented by the two line-bearing variants. It exposes
// the shared LineCore for code that treats them uniformly (the coordinate
// reconciler, the id backfill pass, the writer).
type LineElement interface {
	Element
	Line() *LineCore
}

// Line implements LineElement.
func (i *Interaction) Line() *LineCore { return &i.LineCore }

// Line implements LineElement.
func (g *GraphicalLine) Line() *LineCore { return &g.LineCore }
