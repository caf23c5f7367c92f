package convert

import (
	"testing"

	"github.com/pathmark/pathmark/pkg/model"
)

func newShape(t *testing.T, p *model.Pathway, shape model.ShapeType) *model.Shape {
	t.Helper()
	sh := &model.Shape{}
	sh.Style.ShapeType = shape
	sh.Style.BorderStyle = model.LineStyleSolid
	sh.Style.BorderWidth = 1.0
	sh.Style.FillColor = "ffffff"
	if err := p.Add(sh); err != nil {
		t.Fatal(err)
	}
	return sh
}

func TestUpgradeDeprecatedShape(t *testing.T) {
	p := model.NewPathway()
	sh := newShape(t, p, "Organelle")

	r := Upgrade(p)

	if sh.Style.ShapeType != model.ShapeRoundedRectangle {
		t.Errorf("ShapeType = %q", sh.Style.ShapeType)
	}
	if sh.Style.BorderStyle != model.LineStyleDouble || sh.Style.BorderWidth != 3.0 {
		t.Errorf("border = %q/%v", sh.Style.BorderStyle, sh.Style.BorderWidth)
	}
	if sh.Style.FillColor != model.ColorTransparent {
		t.Errorf("FillColor = %q, want Transparent", sh.Style.FillColor)
	}
	// The legacy name survives as a marker property for the way back.
	if v, ok := sh.GetDynamic(CellularComponentKey); !ok || v != "Organelle" {
		t.Errorf("marker = %q, %v", v, ok)
	}
	if len(r.Changes) != 1 || r.Changes[0].Lossy {
		t.Errorf("report = %+v", r.Changes)
	}
	if !r.Clean() {
		t.Error("shape upgrade is not lossy")
	}
}

func TestUpgradeShapeRoundTrips(t *testing.T) {
	p := model.NewPathway()
	sh := newShape(t, p, "Nucleus")

	Upgrade(p)
	if sh.Style.ShapeType != model.ShapeOval {
		t.Fatalf("upgrade gave %q", sh.Style.ShapeType)
	}

	Downgrade(p)
	if sh.Style.ShapeType != model.ShapeType("Nucleus") {
		t.Errorf("downgrade restored %q, want Nucleus", sh.Style.ShapeType)
	}
	// The styling the upgrade displaced comes back with the name.
	if sh.Style.BorderStyle != model.LineStyleSolid || sh.Style.BorderWidth != 1.0 {
		t.Errorf("border not restored: style=%q width=%v", sh.Style.BorderStyle, sh.Style.BorderWidth)
	}
	if !sh.Style.FillColor.Equal("ffffff") {
		t.Errorf("FillColor not restored: %q", sh.Style.FillColor)
	}
	for _, key := range []string{CellularComponentKey, borderStyleStashKey, borderWidthStashKey, fillColorStashKey} {
		if _, ok := sh.GetDynamic(key); ok {
			t.Errorf("marker %s should be consumed by the downgrade", key)
		}
	}
}

func TestUpgradeDoubleLineProperty(t *testing.T) {
	p := model.NewPathway()
	sh := newShape(t, p, model.ShapeRectangle)
	sh.SetDynamic(DoubleLineKey, "Double")

	Upgrade(p)

	if sh.Style.BorderStyle != model.LineStyleDouble {
		t.Errorf("BorderStyle = %q", sh.Style.BorderStyle)
	}
	if _, ok := sh.GetDynamic(DoubleLineKey); ok {
		t.Error("marker property should be folded into the style")
	}
}

func TestUpgradeDoubleLineOnInteraction(t *testing.T) {
	p := model.NewPathway()
	in := &model.Interaction{}
	in.Points = []*model.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	in.SetDynamic(DoubleLineKey, "Double")
	if err := p.Add(in); err != nil {
		t.Fatal(err)
	}

	Upgrade(p)

	if in.Style.LineStyle != model.LineStyleDouble {
		t.Errorf("LineStyle = %q", in.Style.LineStyle)
	}
}

func TestDowngradeDoubleLine(t *testing.T) {
	p := model.NewPathway()
	sh := newShape(t, p, model.ShapeRectangle)
	sh.Style.BorderStyle = model.LineStyleDouble

	r := Downgrade(p)

	if sh.Style.BorderStyle != model.LineStyleSolid {
		t.Errorf("BorderStyle = %q", sh.Style.BorderStyle)
	}
	if v, ok := sh.GetDynamic(DoubleLineKey); !ok || v != "Double" {
		t.Errorf("marker = %q, %v", v, ok)
	}
	if !r.Clean() {
		t.Error("double-line downgrade is reversible, not lossy")
	}
}

func TestDowngradeAnalogGroup(t *testing.T) {
	p := model.NewPathway()
	g := &model.Group{Type: model.GroupAnalog}
	if err := p.Add(g); err != nil {
		t.Fatal(err)
	}

	r := Downgrade(p)

	if g.Type != model.GroupGroup {
		t.Errorf("Type = %q", g.Type)
	}
	lossy := r.Lossy()
	if len(lossy) != 1 || lossy[0].Field != "Type" {
		t.Errorf("lossy = %+v", lossy)
	}
}

func TestDowngradeSplitColor(t *testing.T) {
	p := model.NewPathway()
	dn := &model.DataNode{}
	dn.Font.TextColor = "ff0000"
	dn.Style.BorderColor = "0000FF"
	if err := p.Add(dn); err != nil {
		t.Fatal(err)
	}

	r := Downgrade(p)
	if r.Clean() {
		t.Error("distinct text and border colors cannot both survive 2013a")
	}

	// Same color in different case is not a split.
	p2 := model.NewPathway()
	dn2 := &model.DataNode{}
	dn2.Font.TextColor = "FF0000"
	dn2.Style.BorderColor = "ff0000"
	if err := p2.Add(dn2); err != nil {
		t.Fatal(err)
	}
	if !Downgrade(p2).Clean() {
		t.Error("equal colors flagged as lossy")
	}
}

func TestDowngradeFlagsPools(t *testing.T) {
	p := model.NewPathway()
	if _, err := p.AddAnnotation(&model.Annotation{Value: "apoptosis", Type: model.AnnotationOntology}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddEvidence(&model.Evidence{Value: "assay"}); err != nil {
		t.Fatal(err)
	}
	p.Xref = model.Xref{Identifier: "WP1", DataSource: "WikiPathways"}

	r := Downgrade(p)

	fields := map[string]bool{}
	for _, c := range r.Lossy() {
		fields[c.Field] = true
	}
	for _, want := range []string{"Annotations", "Evidences", "Xref"} {
		if !fields[want] {
			t.Errorf("missing lossy flag for %s", want)
		}
	}
}

func TestDowngradeCitationRefsSurvive(t *testing.T) {
	p := model.NewPathway()
	cit, err := p.AddCitation(&model.Citation{Xref: model.Xref{Identifier: "12345", DataSource: "PubMed"}})
	if err != nil {
		t.Fatal(err)
	}
	dn := &model.DataNode{}
	dn.CitationRefs = []model.CitationRef{{CitationID: cit.ElementID}}
	if err := p.Add(dn); err != nil {
		t.Fatal(err)
	}

	if !Downgrade(p).Clean() {
		t.Error("citation references have a 2013a home and must not be flagged")
	}
}
