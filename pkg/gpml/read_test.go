package gpml

import (
	"context"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/model"
)

const sample2013a = `<?xml version="1.0" encoding="UTF-8"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="Signal test" Organism="Homo sapiens" Author="A. Tester">
  <Comment Source="WikiPathways-description">A small test pathway.</Comment>
  <Graphics BoardWidth="500.0" BoardHeight="400.0"/>
  <DataNode GraphId="n1" TextLabel="TP53" Type="GeneProduct" GroupRef="grp1">
    <Graphics CenterX="100.0" CenterY="100.0" Width="50.0" Height="20.0" Color="ff0000"/>
    <Xref Database="Ensembl" ID="ENSG00000141510"/>
    <BiopaxRef>lit1</BiopaxRef>
  </DataNode>
  <DataNode GraphId="n2" TextLabel="MDM2" Type="Unknown">
    <Graphics CenterX="300.0" CenterY="100.0" Width="50.0" Height="20.0"/>
    <Attribute Key="org.pathvisio.DoubleLineProperty" Value="Double"/>
  </DataNode>
  <State GraphId="s1" GraphRef="n1" TextLabel="P">
    <Graphics RelX="1.0" RelY="-1.0" Width="15.0" Height="15.0"/>
  </State>
  <Interaction>
    <Graphics>
      <Point X="125.0" Y="100.0" GraphRef="n1" ArrowHead="Line"/>
      <Point X="275.0" Y="100.0" GraphRef="n2" RelX="-1.0" RelY="0.0" ArrowHead="TBar"/>
      <Anchor Position="0.5" GraphId="a1" Shape="Circle"/>
    </Graphics>
  </Interaction>
  <Interaction GraphId="i2">
    <Graphics>
      <Point X="40.0" Y="40.0" GraphRef="gg1"/>
      <Point X="10.0" Y="10.0" GraphRef="a1"/>
    </Graphics>
  </Interaction>
  <Group GroupId="grp1" GraphId="gg1" Style="Complex"/>
  <InfoBox CenterX="0.0" CenterY="0.0"/>
  <Biopax>
    <PublicationXref ID="lit1" Database="PubMed" Identifier="12345"/>
  </Biopax>
</Pathway>`

func decodeSample(t *testing.T, doc string) (*model.Pathway, Version) {
	t.Helper()
	p, ver, err := Read(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	return p, ver
}

func TestDetectVersion(t *testing.T) {
	p, ver := decodeSample(t, sample2013a)
	if ver != V2013a {
		t.Errorf("version = %q, want GPML2013a", string(ver))
	}
	if p.Title != "Signal test" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestDetectVersionUnknownNamespace(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<Pathway xmlns="http://example.com/other"/>`); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectVersion(doc); err == nil {
		t.Error("unknown namespace should fail detection")
	}
}

func TestDecodePathwayMetadata(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	if p.Organism != "Homo sapiens" {
		t.Errorf("Organism = %q", p.Organism)
	}
	if p.BoardWidth != 500 || p.BoardHeight != 400 {
		t.Errorf("board = %v x %v", p.BoardWidth, p.BoardHeight)
	}
	if len(p.Authors) != 1 || p.Authors[0].Name != "A. Tester" {
		t.Errorf("Authors = %+v", p.Authors)
	}
	if len(p.Comments) != 1 || p.Comments[0].Source != "WikiPathways-description" {
		t.Errorf("Comments = %+v", p.Comments)
	}
}

func TestDecodeDataNode(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	nodes := p.DataNodes()
	if len(nodes) != 2 {
		t.Fatalf("DataNodes = %d, want 2", len(nodes))
	}

	n1 := nodes[0]
	if n1.Type != model.DataNodeGeneProduct {
		t.Errorf("n1 type = %q", n1.Type)
	}
	// 2013a Color feeds both text and border color.
	if string(n1.Font.TextColor) != "ff0000" || string(n1.Style.BorderColor) != "ff0000" {
		t.Errorf("colors = %q / %q", n1.Font.TextColor, n1.Style.BorderColor)
	}
	// Elided optionals take schema defaults.
	if n1.Style.FillColor != model.ColorWhite {
		t.Errorf("FillColor = %q, want white default", n1.Style.FillColor)
	}
	if n1.Font.VAlign != model.VAlignTop {
		t.Errorf("VAlign = %q, want 2013a Top default", n1.Font.VAlign)
	}
	if n1.Xref.DataSource != "Ensembl" || n1.Xref.Identifier != "ENSG00000141510" {
		t.Errorf("Xref = %+v", n1.Xref)
	}

	// "Unknown" is the 2013a spelling of Undefined.
	if nodes[1].Type != model.DataNodeUndefined {
		t.Errorf("n2 type = %q, want Undefined", nodes[1].Type)
	}
	if v, ok := nodes[1].GetDynamic("org.pathvisio.DoubleLineProperty"); !ok || v != "Double" {
		t.Error("dynamic property lost")
	}
}

func TestDecodeGroupAlias(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	groups := p.Groups()
	if len(groups) != 1 {
		t.Fatalf("Groups = %d", len(groups))
	}
	g := groups[0]
	if g.ElementID != "grp1" {
		t.Errorf("group id = %q, want GroupId", g.ElementID)
	}
	if g.Type != model.GroupComplex {
		t.Errorf("group type = %q", g.Type)
	}

	// The line that targeted the group's GraphId now references the
	// canonical id.
	var i2 *model.Interaction
	for _, in := range p.Interactions() {
		if in.ElementID == "i2" {
			i2 = in
		}
	}
	if i2 == nil {
		t.Fatal("interaction i2 missing")
	}
	if i2.Points[0].ElementRef != "grp1" {
		t.Errorf("alias not rewritten: %q", i2.Points[0].ElementRef)
	}
}

func TestDecodeBackfillsLineID(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	var anon *model.Interaction
	for _, in := range p.Interactions() {
		if in.ElementID != "i2" {
			anon = in
		}
	}
	if anon == nil {
		t.Fatal("anonymous interaction missing")
	}
	id := anon.ElementID
	if len(id) != 5 || !strings.ContainsRune("abcdef", rune(id[0])) {
		t.Errorf("backfilled id %q should look allocated", id)
	}

	// Same document, same derived identifier.
	p2, _ := decodeSample(t, sample2013a)
	for _, in := range p2.Interactions() {
		if in.ElementID != "i2" && in.ElementID != id {
			t.Errorf("backfill not deterministic: %q vs %q", in.ElementID, id)
		}
	}
}

func TestDecodeReconcilesBoundPoints(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	var line *model.Interaction
	for _, in := range p.Interactions() {
		if in.ElementID != "i2" {
			line = in
		}
	}
	if line == nil {
		t.Fatal("interaction missing")
	}

	// First point had no RelX/RelY; (125,100) on the frame centered at
	// (100,100), 50 wide, projects to the right edge midline.
	pt := line.Points[0]
	if !pt.RelSet {
		t.Fatal("relative half not derived")
	}
	if pt.RelX != 1.0 || pt.RelY != 0.0 {
		t.Errorf("rel = (%v,%v), want (1,0)", pt.RelX, pt.RelY)
	}

	// Second point supplied its relative half; the absolute half follows
	// the target frame.
	pt = line.Points[1]
	if pt.X != 275 || pt.Y != 100 {
		t.Errorf("abs = (%v,%v), want (275,100)", pt.X, pt.Y)
	}
}

func TestDecodeAnchorBoundPoint(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	var i2 *model.Interaction
	for _, in := range p.Interactions() {
		if in.ElementID == "i2" {
			i2 = in
		}
	}
	if i2 == nil {
		t.Fatal("interaction i2 missing")
	}
	// The second point pins to anchor a1 halfway along the first line,
	// which runs straight from (125,100) to (275,100).
	pt := i2.Points[1]
	if pt.X != 200 || pt.Y != 100 {
		t.Errorf("anchor pin = (%v,%v), want (200,100)", pt.X, pt.Y)
	}
}

func TestDecodeBibliography(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	cites := p.Citations()
	if len(cites) != 1 {
		t.Fatalf("Citations = %d", len(cites))
	}
	c := cites[0]
	if c.ElementID != "lit1" || c.Xref.DataSource != "PubMed" || c.Xref.Identifier != "12345" {
		t.Errorf("citation = %+v", c)
	}

	n1 := p.DataNodes()[0]
	if len(n1.CitationRefs) != 1 || n1.CitationRefs[0].CitationID != "lit1" {
		t.Errorf("CitationRefs = %+v", n1.CitationRefs)
	}
}

func TestDecodeState(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	states := p.States()
	if len(states) != 1 {
		t.Fatalf("States = %d", len(states))
	}
	st := states[0]
	if st.ElementRef != "n1" || st.RelX != 1.0 || st.RelY != -1.0 {
		t.Errorf("state = %+v", st)
	}
}

func TestDecodeMissingRequiredAttribute(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="x">
  <Graphics BoardWidth="100.0" BoardHeight="100.0"/>
  <DataNode GraphId="n1" TextLabel="A">
    <Graphics CenterY="1.0" Width="1.0" Height="1.0"/>
  </DataNode>
</Pathway>`
	_, _, err := Read(context.Background(), strings.NewReader(doc))
	if err == nil {
		t.Fatal("missing CenterX should fail decode")
	}
	if !strings.Contains(err.Error(), "CenterX") {
		t.Errorf("error should name the attribute: %v", err)
	}
}

func TestDecodeMalformedNumber(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="x">
  <Graphics BoardWidth="wide" BoardHeight="100.0"/>
</Pathway>`
	_, _, err := Read(context.Background(), strings.NewReader(doc))
	if err == nil {
		t.Fatal("malformed BoardWidth should fail decode")
	}
}

const sample2021 = `<?xml version="1.0" encoding="UTF-8"?>
<Pathway xmlns="http://pathvisio.org/GPML/2021" title="Modern test" organism="Homo sapiens">
  <Author name="A. Tester" order="1"/>
  <Graphics boardWidth="500" boardHeight="400"/>
  <DataNode elementId="n1" textLabel="TP53" type="GeneProduct">
    <Graphics centerX="100" centerY="100" width="50" height="20" textColor="ff0000" borderColor="00ff00"/>
    <Xref identifier="ENSG00000141510" dataSource="Ensembl"/>
    <CitationRef elementRef="cit1"/>
  </DataNode>
  <Citation elementId="cit1" url="https://example.org/paper">
    <Xref identifier="12345" dataSource="PubMed"/>
  </Citation>
  <Annotation elementId="ann1" value="apoptosis" type="Ontology"/>
</Pathway>`

func TestDecode2021(t *testing.T) {
	p, ver := decodeSample(t, sample2021)
	if ver != V2021 {
		t.Fatalf("version = %q", string(ver))
	}
	if len(p.Authors) != 1 || p.Authors[0].Order != 1 {
		t.Errorf("Authors = %+v", p.Authors)
	}

	n1 := p.DataNodes()[0]
	// 2021 splits text and border color.
	if string(n1.Font.TextColor) != "ff0000" || string(n1.Style.BorderColor) != "00ff00" {
		t.Errorf("colors = %q / %q", n1.Font.TextColor, n1.Style.BorderColor)
	}
	if n1.Font.VAlign != model.VAlignMiddle {
		t.Errorf("VAlign = %q, want 2021 Middle default", n1.Font.VAlign)
	}

	if len(p.Citations()) != 1 || p.Citations()[0].URL != "https://example.org/paper" {
		t.Errorf("Citations = %+v", p.Citations())
	}
	if len(p.Annotations()) != 1 || p.Annotations()[0].Type != model.AnnotationOntology {
		t.Errorf("Annotations = %+v", p.Annotations())
	}
	if len(n1.CitationRefs) != 1 || n1.CitationRefs[0].CitationID != "cit1" {
		t.Errorf("CitationRefs = %+v", n1.CitationRefs)
	}
}
