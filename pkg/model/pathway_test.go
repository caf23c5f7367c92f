package model

import (
	"strings"
	"testing"
)

func newTestNode(label string) *DataNode {
	return &DataNode{
		TextLabel: label,
		Type:      DataNodeGeneProduct,
		Rect:      RectProps{CenterX: 100, CenterY: 100, Width: 80, Height: 20},
	}
}

func TestAddAllocatesAndRegisters(t *testing.T) {
	p := NewPathway()
	dn := newTestNode("TP53")

	if err := p.Add(dn); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if dn.ElementID == "" {
		t.Fatal("Add should allocate an element id")
	}
	got, ok := p.Registry().Lookup(dn.ElementID)
	if !ok {
		t.Fatal("added element not registered")
	}
	if got != Element(dn) {
		t.Error("registry returns a different entity")
	}
}

func TestAddKeepsExplicitID(t *testing.T) {
	p := NewPathway()
	dn := newTestNode("TP53")
	dn.ElementID = "abc12"

	if err := p.Add(dn); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if dn.ElementID != "abc12" {
		t.Errorf("explicit id overwritten: %s", dn.ElementID)
	}

	dup := newTestNode("MDM2")
	dup.ElementID = "abc12"
	if err := p.Add(dup); err == nil {
		t.Error("duplicate id should fail")
	}
}

func TestAddLineSkipsAllocation(t *testing.T) {
	p := NewPathway()
	in := &Interaction{}
	in.Points = []*Point{{X: 0, Y: 0}, {X: 10, Y: 10}}

	if err := p.Add(in); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if in.ElementID != "" {
		t.Error("lines should not get an allocated id on Add")
	}
}

func TestAddRegistersNamedAnchors(t *testing.T) {
	p := NewPathway()
	in := &Interaction{}
	in.ElementID = "line1"
	in.Points = []*Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	in.Anchors = []*Anchor{{ElementID: "anch1", Position: 0.5}}

	if err := p.Add(in); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if _, ok := p.Registry().Lookup("anch1"); !ok {
		t.Error("named anchor not registered")
	}
}

func TestAddRollsBackAnchorsOnCollision(t *testing.T) {
	p := NewPathway()
	dn := newTestNode("TP53")
	dn.ElementID = "aaa01"
	if err := p.Add(dn); err != nil {
		t.Fatal(err)
	}

	in := &Interaction{}
	in.ElementID = "line1"
	in.Points = []*Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	in.Anchors = []*Anchor{
		{ElementID: "aaa02", Position: 0.3},
		{ElementID: "aaa01", Position: 0.7},
	}
	if err := p.Add(in); err == nil {
		t.Fatal("colliding anchor id should fail the Add")
	}

	// A failed Add must leave the registry untouched: the line id and the
	// anchors registered before the collision are released again.
	for _, id := range []string{"line1", "aaa02"} {
		if _, ok := p.Registry().Lookup(id); ok {
			t.Errorf("%s still registered after failed Add", id)
		}
	}
	if err := p.registry.Register("aaa02", dn); err != nil {
		t.Errorf("re-registering aaa02 after failed Add: %v", err)
	}
}

func TestRemoveClearsReferences(t *testing.T) {
	p := NewPathway()
	target := newTestNode("TP53")
	if err := p.Add(target); err != nil {
		t.Fatal(err)
	}

	in := &Interaction{}
	in.ElementID = "line1"
	in.Points = []*Point{
		{X: 0, Y: 0},
		{X: 10, Y: 10, ElementRef: target.ElementID},
	}
	if err := p.Add(in); err != nil {
		t.Fatal(err)
	}

	if err := p.Remove(target); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if in.Points[1].ElementRef != "" {
		t.Error("point reference to removed element should be cleared")
	}
	if _, ok := p.Registry().Lookup(target.ElementID); ok {
		t.Error("removed element still registered")
	}
}

func TestRemoveGroupClearsMemberRefs(t *testing.T) {
	p := NewPathway()
	g := &Group{Type: GroupComplex}
	g.ElementID = "g1"
	if err := p.Add(g); err != nil {
		t.Fatal(err)
	}

	a := newTestNode("A")
	a.GroupRef = "g1"
	b := newTestNode("B")
	b.GroupRef = "g1"
	for _, el := range []Element{a, b} {
		if err := p.Add(el); err != nil {
			t.Fatal(err)
		}
	}

	members := p.GroupMembers(g)
	if len(members) != 2 {
		t.Fatalf("GroupMembers = %d, want 2", len(members))
	}

	if err := p.Remove(g); err != nil {
		t.Fatal(err)
	}
	if a.GroupRef != "" || b.GroupRef != "" {
		t.Error("member GroupRef should be cleared when the group is removed")
	}
}

func TestFixReferences(t *testing.T) {
	p := NewPathway()
	dn := newTestNode("A")
	dn.GroupRef = "missing-group"
	if err := p.Add(dn); err != nil {
		t.Fatal(err)
	}

	in := &Interaction{}
	in.ElementID = "line1"
	in.Points = []*Point{
		{X: 0, Y: 0, ElementRef: "missing-node"},
		{X: 10, Y: 10},
	}
	if err := p.Add(in); err != nil {
		t.Fatal(err)
	}

	cleared := p.FixReferences()
	if cleared != 2 {
		t.Errorf("FixReferences = %d, want 2", cleared)
	}
	if dn.GroupRef != "" {
		t.Error("dangling GroupRef not cleared")
	}
	if in.Points[0].ElementRef != "" {
		t.Error("dangling point reference not cleared")
	}
	if p.FixReferences() != 0 {
		t.Error("second pass should clear nothing")
	}
}

func TestCitationPoolDedup(t *testing.T) {
	p := NewPathway()
	first, err := p.AddCitation(&Citation{ElementID: "cit1", Xref: Xref{Identifier: "12345", DataSource: "PubMed"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.AddCitation(&Citation{ElementID: "cit2", Xref: Xref{Identifier: "12345", DataSource: "PubMed"}})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("identical citations should dedup to one pool entry")
	}
	if len(p.Citations()) != 1 {
		t.Errorf("pool size = %d, want 1", len(p.Citations()))
	}

	other, err := p.AddCitation(&Citation{ElementID: "cit3", Xref: Xref{Identifier: "99999", DataSource: "PubMed"}})
	if err != nil {
		t.Fatal(err)
	}
	if other == first {
		t.Error("distinct citations must not dedup")
	}
}

func TestRemoveCitationOnlyWhenUnreferenced(t *testing.T) {
	p := NewPathway()
	c, err := p.AddCitation(&Citation{ElementID: "cit1", Xref: Xref{Identifier: "12345", DataSource: "PubMed"}})
	if err != nil {
		t.Fatal(err)
	}

	dn := newTestNode("A")
	dn.CitationRefs = []CitationRef{{CitationID: c.ElementID}}
	if err := p.Add(dn); err != nil {
		t.Fatal(err)
	}

	if p.RemoveCitation(c.ElementID) {
		t.Error("referenced citation must not be removable")
	}

	dn.CitationRefs = nil
	if !p.RemoveCitation(c.ElementID) {
		t.Error("unreferenced citation should be removable")
	}
	if len(p.Citations()) != 0 {
		t.Error("citation pool should be empty")
	}
}

func TestAnchorAbsolute(t *testing.T) {
	lc := &LineCore{Points: []*Point{{X: 0, Y: 0}, {X: 100, Y: 0}}}

	x, y := lc.AnchorAbsolute(0.5)
	if x != 50 || y != 0 {
		t.Errorf("AnchorAbsolute(0.5) = (%v,%v), want (50,0)", x, y)
	}

	x, _ = lc.AnchorAbsolute(0)
	if x != 0 {
		t.Errorf("AnchorAbsolute(0) x = %v, want 0", x)
	}
	x, _ = lc.AnchorAbsolute(1)
	if x != 100 {
		t.Errorf("AnchorAbsolute(1) x = %v, want 100", x)
	}

	// Multi-segment interpolation walks proportional length.
	lc = &LineCore{Points: []*Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}}
	x, y = lc.AnchorAbsolute(0.75)
	if x != 100 || y != 50 {
		t.Errorf("AnchorAbsolute(0.75) = (%v,%v), want (100,50)", x, y)
	}
}

func TestDynamicProperties(t *testing.T) {
	var c Core
	if _, ok := c.GetDynamic("k"); ok {
		t.Error("empty core should have no dynamic properties")
	}
	c.SetDynamic("org.pathvisio.DoubleLineProperty", "Double")
	v, ok := c.GetDynamic("org.pathvisio.DoubleLineProperty")
	if !ok || v != "Double" {
		t.Errorf("GetDynamic = %q, %v", v, ok)
	}
}

func TestElementIDValidationShape(t *testing.T) {
	p := NewPathway()
	for range 50 {
		id := p.Registry().Allocate()
		if len(id) != 5 {
			t.Fatalf("allocated id %q should be 5 chars", id)
		}
		if !strings.ContainsRune("abcdef", rune(id[0])) {
			t.Fatalf("allocated id %q should start with a-f", id)
		}
	}
}
