package gpml

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pathmark/pathmark/pkg/model"
)

// encodeToString serializes a pathway and returns the XML along with the
// parsed tree for structural assertions.
func encodeToString(t *testing.T, p *model.Pathway, ver Version) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(context.Background(), p, ver, &buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	return buf.String()
}

func TestRoundTrip2013a(t *testing.T) {
	p1, _ := decodeSample(t, sample2013a)
	out := encodeToString(t, p1, V2013a)

	p2, ver, err := Read(context.Background(), strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-read error: %v\n%s", err, out)
	}
	if ver != V2013a {
		t.Fatalf("re-read version = %q", string(ver))
	}

	if p2.Title != p1.Title || p2.Organism != p1.Organism {
		t.Errorf("metadata drifted: %q/%q vs %q/%q", p2.Title, p2.Organism, p1.Title, p1.Organism)
	}
	if p2.BoardWidth != p1.BoardWidth || p2.BoardHeight != p1.BoardHeight {
		t.Errorf("board drifted")
	}

	n1a, n1b := p1.DataNodes()[0], p2.DataNodes()[0]
	if diff := cmp.Diff(n1a.Rect, n1b.Rect); diff != "" {
		t.Errorf("rect mismatch (-orig +reread):\n%s", diff)
	}
	if diff := cmp.Diff(n1a.Xref, n1b.Xref); diff != "" {
		t.Errorf("xref mismatch (-orig +reread):\n%s", diff)
	}
	if n1b.Type != n1a.Type || n1b.Font.TextColor != n1a.Font.TextColor {
		t.Errorf("node styling drifted")
	}
	if n1b.GroupRef != "grp1" {
		t.Errorf("GroupRef = %q", n1b.GroupRef)
	}

	if len(p2.Interactions()) != len(p1.Interactions()) {
		t.Fatalf("interactions = %d, want %d", len(p2.Interactions()), len(p1.Interactions()))
	}
	if len(p2.Citations()) != 1 {
		t.Errorf("citations = %d", len(p2.Citations()))
	}
	if len(p2.Groups()) != 1 || p2.Groups()[0].Type != model.GroupComplex {
		t.Errorf("group drifted: %+v", p2.Groups())
	}
}

func TestEncode2013aVocabulary(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	out := encodeToString(t, p, V2013a)

	// Model vocabulary maps back to the legacy spellings, and legacy
	// defaults (Unknown, Line) are elided rather than spelled out.
	if !strings.Contains(out, `Type="GeneProduct"`) {
		t.Error("explicit node type lost")
	}
	if strings.Contains(out, "Undefined") || strings.Contains(out, "Undirected") {
		t.Error("GPML2021 vocabulary leaked into a GPML2013a document")
	}
	if !strings.Contains(out, `ArrowHead="TBar"`) {
		t.Error("non-default arrowhead lost")
	}
	if !strings.Contains(out, `Style="Complex"`) {
		t.Error("group style lost")
	}
	if !strings.Contains(out, `GroupId="grp1"`) {
		t.Error("groups should carry GroupId in GPML2013a")
	}
	if !strings.Contains(out, "<InfoBox") {
		t.Error("GPML2013a documents always carry an InfoBox")
	}
	if !strings.Contains(out, "<PublicationXref") {
		t.Error("citations should encode as Biopax PublicationXref")
	}
}

func TestEncodeElidesDefaults(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	out := encodeToString(t, p, V2013a)

	// Defaults filled in at decode time must not reappear as attributes.
	if strings.Contains(out, `FillColor="ffffff"`) {
		t.Error("default FillColor should be elided")
	}
	if strings.Contains(out, `Valign="Top"`) {
		t.Error("default Valign should be elided")
	}
	if strings.Contains(out, `ZOrder="0"`) {
		t.Error("default ZOrder should be elided")
	}
	// Non-default values always survive.
	if !strings.Contains(out, `Color="ff0000"`) {
		t.Error("explicit color lost")
	}
}

func TestEncodeChildOrder(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	doc, err := Encode(context.Background(), p, V2013a)
	if err != nil {
		t.Fatal(err)
	}
	root := doc.SelectElement("Pathway")
	if root == nil {
		t.Fatal("no root")
	}

	order := ChildOrder(V2013a)
	rank := make(map[string]int, len(order))
	for i, tag := range order {
		rank[tag] = i
	}
	last := -1
	for _, ch := range root.ChildElements() {
		r, ok := rank[ch.Tag]
		if !ok {
			t.Fatalf("unexpected root child %q", ch.Tag)
		}
		if r < last {
			t.Errorf("child %q out of schema order", ch.Tag)
		}
		last = r
	}
}

func TestCrossVersion2013aTo2021(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	out := encodeToString(t, p, V2021)

	if !strings.Contains(out, `xmlns="http://pathvisio.org/GPML/2021"`) {
		t.Error("wrong namespace")
	}
	if strings.Contains(out, "Unknown") {
		t.Error("legacy Unknown spelling leaked into GPML2021")
	}
	if !strings.Contains(out, `type="GeneProduct"`) {
		t.Error("explicit node type lost")
	}
	if !strings.Contains(out, `elementId="n1"`) {
		t.Error("identifiers should use camelCase elementId")
	}
	if strings.Contains(out, "<InfoBox") || strings.Contains(out, "<Biopax") {
		t.Error("legacy containers must not leak into GPML2021")
	}
	if !strings.Contains(out, "<Citation") {
		t.Error("bibliography should encode as a Citation pool")
	}

	// The emitted document decodes cleanly as 2021.
	p2, ver, err := Read(context.Background(), strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-read error: %v\n%s", err, out)
	}
	if ver != V2021 {
		t.Fatalf("ver = %q", string(ver))
	}
	if p2.DataNodes()[1].Type != model.DataNodeUndefined {
		t.Errorf("type = %q", p2.DataNodes()[1].Type)
	}
}

func TestRoundTrip2021(t *testing.T) {
	p1, _ := decodeSample(t, sample2021)
	out := encodeToString(t, p1, V2021)

	p2, _, err := Read(context.Background(), strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-read error: %v\n%s", err, out)
	}

	n1a, n1b := p1.DataNodes()[0], p2.DataNodes()[0]
	if n1b.Font.TextColor != n1a.Font.TextColor || n1b.Style.BorderColor != n1a.Style.BorderColor {
		t.Errorf("split colors drifted: %q/%q", n1b.Font.TextColor, n1b.Style.BorderColor)
	}
	if len(p2.Citations()) != 1 || p2.Citations()[0].URL != "https://example.org/paper" {
		t.Errorf("citation pool drifted: %+v", p2.Citations())
	}
	if len(p2.Annotations()) != 1 {
		t.Errorf("annotation pool drifted")
	}
	if len(p2.Authors) != 1 || p2.Authors[0].Order != 1 {
		t.Errorf("authors drifted: %+v", p2.Authors)
	}
}

func TestEncodeBoundPointWritesRel(t *testing.T) {
	p, _ := decodeSample(t, sample2013a)
	out := encodeToString(t, p, V2013a)

	// Reconciliation derived RelX=1.0 for the first bound point; the writer
	// must persist it even though 1.0 looks like a schema default elsewhere.
	if !strings.Contains(out, `RelX="1.0"`) && !strings.Contains(out, `RelX="1"`) {
		t.Errorf("derived RelX missing from output:\n%s", out)
	}
}
