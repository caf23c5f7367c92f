package validate

import (
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/gpml"
)

func parse(t *testing.T, doc string) *etree.Document {
	t.Helper()
	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func validDoc() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="ok">
  <Graphics BoardWidth="500.0" BoardHeight="400.0"/>
  <DataNode GraphId="n1" TextLabel="TP53" Type="GeneProduct">
    <Graphics CenterX="100.0" CenterY="100.0" Width="50.0" Height="20.0"/>
    <Xref Database="Ensembl" ID="ENSG00000141510"/>
  </DataNode>
  <InfoBox CenterX="0.0" CenterY="0.0"/>
</Pathway>`
}

func TestValidDocument(t *testing.T) {
	r := Document(parse(t, validDoc()), gpml.V2013a)
	if !r.Valid() {
		for _, is := range r.Issues {
			t.Logf("issue: %s", is)
		}
		t.Fatal("well-formed document flagged invalid")
	}
	if r.Err() != nil {
		t.Errorf("Err = %v", r.Err())
	}
}

func TestUnknownAttribute(t *testing.T) {
	doc := strings.Replace(validDoc(), `TextLabel="TP53"`, `TextLabel="TP53" Bogus="1"`, 1)
	r := Document(parse(t, doc), gpml.V2013a)
	if r.Valid() {
		t.Fatal("unknown attribute not reported")
	}
	found := false
	for _, is := range r.Issues {
		if is.Code == errors.ErrCodeUnknownAttribute && is.Attr == "Bogus" {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %+v", r.Issues)
	}
}

func TestMissingRequiredAttribute(t *testing.T) {
	doc := strings.Replace(validDoc(), ` CenterX="100.0"`, "", 1)
	r := Document(parse(t, doc), gpml.V2013a)
	if r.Valid() {
		t.Fatal("missing required attribute not reported")
	}
	for _, is := range r.Issues {
		if is.Code != errors.ErrCodeSchemaInvalid {
			t.Errorf("code = %q", is.Code)
		}
	}
}

func TestMalformedValue(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"number", `CenterX="100.0"`, `CenterX="wide"`},
		{"color", `Height="20.0"`, `Height="20.0" Color="red"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := strings.Replace(validDoc(), tc.old, tc.new, 1)
			r := Document(parse(t, doc), gpml.V2013a)
			if r.Valid() {
				t.Error("malformed value not reported")
			}
		})
	}
}

func TestChildOrder(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Pathway xmlns="http://pathvisio.org/GPML/2013a" Name="ok">
  <Graphics BoardWidth="500.0" BoardHeight="400.0"/>
  <DataNode GraphId="n1" TextLabel="TP53">
    <Xref Database="Ensembl" ID="ENSG00000141510"/>
    <Graphics CenterX="100.0" CenterY="100.0" Width="50.0" Height="20.0"/>
  </DataNode>
  <InfoBox CenterX="0.0" CenterY="0.0"/>
</Pathway>`
	r := Document(parse(t, doc), gpml.V2013a)
	if r.Valid() {
		t.Fatal("Xref before Graphics should violate the content model")
	}
	found := false
	for _, is := range r.Issues {
		if strings.Contains(is.Message, "order") {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %+v", r.Issues)
	}
}

func TestUnresolvedReference(t *testing.T) {
	doc := strings.Replace(validDoc(), `GraphId="n1"`, `GraphId="n1" GroupRef="nope"`, 1)
	r := Document(parse(t, doc), gpml.V2013a)
	if r.Valid() {
		t.Fatal("dangling GroupRef not reported")
	}
}

func TestUnresolvedBiopaxRef(t *testing.T) {
	doc := strings.Replace(validDoc(), `Type="GeneProduct">`, `Type="GeneProduct">
    <BiopaxRef>lit9</BiopaxRef>`, 1)
	r := Document(parse(t, doc), gpml.V2013a)
	if r.Valid() {
		t.Fatal("BiopaxRef to a missing PublicationXref not reported")
	}
}

func TestValid2021Document(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Pathway xmlns="http://pathvisio.org/GPML/2021" title="ok">
  <Graphics boardWidth="500" boardHeight="400"/>
  <DataNode elementId="n1" textLabel="TP53" type="GeneProduct">
    <Graphics centerX="100" centerY="100" width="50" height="20"/>
    <Xref identifier="ENSG00000141510" dataSource="Ensembl"/>
  </DataNode>
</Pathway>`
	r := Document(parse(t, doc), gpml.V2021)
	if !r.Valid() {
		for _, is := range r.Issues {
			t.Logf("issue: %s", is)
		}
		t.Fatal("well-formed 2021 document flagged invalid")
	}
}

func TestCollectsMultipleIssues(t *testing.T) {
	doc := strings.Replace(validDoc(), `TextLabel="TP53"`, `TextLabel="TP53" Bogus="1" Worse="2"`, 1)
	r := Document(parse(t, doc), gpml.V2013a)
	if len(r.Issues) < 2 {
		t.Errorf("Issues = %d, want all findings collected", len(r.Issues))
	}
}
