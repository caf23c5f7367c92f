package schema

import (
	"testing"

	"github.com/pathmark/pathmark/pkg/errors"
)

func TestLookupKnownAttribute(t *testing.T) {
	tab := GPML2013a()
	spec, err := tab.Lookup("DataNode", "TextLabel")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if !spec.Required {
		t.Error("DataNode TextLabel should be required in 2013a")
	}
}

func TestLookupUnknownAttribute(t *testing.T) {
	tab := GPML2013a()
	_, err := tab.Lookup("DataNode", "noSuchAttr")
	if err == nil {
		t.Fatal("unknown attribute should error")
	}
	if !errors.Is(err, errors.ErrCodeUnknownAttribute) {
		t.Errorf("error code = %v, want UNKNOWN_ATTRIBUTE", errors.GetCode(err))
	}
}

func TestDottedGraphicsTags(t *testing.T) {
	tab := GPML2013a()
	if !tab.Knows("DataNode.Graphics", "CenterX") {
		t.Error("graphics attributes should be keyed by parent tag")
	}
	if tab.Knows("Graphics", "CenterX") {
		t.Error("bare Graphics tag should not resolve")
	}
}

func TestIsDefaultFloatEpsilon(t *testing.T) {
	tab := GPML2013a()

	// LineThickness default is 1.0; values within epsilon count as default.
	tests := []struct {
		value string
		want  bool
	}{
		{"1.0", true},
		{"1", true},
		{"1.0000000001", true},
		{"1.1", false},
	}
	for _, tt := range tests {
		got, err := tab.IsDefault("DataNode.Graphics", "LineThickness", tt.value)
		if err != nil {
			t.Fatalf("IsDefault(%q) error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("IsDefault(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIsDefaultColor(t *testing.T) {
	tab := GPML2013a()
	got, err := tab.IsDefault("DataNode.Graphics", "Color", "000000")
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("black should be the default border color")
	}
	got, err = tab.IsDefault("DataNode.Graphics", "Color", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("color defaults should compare case- and prefix-insensitively")
	}
}

func TestVersionDefaultsDiffer(t *testing.T) {
	old, err := GPML2013a().Lookup("DataNode.Graphics", "Valign")
	if err != nil {
		t.Fatal(err)
	}
	modern, err := GPML2021().Lookup("DataNode.Graphics", "vAlign")
	if err != nil {
		t.Fatal(err)
	}
	if old.Default != "Top" {
		t.Errorf("2013a Valign default = %q, want Top", old.Default)
	}
	if modern.Default != "Middle" {
		t.Errorf("2021 vAlign default = %q, want Middle", modern.Default)
	}

	oldAnchor, err := GPML2013a().Lookup("Anchor", "Shape")
	if err != nil {
		t.Fatal(err)
	}
	modernAnchor, err := GPML2021().Lookup("Anchor", "shape")
	if err != nil {
		t.Fatal(err)
	}
	if oldAnchor.Default != "None" || modernAnchor.Default != "Square" {
		t.Errorf("anchor shape defaults = %q/%q, want None/Square", oldAnchor.Default, modernAnchor.Default)
	}
}

func TestRequiredSorted(t *testing.T) {
	tab := GPML2021()
	req := tab.Required("State.Graphics")
	want := []string{"height", "relX", "relY", "width"}
	if len(req) != len(want) {
		t.Fatalf("Required = %v, want %v", req, want)
	}
	for i := range want {
		if req[i] != want[i] {
			t.Fatalf("Required = %v, want %v", req, want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.0, "1"},
		{1.5, "1.5"},
		{120.0, "120"},
		{0.25, "0.25"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
