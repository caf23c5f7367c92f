package model

import "testing"

func TestRectRelative(t *testing.T) {
	rect := RectProps{CenterX: 100, CenterY: 100, Width: 50, Height: 20}

	tests := []struct {
		name       string
		x, y       float64
		relX, relY float64
	}{
		{"right edge midline", 125, 100, 1.0, 0.0},
		{"left edge midline", 75, 100, -1.0, 0.0},
		{"center", 100, 100, 0.0, 0.0},
		{"bottom right corner", 125, 110, 1.0, 1.0},
		{"outside clamps", 200, 100, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relX, relY := rect.Relative(tt.x, tt.y)
			if relX != tt.relX || relY != tt.relY {
				t.Errorf("Relative(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, relX, relY, tt.relX, tt.relY)
			}
		})
	}
}

func TestRectAbsoluteInverts(t *testing.T) {
	rect := RectProps{CenterX: 100, CenterY: 100, Width: 50, Height: 20}
	x, y := rect.Absolute(1.0, 0.0)
	if x != 125 || y != 100 {
		t.Errorf("Absolute(1,0) = (%v,%v), want (125,100)", x, y)
	}
}

func TestRectRelativeDegenerate(t *testing.T) {
	rect := RectProps{CenterX: 10, CenterY: 10}
	relX, relY := rect.Relative(10, 10)
	if relX != 0 || relY != 0 {
		t.Errorf("zero-size rect should map its center to (0,0), got (%v,%v)", relX, relY)
	}
}

func TestColorEqual(t *testing.T) {
	tests := []struct {
		a, b Color
		want bool
	}{
		{"000000", "000000", true},
		{"FF0000", "ff0000", true},
		{"Transparent", "transparent", true},
		{"000000", "ffffff", false},
		{"Transparent", "000000", false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("Equal(%q,%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestColorOf(t *testing.T) {
	if got := ColorOf("#FF00AA"); got != "ff00aa" {
		t.Errorf("ColorOf(#FF00AA) = %q", got)
	}
	if got := ColorOf("Transparent"); got != ColorTransparent {
		t.Errorf("ColorOf(Transparent) = %q", got)
	}
}

func TestTypeNormalization(t *testing.T) {
	if got := DataNodeTypeOf("geneproduct"); got != DataNodeGeneProduct {
		t.Errorf("DataNodeTypeOf = %q", got)
	}
	// Custom values survive verbatim.
	if got := DataNodeTypeOf("MyCustomKind"); got != "MyCustomKind" {
		t.Errorf("custom type mangled: %q", got)
	}
	if DataNodeTypeOf("MyCustomKind").IsKnown() {
		t.Error("custom type should not be known")
	}
}
