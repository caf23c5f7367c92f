package model

import "strings"

// Color is a serialized color value: a 6- or 8-digit lowercase hex string
// (e.g., "ff9900"), or the keyword "Transparent".
type Color string

// Common colors.
const (
	ColorBlack       Color = "000000"
	ColorWhite       Color = "ffffff"
	ColorTransparent Color = "Transparent"
)

// IsTransparent reports whether the color is the Transparent keyword.
func (c Color) IsTransparent() bool {
	return strings.EqualFold(string(c), string(ColorTransparent))
}

// Equal reports color equivalence: Transparent matches Transparent
// regardless of case, and hex values compare case-insensitively with an
// optional leading '#' stripped.
func (c Color) Equal(other Color) bool {
	if c.IsTransparent() || other.IsTransparent() {
		return c.IsTransparent() && other.IsTransparent()
	}
	a := strings.ToLower(strings.TrimPrefix(string(c), "#"))
	b := strings.ToLower(strings.TrimPrefix(string(other), "#"))
	return a == b
}

// ColorOf normalizes a raw document value to a Color.
func ColorOf(raw string) Color {
	if strings.EqualFold(raw, string(ColorTransparent)) {
		return ColorTransparent
	}
	return Color(strings.ToLower(strings.TrimPrefix(raw, "#")))
}

// RectProps is the rectangular geometry shared by all shaped elements.
// Coordinates are in board units with the origin at the top-left corner.
type RectProps struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// Left returns the x coordinate of the left edge.
func (r RectProps) Left() float64 { return r.CenterX - r.Width/2 }

// Top returns the y coordinate of the top edge.
func (r RectProps) Top() float64 { return r.CenterY - r.Height/2 }

// Relative projects an absolute coordinate into the rectangle's local frame:
// (0,0) is the center and ±1 the edges. Points outside the rectangle project
// beyond ±1 and are clamped.
func (r RectProps) Relative(x, y float64) (relX, relY float64) {
	relX = clamp(safeDiv(x-r.CenterX, r.Width/2))
	relY = clamp(safeDiv(y-r.CenterY, r.Height/2))
	return relX, relY
}

// Absolute is the inverse of Relative: it maps local-frame coordinates back
// onto the board.
func (r RectProps) Absolute(relX, relY float64) (x, y float64) {
	return r.CenterX + relX*r.Width/2, r.CenterY + relY*r.Height/2
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// FontProps is the text styling shared by all shaped elements.
type FontProps struct {
	TextColor      Color
	FontName       string
	FontWeight     bool // bold
	FontStyle      bool // italic
	FontDecoration bool // underline
	FontStrikethru bool
	FontSize       float64
	HAlign         HAlignType
	VAlign         VAlignType
}

// ShapeStyleProps is the border and fill styling shared by shaped elements.
type ShapeStyleProps struct {
	BorderColor Color
	BorderStyle LineStyleType
	BorderWidth float64
	FillColor   Color
	ShapeType   ShapeType
	ZOrder      int
	Rotation    float64 // radians, clockwise
}

// LineStyleProps is the stroke styling shared by line elements.
type LineStyleProps struct {
	LineColor     Color
	LineStyle     LineStyleType
	LineWidth     float64
	ConnectorType ConnectorType
	ZOrder        int
}
