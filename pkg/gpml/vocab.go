package gpml

import "github.com/pathmark/pathmark/pkg/model"

// Vocabulary bridges between the 2013a spellings and the model's (2021)
// canonical values. The model always holds canonical vocabulary; the 2013a
// reader and writer translate at the boundary.

// groupStyleToType maps the 2013a Group Style value set onto group types.
// The sets overlap but are not identical: "None" is the plain group and
// "Group" historically marked paralog sets.
var groupStyleToType = map[string]model.GroupType{
	"None":    model.GroupGroup,
	"Group":   model.GroupParalog,
	"Complex": model.GroupComplex,
	"Pathway": model.GroupPathway,
}

// groupTypeToStyle is the reverse direction. GroupAnalog has no 2013a
// spelling and collapses to "Group"; the version converter flags that as
// lossy before a 2013a encode.
var groupTypeToStyle = map[model.GroupType]string{
	model.GroupGroup:   "None",
	model.GroupParalog: "Group",
	model.GroupComplex: "Complex",
	model.GroupPathway: "Pathway",
	model.GroupAnalog:  "Group",
}

func groupTypeOf2013a(style string) model.GroupType {
	if t, ok := groupStyleToType[style]; ok {
		return t
	}
	return model.GroupTypeOf(style)
}

func groupStyleFor2013a(t model.GroupType) string {
	if s, ok := groupTypeToStyle[t]; ok {
		return s
	}
	return string(t)
}

// The undefined data-node and state types were spelled "Unknown" in 2013a.
const unknownType2013a = "Unknown"

func dataNodeTypeOf2013a(raw string) model.DataNodeType {
	if raw == unknownType2013a {
		return model.DataNodeUndefined
	}
	return model.DataNodeTypeOf(raw)
}

func dataNodeTypeFor2013a(t model.DataNodeType) string {
	if t == model.DataNodeUndefined {
		return unknownType2013a
	}
	return string(t)
}

func stateTypeOf2013a(raw string) model.StateType {
	if raw == unknownType2013a {
		return model.StateUndefined
	}
	return model.StateTypeOf(raw)
}

func stateTypeFor2013a(t model.StateType) string {
	if t == model.StateUndefined {
		return unknownType2013a
	}
	return string(t)
}

// The undecorated line ending was spelled "Line" in 2013a.
const undirected2013a = "Line"

func arrowHeadOf2013a(raw string) model.ArrowHeadType {
	if raw == undirected2013a {
		return model.ArrowUndirected
	}
	return model.ArrowHeadOf(raw)
}

func arrowHeadFor2013a(t model.ArrowHeadType) string {
	if t == model.ArrowUndirected {
		return undirected2013a
	}
	return string(t)
}

// Font flag spellings shared by both generations.
const (
	fontWeightBold     = "Bold"
	fontStyleItalic    = "Italic"
	fontDecorUnderline = "Underline"
	fontStrikethru     = "Strikethru"
	fontNormal         = "Normal"
)

func fontFlag(raw, onValue string) bool { return raw == onValue }

func fontFlagValue(on bool, onValue string) string {
	if on {
		return onValue
	}
	return fontNormal
}
