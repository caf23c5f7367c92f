package model

import "strings"

// =============================================================================
// Extensible Enums
//
// Each enum is a closed set of known values plus free-form custom values for
// forward compatibility. Known values keep their canonical spelling; custom
// values round-trip verbatim. Use the *Of constructors to normalize raw
// document values to canonical spelling where one exists.
// =============================================================================

// DataNodeType classifies the biological entity a DataNode represents.
type DataNodeType string

// Known data node types.
const (
	DataNodeUndefined   DataNodeType = "Undefined"
	DataNodeGeneProduct DataNodeType = "GeneProduct"
	DataNodeMetabolite  DataNodeType = "Metabolite"
	DataNodeProtein     DataNodeType = "Protein"
	DataNodeDNA         DataNodeType = "DNA"
	DataNodeRNA         DataNodeType = "RNA"
	DataNodePathway     DataNodeType = "Pathway"
	DataNodeComplex     DataNodeType = "Complex"
	DataNodeAlias       DataNodeType = "Alias"
)

var knownDataNodeTypes = knownSet(
	string(DataNodeUndefined), string(DataNodeGeneProduct), string(DataNodeMetabolite),
	string(DataNodeProtein), string(DataNodeDNA), string(DataNodeRNA),
	string(DataNodePathway), string(DataNodeComplex), string(DataNodeAlias),
)

// DataNodeTypeOf normalizes a raw value to a DataNodeType.
func DataNodeTypeOf(raw string) DataNodeType {
	return DataNodeType(normalize(raw, knownDataNodeTypes))
}

// IsKnown reports whether the value is part of the closed set.
func (t DataNodeType) IsKnown() bool { return isKnown(string(t), knownDataNodeTypes) }

// StateType classifies a modification carried by a State element.
type StateType string

// Known state types.
const (
	StateProteinModification    StateType = "ProteinModification"
	StateGeneticVariant         StateType = "GeneticVariant"
	StateEpigeneticModification StateType = "EpigeneticModification"
	StateUndefined              StateType = "Undefined"
)

var knownStateTypes = knownSet(
	string(StateProteinModification), string(StateGeneticVariant),
	string(StateEpigeneticModification), string(StateUndefined),
)

// StateTypeOf normalizes a raw value to a StateType.
func StateTypeOf(raw string) StateType { return StateType(normalize(raw, knownStateTypes)) }

// IsKnown reports whether the value is part of the closed set.
func (t StateType) IsKnown() bool { return isKnown(string(t), knownStateTypes) }

// ShapeType names the geometry used to draw a shaped element.
type ShapeType string

// Known shape types.
const (
	ShapeNone                  ShapeType = "None"
	ShapeRectangle             ShapeType = "Rectangle"
	ShapeRoundedRectangle      ShapeType = "RoundedRectangle"
	ShapeOval                  ShapeType = "Oval"
	ShapeTriangle              ShapeType = "Triangle"
	ShapePentagon              ShapeType = "Pentagon"
	ShapeHexagon               ShapeType = "Hexagon"
	ShapeOctagon               ShapeType = "Octagon"
	ShapeEdge                  ShapeType = "Line"
	ShapeArc                   ShapeType = "Arc"
	ShapeBrace                 ShapeType = "Brace"
	ShapeMitochondria          ShapeType = "Mitochondria"
	ShapeSarcoplasmicReticulum ShapeType = "SarcoplasmicReticulum"
	ShapeEndoplasmicReticulum  ShapeType = "EndoplasmicReticulum"
	ShapeGolgiApparatus        ShapeType = "GolgiApparatus"
	ShapeDegradation           ShapeType = "Degradation"
)

var knownShapeTypes = knownSet(
	string(ShapeNone), string(ShapeRectangle), string(ShapeRoundedRectangle),
	string(ShapeOval), string(ShapeTriangle), string(ShapePentagon),
	string(ShapeHexagon), string(ShapeOctagon), string(ShapeEdge), string(ShapeArc),
	string(ShapeBrace), string(ShapeMitochondria), string(ShapeSarcoplasmicReticulum),
	string(ShapeEndoplasmicReticulum), string(ShapeGolgiApparatus), string(ShapeDegradation),
)

// ShapeTypeOf normalizes a raw value to a ShapeType.
func ShapeTypeOf(raw string) ShapeType { return ShapeType(normalize(raw, knownShapeTypes)) }

// IsKnown reports whether the value is part of the closed set.
func (t ShapeType) IsKnown() bool { return isKnown(string(t), knownShapeTypes) }

// LineStyleType is the dash pattern of a border or line.
type LineStyleType string

// Known line styles.
const (
	LineStyleSolid  LineStyleType = "Solid"
	LineStyleDashed LineStyleType = "Dashed"
	LineStyleDouble LineStyleType = "Double"
	LineStyleDotted LineStyleType = "Dotted"
)

var knownLineStyles = knownSet(
	string(LineStyleSolid), string(LineStyleDashed), string(LineStyleDouble), string(LineStyleDotted),
)

// LineStyleOf normalizes a raw value to a LineStyleType.
func LineStyleOf(raw string) LineStyleType { return LineStyleType(normalize(raw, knownLineStyles)) }

// IsKnown reports whether the value is part of the closed set.
func (t LineStyleType) IsKnown() bool { return isKnown(string(t), knownLineStyles) }

// ConnectorType is the routing policy for a line's path between points.
type ConnectorType string

// Known connector types.
const (
	ConnectorStraight  ConnectorType = "Straight"
	ConnectorElbow     ConnectorType = "Elbow"
	ConnectorCurved    ConnectorType = "Curved"
	ConnectorSegmented ConnectorType = "Segmented"
)

var knownConnectorTypes = knownSet(
	string(ConnectorStraight), string(ConnectorElbow), string(ConnectorCurved), string(ConnectorSegmented),
)

// ConnectorTypeOf normalizes a raw value to a ConnectorType.
func ConnectorTypeOf(raw string) ConnectorType {
	return ConnectorType(normalize(raw, knownConnectorTypes))
}

// IsKnown reports whether the value is part of the closed set.
func (t ConnectorType) IsKnown() bool { return isKnown(string(t), knownConnectorTypes) }

// ArrowHeadType decorates a line endpoint.
type ArrowHeadType string

// Known arrow head types.
const (
	ArrowUndirected               ArrowHeadType = "Undirected"
	ArrowDirected                 ArrowHeadType = "Arrow"
	ArrowTBar                     ArrowHeadType = "TBar"
	ArrowInhibition               ArrowHeadType = "Inhibition"
	ArrowCatalysis                ArrowHeadType = "Catalysis"
	ArrowStimulation              ArrowHeadType = "Stimulation"
	ArrowBinding                  ArrowHeadType = "Binding"
	ArrowConversion               ArrowHeadType = "Conversion"
	ArrowTranscriptionTranslation ArrowHeadType = "TranscriptionTranslation"
)

var knownArrowHeads = knownSet(
	string(ArrowUndirected), string(ArrowDirected), string(ArrowTBar),
	string(ArrowInhibition), string(ArrowCatalysis), string(ArrowStimulation),
	string(ArrowBinding), string(ArrowConversion), string(ArrowTranscriptionTranslation),
)

// ArrowHeadOf normalizes a raw value to an ArrowHeadType.
func ArrowHeadOf(raw string) ArrowHeadType { return ArrowHeadType(normalize(raw, knownArrowHeads)) }

// IsKnown reports whether the value is part of the closed set.
func (t ArrowHeadType) IsKnown() bool { return isKnown(string(t), knownArrowHeads) }

// AnchorShapeType is the visual marker drawn for an anchor.
type AnchorShapeType string

// Known anchor shapes.
const (
	AnchorNone   AnchorShapeType = "None"
	AnchorSquare AnchorShapeType = "Square"
	AnchorCircle AnchorShapeType = "Circle"
)

var knownAnchorShapes = knownSet(string(AnchorNone), string(AnchorSquare), string(AnchorCircle))

// AnchorShapeOf normalizes a raw value to an AnchorShapeType.
func AnchorShapeOf(raw string) AnchorShapeType {
	return AnchorShapeType(normalize(raw, knownAnchorShapes))
}

// IsKnown reports whether the value is part of the closed set.
func (t AnchorShapeType) IsKnown() bool { return isKnown(string(t), knownAnchorShapes) }

// GroupType is the aggregation semantic of a Group.
type GroupType string

// Known group types.
const (
	GroupGroup   GroupType = "Group"
	GroupComplex GroupType = "Complex"
	GroupPathway GroupType = "Pathway"
	GroupAnalog  GroupType = "Analog"
	GroupParalog GroupType = "Paralog"
)

var knownGroupTypes = knownSet(
	string(GroupGroup), string(GroupComplex), string(GroupPathway),
	string(GroupAnalog), string(GroupParalog),
)

// GroupTypeOf normalizes a raw value to a GroupType.
func GroupTypeOf(raw string) GroupType { return GroupType(normalize(raw, knownGroupTypes)) }

// IsKnown reports whether the value is part of the closed set.
func (t GroupType) IsKnown() bool { return isKnown(string(t), knownGroupTypes) }

// AnnotationType classifies an Annotation pool entry.
type AnnotationType string

// Known annotation types.
const (
	AnnotationUndefined AnnotationType = "Undefined"
	AnnotationOntology  AnnotationType = "Ontology"
	AnnotationTaxonomy  AnnotationType = "Taxonomy"
)

var knownAnnotationTypes = knownSet(
	string(AnnotationUndefined), string(AnnotationOntology), string(AnnotationTaxonomy),
)

// AnnotationTypeOf normalizes a raw value to an AnnotationType.
func AnnotationTypeOf(raw string) AnnotationType {
	return AnnotationType(normalize(raw, knownAnnotationTypes))
}

// IsKnown reports whether the value is part of the closed set.
func (t AnnotationType) IsKnown() bool { return isKnown(string(t), knownAnnotationTypes) }

// HAlignType is horizontal text alignment.
type HAlignType string

// Known horizontal alignments.
const (
	HAlignLeft   HAlignType = "Left"
	HAlignCenter HAlignType = "Center"
	HAlignRight  HAlignType = "Right"
)

// VAlignType is vertical text alignment.
type VAlignType string

// Known vertical alignments.
const (
	VAlignTop    VAlignType = "Top"
	VAlignMiddle VAlignType = "Middle"
	VAlignBottom VAlignType = "Bottom"
)

// =============================================================================
// Normalization helpers
// =============================================================================

func knownSet(values ...string) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[strings.ToLower(v)] = v
	}
	return m
}

// normalize maps raw to the canonical spelling if it is a known value
// (case-insensitively); otherwise raw is preserved verbatim as a custom value.
func normalize(raw string, known map[string]string) string {
	if canonical, ok := known[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}

func isKnown(v string, known map[string]string) bool {
	_, ok := known[strings.ToLower(v)]
	return ok
}
