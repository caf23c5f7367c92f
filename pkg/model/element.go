package model

// Element kind names. These double as the document tag names shared by both
// schema generations.
const (
	KindPathway       = "Pathway"
	KindDataNode      = "DataNode"
	KindState         = "State"
	KindInteraction   = "Interaction"
	KindGraphicalLine = "GraphicalLine"
	KindLabel         = "Label"
	KindShape         = "Shape"
	KindGroup         = "Group"
	KindAnchor        = "Anchor"
)

// Xref is a cross-reference into an external biological database,
// expressed as an identifier within a data source namespace.
type Xref struct {
	Identifier string
	DataSource string
}

// IsZero reports whether the xref carries no information.
func (x Xref) IsZero() bool { return x.Identifier == "" && x.DataSource == "" }

// Comment is a free-text note with an optional source attribution.
type Comment struct {
	Text   string
	Source string
}

// Author describes a pathway author.
type Author struct {
	Name     string
	Username string
	Order    int
}

// Core is the capability set shared by every pathway element: identity,
// comments, open-ended dynamic properties, and annotation/citation/evidence
// references. Concrete element types embed Core.
//
// ElementID must be treated as immutable once any other element references
// it; the Pathway owns assignment and registration.
type Core struct {
	ElementID string
	GroupRef  string
	Comments  []Comment
	Dynamic   map[string]string

	AnnotationRefs []AnnotationRef
	CitationRefs   []CitationRef
	EvidenceRefs   []EvidenceRef
}

// SetDynamic stores an open-ended key→value property, allocating the map on
// first use. Dynamic properties carry forward-compatible or deprecated data
// (e.g., the legacy double-line marker) through decode/encode untouched.
func (c *Core) SetDynamic(key, value string) {
	if c.Dynamic == nil {
		c.Dynamic = make(map[string]string)
	}
	c.Dynamic[key] = value
}

// GetDynamic returns the dynamic property for key, if present.
func (c *Core) GetDynamic(key string) (string, bool) {
	v, ok := c.Dynamic[key]
	return v, ok
}

// AddComment appends a comment.
func (c *Core) AddComment(text, source string) {
	c.Comments = append(c.Comments, Comment{Text: text, Source: source})
}

// Element is implemented by all pathway element variants admitted to a
// Pathway: DataNode, State, Interaction, GraphicalLine, Label, Shape, Group.
type Element interface {
	// Kind returns the element's tag category (e.g., KindDataNode).
	Kind() string
	// ElementCore returns the element's shared identity and annotation state.
	ElementCore() *Core
}

// ID is a convenience accessor for an element's identifier.
func ID(el Element) string { return el.ElementCore().ElementID }

// DataNode represents a biological entity placed on the diagram.
type DataNode struct {
	Core
	Rect  RectProps
	Font  FontProps
	Style ShapeStyleProps

	TextLabel string
	Type      DataNodeType
	Xref      Xref

	// AliasRef links an Alias-typed data node to the Group it stands in for.
	AliasRef string
}

// Kind implements Element.
func (*DataNode) Kind() string { return KindDataNode }

// ElementCore implements Element.
func (d *DataNode) ElementCore() *Core { return &d.Core }

// State is a modification badge attached to a DataNode. Its position is
// relative to the parent data node's frame via (RelX, RelY); absolute
// coordinates are derived.
type State struct {
	Core
	Font  FontProps
	Style ShapeStyleProps

	TextLabel string
	Type      StateType
	Xref      Xref

	// ElementRef identifies the parent DataNode.
	ElementRef string
	RelX       float64
	RelY       float64
	Width      float64
	Height     float64
}

// Kind implements Element.
func (*State) Kind() string { return KindState }

// ElementCore implements Element.
func (s *State) ElementCore() *Core { return &s.Core }

// Label is free-floating text on the diagram.
type Label struct {
	Core
	Rect  RectProps
	Font  FontProps
	Style ShapeStyleProps

	TextLabel string
	Href      string
}

// Kind implements Element.
func (*Label) Kind() string { return KindLabel }

// ElementCore implements Element.
func (l *Label) ElementCore() *Core { return &l.Core }

// Shape is a graphical shape, optionally carrying text.
type Shape struct {
	Core
	Rect  RectProps
	Font  FontProps
	Style ShapeStyleProps

	TextLabel string
}

// Kind implements Element.
func (*Shape) Kind() string { return KindShape }

// ElementCore implements Element.
func (s *Shape) ElementCore() *Core { return &s.Core }

// Group aggregates member elements. Membership is held exclusively by the
// members' GroupRef back-references; Pathway.GroupMembers derives the
// forward list on demand.
type Group struct {
	Core
	Rect  RectProps
	Font  FontProps
	Style ShapeStyleProps

	TextLabel string
	Type      GroupType
	Xref      Xref
}

// Kind implements Element.
func (*Group) Kind() string { return KindGroup }

// ElementCore implements Element.
func (g *Group) ElementCore() *Core { return &g.Core }
