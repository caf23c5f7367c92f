package gpml

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/model"
	"github.com/pathmark/pathmark/pkg/observability"
	"github.com/pathmark/pathmark/pkg/schema"
)

// Encode serializes the pathway graph into a document tree under the given
// schema version. Optional attributes holding their schema default are
// elided; required attributes are always written. Lines still missing an
// identifier get one backfilled before serialization.
//
// Encode does not translate vocabulary across generations beyond the
// spelling bridges; run the version converter first when the graph holds
// constructs the target generation cannot express.
func Encode(ctx context.Context, p *model.Pathway, ver Version) (*etree.Document, error) {
	if !ver.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "unsupported version: %q", string(ver))
	}

	start := time.Now()
	observability.Codec().OnEncodeStart(ctx, string(ver), len(p.Elements()))

	doc, err := encodeDocument(p, ver)

	observability.Codec().OnEncodeComplete(ctx, string(ver), time.Since(start), err)
	return doc, err
}

// Write encodes the pathway and writes the indented document to w.
func Write(ctx context.Context, p *model.Pathway, ver Version, w io.Writer) error {
	doc, err := Encode(ctx, p, ver)
	if err != nil {
		return err
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}
	return nil
}

// WriteFile encodes the pathway to a file at path.
func WriteFile(ctx context.Context, p *model.Pathway, ver Version, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(ctx, p, ver, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type encoder struct {
	ver Version
	tab *schema.Table
	p   *model.Pathway
}

func encodeDocument(p *model.Pathway, ver Version) (*etree.Document, error) {
	if err := backfillLineIDs(p); err != nil {
		return nil, err
	}

	e := &encoder{ver: ver, tab: ver.Table(), p: p}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Pathway")
	root.CreateAttr("xmlns", ver.Namespace())

	if err := e.encodePathway(root); err != nil {
		return nil, err
	}

	for _, el := range p.Elements() {
		var err error
		switch t := el.(type) {
		case *model.DataNode:
			err = e.encodeDataNode(root, t)
		case *model.State:
			err = e.encodeState(root, t)
		case *model.Interaction:
			err = e.encodeLine(root, "Interaction", t, t.Xref)
		case *model.GraphicalLine:
			err = e.encodeLine(root, "GraphicalLine", t, model.Xref{})
		case *model.Label:
			err = e.encodeLabel(root, t)
		case *model.Shape:
			err = e.encodeShape(root, t)
		case *model.Group:
			err = e.encodeGroup(root, t)
		}
		if err != nil {
			return nil, err
		}
	}

	if e.ver == V2013a {
		if err := e.encodeInfoBoxLegend(root); err != nil {
			return nil, err
		}
		if err := e.encodeBiopax(root); err != nil {
			return nil, err
		}
	} else {
		if err := e.encodePools(root); err != nil {
			return nil, err
		}
	}

	normalizeOrder(root, ver)
	return doc, nil
}

// =============================================================================
// Attribute helpers (schema-table driven)
// =============================================================================

// set writes an attribute through the schema table, eliding optional
// attributes that hold their default value.
func (e *encoder) set(el *etree.Element, tag, name, value string) error {
	spec, err := e.tab.Lookup(tag, name)
	if err != nil {
		return err
	}
	if !spec.Required {
		// An empty optional value means unset, which serializes as absence.
		if value == "" {
			return nil
		}
		def, err := e.tab.IsDefault(tag, name, value)
		if err != nil {
			return errors.Conversion(string(e.ver), tag, name, err)
		}
		if def {
			return nil
		}
	}
	el.CreateAttr(name, value)
	return nil
}

func (e *encoder) setF(el *etree.Element, tag, name string, v float64) error {
	return e.set(el, tag, name, schema.FormatFloat(v))
}

func (e *encoder) setI(el *etree.Element, tag, name string, v int) error {
	return e.set(el, tag, name, schema.FormatInt(v))
}

// multi applies a run of attribute writes and returns the first failure.
func multi(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Root metadata
// =============================================================================

func (e *encoder) encodePathway(root *etree.Element) error {
	p := e.p

	if e.ver == V2013a {
		if err := multi(
			e.set(root, "Pathway", "Name", p.Title),
			e.set(root, "Pathway", "Organism", p.Organism),
			e.set(root, "Pathway", "Data-Source", p.Source),
			e.set(root, "Pathway", "Version", p.Version),
			e.set(root, "Pathway", "License", p.License),
		); err != nil {
			return err
		}
		if len(p.Authors) > 0 {
			if err := e.set(root, "Pathway", "Author", p.Authors[0].Name); err != nil {
				return err
			}
		}
		for _, legacy := range []string{"Maintainer", "Email", "Last-Modified"} {
			if v, ok := p.GetDynamic(legacy); ok {
				if err := e.set(root, "Pathway", legacy, v); err != nil {
					return err
				}
			}
		}
	} else {
		if err := multi(
			e.set(root, "Pathway", "title", p.Title),
			e.set(root, "Pathway", "organism", p.Organism),
			e.set(root, "Pathway", "source", p.Source),
			e.set(root, "Pathway", "version", p.Version),
			e.set(root, "Pathway", "license", p.License),
		); err != nil {
			return err
		}
		for _, a := range p.Authors {
			ae := root.CreateElement("Author")
			if err := multi(
				e.set(ae, "Author", "name", a.Name),
				e.set(ae, "Author", "username", a.Username),
				e.setI(ae, "Author", "order", a.Order),
			); err != nil {
				return err
			}
		}
		if err := e.encodeXref(root, p.Xref, false); err != nil {
			return err
		}
	}

	gfx := root.CreateElement("Graphics")
	bw, bh := "BoardWidth", "BoardHeight"
	if e.ver == V2021 {
		bw, bh = "boardWidth", "boardHeight"
	}
	if err := multi(
		e.setF(gfx, "Pathway.Graphics", bw, p.BoardWidth),
		e.setF(gfx, "Pathway.Graphics", bh, p.BoardHeight),
	); err != nil {
		return err
	}

	return e.encodeCore(root, "Pathway", &p.Core)
}

// =============================================================================
// Shared children
// =============================================================================

// pathwayLegacyAttrs are dynamic properties the 2013a root writes as
// attributes; they are excluded from Attribute children to avoid writing
// them twice.
var pathwayLegacyAttrs = map[string]bool{"Maintainer": true, "Email": true, "Last-Modified": true}

func (e *encoder) encodeCore(el *etree.Element, tag string, core *model.Core) error {
	srcAttr := "Source"
	if e.ver == V2021 {
		srcAttr = "source"
	}
	for _, c := range core.Comments {
		ce := el.CreateElement("Comment")
		ce.SetText(c.Text)
		if err := e.set(ce, "Comment", srcAttr, c.Source); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(core.Dynamic))
	for k := range core.Dynamic {
		if e.ver == V2013a && tag == "Pathway" && pathwayLegacyAttrs[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if e.ver == V2013a {
		for _, k := range keys {
			ae := el.CreateElement("Attribute")
			if err := multi(
				e.set(ae, "Attribute", "Key", k),
				e.set(ae, "Attribute", "Value", core.Dynamic[k]),
			); err != nil {
				return err
			}
		}
		// 2013a has no annotation or evidence vocabulary; citation refs
		// become BiopaxRef text children, the rest is dropped by the
		// version converter before encode.
		for _, cr := range core.CitationRefs {
			el.CreateElement("BiopaxRef").SetText(cr.CitationID)
		}
		return nil
	}

	for _, k := range keys {
		pe := el.CreateElement("Property")
		if err := multi(
			e.set(pe, "Property", "key", k),
			e.set(pe, "Property", "value", core.Dynamic[k]),
		); err != nil {
			return err
		}
	}
	if err := e.encodeAnnotationRefs(el, core.AnnotationRefs); err != nil {
		return err
	}
	if err := e.encodeCitationRefs(el, core.CitationRefs); err != nil {
		return err
	}
	for _, er := range core.EvidenceRefs {
		ee := el.CreateElement("EvidenceRef")
		if err := e.set(ee, "EvidenceRef", "elementRef", er.EvidenceID); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeAnnotationRefs(el *etree.Element, refs []model.AnnotationRef) error {
	for _, ar := range refs {
		ae := el.CreateElement("AnnotationRef")
		if err := e.set(ae, "AnnotationRef", "elementRef", ar.AnnotationID); err != nil {
			return err
		}
		if err := e.encodeCitationRefs(ae, ar.CitationRefs); err != nil {
			return err
		}
		for _, er := range ar.EvidenceRefs {
			ee := ae.CreateElement("EvidenceRef")
			if err := e.set(ee, "EvidenceRef", "elementRef", er.EvidenceID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeCitationRefs(el *etree.Element, refs []model.CitationRef) error {
	for _, cr := range refs {
		ce := el.CreateElement("CitationRef")
		if err := e.set(ce, "CitationRef", "elementRef", cr.CitationID); err != nil {
			return err
		}
		if err := e.encodeAnnotationRefs(ce, cr.AnnotationRefs); err != nil {
			return err
		}
	}
	return nil
}

// encodeXref writes an Xref child; zero xrefs are omitted unless force is
// set (the 2021 data node schema requires the element's presence).
func (e *encoder) encodeXref(el *etree.Element, x model.Xref, force bool) error {
	if x.IsZero() && !force {
		return nil
	}
	xe := el.CreateElement("Xref")
	idAttr, dsAttr := "ID", "Database"
	if e.ver == V2021 {
		idAttr, dsAttr = "identifier", "dataSource"
	}
	return multi(
		e.set(xe, "Xref", idAttr, x.Identifier),
		e.set(xe, "Xref", dsAttr, x.DataSource),
	)
}

// =============================================================================
// Graphics blocks
// =============================================================================

func (e *encoder) encodeRect(gfx *etree.Element, tag string, rect model.RectProps) error {
	cx, cy, w, h := "CenterX", "CenterY", "Width", "Height"
	if e.ver == V2021 {
		cx, cy, w, h = "centerX", "centerY", "width", "height"
	}
	return multi(
		e.setF(gfx, tag, cx, rect.CenterX),
		e.setF(gfx, tag, cy, rect.CenterY),
		e.setF(gfx, tag, w, rect.Width),
		e.setF(gfx, tag, h, rect.Height),
	)
}

func (e *encoder) encodeFont(gfx *etree.Element, tag string, font model.FontProps) error {
	if e.ver == V2013a {
		return multi(
			e.set(gfx, tag, "Color", string(font.TextColor)),
			e.set(gfx, tag, "FontName", font.FontName),
			e.set(gfx, tag, "FontWeight", fontFlagValue(font.FontWeight, fontWeightBold)),
			e.set(gfx, tag, "FontStyle", fontFlagValue(font.FontStyle, fontStyleItalic)),
			e.set(gfx, tag, "FontDecoration", fontFlagValue(font.FontDecoration, fontDecorUnderline)),
			e.set(gfx, tag, "FontStrikethru", fontFlagValue(font.FontStrikethru, fontStrikethru)),
			e.setF(gfx, tag, "FontSize", font.FontSize),
			e.set(gfx, tag, "Align", string(font.HAlign)),
			e.set(gfx, tag, "Valign", string(font.VAlign)),
		)
	}
	return multi(
		e.set(gfx, tag, "textColor", string(font.TextColor)),
		e.set(gfx, tag, "fontName", font.FontName),
		e.set(gfx, tag, "fontWeight", fontFlagValue(font.FontWeight, fontWeightBold)),
		e.set(gfx, tag, "fontStyle", fontFlagValue(font.FontStyle, fontStyleItalic)),
		e.set(gfx, tag, "fontDecoration", fontFlagValue(font.FontDecoration, fontDecorUnderline)),
		e.set(gfx, tag, "fontStrikethru", fontFlagValue(font.FontStrikethru, fontStrikethru)),
		e.setF(gfx, tag, "fontSize", font.FontSize),
		e.set(gfx, tag, "hAlign", string(font.HAlign)),
		e.set(gfx, tag, "vAlign", string(font.VAlign)),
	)
}

func (e *encoder) encodeShapeStyle(gfx *etree.Element, tag string, style model.ShapeStyleProps) error {
	if e.ver == V2013a {
		// 2013a spells text and border color with the same Color attribute,
		// which the font encoder already wrote.
		if err := multi(
			e.set(gfx, tag, "LineStyle", string(style.BorderStyle)),
			e.setF(gfx, tag, "LineThickness", style.BorderWidth),
			e.set(gfx, tag, "FillColor", string(style.FillColor)),
			e.set(gfx, tag, "ShapeType", string(style.ShapeType)),
			e.setI(gfx, tag, "ZOrder", style.ZOrder),
		); err != nil {
			return err
		}
	} else {
		if err := multi(
			e.set(gfx, tag, "borderColor", string(style.BorderColor)),
			e.set(gfx, tag, "borderStyle", string(style.BorderStyle)),
			e.setF(gfx, tag, "borderWidth", style.BorderWidth),
			e.set(gfx, tag, "fillColor", string(style.FillColor)),
			e.set(gfx, tag, "shapeType", string(style.ShapeType)),
			e.setI(gfx, tag, "zOrder", style.ZOrder),
		); err != nil {
			return err
		}
	}

	rot := "Rotation"
	if e.ver == V2021 {
		rot = "rotation"
	}
	if e.tab.Knows(tag, rot) {
		return e.setF(gfx, tag, rot, style.Rotation)
	}
	return nil
}

func (e *encoder) encodeLineStyle(gfx *etree.Element, tag string, style model.LineStyleProps) error {
	if e.ver == V2013a {
		return multi(
			e.set(gfx, tag, "Color", string(style.LineColor)),
			e.set(gfx, tag, "LineStyle", string(style.LineStyle)),
			e.setF(gfx, tag, "LineThickness", style.LineWidth),
			e.set(gfx, tag, "ConnectorType", string(style.ConnectorType)),
			e.setI(gfx, tag, "ZOrder", style.ZOrder),
		)
	}
	return multi(
		e.set(gfx, tag, "lineColor", string(style.LineColor)),
		e.set(gfx, tag, "lineStyle", string(style.LineStyle)),
		e.setF(gfx, tag, "lineWidth", style.LineWidth),
		e.set(gfx, tag, "connectorType", string(style.ConnectorType)),
		e.setI(gfx, tag, "zOrder", style.ZOrder),
	)
}

// =============================================================================
// Element encode routines
// =============================================================================

func (e *encoder) setID(el *etree.Element, tag, id string) error {
	name := "GraphId"
	if e.ver == V2021 {
		name = "elementId"
	}
	return e.set(el, tag, name, id)
}

func (e *encoder) setGroupRef(el *etree.Element, tag, ref string) error {
	name := "GroupRef"
	if e.ver == V2021 {
		name = "groupRef"
	}
	return e.set(el, tag, name, ref)
}

func (e *encoder) encodeDataNode(root *etree.Element, dn *model.DataNode) error {
	el := root.CreateElement("DataNode")
	if err := multi(
		e.setID(el, "DataNode", dn.ElementID),
		e.setGroupRef(el, "DataNode", dn.GroupRef),
	); err != nil {
		return err
	}

	if e.ver == V2013a {
		if err := multi(
			e.set(el, "DataNode", "TextLabel", dn.TextLabel),
			e.set(el, "DataNode", "Type", dataNodeTypeFor2013a(dn.Type)),
		); err != nil {
			return err
		}
	} else {
		if err := multi(
			e.set(el, "DataNode", "textLabel", dn.TextLabel),
			e.set(el, "DataNode", "type", string(dn.Type)),
			e.set(el, "DataNode", "aliasRef", dn.AliasRef),
		); err != nil {
			return err
		}
	}

	gfx := el.CreateElement("Graphics")
	if err := multi(
		e.encodeRect(gfx, "DataNode.Graphics", dn.Rect),
		e.encodeFont(gfx, "DataNode.Graphics", dn.Font),
		e.encodeShapeStyle(gfx, "DataNode.Graphics", dn.Style),
	); err != nil {
		return err
	}
	if err := e.encodeXref(el, dn.Xref, e.ver == V2021); err != nil {
		return err
	}
	return e.encodeCore(el, "DataNode", &dn.Core)
}

func (e *encoder) encodeState(root *etree.Element, st *model.State) error {
	el := root.CreateElement("State")
	if err := e.setID(el, "State", st.ElementID); err != nil {
		return err
	}

	if e.ver == V2013a {
		if err := multi(
			e.set(el, "State", "GraphRef", st.ElementRef),
			e.set(el, "State", "TextLabel", st.TextLabel),
			e.set(el, "State", "StateType", stateTypeFor2013a(st.Type)),
		); err != nil {
			return err
		}
	} else {
		if err := multi(
			e.set(el, "State", "elementRef", st.ElementRef),
			e.set(el, "State", "textLabel", st.TextLabel),
			e.set(el, "State", "type", string(st.Type)),
		); err != nil {
			return err
		}
	}

	gfx := el.CreateElement("Graphics")
	tag := "State.Graphics"
	if e.ver == V2013a {
		if err := multi(
			e.setF(gfx, tag, "RelX", st.RelX),
			e.setF(gfx, tag, "RelY", st.RelY),
			e.setF(gfx, tag, "Width", st.Width),
			e.setF(gfx, tag, "Height", st.Height),
			e.set(gfx, tag, "Color", string(st.Style.BorderColor)),
			e.set(gfx, tag, "FillColor", string(st.Style.FillColor)),
			e.setF(gfx, tag, "FontSize", st.Font.FontSize),
			e.set(gfx, tag, "ShapeType", string(st.Style.ShapeType)),
			e.set(gfx, tag, "LineStyle", string(st.Style.BorderStyle)),
			e.setF(gfx, tag, "LineThickness", st.Style.BorderWidth),
			e.setI(gfx, tag, "ZOrder", st.Style.ZOrder),
		); err != nil {
			return err
		}
	} else {
		if err := multi(
			e.setF(gfx, tag, "relX", st.RelX),
			e.setF(gfx, tag, "relY", st.RelY),
			e.setF(gfx, tag, "width", st.Width),
			e.setF(gfx, tag, "height", st.Height),
			e.set(gfx, tag, "textColor", string(st.Font.TextColor)),
			e.setF(gfx, tag, "fontSize", st.Font.FontSize),
			e.set(gfx, tag, "borderColor", string(st.Style.BorderColor)),
			e.set(gfx, tag, "borderStyle", string(st.Style.BorderStyle)),
			e.setF(gfx, tag, "borderWidth", st.Style.BorderWidth),
			e.set(gfx, tag, "fillColor", string(st.Style.FillColor)),
			e.set(gfx, tag, "shapeType", string(st.Style.ShapeType)),
			e.setI(gfx, tag, "zOrder", st.Style.ZOrder),
		); err != nil {
			return err
		}
	}

	if err := e.encodeXref(el, st.Xref, false); err != nil {
		return err
	}
	return e.encodeCore(el, "State", &st.Core)
}

func (e *encoder) encodeLine(root *etree.Element, tag string, line model.LineElement, xref model.Xref) error {
	lc := line.Line()
	el := root.CreateElement(tag)
	if err := multi(
		e.setID(el, tag, lc.ElementID),
		e.setGroupRef(el, tag, lc.GroupRef),
	); err != nil {
		return err
	}

	gfx := el.CreateElement("Graphics")
	if err := e.encodeLineStyle(gfx, tag+".Graphics", lc.Style); err != nil {
		return err
	}

	for _, pt := range lc.Points {
		if err := e.encodePoint(gfx, pt); err != nil {
			return err
		}
	}
	for _, a := range lc.Anchors {
		if err := e.encodeAnchor(gfx, a); err != nil {
			return err
		}
	}

	if tag == "Interaction" {
		if err := e.encodeXref(el, xref, false); err != nil {
			return err
		}
	}
	return e.encodeCore(el, tag, &lc.Core)
}

func (e *encoder) encodePoint(gfx *etree.Element, pt *model.Point) error {
	x, y, ref, relX, relY, arrow := "X", "Y", "GraphRef", "RelX", "RelY", "ArrowHead"
	if e.ver == V2021 {
		x, y, ref, relX, relY, arrow = "x", "y", "elementRef", "relX", "relY", "arrowHead"
	}

	pe := gfx.CreateElement("Point")
	if err := multi(
		e.setF(pe, "Point", x, pt.X),
		e.setF(pe, "Point", y, pt.Y),
	); err != nil {
		return err
	}
	if pt.Bound() {
		if err := e.set(pe, "Point", ref, pt.ElementRef); err != nil {
			return err
		}
		// Relative coordinates are meaningful whenever set, zero included,
		// so they bypass default elision.
		if pt.RelSet {
			pe.CreateAttr(relX, schema.FormatFloat(pt.RelX))
			pe.CreateAttr(relY, schema.FormatFloat(pt.RelY))
		}
	}

	value := string(pt.ArrowHead)
	if e.ver == V2013a {
		value = arrowHeadFor2013a(pt.ArrowHead)
	}
	return e.set(pe, "Point", arrow, value)
}

func (e *encoder) encodeAnchor(gfx *etree.Element, a *model.Anchor) error {
	pos, id, shape := "Position", "GraphId", "Shape"
	if e.ver == V2021 {
		pos, id, shape = "position", "elementId", "shape"
	}
	ae := gfx.CreateElement("Anchor")
	return multi(
		e.setF(ae, "Anchor", pos, a.Position),
		e.set(ae, "Anchor", id, a.ElementID),
		e.set(ae, "Anchor", shape, string(a.Shape)),
	)
}

func (e *encoder) encodeLabel(root *etree.Element, lb *model.Label) error {
	el := root.CreateElement("Label")
	labelAttr, hrefAttr := "TextLabel", "Href"
	if e.ver == V2021 {
		labelAttr, hrefAttr = "textLabel", "href"
	}
	if err := multi(
		e.setID(el, "Label", lb.ElementID),
		e.setGroupRef(el, "Label", lb.GroupRef),
		e.set(el, "Label", labelAttr, lb.TextLabel),
		e.set(el, "Label", hrefAttr, lb.Href),
	); err != nil {
		return err
	}

	gfx := el.CreateElement("Graphics")
	if err := multi(
		e.encodeRect(gfx, "Label.Graphics", lb.Rect),
		e.encodeFont(gfx, "Label.Graphics", lb.Font),
		e.encodeShapeStyle(gfx, "Label.Graphics", lb.Style),
	); err != nil {
		return err
	}
	return e.encodeCore(el, "Label", &lb.Core)
}

func (e *encoder) encodeShape(root *etree.Element, sh *model.Shape) error {
	el := root.CreateElement("Shape")
	labelAttr := "TextLabel"
	if e.ver == V2021 {
		labelAttr = "textLabel"
	}
	if err := multi(
		e.setID(el, "Shape", sh.ElementID),
		e.setGroupRef(el, "Shape", sh.GroupRef),
		e.set(el, "Shape", labelAttr, sh.TextLabel),
	); err != nil {
		return err
	}

	gfx := el.CreateElement("Graphics")
	if err := multi(
		e.encodeRect(gfx, "Shape.Graphics", sh.Rect),
		e.encodeFont(gfx, "Shape.Graphics", sh.Font),
		e.encodeShapeStyle(gfx, "Shape.Graphics", sh.Style),
	); err != nil {
		return err
	}
	return e.encodeCore(el, "Shape", &sh.Core)
}

func (e *encoder) encodeGroup(root *etree.Element, g *model.Group) error {
	el := root.CreateElement("Group")

	if e.ver == V2013a {
		if err := multi(
			e.set(el, "Group", "GroupId", g.ElementID),
			e.set(el, "Group", "GroupRef", g.GroupRef),
			e.set(el, "Group", "Style", groupStyleFor2013a(g.Type)),
			e.set(el, "Group", "TextLabel", g.TextLabel),
		); err != nil {
			return err
		}
		return e.encodeCore(el, "Group", &g.Core)
	}

	if err := multi(
		e.set(el, "Group", "elementId", g.ElementID),
		e.set(el, "Group", "groupRef", g.GroupRef),
		e.set(el, "Group", "type", string(g.Type)),
		e.set(el, "Group", "textLabel", g.TextLabel),
	); err != nil {
		return err
	}
	if g.Rect.Width > 0 || g.Rect.Height > 0 {
		gfx := el.CreateElement("Graphics")
		if err := multi(
			e.encodeRect(gfx, "Group.Graphics", g.Rect),
			e.encodeFont(gfx, "Group.Graphics", g.Font),
			e.encodeShapeStyle(gfx, "Group.Graphics", g.Style),
		); err != nil {
			return err
		}
	}
	if err := e.encodeXref(el, g.Xref, false); err != nil {
		return err
	}
	return e.encodeCore(el, "Group", &g.Core)
}

// =============================================================================
// Trailing blocks
// =============================================================================

func (e *encoder) encodeInfoBoxLegend(root *etree.Element) error {
	// 2013a documents always carry an InfoBox, defaulting to the origin.
	ib := model.InfoBox{}
	if e.p.InfoBox != nil {
		ib = *e.p.InfoBox
	}
	ie := root.CreateElement("InfoBox")
	if err := multi(
		e.setF(ie, "InfoBox", "CenterX", ib.CenterX),
		e.setF(ie, "InfoBox", "CenterY", ib.CenterY),
	); err != nil {
		return err
	}

	if e.p.Legend != nil {
		le := root.CreateElement("Legend")
		if err := multi(
			e.setF(le, "Legend", "CenterX", e.p.Legend.CenterX),
			e.setF(le, "Legend", "CenterY", e.p.Legend.CenterY),
		); err != nil {
			return err
		}
	}
	return nil
}

// encodeBiopax writes the 2013a bibliography block from the citation pool,
// sorted by identifier for stable output.
func (e *encoder) encodeBiopax(root *etree.Element) error {
	cites := e.p.Citations()
	if len(cites) == 0 {
		return nil
	}
	sorted := make([]*model.Citation, len(cites))
	copy(sorted, cites)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ElementID < sorted[j].ElementID })

	bp := root.CreateElement("Biopax")
	for _, c := range sorted {
		px := bp.CreateElement("PublicationXref")
		if err := multi(
			e.set(px, "PublicationXref", "ID", c.ElementID),
			e.set(px, "PublicationXref", "Database", c.Xref.DataSource),
			e.set(px, "PublicationXref", "Identifier", c.Xref.Identifier),
		); err != nil {
			return err
		}
	}
	return nil
}

// encodePools writes the 2021 annotation, citation, and evidence pools,
// each sorted by identifier.
func (e *encoder) encodePools(root *etree.Element) error {
	annotations := make([]*model.Annotation, len(e.p.Annotations()))
	copy(annotations, e.p.Annotations())
	sort.Slice(annotations, func(i, j int) bool { return annotations[i].ElementID < annotations[j].ElementID })
	for _, a := range annotations {
		ae := root.CreateElement("Annotation")
		if err := multi(
			e.set(ae, "Annotation", "elementId", a.ElementID),
			e.set(ae, "Annotation", "value", a.Value),
			e.set(ae, "Annotation", "type", string(a.Type)),
			e.set(ae, "Annotation", "url", a.URL),
			e.encodeXref(ae, a.Xref, false),
		); err != nil {
			return err
		}
	}

	citations := make([]*model.Citation, len(e.p.Citations()))
	copy(citations, e.p.Citations())
	sort.Slice(citations, func(i, j int) bool { return citations[i].ElementID < citations[j].ElementID })
	for _, c := range citations {
		ce := root.CreateElement("Citation")
		if err := multi(
			e.set(ce, "Citation", "elementId", c.ElementID),
			e.set(ce, "Citation", "url", c.URL),
			e.encodeXref(ce, c.Xref, false),
		); err != nil {
			return err
		}
	}

	evidences := make([]*model.Evidence, len(e.p.Evidences()))
	copy(evidences, e.p.Evidences())
	sort.Slice(evidences, func(i, j int) bool { return evidences[i].ElementID < evidences[j].ElementID })
	for _, ev := range evidences {
		ee := root.CreateElement("Evidence")
		if err := multi(
			e.set(ee, "Evidence", "elementId", ev.ElementID),
			e.set(ee, "Evidence", "value", ev.Value),
			e.set(ee, "Evidence", "url", ev.URL),
			e.encodeXref(ee, ev.Xref, false),
		); err != nil {
			return err
		}
	}
	return nil
}
