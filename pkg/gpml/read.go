package gpml

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/model"
	"github.com/pathmark/pathmark/pkg/observability"
	"github.com/pathmark/pathmark/pkg/schema"
)

// Read parses a pathway document from r, sniffing the schema version from
// the root namespace. It returns the populated pathway graph after the
// identifier backfill, reference repair, and coordinate reconciliation
// post-passes have run.
//
// Decode is all-or-nothing per document: the first malformed attribute
// aborts with a ConversionError naming the offending tag and attribute.
func Read(ctx context.Context, r io.Reader) (*model.Pathway, Version, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeConversion, err, "parse document")
	}
	ver, err := DetectVersion(doc)
	if err != nil {
		return nil, "", err
	}
	p, err := Decode(ctx, doc, ver)
	return p, ver, err
}

// ReadFile reads a pathway document from disk. The file is closed on all
// exit paths.
func ReadFile(ctx context.Context, path string) (*model.Pathway, Version, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(ctx, f)
}

// Decode populates a pathway graph from an already-parsed document tree
// under the given schema version. Steps: decode root metadata, dispatch
// children by tag, backfill missing line identifiers, repair dangling
// references, reconcile bound coordinates.
func Decode(ctx context.Context, doc *etree.Document, ver Version) (*model.Pathway, error) {
	if !ver.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "unsupported version: %q", string(ver))
	}

	start := time.Now()
	observability.Codec().OnDecodeStart(ctx, string(ver))

	p, err := decodeDocument(doc, ver)

	count := 0
	if p != nil {
		count = len(p.Elements())
	}
	observability.Codec().OnDecodeComplete(ctx, string(ver), count, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if cleared := p.FixReferences(); cleared > 0 {
		observability.Codec().OnReferenceRepair(ctx, cleared)
	}
	Reconcile(p)
	return p, nil
}

type decoder struct {
	ver Version
	tab *schema.Table
	p   *model.Pathway

	// 2013a groups carry two identifiers: GroupId (targeted by member
	// GroupRef) and GraphId (targeted by line points). The model has one.
	// groupAlias maps a group's GraphId to its GroupId so point references
	// can be rewritten after decode.
	groupAlias map[string]string
}

func decodeDocument(doc *etree.Document, ver Version) (*model.Pathway, error) {
	root := doc.Root()
	if root == nil || root.Tag != "Pathway" {
		return nil, errors.New(errors.ErrCodeConversion, "document has no Pathway root element")
	}

	d := &decoder{
		ver:        ver,
		tab:        ver.Table(),
		p:          model.NewPathway(),
		groupAlias: make(map[string]string),
	}

	if err := d.decodePathway(root); err != nil {
		return nil, err
	}

	for _, child := range root.ChildElements() {
		var err error
		switch child.Tag {
		case "DataNode":
			err = d.decodeDataNode(child)
		case "State":
			err = d.decodeState(child)
		case "Interaction":
			err = d.decodeLine(child, &model.Interaction{})
		case "GraphicalLine":
			err = d.decodeLine(child, &model.GraphicalLine{})
		case "Label":
			err = d.decodeLabel(child)
		case "Shape":
			err = d.decodeShape(child)
		case "Group":
			err = d.decodeGroup(child)
		case "InfoBox":
			err = d.decodeInfoBox(child)
		case "Legend":
			err = d.decodeLegend(child)
		case "Biopax":
			err = d.decodeBiopax(child)
		case "Annotation":
			err = d.decodeAnnotation(child)
		case "Citation":
			err = d.decodeCitation(child)
		case "Evidence":
			err = d.decodeEvidence(child)
		default:
			// Root metadata children (Comment, Graphics, Xref, refs) were
			// handled by decodePathway; anything else is tolerated here and
			// reported by the validator in strict mode.
		}
		if err != nil {
			return nil, err
		}
	}

	d.rewriteGroupAliases()

	if err := backfillLineIDs(d.p); err != nil {
		return nil, err
	}
	return d.p, nil
}

// rewriteGroupAliases redirects point and state references that target a
// 2013a group's GraphId to the group's canonical identifier.
func (d *decoder) rewriteGroupAliases() {
	if len(d.groupAlias) == 0 {
		return
	}
	for _, line := range d.p.Lines() {
		for _, pt := range line.Line().Points {
			if canonical, ok := d.groupAlias[pt.ElementRef]; ok {
				pt.ElementRef = canonical
			}
		}
	}
	for _, st := range d.p.States() {
		if canonical, ok := d.groupAlias[st.ElementRef]; ok {
			st.ElementRef = canonical
		}
	}
}

// =============================================================================
// Attribute helpers (schema-table driven)
// =============================================================================

// str resolves an attribute through the schema table: present values are
// returned verbatim, absent optional values fall back to the table default,
// and absent required values are a ConversionError.
func (d *decoder) str(el *etree.Element, tag, name string) (string, error) {
	spec, err := d.tab.Lookup(tag, name)
	if err != nil {
		return "", err
	}
	a := el.SelectAttr(name)
	if a == nil {
		if spec.Required {
			return "", errors.Conversion(string(d.ver), tag, name, fmt.Errorf("missing required attribute"))
		}
		return spec.Default, nil
	}
	return a.Value, nil
}

func (d *decoder) f64(el *etree.Element, tag, name string) (float64, error) {
	raw, err := d.str(el, tag, name)
	if err != nil {
		return 0, err
	}
	v, err := schema.ParseFloat(raw)
	if err != nil {
		return 0, errors.Conversion(string(d.ver), tag, name, err)
	}
	return v, nil
}

func (d *decoder) i(el *etree.Element, tag, name string) (int, error) {
	raw, err := d.str(el, tag, name)
	if err != nil {
		return 0, err
	}
	v, err := schema.ParseInt(raw)
	if err != nil {
		return 0, errors.Conversion(string(d.ver), tag, name, err)
	}
	return v, nil
}

func (d *decoder) color(el *etree.Element, tag, name string) (model.Color, error) {
	raw, err := d.str(el, tag, name)
	if err != nil {
		return "", err
	}
	if err := errors.ValidateColor(raw); err != nil {
		return "", errors.Conversion(string(d.ver), tag, name, err)
	}
	return model.ColorOf(raw), nil
}

// graphics returns the mandatory Graphics sub-element of el.
func (d *decoder) graphics(el *etree.Element) (*etree.Element, error) {
	gfx := el.SelectElement("Graphics")
	if gfx == nil {
		return nil, errors.Conversion(string(d.ver), el.Tag+".Graphics", "", fmt.Errorf("missing Graphics element"))
	}
	return gfx, nil
}

// =============================================================================
// Root metadata
// =============================================================================

func (d *decoder) decodePathway(root *etree.Element) error {
	p := d.p
	var err error

	if d.ver == V2013a {
		if p.Title, err = d.str(root, "Pathway", "Name"); err != nil {
			return err
		}
		if p.Organism, err = d.str(root, "Pathway", "Organism"); err != nil {
			return err
		}
		if p.Source, err = d.str(root, "Pathway", "Data-Source"); err != nil {
			return err
		}
		if p.Version, err = d.str(root, "Pathway", "Version"); err != nil {
			return err
		}
		if p.License, err = d.str(root, "Pathway", "License"); err != nil {
			return err
		}
		author, err := d.str(root, "Pathway", "Author")
		if err != nil {
			return err
		}
		if author != "" {
			p.Authors = append(p.Authors, model.Author{Name: author})
		}
		// Legacy metadata attributes survive as dynamic properties.
		for _, legacy := range []string{"Maintainer", "Email", "Last-Modified"} {
			v, err := d.str(root, "Pathway", legacy)
			if err != nil {
				return err
			}
			if v != "" {
				p.SetDynamic(legacy, v)
			}
		}
	} else {
		if p.Title, err = d.str(root, "Pathway", "title"); err != nil {
			return err
		}
		if p.Organism, err = d.str(root, "Pathway", "organism"); err != nil {
			return err
		}
		if p.Source, err = d.str(root, "Pathway", "source"); err != nil {
			return err
		}
		if p.Version, err = d.str(root, "Pathway", "version"); err != nil {
			return err
		}
		if p.License, err = d.str(root, "Pathway", "license"); err != nil {
			return err
		}
		for _, a := range root.SelectElements("Author") {
			name, err := d.str(a, "Author", "name")
			if err != nil {
				return err
			}
			username, err := d.str(a, "Author", "username")
			if err != nil {
				return err
			}
			order, err := d.i(a, "Author", "order")
			if err != nil {
				return err
			}
			p.Authors = append(p.Authors, model.Author{Name: name, Username: username, Order: order})
		}
		if x := root.SelectElement("Xref"); x != nil {
			xref, err := d.decodeXref(x)
			if err != nil {
				return err
			}
			p.Xref = xref
		}
	}

	gfx, err := d.graphics(root)
	if err != nil {
		return err
	}
	bw, bh := "BoardWidth", "BoardHeight"
	if d.ver == V2021 {
		bw, bh = "boardWidth", "boardHeight"
	}
	if p.BoardWidth, err = d.f64(gfx, "Pathway.Graphics", bw); err != nil {
		return err
	}
	if p.BoardHeight, err = d.f64(gfx, "Pathway.Graphics", bh); err != nil {
		return err
	}

	return d.decodeCore(root, "Pathway", &p.Core)
}

// =============================================================================
// Shared children: comments, dynamic properties, refs, xref
// =============================================================================

// decodeCore decodes the repeatable children every element shares:
// comments, dynamic properties, and annotation/citation/evidence refs.
func (d *decoder) decodeCore(el *etree.Element, tag string, core *model.Core) error {
	for _, c := range el.SelectElements("Comment") {
		srcAttr := "Source"
		if d.ver == V2021 {
			srcAttr = "source"
		}
		src, err := d.str(c, "Comment", srcAttr)
		if err != nil {
			return err
		}
		core.Comments = append(core.Comments, model.Comment{Text: c.Text(), Source: src})
	}

	if d.ver == V2013a {
		for _, a := range el.SelectElements("Attribute") {
			k, err := d.str(a, "Attribute", "Key")
			if err != nil {
				return err
			}
			v, err := d.str(a, "Attribute", "Value")
			if err != nil {
				return err
			}
			core.SetDynamic(k, v)
		}
		for _, br := range el.SelectElements("BiopaxRef") {
			if id := br.Text(); id != "" {
				core.CitationRefs = append(core.CitationRefs, model.CitationRef{CitationID: id})
			}
		}
		return nil
	}

	for _, a := range el.SelectElements("Property") {
		k, err := d.str(a, "Property", "key")
		if err != nil {
			return err
		}
		v, err := d.str(a, "Property", "value")
		if err != nil {
			return err
		}
		core.SetDynamic(k, v)
	}
	var err error
	if core.AnnotationRefs, err = d.decodeAnnotationRefs(el); err != nil {
		return err
	}
	if core.CitationRefs, err = d.decodeCitationRefs(el); err != nil {
		return err
	}
	for _, er := range el.SelectElements("EvidenceRef") {
		ref, err := d.str(er, "EvidenceRef", "elementRef")
		if err != nil {
			return err
		}
		core.EvidenceRefs = append(core.EvidenceRefs, model.EvidenceRef{EvidenceID: ref})
	}
	return nil
}

func (d *decoder) decodeAnnotationRefs(el *etree.Element) ([]model.AnnotationRef, error) {
	var refs []model.AnnotationRef
	for _, ar := range el.SelectElements("AnnotationRef") {
		ref, err := d.str(ar, "AnnotationRef", "elementRef")
		if err != nil {
			return nil, err
		}
		nested, err := d.decodeCitationRefs(ar)
		if err != nil {
			return nil, err
		}
		annRef := model.AnnotationRef{AnnotationID: ref, CitationRefs: nested}
		for _, er := range ar.SelectElements("EvidenceRef") {
			eref, err := d.str(er, "EvidenceRef", "elementRef")
			if err != nil {
				return nil, err
			}
			annRef.EvidenceRefs = append(annRef.EvidenceRefs, model.EvidenceRef{EvidenceID: eref})
		}
		refs = append(refs, annRef)
	}
	return refs, nil
}

func (d *decoder) decodeCitationRefs(el *etree.Element) ([]model.CitationRef, error) {
	var refs []model.CitationRef
	for _, cr := range el.SelectElements("CitationRef") {
		ref, err := d.str(cr, "CitationRef", "elementRef")
		if err != nil {
			return nil, err
		}
		nested, err := d.decodeAnnotationRefs(cr)
		if err != nil {
			return nil, err
		}
		refs = append(refs, model.CitationRef{CitationID: ref, AnnotationRefs: nested})
	}
	return refs, nil
}

func (d *decoder) decodeXref(x *etree.Element) (model.Xref, error) {
	idAttr, dsAttr := "ID", "Database"
	if d.ver == V2021 {
		idAttr, dsAttr = "identifier", "dataSource"
	}
	id, err := d.str(x, "Xref", idAttr)
	if err != nil {
		return model.Xref{}, err
	}
	ds, err := d.str(x, "Xref", dsAttr)
	if err != nil {
		return model.Xref{}, err
	}
	return model.Xref{Identifier: id, DataSource: ds}, nil
}

func (d *decoder) optionalXref(el *etree.Element) (model.Xref, error) {
	x := el.SelectElement("Xref")
	if x == nil {
		return model.Xref{}, nil
	}
	return d.decodeXref(x)
}

// =============================================================================
// Graphics blocks
// =============================================================================

func (d *decoder) decodeRect(gfx *etree.Element, tag string, rect *model.RectProps) error {
	cx, cy, w, h := "CenterX", "CenterY", "Width", "Height"
	if d.ver == V2021 {
		cx, cy, w, h = "centerX", "centerY", "width", "height"
	}
	var err error
	if rect.CenterX, err = d.f64(gfx, tag, cx); err != nil {
		return err
	}
	if rect.CenterY, err = d.f64(gfx, tag, cy); err != nil {
		return err
	}
	if rect.Width, err = d.f64(gfx, tag, w); err != nil {
		return err
	}
	if rect.Height, err = d.f64(gfx, tag, h); err != nil {
		return err
	}
	return nil
}

func (d *decoder) decodeFont(gfx *etree.Element, tag string, font *model.FontProps) error {
	type names struct {
		color, name, weight, style, decor, strike, size, hAlign, vAlign string
	}
	n := names{"Color", "FontName", "FontWeight", "FontStyle", "FontDecoration", "FontStrikethru", "FontSize", "Align", "Valign"}
	if d.ver == V2021 {
		n = names{"textColor", "fontName", "fontWeight", "fontStyle", "fontDecoration", "fontStrikethru", "fontSize", "hAlign", "vAlign"}
	}

	var err error
	if font.TextColor, err = d.color(gfx, tag, n.color); err != nil {
		return err
	}
	if font.FontName, err = d.str(gfx, tag, n.name); err != nil {
		return err
	}
	weight, err := d.str(gfx, tag, n.weight)
	if err != nil {
		return err
	}
	font.FontWeight = fontFlag(weight, fontWeightBold)
	style, err := d.str(gfx, tag, n.style)
	if err != nil {
		return err
	}
	font.FontStyle = fontFlag(style, fontStyleItalic)
	decor, err := d.str(gfx, tag, n.decor)
	if err != nil {
		return err
	}
	font.FontDecoration = fontFlag(decor, fontDecorUnderline)
	strike, err := d.str(gfx, tag, n.strike)
	if err != nil {
		return err
	}
	font.FontStrikethru = fontFlag(strike, fontStrikethru)
	if font.FontSize, err = d.f64(gfx, tag, n.size); err != nil {
		return err
	}
	hAlign, err := d.str(gfx, tag, n.hAlign)
	if err != nil {
		return err
	}
	font.HAlign = model.HAlignType(hAlign)
	vAlign, err := d.str(gfx, tag, n.vAlign)
	if err != nil {
		return err
	}
	font.VAlign = model.VAlignType(vAlign)
	return nil
}

func (d *decoder) decodeShapeStyle(gfx *etree.Element, tag string, style *model.ShapeStyleProps) error {
	type names struct {
		borderColor, borderStyle, borderWidth, fill, shape, zOrder, rotation string
	}
	n := names{"Color", "LineStyle", "LineThickness", "FillColor", "ShapeType", "ZOrder", "Rotation"}
	if d.ver == V2021 {
		n = names{"borderColor", "borderStyle", "borderWidth", "fillColor", "shapeType", "zOrder", "rotation"}
	}

	var err error
	if style.BorderColor, err = d.color(gfx, tag, n.borderColor); err != nil {
		return err
	}
	bs, err := d.str(gfx, tag, n.borderStyle)
	if err != nil {
		return err
	}
	style.BorderStyle = model.LineStyleOf(bs)
	if style.BorderWidth, err = d.f64(gfx, tag, n.borderWidth); err != nil {
		return err
	}
	if style.FillColor, err = d.color(gfx, tag, n.fill); err != nil {
		return err
	}
	st, err := d.str(gfx, tag, n.shape)
	if err != nil {
		return err
	}
	style.ShapeType = model.ShapeTypeOf(st)
	if style.ZOrder, err = d.i(gfx, tag, n.zOrder); err != nil {
		return err
	}
	if d.tab.Knows(tag, n.rotation) {
		if style.Rotation, err = d.f64(gfx, tag, n.rotation); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeLineStyle(gfx *etree.Element, tag string, style *model.LineStyleProps) error {
	type names struct {
		color, lineStyle, width, connector, zOrder string
	}
	n := names{"Color", "LineStyle", "LineThickness", "ConnectorType", "ZOrder"}
	if d.ver == V2021 {
		n = names{"lineColor", "lineStyle", "lineWidth", "connectorType", "zOrder"}
	}

	var err error
	if style.LineColor, err = d.color(gfx, tag, n.color); err != nil {
		return err
	}
	ls, err := d.str(gfx, tag, n.lineStyle)
	if err != nil {
		return err
	}
	style.LineStyle = model.LineStyleOf(ls)
	if style.LineWidth, err = d.f64(gfx, tag, n.width); err != nil {
		return err
	}
	ct, err := d.str(gfx, tag, n.connector)
	if err != nil {
		return err
	}
	style.ConnectorType = model.ConnectorTypeOf(ct)
	if style.ZOrder, err = d.i(gfx, tag, n.zOrder); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// Element decode routines
// =============================================================================

func (d *decoder) idAttr(el *etree.Element, tag string) (string, error) {
	name := "GraphId"
	if d.ver == V2021 {
		name = "elementId"
	}
	return d.str(el, tag, name)
}

func (d *decoder) groupRefAttr(el *etree.Element, tag string) (string, error) {
	name := "GroupRef"
	if d.ver == V2021 {
		name = "groupRef"
	}
	return d.str(el, tag, name)
}

func (d *decoder) decodeDataNode(el *etree.Element) error {
	dn := &model.DataNode{}
	var err error
	if dn.ElementID, err = d.idAttr(el, "DataNode"); err != nil {
		return err
	}
	if dn.GroupRef, err = d.groupRefAttr(el, "DataNode"); err != nil {
		return err
	}

	labelAttr, typeAttr := "TextLabel", "Type"
	if d.ver == V2021 {
		labelAttr, typeAttr = "textLabel", "type"
	}
	if dn.TextLabel, err = d.str(el, "DataNode", labelAttr); err != nil {
		return err
	}
	rawType, err := d.str(el, "DataNode", typeAttr)
	if err != nil {
		return err
	}
	if d.ver == V2013a {
		dn.Type = dataNodeTypeOf2013a(rawType)
	} else {
		dn.Type = model.DataNodeTypeOf(rawType)
		if dn.AliasRef, err = d.str(el, "DataNode", "aliasRef"); err != nil {
			return err
		}
	}

	gfx, err := d.graphics(el)
	if err != nil {
		return err
	}
	if err := d.decodeRect(gfx, "DataNode.Graphics", &dn.Rect); err != nil {
		return err
	}
	if err := d.decodeFont(gfx, "DataNode.Graphics", &dn.Font); err != nil {
		return err
	}
	if err := d.decodeShapeStyle(gfx, "DataNode.Graphics", &dn.Style); err != nil {
		return err
	}
	if dn.Xref, err = d.optionalXref(el); err != nil {
		return err
	}
	if err := d.decodeCore(el, "DataNode", &dn.Core); err != nil {
		return err
	}
	return d.p.Add(dn)
}

func (d *decoder) decodeState(el *etree.Element) error {
	st := &model.State{}
	var err error
	if st.ElementID, err = d.idAttr(el, "State"); err != nil {
		return err
	}

	if d.ver == V2013a {
		if st.ElementRef, err = d.str(el, "State", "GraphRef"); err != nil {
			return err
		}
		if st.TextLabel, err = d.str(el, "State", "TextLabel"); err != nil {
			return err
		}
		raw, err := d.str(el, "State", "StateType")
		if err != nil {
			return err
		}
		st.Type = stateTypeOf2013a(raw)
	} else {
		if st.ElementRef, err = d.str(el, "State", "elementRef"); err != nil {
			return err
		}
		if st.TextLabel, err = d.str(el, "State", "textLabel"); err != nil {
			return err
		}
		raw, err := d.str(el, "State", "type")
		if err != nil {
			return err
		}
		st.Type = model.StateTypeOf(raw)
	}

	gfx, err := d.graphics(el)
	if err != nil {
		return err
	}
	relX, relY, w, h := "RelX", "RelY", "Width", "Height"
	fillAttr, colorAttr, shapeAttr := "FillColor", "Color", "ShapeType"
	styleAttr, widthAttr, zAttr, sizeAttr := "LineStyle", "LineThickness", "ZOrder", "FontSize"
	if d.ver == V2021 {
		relX, relY, w, h = "relX", "relY", "width", "height"
		fillAttr, colorAttr, shapeAttr = "fillColor", "borderColor", "shapeType"
		styleAttr, widthAttr, zAttr, sizeAttr = "borderStyle", "borderWidth", "zOrder", "fontSize"
	}
	if st.RelX, err = d.f64(gfx, "State.Graphics", relX); err != nil {
		return err
	}
	if st.RelY, err = d.f64(gfx, "State.Graphics", relY); err != nil {
		return err
	}
	if st.Width, err = d.f64(gfx, "State.Graphics", w); err != nil {
		return err
	}
	if st.Height, err = d.f64(gfx, "State.Graphics", h); err != nil {
		return err
	}
	if st.Style.FillColor, err = d.color(gfx, "State.Graphics", fillAttr); err != nil {
		return err
	}
	if st.Style.BorderColor, err = d.color(gfx, "State.Graphics", colorAttr); err != nil {
		return err
	}
	shape, err := d.str(gfx, "State.Graphics", shapeAttr)
	if err != nil {
		return err
	}
	st.Style.ShapeType = model.ShapeTypeOf(shape)
	bs, err := d.str(gfx, "State.Graphics", styleAttr)
	if err != nil {
		return err
	}
	st.Style.BorderStyle = model.LineStyleOf(bs)
	if st.Style.BorderWidth, err = d.f64(gfx, "State.Graphics", widthAttr); err != nil {
		return err
	}
	if st.Style.ZOrder, err = d.i(gfx, "State.Graphics", zAttr); err != nil {
		return err
	}
	if st.Font.FontSize, err = d.f64(gfx, "State.Graphics", sizeAttr); err != nil {
		return err
	}

	if st.Xref, err = d.optionalXref(el); err != nil {
		return err
	}
	if err := d.decodeCore(el, "State", &st.Core); err != nil {
		return err
	}
	return d.p.Add(st)
}

func (d *decoder) decodeLine(el *etree.Element, target model.LineElement) error {
	tag := el.Tag
	line := target.Line()
	var err error
	if line.ElementID, err = d.idAttr(el, tag); err != nil {
		return err
	}
	if line.GroupRef, err = d.groupRefAttr(el, tag); err != nil {
		return err
	}

	gfx, err := d.graphics(el)
	if err != nil {
		return err
	}
	if err := d.decodeLineStyle(gfx, tag+".Graphics", &line.Style); err != nil {
		return err
	}

	// Points and anchors keep document order: it is the topology along the
	// line, not presentation.
	for _, pe := range gfx.SelectElements("Point") {
		pt, err := d.decodePoint(pe)
		if err != nil {
			return err
		}
		line.AddPoint(pt)
	}
	if len(line.Points) < 2 {
		return errors.Conversion(string(d.ver), tag, "", fmt.Errorf("line has %d points, need at least 2", len(line.Points)))
	}
	for _, ae := range gfx.SelectElements("Anchor") {
		a, err := d.decodeAnchor(ae)
		if err != nil {
			return err
		}
		line.AddAnchor(a)
	}

	if in, ok := target.(*model.Interaction); ok {
		if in.Xref, err = d.optionalXref(el); err != nil {
			return err
		}
	}
	if err := d.decodeCore(el, tag, &line.Core); err != nil {
		return err
	}
	return d.p.Add(target)
}

func (d *decoder) decodePoint(pe *etree.Element) (*model.Point, error) {
	x, y, ref, relX, relY, arrow := "X", "Y", "GraphRef", "RelX", "RelY", "ArrowHead"
	if d.ver == V2021 {
		x, y, ref, relX, relY, arrow = "x", "y", "elementRef", "relX", "relY", "arrowHead"
	}

	pt := &model.Point{}
	var err error
	if pt.X, err = d.f64(pe, "Point", x); err != nil {
		return nil, err
	}
	if pt.Y, err = d.f64(pe, "Point", y); err != nil {
		return nil, err
	}
	if pt.ElementRef, err = d.str(pe, "Point", ref); err != nil {
		return nil, err
	}
	if pt.ElementRef != "" {
		relPresent := pe.SelectAttr(relX) != nil && pe.SelectAttr(relY) != nil
		if pt.RelX, err = d.f64(pe, "Point", relX); err != nil {
			return nil, err
		}
		if pt.RelY, err = d.f64(pe, "Point", relY); err != nil {
			return nil, err
		}
		pt.RelSet = relPresent
	}
	raw, err := d.str(pe, "Point", arrow)
	if err != nil {
		return nil, err
	}
	if d.ver == V2013a {
		pt.ArrowHead = arrowHeadOf2013a(raw)
	} else {
		pt.ArrowHead = model.ArrowHeadOf(raw)
	}
	return pt, nil
}

func (d *decoder) decodeAnchor(ae *etree.Element) (*model.Anchor, error) {
	pos, id, shape := "Position", "GraphId", "Shape"
	if d.ver == V2021 {
		pos, id, shape = "position", "elementId", "shape"
	}

	a := &model.Anchor{}
	var err error
	if a.Position, err = d.f64(ae, "Anchor", pos); err != nil {
		return nil, err
	}
	if a.ElementID, err = d.str(ae, "Anchor", id); err != nil {
		return nil, err
	}
	raw, err := d.str(ae, "Anchor", shape)
	if err != nil {
		return nil, err
	}
	a.Shape = model.AnchorShapeOf(raw)
	return a, nil
}

func (d *decoder) decodeLabel(el *etree.Element) error {
	lb := &model.Label{}
	var err error
	if lb.ElementID, err = d.idAttr(el, "Label"); err != nil {
		return err
	}
	if lb.GroupRef, err = d.groupRefAttr(el, "Label"); err != nil {
		return err
	}
	labelAttr, hrefAttr := "TextLabel", "Href"
	if d.ver == V2021 {
		labelAttr, hrefAttr = "textLabel", "href"
	}
	if lb.TextLabel, err = d.str(el, "Label", labelAttr); err != nil {
		return err
	}
	if lb.Href, err = d.str(el, "Label", hrefAttr); err != nil {
		return err
	}

	gfx, err := d.graphics(el)
	if err != nil {
		return err
	}
	if err := d.decodeRect(gfx, "Label.Graphics", &lb.Rect); err != nil {
		return err
	}
	if err := d.decodeFont(gfx, "Label.Graphics", &lb.Font); err != nil {
		return err
	}
	if err := d.decodeShapeStyle(gfx, "Label.Graphics", &lb.Style); err != nil {
		return err
	}
	if err := d.decodeCore(el, "Label", &lb.Core); err != nil {
		return err
	}
	return d.p.Add(lb)
}

func (d *decoder) decodeShape(el *etree.Element) error {
	sh := &model.Shape{}
	var err error
	if sh.ElementID, err = d.idAttr(el, "Shape"); err != nil {
		return err
	}
	if sh.GroupRef, err = d.groupRefAttr(el, "Shape"); err != nil {
		return err
	}
	labelAttr := "TextLabel"
	if d.ver == V2021 {
		labelAttr = "textLabel"
	}
	if sh.TextLabel, err = d.str(el, "Shape", labelAttr); err != nil {
		return err
	}

	gfx, err := d.graphics(el)
	if err != nil {
		return err
	}
	if err := d.decodeRect(gfx, "Shape.Graphics", &sh.Rect); err != nil {
		return err
	}
	if err := d.decodeFont(gfx, "Shape.Graphics", &sh.Font); err != nil {
		return err
	}
	if err := d.decodeShapeStyle(gfx, "Shape.Graphics", &sh.Style); err != nil {
		return err
	}
	if err := d.decodeCore(el, "Shape", &sh.Core); err != nil {
		return err
	}
	return d.p.Add(sh)
}

func (d *decoder) decodeGroup(el *etree.Element) error {
	g := &model.Group{}
	var err error

	if d.ver == V2013a {
		// GroupId is the canonical identifier; a distinct GraphId becomes an
		// alias rewritten onto point references after decode.
		if g.ElementID, err = d.str(el, "Group", "GroupId"); err != nil {
			return err
		}
		graphID, err := d.str(el, "Group", "GraphId")
		if err != nil {
			return err
		}
		if graphID != "" && graphID != g.ElementID {
			d.groupAlias[graphID] = g.ElementID
		}
		if g.GroupRef, err = d.str(el, "Group", "GroupRef"); err != nil {
			return err
		}
		style, err := d.str(el, "Group", "Style")
		if err != nil {
			return err
		}
		g.Type = groupTypeOf2013a(style)
		if g.TextLabel, err = d.str(el, "Group", "TextLabel"); err != nil {
			return err
		}
	} else {
		if g.ElementID, err = d.str(el, "Group", "elementId"); err != nil {
			return err
		}
		if g.GroupRef, err = d.str(el, "Group", "groupRef"); err != nil {
			return err
		}
		raw, err := d.str(el, "Group", "type")
		if err != nil {
			return err
		}
		g.Type = model.GroupTypeOf(raw)
		if g.TextLabel, err = d.str(el, "Group", "textLabel"); err != nil {
			return err
		}
		if gfx := el.SelectElement("Graphics"); gfx != nil {
			if err := d.decodeRect(gfx, "Group.Graphics", &g.Rect); err != nil {
				return err
			}
			if err := d.decodeFont(gfx, "Group.Graphics", &g.Font); err != nil {
				return err
			}
			if err := d.decodeShapeStyle(gfx, "Group.Graphics", &g.Style); err != nil {
				return err
			}
		}
		if g.Xref, err = d.optionalXref(el); err != nil {
			return err
		}
	}

	if err := d.decodeCore(el, "Group", &g.Core); err != nil {
		return err
	}
	return d.p.Add(g)
}

func (d *decoder) decodeInfoBox(el *etree.Element) error {
	cx, err := d.f64(el, "InfoBox", "CenterX")
	if err != nil {
		return err
	}
	cy, err := d.f64(el, "InfoBox", "CenterY")
	if err != nil {
		return err
	}
	d.p.InfoBox = &model.InfoBox{CenterX: cx, CenterY: cy}
	return nil
}

func (d *decoder) decodeLegend(el *etree.Element) error {
	cx, err := d.f64(el, "Legend", "CenterX")
	if err != nil {
		return err
	}
	cy, err := d.f64(el, "Legend", "CenterY")
	if err != nil {
		return err
	}
	d.p.Legend = &model.Legend{CenterX: cx, CenterY: cy}
	return nil
}

// =============================================================================
// Pooled entities
// =============================================================================

// decodeBiopax decodes the 2013a bibliography block into the citation pool.
func (d *decoder) decodeBiopax(el *etree.Element) error {
	for _, px := range el.SelectElements("PublicationXref") {
		id, err := d.str(px, "PublicationXref", "ID")
		if err != nil {
			return err
		}
		db, err := d.str(px, "PublicationXref", "Database")
		if err != nil {
			return err
		}
		ident, err := d.str(px, "PublicationXref", "Identifier")
		if err != nil {
			return err
		}
		c := &model.Citation{ElementID: id, Xref: model.Xref{Identifier: ident, DataSource: db}}
		if _, err := d.p.AddCitation(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeAnnotation(el *etree.Element) error {
	id, err := d.str(el, "Annotation", "elementId")
	if err != nil {
		return err
	}
	value, err := d.str(el, "Annotation", "value")
	if err != nil {
		return err
	}
	raw, err := d.str(el, "Annotation", "type")
	if err != nil {
		return err
	}
	url, err := d.str(el, "Annotation", "url")
	if err != nil {
		return err
	}
	xref, err := d.optionalXref(el)
	if err != nil {
		return err
	}
	a := &model.Annotation{ElementID: id, Value: value, Type: model.AnnotationTypeOf(raw), Xref: xref, URL: url}
	_, err = d.p.AddAnnotation(a)
	return err
}

func (d *decoder) decodeCitation(el *etree.Element) error {
	id, err := d.str(el, "Citation", "elementId")
	if err != nil {
		return err
	}
	url, err := d.str(el, "Citation", "url")
	if err != nil {
		return err
	}
	xref, err := d.optionalXref(el)
	if err != nil {
		return err
	}
	c := &model.Citation{ElementID: id, Xref: xref, URL: url}
	_, err = d.p.AddCitation(c)
	return err
}

func (d *decoder) decodeEvidence(el *etree.Element) error {
	id, err := d.str(el, "Evidence", "elementId")
	if err != nil {
		return err
	}
	value, err := d.str(el, "Evidence", "value")
	if err != nil {
		return err
	}
	url, err := d.str(el, "Evidence", "url")
	if err != nil {
		return err
	}
	xref, err := d.optionalXref(el)
	if err != nil {
		return err
	}
	e := &model.Evidence{ElementID: id, Value: value, Xref: xref, URL: url}
	_, err = d.p.AddEvidence(e)
	return err
}
