// Package convert translates pathway graphs between schema generations.
//
// # Overview
//
// The codec reads and writes each generation faithfully but does not move
// constructs between them. This package closes the gap: [Upgrade] rewrites
// legacy 2013a constructs (deprecated shapes, the double-line marker
// property) into their modern form, and [Downgrade] prepares a graph for a
// 2013a encode, flagging everything the legacy schema cannot express.
//
// Both directions mutate the pathway in place and return a [Report] listing
// every change made, with lossy changes marked. A downgrade is lossy when
// the graph uses 2021-only vocabulary: annotation and evidence pools,
// analog groups, pathway- and group-level xrefs, or split text and border
// colors.
package convert

import (
	"strconv"

	"github.com/pathmark/pathmark/pkg/gpml"
	"github.com/pathmark/pathmark/pkg/model"
)

// Dynamic property keys the legacy schema used for constructs it could not
// express directly.
const (
	DoubleLineKey        = "org.pathvisio.DoubleLineProperty"
	CellularComponentKey = "org.pathvisio.CellularComponentProperty"
)

// Change records one rewrite applied during conversion.
type Change struct {
	ElementID string
	Field     string
	From      string
	To        string
	// Lossy marks changes that drop information the target generation
	// cannot express.
	Lossy  bool
	Detail string
}

// Report collects the changes applied by one conversion pass.
type Report struct {
	From    gpml.Version
	To      gpml.Version
	Changes []Change
}

func (r *Report) add(c Change) { r.Changes = append(r.Changes, c) }

// Lossy returns only the changes that dropped information.
func (r *Report) Lossy() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Lossy {
			out = append(out, c)
		}
	}
	return out
}

// Clean reports whether the conversion lost nothing.
func (r *Report) Clean() bool { return len(r.Lossy()) == 0 }

// shapeUpgrade is the modern rendering of a deprecated shape name.
type shapeUpgrade struct {
	shape       model.ShapeType
	borderStyle model.LineStyleType
	borderWidth float64
	fill        model.Color
}

// deprecatedShapes maps legacy shape names to their modern form. The legacy
// membrane shapes were drawn as unfilled rounded outlines with a doubled
// border.
var deprecatedShapes = map[model.ShapeType]shapeUpgrade{
	"Organelle": {model.ShapeRoundedRectangle, model.LineStyleDouble, 3.0, model.ColorTransparent},
	"Cell":      {model.ShapeRoundedRectangle, model.LineStyleDouble, 3.0, model.ColorTransparent},
	"Nucleus":   {model.ShapeOval, model.LineStyleDouble, 3.0, model.ColorTransparent},
	"Vesicle":   {model.ShapeOval, model.LineStyleDouble, 3.0, model.ColorTransparent},
}

// Marker properties stashing the styling a deprecated-shape upgrade
// overwrites, consumed when a downgrade restores the legacy name.
const (
	borderStyleStashKey = "org.pathmark.BorderStyleProperty"
	borderWidthStashKey = "org.pathmark.BorderWidthProperty"
	fillColorStashKey   = "org.pathmark.FillColorProperty"
)

// =============================================================================
// Upgrade (2013a constructs to modern form)
// =============================================================================

// Upgrade rewrites legacy constructs into their modern form. It is safe to
// run on any graph; modern constructs pass through untouched. Upgrades are
// never lossy.
func Upgrade(p *model.Pathway) *Report {
	r := &Report{From: gpml.V2013a, To: gpml.V2021}

	for _, el := range p.Elements() {
		core := el.ElementCore()
		switch t := el.(type) {
		case *model.DataNode:
			upgradeShapeStyle(r, core, &t.Style)
		case *model.Label:
			upgradeShapeStyle(r, core, &t.Style)
		case *model.Shape:
			upgradeShapeStyle(r, core, &t.Style)
		case *model.Group:
			upgradeShapeStyle(r, core, &t.Style)
		case *model.State:
			upgradeDoubleLine(r, core, &t.Style.BorderStyle)
		case model.LineElement:
			upgradeLineDouble(r, t)
		}
	}
	return r
}

func upgradeShapeStyle(r *Report, core *model.Core, style *model.ShapeStyleProps) {
	if up, ok := deprecatedShapes[style.ShapeType]; ok {
		r.add(Change{
			ElementID: core.ElementID,
			Field:     "ShapeType",
			From:      string(style.ShapeType),
			To:        string(up.shape),
			Detail:    "deprecated shape rewritten to modern styling",
		})
		// Preserve the legacy name and the styling it displaces so a later
		// downgrade can restore both.
		core.SetDynamic(CellularComponentKey, string(style.ShapeType))
		core.SetDynamic(borderStyleStashKey, string(style.BorderStyle))
		core.SetDynamic(borderWidthStashKey, strconv.FormatFloat(style.BorderWidth, 'f', -1, 64))
		core.SetDynamic(fillColorStashKey, string(style.FillColor))
		style.ShapeType = up.shape
		style.BorderStyle = up.borderStyle
		style.BorderWidth = up.borderWidth
		style.FillColor = up.fill
	}
	upgradeDoubleLine(r, core, &style.BorderStyle)
}

func upgradeDoubleLine(r *Report, core *model.Core, style *model.LineStyleType) {
	if v, ok := core.GetDynamic(DoubleLineKey); ok && v == "Double" {
		r.add(Change{
			ElementID: core.ElementID,
			Field:     "BorderStyle",
			From:      string(*style),
			To:        string(model.LineStyleDouble),
			Detail:    "double-line marker property folded into style",
		})
		*style = model.LineStyleDouble
		delete(core.Dynamic, DoubleLineKey)
	}
}

func upgradeLineDouble(r *Report, line model.LineElement) {
	lc := line.Line()
	upgradeDoubleLine(r, &lc.Core, &lc.Style.LineStyle)
}

// =============================================================================
// Downgrade (prepare for a 2013a encode)
// =============================================================================

// Downgrade rewrites a graph so a 2013a encode loses as little as possible
// and flags what it loses anyway. The double line style moves back into its
// marker property; analog groups collapse to plain groups; pools and xrefs
// the legacy schema has no home for are reported lossy and left in place
// for the encoder to drop.
func Downgrade(p *model.Pathway) *Report {
	r := &Report{From: gpml.V2021, To: gpml.V2013a}

	if !p.Xref.IsZero() {
		r.add(Change{
			Field:  "Xref",
			From:   p.Xref.DataSource + ":" + p.Xref.Identifier,
			Lossy:  true,
			Detail: "pathway-level xref has no 2013a form",
		})
	}

	for _, el := range p.Elements() {
		core := el.ElementCore()
		switch t := el.(type) {
		case *model.DataNode:
			downgradeShapeStyle(r, core, &t.Style)
			downgradeSplitColor(r, core, t.Font.TextColor, t.Style.BorderColor)
			if t.AliasRef != "" {
				r.add(Change{
					ElementID: core.ElementID,
					Field:     "AliasRef",
					From:      t.AliasRef,
					Lossy:     true,
					Detail:    "alias references have no 2013a form",
				})
			}
		case *model.Label:
			downgradeShapeStyle(r, core, &t.Style)
			downgradeSplitColor(r, core, t.Font.TextColor, t.Style.BorderColor)
		case *model.Shape:
			downgradeShapeStyle(r, core, &t.Style)
			downgradeSplitColor(r, core, t.Font.TextColor, t.Style.BorderColor)
		case *model.Group:
			if t.Type == model.GroupAnalog {
				r.add(Change{
					ElementID: core.ElementID,
					Field:     "Type",
					From:      string(model.GroupAnalog),
					To:        string(model.GroupGroup),
					Lossy:     true,
					Detail:    "analog groups collapse to plain groups in 2013a",
				})
				t.Type = model.GroupGroup
			}
			if !t.Xref.IsZero() {
				r.add(Change{
					ElementID: core.ElementID,
					Field:     "Xref",
					From:      t.Xref.DataSource + ":" + t.Xref.Identifier,
					Lossy:     true,
					Detail:    "group-level xref has no 2013a form",
				})
			}
		case *model.State:
			downgradeDoubleLine(r, core, &t.Style.BorderStyle)
		case model.LineElement:
			lc := t.Line()
			downgradeDoubleLine(r, &lc.Core, &lc.Style.LineStyle)
		}

		downgradeRefs(r, core)
	}

	if n := len(p.Annotations()); n > 0 {
		r.add(Change{
			Field:  "Annotations",
			Lossy:  true,
			Detail: "annotation pool has no 2013a form",
		})
	}
	if n := len(p.Evidences()); n > 0 {
		r.add(Change{
			Field:  "Evidences",
			Lossy:  true,
			Detail: "evidence pool has no 2013a form",
		})
	}
	return r
}

func downgradeShapeStyle(r *Report, core *model.Core, style *model.ShapeStyleProps) {
	if legacy, ok := core.GetDynamic(CellularComponentKey); ok {
		r.add(Change{
			ElementID: core.ElementID,
			Field:     "ShapeType",
			From:      string(style.ShapeType),
			To:        legacy,
			Detail:    "legacy shape name restored from marker property",
		})
		style.ShapeType = model.ShapeType(legacy)
		delete(core.Dynamic, CellularComponentKey)
		if v, ok := core.GetDynamic(borderStyleStashKey); ok {
			style.BorderStyle = model.LineStyleType(v)
			delete(core.Dynamic, borderStyleStashKey)
		}
		if v, ok := core.GetDynamic(borderWidthStashKey); ok {
			if w, err := strconv.ParseFloat(v, 64); err == nil {
				style.BorderWidth = w
			}
			delete(core.Dynamic, borderWidthStashKey)
		}
		if v, ok := core.GetDynamic(fillColorStashKey); ok {
			style.FillColor = model.ColorOf(v)
			delete(core.Dynamic, fillColorStashKey)
		}
	}
	downgradeDoubleLine(r, core, &style.BorderStyle)
}

func downgradeDoubleLine(r *Report, core *model.Core, style *model.LineStyleType) {
	if *style != model.LineStyleDouble {
		return
	}
	r.add(Change{
		ElementID: core.ElementID,
		Field:     "BorderStyle",
		From:      string(model.LineStyleDouble),
		To:        string(model.LineStyleSolid),
		Detail:    "double style moved to its 2013a marker property",
	})
	*style = model.LineStyleSolid
	core.SetDynamic(DoubleLineKey, "Double")
}

func downgradeSplitColor(r *Report, core *model.Core, text, border model.Color) {
	if text.Equal(border) {
		return
	}
	r.add(Change{
		ElementID: core.ElementID,
		Field:     "TextColor",
		From:      string(text),
		To:        string(border),
		Lossy:     true,
		Detail:    "2013a has one color for text and border; border color wins",
	})
}

// downgradeRefs flags annotation and evidence references, which 2013a
// cannot carry. Citation references survive as BiopaxRef children.
func downgradeRefs(r *Report, core *model.Core) {
	if len(core.AnnotationRefs) > 0 {
		r.add(Change{
			ElementID: core.ElementID,
			Field:     "AnnotationRefs",
			Lossy:     true,
			Detail:    "annotation references have no 2013a form",
		})
	}
	if len(core.EvidenceRefs) > 0 {
		r.add(Change{
			ElementID: core.ElementID,
			Field:     "EvidenceRefs",
			Lossy:     true,
			Detail:    "evidence references have no 2013a form",
		})
	}
}
