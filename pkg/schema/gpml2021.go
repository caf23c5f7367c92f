package schema

// GPML2021 is the attribute table for the newer structured schema
// generation. Identifier attributes are named elementId/elementRef,
// membership is groupRef, styling attributes are split into text, border,
// and fill groups, and the annotation/citation/evidence pools are first
// class.
func GPML2021() *Table { return gpml2021 }

var gpml2021 = newTable("GPML2021", build2021())

// shapedGraphics2021 is the Graphics attribute set shared by DataNode,
// Label, Shape, and Group. The vertical-align default moved to Middle in
// this generation.
func shapedGraphics2021() map[string]Spec {
	return map[string]Spec{
		"centerX":        req(KindFloat),
		"centerY":        req(KindFloat),
		"width":          req(KindFloat),
		"height":         req(KindFloat),
		"textColor":      opt(KindColor, "000000"),
		"fontName":       opt(KindString, "Arial"),
		"fontWeight":     opt(KindString, "Normal"),
		"fontStyle":      opt(KindString, "Normal"),
		"fontDecoration": opt(KindString, "Normal"),
		"fontStrikethru": opt(KindString, "Normal"),
		"fontSize":       opt(KindFloat, "12"),
		"hAlign":         opt(KindString, "Center"),
		"vAlign":         opt(KindString, "Middle"),
		"borderColor":    opt(KindColor, "000000"),
		"borderStyle":    opt(KindString, "Solid"),
		"borderWidth":    opt(KindFloat, "1.0"),
		"fillColor":      opt(KindColor, "ffffff"),
		"shapeType":      opt(KindString, "Rectangle"),
		"zOrder":         opt(KindInt, "0"),
		"rotation":       opt(KindFloat, "0.0"),
	}
}

func lineGraphics2021() map[string]Spec {
	return map[string]Spec{
		"lineColor":     opt(KindColor, "000000"),
		"lineStyle":     opt(KindString, "Solid"),
		"lineWidth":     opt(KindFloat, "1.0"),
		"connectorType": opt(KindString, "Straight"),
		"zOrder":        opt(KindInt, "0"),
	}
}

func build2021() map[key]Spec {
	specs := make(map[key]Spec)
	add := func(tag string, attrs map[string]Spec) {
		for name, s := range attrs {
			specs[key{tag, name}] = s
		}
	}

	add("Pathway", map[string]Spec{
		"title":    req(KindString),
		"organism": opt(KindString, ""),
		"source":   opt(KindString, ""),
		"version":  opt(KindString, ""),
		"license":  opt(KindString, ""),
	})
	add("Pathway.Graphics", map[string]Spec{
		"boardWidth":  req(KindFloat),
		"boardHeight": req(KindFloat),
	})
	add("Author", map[string]Spec{
		"name":     req(KindString),
		"username": opt(KindString, ""),
		"order":    opt(KindInt, "0"),
	})
	add("Comment", map[string]Spec{
		"source": opt(KindString, ""),
	})
	add("Property", map[string]Spec{
		"key":   req(KindString),
		"value": req(KindString),
	})
	add("Xref", map[string]Spec{
		"identifier": opt(KindString, ""),
		"dataSource": opt(KindString, ""),
	})

	add("DataNode", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
		"textLabel": req(KindString),
		"type":      opt(KindString, "Undefined"),
		"aliasRef":  opt(KindString, ""),
	})
	add("DataNode.Graphics", shapedGraphics2021())

	add("Label", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
		"textLabel": req(KindString),
		"href":      opt(KindString, ""),
	})
	add("Label.Graphics", shapedGraphics2021())

	add("Shape", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
		"textLabel": opt(KindString, ""),
	})
	add("Shape.Graphics", shapedGraphics2021())

	add("Group", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
		"textLabel": opt(KindString, ""),
		"type":      opt(KindString, "Group"),
	})
	add("Group.Graphics", shapedGraphics2021())

	add("State", map[string]Spec{
		"elementId":  opt(KindString, ""),
		"elementRef": req(KindString),
		"textLabel":  opt(KindString, ""),
		"type":       opt(KindString, "Undefined"),
	})
	add("State.Graphics", map[string]Spec{
		"relX":        req(KindFloat),
		"relY":        req(KindFloat),
		"width":       req(KindFloat),
		"height":      req(KindFloat),
		"textColor":   opt(KindColor, "000000"),
		"fontSize":    opt(KindFloat, "12"),
		"borderColor": opt(KindColor, "000000"),
		"borderStyle": opt(KindString, "Solid"),
		"borderWidth": opt(KindFloat, "1.0"),
		"fillColor":   opt(KindColor, "ffffff"),
		"shapeType":   opt(KindString, "Oval"),
		"zOrder":      opt(KindInt, "0"),
	})

	add("Interaction", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
	})
	add("Interaction.Graphics", lineGraphics2021())

	add("GraphicalLine", map[string]Spec{
		"elementId": opt(KindString, ""),
		"groupRef":  opt(KindString, ""),
	})
	add("GraphicalLine.Graphics", lineGraphics2021())

	add("Point", map[string]Spec{
		"x":          req(KindFloat),
		"y":          req(KindFloat),
		"elementRef": opt(KindString, ""),
		"relX":       opt(KindFloat, "0.0"),
		"relY":       opt(KindFloat, "0.0"),
		"arrowHead":  opt(KindString, "Undirected"),
	})
	add("Anchor", map[string]Spec{
		"elementId": opt(KindString, ""),
		"position":  req(KindFloat),
		"shape":     opt(KindString, "Square"),
	})

	add("Annotation", map[string]Spec{
		"elementId": req(KindString),
		"value":     req(KindString),
		"type":      opt(KindString, "Undefined"),
		"url":       opt(KindString, ""),
	})
	add("Citation", map[string]Spec{
		"elementId": req(KindString),
		"url":       opt(KindString, ""),
	})
	add("Evidence", map[string]Spec{
		"elementId": req(KindString),
		"value":     opt(KindString, ""),
		"url":       opt(KindString, ""),
	})
	add("AnnotationRef", map[string]Spec{
		"elementRef": req(KindString),
	})
	add("CitationRef", map[string]Spec{
		"elementRef": req(KindString),
	})
	add("EvidenceRef", map[string]Spec{
		"elementRef": req(KindString),
	})

	return specs
}
