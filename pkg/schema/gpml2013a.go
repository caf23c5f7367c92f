package schema

// GPML2013a is the attribute table for the older flat-attribute schema
// generation. Identifier attributes are named GraphId/GraphRef and group
// membership GroupId/GroupRef; font and border styling live directly on the
// per-element Graphics sub-element.
func GPML2013a() *Table { return gpml2013a }

var gpml2013a = newTable("GPML2013a", build2013a())

// shapedGraphics2013a is the Graphics attribute set shared by DataNode,
// Label, and Shape. Note the 2013a vertical-align default is Top, not
// Middle.
func shapedGraphics2013a() map[string]Spec {
	return map[string]Spec{
		"CenterX":        req(KindFloat),
		"CenterY":        req(KindFloat),
		"Width":          req(KindFloat),
		"Height":         req(KindFloat),
		"Color":          opt(KindColor, "000000"),
		"FillColor":      opt(KindColor, "ffffff"),
		"FontName":       opt(KindString, "Arial"),
		"FontWeight":     opt(KindString, "Normal"),
		"FontStyle":      opt(KindString, "Normal"),
		"FontDecoration": opt(KindString, "Normal"),
		"FontStrikethru": opt(KindString, "Normal"),
		"FontSize":       opt(KindFloat, "12"),
		"Align":          opt(KindString, "Center"),
		"Valign":         opt(KindString, "Top"),
		"ShapeType":      opt(KindString, "Rectangle"),
		"LineStyle":      opt(KindString, "Solid"),
		"LineThickness":  opt(KindFloat, "1.0"),
		"ZOrder":         opt(KindInt, "0"),
		"Rotation":       opt(KindFloat, "0.0"),
	}
}

func lineGraphics2013a() map[string]Spec {
	return map[string]Spec{
		"Color":         opt(KindColor, "000000"),
		"ConnectorType": opt(KindString, "Straight"),
		"LineStyle":     opt(KindString, "Solid"),
		"LineThickness": opt(KindFloat, "1.0"),
		"ZOrder":        opt(KindInt, "0"),
	}
}

func build2013a() map[key]Spec {
	specs := make(map[key]Spec)
	add := func(tag string, attrs map[string]Spec) {
		for name, s := range attrs {
			specs[key{tag, name}] = s
		}
	}

	add("Pathway", map[string]Spec{
		"Name":          req(KindString),
		"Organism":      opt(KindString, ""),
		"Data-Source":   opt(KindString, ""),
		"Version":       opt(KindString, ""),
		"Author":        opt(KindString, ""),
		"Maintainer":    opt(KindString, ""),
		"Email":         opt(KindString, ""),
		"Last-Modified": opt(KindString, ""),
		"License":       opt(KindString, ""),
	})
	add("Pathway.Graphics", map[string]Spec{
		"BoardWidth":  req(KindFloat),
		"BoardHeight": req(KindFloat),
	})
	add("Comment", map[string]Spec{
		"Source": opt(KindString, ""),
	})
	add("Attribute", map[string]Spec{
		"Key":   req(KindString),
		"Value": req(KindString),
	})
	add("Xref", map[string]Spec{
		"Database": opt(KindString, ""),
		"ID":       opt(KindString, ""),
	})

	add("DataNode", map[string]Spec{
		"GraphId":   opt(KindString, ""),
		"GroupRef":  opt(KindString, ""),
		"TextLabel": req(KindString),
		"Type":      opt(KindString, "Unknown"),
	})
	add("DataNode.Graphics", shapedGraphics2013a())

	add("Label", map[string]Spec{
		"GraphId":   opt(KindString, ""),
		"GroupRef":  opt(KindString, ""),
		"TextLabel": req(KindString),
		"Href":      opt(KindString, ""),
	})
	add("Label.Graphics", shapedGraphics2013a())

	add("Shape", map[string]Spec{
		"GraphId":   opt(KindString, ""),
		"GroupRef":  opt(KindString, ""),
		"TextLabel": opt(KindString, ""),
	})
	add("Shape.Graphics", shapedGraphics2013a())

	// Groups carry no Graphics in this generation; geometry is derived from
	// members at render time.
	add("Group", map[string]Spec{
		"GroupId":   req(KindString),
		"GraphId":   opt(KindString, ""),
		"GroupRef":  opt(KindString, ""),
		"Style":     opt(KindString, "None"),
		"TextLabel": opt(KindString, ""),
	})

	add("State", map[string]Spec{
		"GraphId":   opt(KindString, ""),
		"GraphRef":  opt(KindString, ""),
		"TextLabel": opt(KindString, ""),
		"StateType": opt(KindString, "Unknown"),
	})
	add("State.Graphics", map[string]Spec{
		"RelX":          req(KindFloat),
		"RelY":          req(KindFloat),
		"Width":         req(KindFloat),
		"Height":        req(KindFloat),
		"Color":         opt(KindColor, "000000"),
		"FillColor":     opt(KindColor, "ffffff"),
		"FontSize":      opt(KindFloat, "12"),
		"ShapeType":     opt(KindString, "Oval"),
		"LineStyle":     opt(KindString, "Solid"),
		"LineThickness": opt(KindFloat, "1.0"),
		"ZOrder":        opt(KindInt, "0"),
	})

	add("Interaction", map[string]Spec{
		"GraphId":  opt(KindString, ""),
		"GroupRef": opt(KindString, ""),
	})
	add("Interaction.Graphics", lineGraphics2013a())

	add("GraphicalLine", map[string]Spec{
		"GraphId":  opt(KindString, ""),
		"GroupRef": opt(KindString, ""),
	})
	add("GraphicalLine.Graphics", lineGraphics2013a())

	add("Point", map[string]Spec{
		"X":         req(KindFloat),
		"Y":         req(KindFloat),
		"GraphRef":  opt(KindString, ""),
		"RelX":      opt(KindFloat, "0.0"),
		"RelY":      opt(KindFloat, "0.0"),
		"ArrowHead": opt(KindString, "Line"),
	})
	add("Anchor", map[string]Spec{
		"Position": req(KindFloat),
		"GraphId":  opt(KindString, ""),
		"Shape":    opt(KindString, "None"),
	})

	add("InfoBox", map[string]Spec{
		"CenterX": opt(KindFloat, "0.0"),
		"CenterY": opt(KindFloat, "0.0"),
	})
	add("Legend", map[string]Spec{
		"CenterX": opt(KindFloat, "0.0"),
		"CenterY": opt(KindFloat, "0.0"),
	})

	// Bibliography: a Biopax block holding PublicationXref entries; elements
	// reference them through BiopaxRef children (text content, no attrs).
	add("PublicationXref", map[string]Spec{
		"ID":         req(KindString),
		"Database":   opt(KindString, ""),
		"Identifier": opt(KindString, ""),
	})

	return specs
}
