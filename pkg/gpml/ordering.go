package gpml

import (
	"sort"

	"github.com/beevik/etree"
)

// Child tags are serialized in schema sequence order, not insertion order.
// Tags absent from the precedence list sort after all known tags and keep
// their relative order.
var (
	childOrder2013a = []string{
		"Comment",
		"BiopaxRef",
		"Attribute",
		"Graphics",
		"Xref",
		"DataNode",
		"State",
		"Interaction",
		"GraphicalLine",
		"Label",
		"Shape",
		"Group",
		"InfoBox",
		"Legend",
		"Biopax",
	}
	childOrder2021 = []string{
		"Comment",
		"Property",
		"AnnotationRef",
		"CitationRef",
		"EvidenceRef",
		"Author",
		"Graphics",
		"Xref",
		"DataNode",
		"State",
		"Interaction",
		"GraphicalLine",
		"Label",
		"Shape",
		"Group",
		"Annotation",
		"Citation",
		"Evidence",
	}
)

// ChildOrder returns the schema sequence order for child tags under the
// given version. Callers get a copy.
func ChildOrder(ver Version) []string {
	order := childOrder2013a
	if ver == V2021 {
		order = childOrder2021
	}
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func orderIndex(ver Version) map[string]int {
	order := childOrder2013a
	if ver == V2021 {
		order = childOrder2021
	}
	idx := make(map[string]int, len(order))
	for i, tag := range order {
		idx[tag] = i
	}
	return idx
}

// sortChildren reorders el's child elements into schema sequence order.
// Repeated tags keep their relative order, which preserves line point and
// anchor topology.
func sortChildren(el *etree.Element, idx map[string]int) {
	children := el.ChildElements()
	if len(children) < 2 {
		return
	}
	rank := func(tag string) int {
		if r, ok := idx[tag]; ok {
			return r
		}
		return len(idx)
	}
	sort.SliceStable(children, func(i, j int) bool {
		return rank(children[i].Tag) < rank(children[j].Tag)
	})
	for _, c := range children {
		el.RemoveChild(c)
	}
	for _, c := range children {
		el.AddChild(c)
	}
}

// normalizeOrder applies schema sequence ordering to the root and every
// element beneath it.
func normalizeOrder(root *etree.Element, ver Version) {
	idx := orderIndex(ver)
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		sortChildren(el, idx)
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	walk(root)
}
