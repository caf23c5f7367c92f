// Package validate checks pathway documents against the schema tables.
//
// # Overview
//
// Validation is structural, driven by the same tables the codec reads and
// writes with: every element and attribute must be known to the target
// generation, required attributes must be present, numeric and color values
// must parse, children must follow schema sequence order, and every
// reference must resolve to a declared identifier.
//
// Unlike the codec, which aborts on the first malformed attribute,
// validation collects every finding:
//
//	result := validate.Document(doc, gpml.V2013a)
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
//	if err := result.Err(); err != nil {
//	    ...
//	}
package validate

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/gpml"
	"github.com/pathmark/pathmark/pkg/schema"
)

// Issue is one validation finding.
type Issue struct {
	Code errors.Code
	// Path locates the offending element in the document.
	Path    string
	Attr    string
	Message string
}

func (i Issue) String() string {
	if i.Attr != "" {
		return fmt.Sprintf("%s: %s@%s: %s", i.Code, i.Path, i.Attr, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Code, i.Path, i.Message)
}

// Result aggregates the findings of one validation pass.
type Result struct {
	Version gpml.Version
	Issues  []Issue
}

// Valid reports whether no issues were found.
func (r *Result) Valid() bool { return len(r.Issues) == 0 }

// Err folds the findings into a single error, nil when the document is
// valid.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = issue.String()
	}
	return errors.New(errors.ErrCodeSchemaInvalid, "%d validation issues:\n%s", len(r.Issues), strings.Join(lines, "\n"))
}

func (r *Result) add(code errors.Code, el *etree.Element, attr, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Code:    code,
		Path:    el.GetPath(),
		Attr:    attr,
		Message: fmt.Sprintf(format, args...),
	})
}

// Document validates a parsed document tree against the given generation.
func Document(doc *etree.Document, ver gpml.Version) *Result {
	r := &Result{Version: ver}

	root := doc.Root()
	if root == nil || root.Tag != "Pathway" {
		r.Issues = append(r.Issues, Issue{
			Code:    errors.ErrCodeSchemaInvalid,
			Path:    "/",
			Message: "document has no Pathway root element",
		})
		return r
	}
	if ns := root.SelectAttrValue("xmlns", ""); ns != ver.Namespace() {
		r.add(errors.ErrCodeSchemaInvalid, root, "xmlns", "namespace %q, want %q", ns, ver.Namespace())
	}

	v := &validator{tab: ver.Table(), ver: ver, r: r}
	v.element(root, "Pathway")
	v.references(root)
	return r
}

type validator struct {
	tab *schema.Table
	ver gpml.Version
	r   *Result
}

// containerTags have no schema entry of their own; their children are
// validated under derived or literal tag names.
var containerTags = map[string]bool{"Biopax": true}

// textOnlyTags carry text content and no validated attributes.
var textOnlyTags = map[string]bool{"BiopaxRef": true}

// schemaTag maps a document element to its schema table key. Graphics
// blocks are keyed by their parent tag.
func schemaTag(el *etree.Element) string {
	if el.Tag != "Graphics" {
		return el.Tag
	}
	if p := el.Parent(); p != nil {
		return p.Tag + ".Graphics"
	}
	return el.Tag
}

func (v *validator) element(el *etree.Element, tag string) {
	v.attrs(el, tag)
	v.childOrder(el)
	for _, c := range el.ChildElements() {
		switch {
		case containerTags[c.Tag], textOnlyTags[c.Tag]:
			// Container children are validated one level down.
			for _, cc := range c.ChildElements() {
				v.element(cc, schemaTag(cc))
			}
		case v.tab.KnowsTag(schemaTag(c)):
			v.element(c, schemaTag(c))
		default:
			v.r.add(errors.ErrCodeSchemaInvalid, c, "", "element %s not part of %s", c.Tag, v.tab.Version())
		}
	}
}

func (v *validator) attrs(el *etree.Element, tag string) {
	seen := make(map[string]bool)
	for _, a := range el.Attr {
		if a.Key == "xmlns" || a.Space != "" {
			continue
		}
		seen[a.Key] = true
		spec, err := v.tab.Lookup(tag, a.Key)
		if err != nil {
			v.r.add(errors.ErrCodeUnknownAttribute, el, a.Key, "attribute not part of %s", v.tab.Version())
			continue
		}
		v.value(el, tag, a.Key, a.Value, spec)
	}
	for _, req := range v.tab.Required(tag) {
		if !seen[req] {
			v.r.add(errors.ErrCodeSchemaInvalid, el, req, "required attribute missing")
		}
	}
}

func (v *validator) value(el *etree.Element, tag, attr, raw string, spec schema.Spec) {
	switch spec.Kind {
	case schema.KindFloat:
		if _, err := schema.ParseFloat(raw); err != nil {
			v.r.add(errors.ErrCodeSchemaInvalid, el, attr, "not a number: %q", raw)
		}
	case schema.KindInt:
		if _, err := schema.ParseInt(raw); err != nil {
			v.r.add(errors.ErrCodeSchemaInvalid, el, attr, "not an integer: %q", raw)
		}
	case schema.KindColor:
		if err := errors.ValidateColor(raw); err != nil {
			v.r.add(errors.ErrCodeSchemaInvalid, el, attr, "not a color: %q", raw)
		}
	}
}

// childOrder flags children that appear before a tag that must precede
// them.
func (v *validator) childOrder(el *etree.Element) {
	idx := make(map[string]int)
	for i, tag := range gpml.ChildOrder(v.ver) {
		idx[tag] = i
	}
	last := -1
	for _, c := range el.ChildElements() {
		rank, ok := idx[c.Tag]
		if !ok {
			continue
		}
		if rank < last {
			v.r.add(errors.ErrCodeSchemaInvalid, c, "", "element %s out of schema sequence order", c.Tag)
			return
		}
		last = rank
	}
}

// =============================================================================
// Reference resolution
// =============================================================================

var (
	idAttrs2013a  = []string{"GraphId", "GroupId"}
	idAttrs2021   = []string{"elementId"}
	refAttrs2013a = []string{"GraphRef", "GroupRef"}
	refAttrs2021  = []string{"elementRef", "groupRef", "aliasRef"}
)

// references checks that every reference attribute resolves to a declared
// identifier. 2013a group references resolve against GroupId while point
// references may target either identifier, so both are declared.
func (v *validator) references(root *etree.Element) {
	idAttrs, refAttrs := idAttrs2013a, refAttrs2013a
	if v.ver == gpml.V2021 {
		idAttrs, refAttrs = idAttrs2021, refAttrs2021
	}

	declared := make(map[string]bool)
	var collect func(el *etree.Element)
	collect = func(el *etree.Element) {
		for _, name := range idAttrs {
			if id := el.SelectAttrValue(name, ""); id != "" {
				declared[id] = true
			}
		}
		// Pool entries and bibliography ids are reference targets too.
		if el.Tag == "PublicationXref" {
			if id := el.SelectAttrValue("ID", ""); id != "" {
				declared[id] = true
			}
		}
		for _, c := range el.ChildElements() {
			collect(c)
		}
	}
	collect(root)

	var check func(el *etree.Element)
	check = func(el *etree.Element) {
		for _, name := range refAttrs {
			if ref := el.SelectAttrValue(name, ""); ref != "" && !declared[ref] {
				v.r.add(errors.ErrCodeSchemaInvalid, el, name, "unresolved reference %q", ref)
			}
		}
		if el.Tag == "BiopaxRef" {
			if ref := el.Text(); ref != "" && !declared[ref] {
				v.r.add(errors.ErrCodeSchemaInvalid, el, "", "unresolved bibliography reference %q", ref)
			}
		}
		for _, c := range el.ChildElements() {
			check(c)
		}
	}
	check(root)
}
