// Package model implements the in-memory pathway graph: the typed element
// set, the identifier registry, pooled annotations/citations/evidence, and
// the referential-integrity repair pass.
//
// # Architecture
//
//   - [Pathway]: the root entity owning all elements and the [Registry]
//   - [Element]: the capability set shared by all element variants
//   - [Registry]: identifier allocation and O(1) id → entity lookup
//
// Elements are created by plain construction and admitted with
// [Pathway.Add], which assigns missing identifiers, registers reference
// indices, and fires a structural-change hook. [Pathway.Remove] mirrors it.
//
// # Referential integrity
//
// Forward lists (group membership, annotation usage) are derived from
// back-references on demand rather than stored redundantly. Dangling
// references are never errors: [Pathway.FixReferences] clears and tallies
// them before serialization.
package model

import (
	"slices"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/observability"
)

// InfoBox is the legacy position marker for the pathway information box.
type InfoBox struct {
	CenterX float64
	CenterY float64
}

// Legend is the legacy position marker for the pathway legend.
type Legend struct {
	CenterX float64
	CenterY float64
}

// Pathway is the root entity of a pathway document. Exactly one Pathway
// exists per document. It owns the element set, the identifier registry,
// and the pooled annotation/citation/evidence entities.
//
// Pathway is not safe for concurrent mutation; decode/encode treat it as a
// single-threaded pipeline.
type Pathway struct {
	Title       string
	Organism    string
	Source      string
	Version     string
	License     string
	BoardWidth  float64
	BoardHeight float64
	Authors     []Author
	Xref        Xref

	Core // pathway-level comments, dynamic properties, and refs

	InfoBox *InfoBox
	Legend  *Legend

	elements []Element // insertion order
	registry *Registry

	annotations []*Annotation
	citations   []*Citation
	evidences   []*Evidence
}

// NewPathway creates an empty pathway with a fresh identifier registry.
func NewPathway() *Pathway {
	return &Pathway{registry: NewRegistry(nil)}
}

// Registry exposes the pathway's identifier registry. Reader and writer
// thread it through decode and encode.
func (p *Pathway) Registry() *Registry { return p.registry }

// Elements returns all admitted elements in insertion order. The returned
// slice is shared; callers must not mutate it.
func (p *Pathway) Elements() []Element { return p.elements }

// =============================================================================
// Admission / Removal
// =============================================================================

// isLine reports whether el is a line-bearing element. Lines keep an empty
// id through admission: decode backfills them deterministically from
// geometry, and encode assigns any survivor lazily.
func isLine(el Element) bool {
	_, ok := el.(LineElement)
	return ok
}

// Add admits an element to the pathway: assigns an identifier if absent
// (except for line elements, which are backfilled lazily), registers the
// element and any identified anchors, and fires the structural-change hook.
//
// Add fails with DUPLICATE_ID when the element carries an id that is
// already registered.
func (p *Pathway) Add(el Element) error {
	core := el.ElementCore()
	if core.ElementID == "" && !isLine(el) {
		core.ElementID = p.registry.Allocate()
	}
	if core.ElementID != "" {
		if err := p.registry.Register(core.ElementID, el); err != nil {
			return err
		}
	}
	if line, ok := el.(LineElement); ok {
		var registered []string
		for _, a := range line.Line().Anchors {
			if a.ElementID == "" {
				continue
			}
			if err := p.registry.Register(a.ElementID, a); err != nil {
				// Roll back every registration made so far so a failed Add
				// leaves the registry untouched.
				for _, id := range registered {
					p.registry.Release(id)
				}
				if core.ElementID != "" {
					p.registry.Release(core.ElementID)
				}
				return err
			}
			registered = append(registered, a.ElementID)
		}
	}

	p.elements = append(p.elements, el)
	observability.Model().OnElementAdded(el.Kind(), core.ElementID)
	return nil
}

// Remove detaches an element: deregisters its id (and its anchors' ids),
// clears dependents' back-references, and fires the structural-change hook.
// Removing a Group clears members' GroupRef but does not delete members.
//
// Remove returns NOT_FOUND if the element was never admitted.
func (p *Pathway) Remove(el Element) error {
	idx := slices.Index(p.elements, el)
	if idx < 0 {
		return errors.New(errors.ErrCodeNotFound, "element not admitted: %s", ID(el))
	}
	p.elements = slices.Delete(p.elements, idx, idx+1)

	core := el.ElementCore()
	if core.ElementID != "" {
		p.registry.Release(core.ElementID)
		p.clearRefsTo(core.ElementID)
	}
	if line, ok := el.(LineElement); ok {
		for _, a := range line.Line().Anchors {
			if a.ElementID != "" {
				p.registry.Release(a.ElementID)
				p.clearRefsTo(a.ElementID)
			}
		}
	}
	if g, ok := el.(*Group); ok && g.ElementID != "" {
		for _, member := range p.elements {
			mc := member.ElementCore()
			if mc.GroupRef == g.ElementID {
				mc.GroupRef = ""
			}
		}
	}

	observability.Model().OnElementRemoved(el.Kind(), core.ElementID)
	return nil
}

// clearRefsTo clears every Point and State ElementRef pointing at id.
func (p *Pathway) clearRefsTo(id string) {
	for _, el := range p.elements {
		switch v := el.(type) {
		case LineElement:
			for _, pt := range v.Line().Points {
				if pt.ElementRef == id {
					pt.ElementRef = ""
					pt.RelSet = false
				}
			}
		case *State:
			if v.ElementRef == id {
				v.ElementRef = ""
			}
		}
	}
}

// =============================================================================
// Typed accessors (derived views over the insertion-order list)
// =============================================================================

// DataNodes returns all data nodes in insertion order.
func (p *Pathway) DataNodes() []*DataNode { return elementsOf[*DataNode](p) }

// States returns all states in insertion order.
func (p *Pathway) States() []*State { return elementsOf[*State](p) }

// Interactions returns all interactions in insertion order.
func (p *Pathway) Interactions() []*Interaction { return elementsOf[*Interaction](p) }

// GraphicalLines returns all graphical lines in insertion order.
func (p *Pathway) GraphicalLines() []*GraphicalLine { return elementsOf[*GraphicalLine](p) }

// Labels returns all labels in insertion order.
func (p *Pathway) Labels() []*Label { return elementsOf[*Label](p) }

// Shapes returns all shapes in insertion order.
func (p *Pathway) Shapes() []*Shape { return elementsOf[*Shape](p) }

// Groups returns all groups in insertion order.
func (p *Pathway) Groups() []*Group { return elementsOf[*Group](p) }

func elementsOf[T Element](p *Pathway) []T {
	var out []T
	for _, el := range p.elements {
		if v, ok := el.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Lines returns all line-bearing elements in insertion order.
func (p *Pathway) Lines() []LineElement {
	var out []LineElement
	for _, el := range p.elements {
		if v, ok := el.(LineElement); ok {
			out = append(out, v)
		}
	}
	return out
}

// GroupMembers returns the elements whose GroupRef equals the group's id.
// The group's membership is exactly this derived set.
func (p *Pathway) GroupMembers(g *Group) []Element {
	if g == nil || g.ElementID == "" {
		return nil
	}
	var members []Element
	for _, el := range p.elements {
		if el.ElementCore().GroupRef == g.ElementID {
			members = append(members, el)
		}
	}
	return members
}

// =============================================================================
// Reference repair
// =============================================================================

// FixReferences clears every dangling GroupRef and every dangling Point or
// State ElementRef and returns the number cleared. Dangling references are
// repaired, never raised as errors; callers log the tally as a diagnostic.
func (p *Pathway) FixReferences() int {
	groups := make(map[string]bool)
	for _, g := range p.Groups() {
		if g.ElementID != "" {
			groups[g.ElementID] = true
		}
	}

	cleared := 0
	for _, el := range p.elements {
		core := el.ElementCore()
		if core.GroupRef != "" && !groups[core.GroupRef] {
			core.GroupRef = ""
			cleared++
		}
		switch v := el.(type) {
		case LineElement:
			for _, pt := range v.Line().Points {
				if pt.ElementRef == "" {
					continue
				}
				if _, ok := p.registry.Lookup(pt.ElementRef); !ok {
					pt.ElementRef = ""
					pt.RelSet = false
					cleared++
				}
			}
		case *State:
			if v.ElementRef != "" {
				if _, ok := p.registry.Lookup(v.ElementRef); !ok {
					v.ElementRef = ""
					cleared++
				}
			}
		}
	}
	return cleared
}

// =============================================================================
// Pooled Annotations / Citations / Evidence
// =============================================================================

// AddAnnotation admits an annotation to the pool, reusing an existing entry
// with the same defining value. The returned annotation is the pooled
// instance; its id is assigned on first admission. An explicit id that
// collides with a registered one fails with DUPLICATE_ID.
func (p *Pathway) AddAnnotation(a *Annotation) (*Annotation, error) {
	for _, existing := range p.annotations {
		if existing.poolKey() == a.poolKey() {
			return existing, nil
		}
	}
	if a.ElementID == "" {
		a.ElementID = p.registry.Allocate()
	}
	if err := p.registry.Register(a.ElementID, a); err != nil {
		return nil, err
	}
	p.annotations = append(p.annotations, a)
	return a, nil
}

// AddCitation admits a citation to the pool, reusing duplicates.
func (p *Pathway) AddCitation(c *Citation) (*Citation, error) {
	for _, existing := range p.citations {
		if existing.poolKey() == c.poolKey() {
			return existing, nil
		}
	}
	if c.ElementID == "" {
		c.ElementID = p.registry.Allocate()
	}
	if err := p.registry.Register(c.ElementID, c); err != nil {
		return nil, err
	}
	p.citations = append(p.citations, c)
	return c, nil
}

// AddEvidence admits an evidence record to the pool, reusing duplicates.
func (p *Pathway) AddEvidence(e *Evidence) (*Evidence, error) {
	for _, existing := range p.evidences {
		if existing.poolKey() == e.poolKey() {
			return existing, nil
		}
	}
	if e.ElementID == "" {
		e.ElementID = p.registry.Allocate()
	}
	if err := p.registry.Register(e.ElementID, e); err != nil {
		return nil, err
	}
	p.evidences = append(p.evidences, e)
	return e, nil
}

// Annotations returns the annotation pool in admission order.
func (p *Pathway) Annotations() []*Annotation { return p.annotations }

// Citations returns the citation pool in admission order.
func (p *Pathway) Citations() []*Citation { return p.citations }

// Evidences returns the evidence pool in admission order.
func (p *Pathway) Evidences() []*Evidence { return p.evidences }

// AnnotationByID returns the pooled annotation with the given id, if any.
func (p *Pathway) AnnotationByID(id string) (*Annotation, bool) {
	for _, a := range p.annotations {
		if a.ElementID == id {
			return a, true
		}
	}
	return nil, false
}

// CitationByID returns the pooled citation with the given id, if any.
func (p *Pathway) CitationByID(id string) (*Citation, bool) {
	for _, c := range p.citations {
		if c.ElementID == id {
			return c, true
		}
	}
	return nil, false
}

// EvidenceByID returns the pooled evidence with the given id, if any.
func (p *Pathway) EvidenceByID(id string) (*Evidence, bool) {
	for _, e := range p.evidences {
		if e.ElementID == id {
			return e, true
		}
	}
	return nil, false
}

// annotationUseCount tallies references to the annotation across the
// pathway and every element, including refs nested inside citation refs.
func (p *Pathway) annotationUseCount(id string) int {
	n := countAnnotationUses(p.AnnotationRefs, p.CitationRefs, id)
	for _, el := range p.elements {
		core := el.ElementCore()
		n += countAnnotationUses(core.AnnotationRefs, core.CitationRefs, id)
	}
	return n
}

func (p *Pathway) citationUseCount(id string) int {
	n := countCitationUses(p.CitationRefs, p.AnnotationRefs, id)
	for _, el := range p.elements {
		core := el.ElementCore()
		n += countCitationUses(core.CitationRefs, core.AnnotationRefs, id)
	}
	return n
}

func (p *Pathway) evidenceUseCount(id string) int {
	n := countEvidenceUses(p.EvidenceRefs, p.AnnotationRefs, id)
	for _, el := range p.elements {
		core := el.ElementCore()
		n += countEvidenceUses(core.EvidenceRefs, core.AnnotationRefs, id)
	}
	return n
}

// RemoveAnnotation removes the pooled annotation when no remaining ref
// points to it. It reports whether the entry was removed.
func (p *Pathway) RemoveAnnotation(id string) bool {
	if p.annotationUseCount(id) > 0 {
		return false
	}
	for i, a := range p.annotations {
		if a.ElementID == id {
			p.annotations = slices.Delete(p.annotations, i, i+1)
			p.registry.Release(id)
			return true
		}
	}
	return false
}

// RemoveCitation removes the pooled citation when no remaining ref points
// to it. It reports whether the entry was removed.
func (p *Pathway) RemoveCitation(id string) bool {
	if p.citationUseCount(id) > 0 {
		return false
	}
	for i, c := range p.citations {
		if c.ElementID == id {
			p.citations = slices.Delete(p.citations, i, i+1)
			p.registry.Release(id)
			return true
		}
	}
	return false
}

// RemoveEvidence removes the pooled evidence record when no remaining ref
// points to it. It reports whether the entry was removed.
func (p *Pathway) RemoveEvidence(id string) bool {
	if p.evidenceUseCount(id) > 0 {
		return false
	}
	for i, e := range p.evidences {
		if e.ElementID == id {
			p.evidences = slices.Delete(p.evidences, i, i+1)
			p.registry.Release(id)
			return true
		}
	}
	return false
}
