package model

// Annotation is a pooled, content-addressed note (ontology term, taxonomy
// tag, free text). Two annotations with the same value, type, xref, and URL
// are the same pool entry.
type Annotation struct {
	ElementID string
	Value     string
	Type      AnnotationType
	Xref      Xref
	URL       string
}

func (a *Annotation) poolKey() string {
	return a.Value + "\x00" + string(a.Type) + "\x00" + a.Xref.DataSource + "\x00" + a.Xref.Identifier + "\x00" + a.URL
}

// Citation is a pooled bibliographic reference.
type Citation struct {
	ElementID string
	Xref      Xref
	URL       string
}

func (c *Citation) poolKey() string {
	return c.Xref.DataSource + "\x00" + c.Xref.Identifier + "\x00" + c.URL
}

// Evidence is a pooled evidence record backing an assertion.
type Evidence struct {
	ElementID string
	Value     string
	Xref      Xref
	URL       string
}

func (e *Evidence) poolKey() string {
	return e.Value + "\x00" + e.Xref.DataSource + "\x00" + e.Xref.Identifier + "\x00" + e.URL
}

// AnnotationRef points a pathway element at a pooled Annotation. A reference
// may itself be backed by citations and evidence.
type AnnotationRef struct {
	AnnotationID string
	CitationRefs []CitationRef
	EvidenceRefs []EvidenceRef
}

// CitationRef points a pathway element at a pooled Citation and may carry
// nested annotation references.
type CitationRef struct {
	CitationID     string
	AnnotationRefs []AnnotationRef
}

// EvidenceRef points a pathway element at a pooled Evidence entry.
type EvidenceRef struct {
	EvidenceID string
}

// countAnnotationUses walks a ref list (including refs nested inside
// citation refs) and tallies references to the given annotation id.
func countAnnotationUses(refs []AnnotationRef, citRefs []CitationRef, id string) int {
	n := 0
	for _, r := range refs {
		if r.AnnotationID == id {
			n++
		}
		n += countAnnotationUses(nil, r.CitationRefs, id)
	}
	for _, cr := range citRefs {
		n += countAnnotationUses(cr.AnnotationRefs, nil, id)
	}
	return n
}

// countCitationUses tallies references to the given citation id in a ref
// list, including citation refs nested inside annotation refs.
func countCitationUses(refs []CitationRef, annRefs []AnnotationRef, id string) int {
	n := 0
	for _, r := range refs {
		if r.CitationID == id {
			n++
		}
		n += countCitationUses(nil, r.AnnotationRefs, id)
	}
	for _, ar := range annRefs {
		n += countCitationUses(ar.CitationRefs, nil, id)
	}
	return n
}

// countEvidenceUses tallies references to the given evidence id, including
// refs nested inside annotation refs.
func countEvidenceUses(refs []EvidenceRef, annRefs []AnnotationRef, id string) int {
	n := 0
	for _, r := range refs {
		if r.EvidenceID == id {
			n++
		}
	}
	for _, ar := range annRefs {
		for _, r := range ar.EvidenceRefs {
			if r.EvidenceID == id {
				n++
			}
		}
	}
	return n
}
