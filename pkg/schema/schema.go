// Package schema defines the per-version attribute tables for the pathway
// markup format.
//
// A [Table] is a pure lookup keyed by (element tag, attribute name) to the
// attribute's value kind, default, and required flag. Reader and writer
// consult the same table for a given version, so type coercion and
// default elision stay symmetric and centrally defined.
//
// Attributes of nested Graphics sub-elements are keyed with a dotted tag
// ("DataNode.Graphics"), since the attribute set and defaults differ per
// owning element.
//
// The tables are exhaustive: any attribute access outside the table is a
// programming error surfaced as UNKNOWN_ATTRIBUTE, never a silent
// pass-through.
package schema

import (
	"math"
	"sort"
	"strconv"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/model"
)

// Kind drives value coercion and default-equality for an attribute.
type Kind int

// Attribute value kinds.
const (
	KindString Kind = iota
	KindFloat       // epsilon equality
	KindInt
	KindBool
	KindColor // hex-or-Transparent equivalence
)

// floatEpsilon is the tolerance for float default comparison.
const floatEpsilon = 1e-6

// Spec describes one attribute of one element tag.
type Spec struct {
	Kind     Kind
	Default  string
	Required bool
}

type key struct {
	tag  string
	attr string
}

// Table is the attribute schema for one format version.
type Table struct {
	version string
	specs   map[key]Spec
}

func newTable(version string, specs map[key]Spec) *Table {
	return &Table{version: version, specs: specs}
}

// Version returns the schema version the table describes.
func (t *Table) Version() string { return t.version }

// Lookup returns the spec for (tag, attr). A miss is an UNKNOWN_ATTRIBUTE
// error: it means the caller is accessing an attribute the schema does not
// define, which is a bug or schema drift, not a document problem.
func (t *Table) Lookup(tag, attr string) (Spec, error) {
	s, ok := t.specs[key{tag, attr}]
	if !ok {
		return Spec{}, errors.New(errors.ErrCodeUnknownAttribute,
			"no schema entry for %s/@%s (%s)", tag, attr, t.version)
	}
	return s, nil
}

// Knows reports whether the table defines (tag, attr).
func (t *Table) Knows(tag, attr string) bool {
	_, ok := t.specs[key{tag, attr}]
	return ok
}

// KnowsTag reports whether the table defines any attribute for tag.
func (t *Table) KnowsTag(tag string) bool {
	for k := range t.specs {
		if k.tag == tag {
			return true
		}
	}
	return false
}

// Attrs returns the attribute names defined for tag, sorted.
func (t *Table) Attrs(tag string) []string {
	var out []string
	for k := range t.specs {
		if k.tag == tag {
			out = append(out, k.attr)
		}
	}
	sort.Strings(out)
	return out
}

// Required returns the required attribute names for tag, sorted.
func (t *Table) Required(tag string) []string {
	var out []string
	for k, s := range t.specs {
		if k.tag == tag && s.Required {
			out = append(out, k.attr)
		}
	}
	sort.Strings(out)
	return out
}

// IsDefault reports whether value equals the registered default for
// (tag, attr): string equality for strings, |a-b| < 1e-6 for floats, and
// color-or-Transparent equivalence for colors. The writer elides attributes
// whose value is the default, keeping output minimal and canonical.
func (t *Table) IsDefault(tag, attr, value string) (bool, error) {
	s, err := t.Lookup(tag, attr)
	if err != nil {
		return false, err
	}
	switch s.Kind {
	case KindFloat:
		a, errA := strconv.ParseFloat(value, 64)
		b, errB := strconv.ParseFloat(s.Default, 64)
		if errA != nil || errB != nil {
			return value == s.Default, nil
		}
		return math.Abs(a-b) < floatEpsilon, nil
	case KindColor:
		return model.Color(value).Equal(model.Color(s.Default)), nil
	default:
		return value == s.Default, nil
	}
}

// ParseFloat coerces a raw attribute value to float64 for a KindFloat spec.
func ParseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

// ParseInt coerces a raw attribute value to int for a KindInt spec.
func ParseInt(raw string) (int, error) {
	return strconv.Atoi(raw)
}

// FormatFloat renders a float attribute value in canonical form: the
// shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an int attribute value.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// spec constructors used by the table literals.

func req(k Kind) Spec             { return Spec{Kind: k, Required: true} }
func opt(k Kind, def string) Spec { return Spec{Kind: k, Default: def} }
