package gpml

import (
	"github.com/beevik/etree"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/schema"
)

// Version identifies one of the two supported schema generations.
type Version string

// Supported versions.
const (
	V2013a Version = "GPML2013a"
	V2021  Version = "GPML2021"
)

// Document namespaces, one per version.
const (
	Namespace2013a = "http://pathvisio.org/GPML/2013a"
	Namespace2021  = "http://pathvisio.org/GPML/2021"
)

// Namespace returns the XML namespace for the version.
func (v Version) Namespace() string {
	if v == V2013a {
		return Namespace2013a
	}
	return Namespace2021
}

// Table returns the attribute schema table for the version.
func (v Version) Table() *schema.Table {
	if v == V2013a {
		return schema.GPML2013a()
	}
	return schema.GPML2021()
}

// Valid reports whether v is a supported version.
func (v Version) Valid() bool { return v == V2013a || v == V2021 }

// DetectVersion sniffs the schema version from the root element's
// namespace. It fails with UNSUPPORTED_VERSION for unknown namespaces and
// CONVERSION_FAILED when the document has no Pathway root.
func DetectVersion(doc *etree.Document) (Version, error) {
	root := doc.Root()
	if root == nil || root.Tag != "Pathway" {
		return "", errors.New(errors.ErrCodeConversion, "document has no Pathway root element")
	}
	switch root.SelectAttrValue("xmlns", "") {
	case Namespace2013a:
		return V2013a, nil
	case Namespace2021:
		return V2021, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidVersion,
			"unrecognized document namespace: %q", root.SelectAttrValue("xmlns", ""))
	}
}
