// Package xref resolves database cross-references to their source records.
//
// # Overview
//
// Pathway elements annotate biological entities with xrefs: a data source
// name plus an identifier within it ("Ensembl" / "ENSG00000141510"). This
// package maps those pairs to the registry entry for the data source and a
// resolvable URL for the record.
//
// # Architecture
//
// Resolution is interface-driven with layered implementations:
//   - StaticResolver: built-in registry of the common biological databases
//   - CachedResolver: wraps any resolver with a cache backend
//
// Cache backends follow the same split as the rest of the system:
//   - memory: in-process cache for development and CLI use
//   - redis: shared cache for multi-instance deployments
//
// # Usage
//
//	resolver := xref.NewCachedResolver(xref.NewStaticResolver(), xref.NewMemoryCache())
//	entry, err := resolver.Resolve(ctx, model.Xref{DataSource: "Ensembl", Identifier: "ENSG00000141510"})
//	if err != nil {
//	    return err
//	}
//	if entry == nil {
//	    // unknown data source
//	}
package xref

import (
	"context"
	"strings"

	"github.com/pathmark/pathmark/pkg/model"
)

// SourceType classifies what a data source identifies.
type SourceType string

// Known source types.
const (
	SourceGene        SourceType = "gene"
	SourceProtein     SourceType = "protein"
	SourceMetabolite  SourceType = "metabolite"
	SourcePathway     SourceType = "pathway"
	SourceInteraction SourceType = "interaction"
	SourcePublication SourceType = "publication"
	SourceOntology    SourceType = "ontology"
)

// DataSource describes one registered database.
type DataSource struct {
	// Name is the canonical full name used in documents.
	Name string
	// Code is the compact system code, when the registry defines one.
	Code string
	Type SourceType
	// URLPattern resolves a record URL; "$id" is replaced with the
	// identifier.
	URLPattern string
}

// URL resolves the record URL for an identifier, empty when the source has
// no pattern.
func (ds DataSource) URL(identifier string) string {
	if ds.URLPattern == "" || identifier == "" {
		return ""
	}
	return strings.ReplaceAll(ds.URLPattern, "$id", identifier)
}

// Entry is a resolved cross-reference.
type Entry struct {
	Xref   model.Xref `json:"xref"`
	Source DataSource `json:"source"`
	URL    string     `json:"url,omitempty"`
}

// Resolver resolves xrefs to registry entries.
type Resolver interface {
	// Resolve returns the entry for an xref.
	// Returns nil, nil when the data source is not registered.
	Resolve(ctx context.Context, x model.Xref) (*Entry, error)
}
