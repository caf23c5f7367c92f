// Package pkg provides the core libraries for Pathmark pathway processing.
//
// # Overview
//
// Pathmark models biological pathway diagrams and moves them between the
// generations of the GPML exchange format. The pkg directory is organized
// into these areas:
//
//  1. [model] - The version-neutral pathway graph (elements, registry, pools)
//  2. [gpml] - The versioned XML codec (GPML2013a and GPML2021)
//  3. [schema] - Attribute tables driving decode, encode, and validation
//  4. [convert] - Generation upgrades and downgrades with loss reporting
//  5. [validate] - Structural document validation against a generation
//  6. [xref] - Cross-reference resolution against data source registries
//  7. [store] - The pathway archive (memory, file, and MongoDB backends)
//  8. [server] - The HTTP service over the codec, validator, and archive
//
// # Architecture
//
// The typical data flow through Pathmark:
//
//	GPML document (2013a or 2021)
//	         ↓
//	    [gpml] package (detect version, decode, reconcile)
//	         ↓
//	    [model] package (version-neutral graph)
//	         ↓
//	    [convert] package (optional generation rewrite)
//	         ↓
//	    [gpml] package (encode for the target generation)
//	         ↓
//	    GPML document
//
// # Quick Start
//
// Read a document, upgrade its legacy constructs, and write it back in the
// modern generation:
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/pathmark/pathmark/pkg/convert"
//	    "github.com/pathmark/pathmark/pkg/gpml"
//	)
//
//	// 1. Decode (version is detected from the document)
//	p, _, err := gpml.ReadFile(context.Background(), "pathway.gpml")
//	if err != nil {
//	    return err
//	}
//
//	// 2. Rewrite legacy constructs
//	report := convert.Upgrade(p)
//	for _, c := range report.Lossy() {
//	    fmt.Println("lost:", c.Detail)
//	}
//
//	// 3. Encode for the modern generation
//	err = gpml.Write(context.Background(), p, gpml.V2021, os.Stdout)
//
// # Command Line
//
// The pathmark binary in cmd/pathmark wraps these packages: convert,
// validate, info, and serve. See internal/cli for the command wiring.
package pkg
