// Package gpml reads and writes pathway documents in the GPML exchange
// format, in both supported schema generations.
//
// # Overview
//
// GPML is a versioned XML vocabulary for biological pathway diagrams. Two
// generations are supported:
//
//   - GPML2013a: the legacy flat-attribute schema (PascalCase attributes,
//     a single Color attribute for text and border, Biopax bibliography)
//   - GPML2021: the structured schema (camelCase attributes, split
//     text/border colors, first-class annotation/citation/evidence pools)
//
// The in-memory model (package model) is version neutral and holds the 2021
// vocabulary; this package translates spellings at the boundary. The schema
// tables in package schema drive both directions, so attribute defaults,
// requiredness, and value kinds live in one place.
//
// # Reading
//
// [Read] sniffs the generation from the root namespace and decodes:
//
//	p, ver, err := gpml.Read(ctx, file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding is strict about attribute values (a malformed number or color
// aborts with a ConversionError) and lenient about references: dangling
// references are cleared after decode, counted, and reported through the
// codec hooks. Lines stored without an identifier get a stable one derived
// from their geometry, so re-reading a document yields the same identifiers.
//
// # Writing
//
// [Write] serializes a pathway under an explicit target generation:
//
//	err := gpml.Write(ctx, p, gpml.V2013a, out)
//
// Optional attributes holding their schema default are elided. Child
// elements are emitted in schema sequence order regardless of model
// insertion order. Writing does not convert between generations; use
// package convert first when the graph holds constructs the target cannot
// express.
package gpml
