// Package model provides the in-memory representation of a word-processing
// document used by the formatting pipeline.
//
// This package defines the data structures that every pipeline stage operates
// on. A document is loaded once by an adapter (see the docx package), mutated
// in place by the pipeline stages, and persisted once at the end.
//
// # Document Structure
//
// The [Document] type holds an ordered sequence of blocks plus section
// settings:
//
//	doc := model.NewDocument()
//	doc.AppendBlock(p)
//
// A [Block] is either a [Paragraph] or a [Table]. Paragraphs contain ordered
// [Run] values; a run is a maximal contiguous text span sharing one style
// record. Runs partition a paragraph's visible text contiguously and in
// order; empty runs are legal.
//
// # Tables
//
// The [Table] type is a grid of [Cell] values, each containing its own
// paragraphs, recursively following the same model.
//
// # Categories
//
// [Category] is the classification result for a paragraph, computed by the
// classify package. Categories are never stored on the paragraph: any
// structural edit invalidates them, so they are recomputed fresh wherever
// needed.
package model
