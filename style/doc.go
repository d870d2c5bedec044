// Package style maps paragraph categories to concrete formatting.
//
// The mapping is a total function of (Category, Config): it never consults
// the paragraph's prior formatting, which makes application idempotent.
// Every run of a paragraph receives the same run style.
package style
