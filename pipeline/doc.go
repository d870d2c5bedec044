// Package pipeline orchestrates the formatting stages over one document.
//
// Stages run strictly in order: page setup, title boundary detection,
// classification with style application, structural editing, text
// normalization, statistics. Later stages depend on the index and category
// stability established by earlier ones; any structural edit forces
// re-classification, which the stages perform themselves. A pipeline
// invocation either completes every stage or fails as a whole; the caller
// must not persist the document after an error.
package pipeline
