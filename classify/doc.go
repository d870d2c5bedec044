// Package classify infers document structure from paragraph text.
//
// Classification is a pure recomputation: a [Classifier] is built against a
// snapshot of the block sequence and must be discarded after any structural
// edit, since insertions and removals invalidate both indices and the
// bibliography range. Building a fresh classifier is cheap (one scan).
//
// The title boundary (see [Boundary]) is the block index of the contents
// marker; every block below it belongs to the cover page and is excluded
// from all later stages.
package classify
