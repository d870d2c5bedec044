// Package normalize performs text-level cleanup over paragraphs whose
// visible text is fragmented across independently-styled runs.
//
// Transforms are specified over a paragraph's logical text (the ordered
// concatenation of its runs' text) but are realized as edits to individual
// runs. Cross-run passes materialize the logical text together with a
// position-to-run map, edit the logical string, and write changes back into
// the run containing the match start, leaving trailing runs untouched when
// a change crosses a run boundary. Within-run passes (abbreviation
// expansion, non-breaking-space insertion) edit run text directly.
//
// Passes run in a fixed, non-commutative order. Every pass is best-effort:
// an unresolvable ambiguity leaves the text unchanged and is logged, never
// treated as an error. The full normalizer is a fixed point of itself:
// running it twice on its own output changes nothing.
package normalize
