// Package structure performs the structural edits of the formatting
// pipeline: caption reconciliation, page-break placement, list punctuation
// enforcement and blank-paragraph pruning.
//
// Every sub-stage re-derives paragraph categories from scratch, since each
// insertion or removal invalidates both block indices and any previously
// computed classification. All edits are re-entrant: running the editor
// twice never double-counts figures or tables and never duplicates
// captions, because existing captions are renumbered in place rather than
// inserted again.
package structure
