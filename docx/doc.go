// Package docx reads and writes DOCX (Office Open XML) documents for the
// formatting pipeline.
//
// Open parses word/document.xml into the model package's document
// representation, preserving the order of paragraphs, tables, runs and
// hyperlinks. Content the pipeline does not reformat, such as embedded
// drawings and math blocks, is carried through verbatim as raw XML. Save
// regenerates word/document.xml from the (mutated) model and copies every
// other archive part byte-for-byte, so images, themes and fonts survive
// the round trip untouched.
//
// The package also provides the page-numbering primitive: when a section
// requests page numbers, Save materializes a footer part with a centered
// PAGE field and wires it into the section properties, the relationships
// part and [Content_Types].xml.
package docx
