// Package pipeline rewrites a flat sequence of nodes through an ordered list
// of processors.
//
// Each processor sees every input node in its original form and reports an
// Outcome: pass, emit replacement nodes, or consume the node. Processors
// that need the whole input implement Starter; processors that buffer
// implement Ender and flush when the input runs out.
//
// The same engine drives both levels of the document: block stages turn
// paragraphs into lists and headings, and the phrasing stage runs an inline
// sub-pipeline that merges bold runs inside each paragraph.
package pipeline
