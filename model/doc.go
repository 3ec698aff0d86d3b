// Package model provides the semantic tree that structural recovery
// produces from a word-processing document.
//
// The tree follows the mdast vocabulary so that it serializes naturally to
// Markdown. All nodes are pointers; a parent owns its children and no node
// is shared between two parents.
//
// # Document Structure
//
// The [Document] type pairs document [Metadata] with a [Root]:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "My Document"
//	doc.Root.Children = append(doc.Root.Children, para)
//
// # Nodes
//
// Block content implements [Node]. The concrete block types are:
//
//   - [Paragraph] - a paragraph with its formatting signature
//   - [Heading] - a promoted paragraph (depth 1-6)
//   - [List] and [ListItem] - a flat unordered list
//
// Phrasing content implements [Inline]:
//
//   - [Text] - a text run with its run signature
//   - [Link] - a hyperlink wrapping one text run
//   - [Strong] - merged bold runs
//
// # Signatures
//
// [ParagraphSignature] and [RunSignature] carry the incidental formatting
// (font size, bold, underline, justification, style name) that the
// classifier uses to infer structure. [ClusterKey] is the comparable subset
// used to group paragraphs.
package model
