package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml. Only the style
// identity is read; formatting comes from the paragraphs themselves.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name     `xml:"style"`
	Type    string       `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string       `xml:"styleId,attr"`
	Name    styleNameXML `xml:"name"`
}

// styleNameXML represents a style name.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// styleIndex maps paragraph style IDs to their display names.
type styleIndex map[string]string

// newStyleIndex builds the index from parsed styles. A nil input yields an
// empty index.
func newStyleIndex(styles *stylesXML) styleIndex {
	idx := make(styleIndex)
	if styles == nil {
		return idx
	}
	for _, s := range styles.Styles {
		if s.StyleID == "" || (s.Type != "" && s.Type != "paragraph") {
			continue
		}
		idx[s.StyleID] = s.Name.Val
	}
	return idx
}
