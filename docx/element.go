package docx

import (
	"encoding/xml"
	"errors"
	"io"
)

// Element is a node of the document.xml element tree. Unlike struct-based
// unmarshaling it keeps every child in document order, so runs and
// hyperlinks inside a paragraph stay interleaved as written.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Element

	// text holds the character data that appears directly inside the
	// element, concatenated.
	text string
}

// Local returns the element's local name (for example "p" for w:p).
func (e *Element) Local() string { return e.Name.Local }

// Is reports whether the element is a WordprocessingML element with the
// given local name. An undeclared "w" prefix is accepted as well.
func (e *Element) Is(local string) bool {
	return e != nil && e.Name.Local == local && (e.Name.Space == nsW || e.Name.Space == "" || e.Name.Space == "w")
}

// Child returns the first direct child with the given local name, or nil.
func (e *Element) Child(local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Is(local) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given local name.
func (e *Element) ChildrenNamed(local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Is(local) {
			out = append(out, c)
		}
	}
	return out
}

// AttrValue returns the value of the first attribute with the given local name,
// regardless of its namespace prefix.
func (e *Element) AttrValue(local string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the character data directly inside the element.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}

// ErrNoRoot is returned when an XML part contains no elements.
var ErrNoRoot = errors.New("docx: xml part has no root element")

// parseElementTree decodes an XML stream into an Element tree and returns
// its root.
func parseElementTree(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attr: t.Copy().Attr}
			if len(stack) == 0 {
				if root == nil {
					root = el
				}
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// ParseElements decodes a word/document.xml stream and returns the ordered
// children of w:body.
func ParseElements(r io.Reader) ([]*Element, error) {
	root, err := parseElementTree(r)
	if err != nil {
		return nil, err
	}
	if !root.Is("document") {
		return nil, ErrMissingBody
	}
	body := root.Child("body")
	if body == nil {
		return nil, ErrMissingBody
	}
	return body.Children, nil
}
