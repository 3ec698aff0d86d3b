package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxmd/model"
)

// runSignature reads the w:rPr child of el. It returns nil when el has no
// run properties.
func runSignature(el *Element) *model.RunSignature {
	rPr := el.Child("rPr")
	if rPr == nil {
		return nil
	}

	return &model.RunSignature{
		FontSize:     fontSize(rPr),
		IsBold:       toggleOn(rPr.Child("b")),
		IsUnderlined: underlined(rPr.Child("u")),
	}
}

// paragraphProps reads the paragraph-only fields of a w:p element.
func paragraphProps(p *Element) model.ParagraphProps {
	pPr := p.Child("pPr")
	if pPr == nil {
		return model.ParagraphProps{}
	}

	id, _ := p.AttrValue("paraId")
	style, _ := pPr.Child("pStyle").AttrValue("val")
	jc, _ := pPr.Child("jc").AttrValue("val")

	return model.ParagraphProps{
		ID:           id,
		StyleName:    style,
		JustifyClass: jc,
	}
}

// paragraphSignature builds the formatting signature of a w:p element from
// w:pPr and its w:rPr. It is nil unless both are present.
func paragraphSignature(p *Element) *model.ParagraphSignature {
	pPr := p.Child("pPr")
	if pPr == nil {
		return nil
	}

	run := runSignature(pPr)
	if run == nil {
		return nil
	}

	props := paragraphProps(p)

	return &model.ParagraphSignature{
		ID:           props.ID,
		FontSize:     run.FontSize,
		IsBold:       run.IsBold,
		IsUnderlined: run.IsUnderlined,
		JustifyClass: props.JustifyClass,
		StyleName:    props.StyleName,
	}
}

// fontSize parses w:sz in half-points.
func fontSize(rPr *Element) *int {
	val, ok := rPr.Child("sz").AttrValue("val")
	if !ok || val == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return nil
	}
	return &n
}

// toggleOn reports whether an OOXML toggle property (w:b, w:i, ...) is on.
// Presence turns it on unless w:val explicitly says otherwise.
func toggleOn(el *Element) bool {
	if el == nil {
		return false
	}
	val, ok := el.AttrValue("val")
	if !ok {
		return true
	}
	switch strings.ToLower(val) {
	case "false", "0", "off":
		return false
	}
	return true
}

// underlined reports whether w:u turns underlining on.
func underlined(el *Element) bool {
	if el == nil {
		return false
	}
	val, _ := el.AttrValue("val")
	switch strings.ToLower(val) {
	case "none", "false", "0":
		return false
	}
	return true
}
