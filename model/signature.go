package model

// RunSignature is the formatting of a single text or link run.
type RunSignature struct {
	FontSize     *int // half-points, nil when unset
	IsBold       bool
	IsUnderlined bool
}

// ParagraphSignature is the formatting of a whole paragraph: its
// paragraph-level run properties merged with the paragraph-only fields.
type ParagraphSignature struct {
	ID           string
	FontSize     *int
	IsBold       bool
	IsUnderlined bool
	JustifyClass string // "" when unset
	StyleName    string // "" when unset
}

// ParagraphProps holds the paragraph-only fields read from w:pPr. These are
// populated whenever w:pPr exists, even if the paragraph has no signature.
type ParagraphProps struct {
	ID           string
	StyleName    string
	JustifyClass string
}

// ClusterKey is the subset of a paragraph signature used to group
// paragraphs into style clusters. It is comparable.
type ClusterKey struct {
	HasFontSize  bool
	FontSize     int
	IsBold       bool
	IsUnderlined bool
	JustifyClass string
}

// Key returns the clustering key of the signature.
func (s *ParagraphSignature) Key() ClusterKey {
	k := ClusterKey{
		IsBold:       s.IsBold,
		IsUnderlined: s.IsUnderlined,
		JustifyClass: s.JustifyClass,
	}
	if s.FontSize != nil {
		k.HasFontSize = true
		k.FontSize = *s.FontSize
	}
	return k
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
