// Package layout infers document structure from paragraph formatting. It
// groups paragraphs into style clusters and scores each cluster as a likely
// title, heading or body text style.
package layout

import (
	"strings"

	"github.com/tsawler/docxmd/model"
)

// StyleCluster is a group of paragraphs sharing the same formatting key.
type StyleCluster struct {
	Key     model.ClusterKey
	Matches []*model.Paragraph
}

// Contains reports whether p is a member of the cluster. A nil cluster
// contains nothing.
func (c *StyleCluster) Contains(p *model.Paragraph) bool {
	if c == nil {
		return false
	}
	for _, m := range c.Matches {
		if m == p {
			return true
		}
	}
	return false
}

// ScoredCluster is a cluster with its role scores.
type ScoredCluster struct {
	Cluster        *StyleCluster
	TitleScore     int
	HeadingScore   int
	ParagraphScore int

	// WordCount is the sum of the first-child word counts of all matches.
	WordCount int
}

// StylePrediction holds the three designated clusters. Any of them may be
// nil when no cluster qualifies; lookups against a nil cluster are false.
type StylePrediction struct {
	Paragraph *StyleCluster
	H1        *StyleCluster
	H2        *StyleCluster
}

// HeadingDepth returns 1 or 2 if p belongs to the H1 or H2 cluster, else 0.
func (sp StylePrediction) HeadingDepth(p *model.Paragraph) int {
	switch {
	case sp.H1.Contains(p):
		return 1
	case sp.H2.Contains(p):
		return 2
	}
	return 0
}

// shortTextWords is the exclusive upper bound on a cluster's first-child
// word total for it to look like a title or heading.
const shortTextWords = 10

// StyleClassifier clusters paragraphs by formatting and predicts which
// clusters are body text, titles and headings. The scoring weights are
// fixed.
type StyleClassifier struct{}

// NewStyleClassifier creates a new style classifier
func NewStyleClassifier() *StyleClassifier {
	return &StyleClassifier{}
}

// Cluster groups paragraphs with a signature by exact key equality, in
// first-occurrence order. Paragraphs without a signature are skipped.
func (sc *StyleClassifier) Cluster(paragraphs []*model.Paragraph) []*StyleCluster {
	var clusters []*StyleCluster
	index := make(map[model.ClusterKey]*StyleCluster)

	for _, p := range paragraphs {
		if p == nil || p.Signature == nil {
			continue
		}
		key := p.Signature.Key()
		if c, ok := index[key]; ok {
			c.Matches = append(c.Matches, p)
			continue
		}
		c := &StyleCluster{Key: key, Matches: []*model.Paragraph{p}}
		index[key] = c
		clusters = append(clusters, c)
	}

	return clusters
}

// Score clusters the paragraphs and scores every cluster against the
// others.
func (sc *StyleClassifier) Score(paragraphs []*model.Paragraph) []ScoredCluster {
	clusters := sc.Cluster(paragraphs)
	scored := make([]ScoredCluster, 0, len(clusters))
	for i, c := range clusters {
		scored = append(scored, scoreCluster(c, i, clusters))
	}
	return scored
}

// Classify predicts the body, title and heading clusters.
func (sc *StyleClassifier) Classify(paragraphs []*model.Paragraph) StylePrediction {
	return Select(sc.Score(paragraphs))
}

// Select picks the designated clusters from scored clusters. Order matters:
// the body style is chosen first and removed, then the title style, then
// the heading style.
func Select(scored []ScoredCluster) StylePrediction {
	var pred StylePrediction

	pred.Paragraph = best(scored, func(s ScoredCluster) int { return s.ParagraphScore })

	// The retention predicates keep clusters whose paragraph (then title)
	// score is at least their heading score. This is the observed behavior
	// and is kept until real documents show otherwise.
	candidates := filter(scored, func(s ScoredCluster) bool {
		return s.Cluster != pred.Paragraph && s.ParagraphScore >= s.HeadingScore
	})
	pred.H1 = best(candidates, func(s ScoredCluster) int { return s.TitleScore })

	candidates = filter(candidates, func(s ScoredCluster) bool {
		return s.Cluster != pred.H1 && s.TitleScore >= s.HeadingScore
	})
	pred.H2 = best(candidates, func(s ScoredCluster) int { return s.HeadingScore })

	return pred
}

// best returns the cluster with the highest score; ties keep the earliest.
func best(scored []ScoredCluster, score func(ScoredCluster) int) *StyleCluster {
	var top *ScoredCluster
	for i := range scored {
		if top == nil || score(scored[i]) > score(*top) {
			top = &scored[i]
		}
	}
	if top == nil {
		return nil
	}
	return top.Cluster
}

func filter(scored []ScoredCluster, keep func(ScoredCluster) bool) []ScoredCluster {
	var out []ScoredCluster
	for _, s := range scored {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// scoreCluster scores clusters[idx] against every other cluster.
func scoreCluster(c *StyleCluster, idx int, clusters []*StyleCluster) ScoredCluster {
	s := ScoredCluster{Cluster: c}
	key := c.Key

	// Largest font size: could be a title or heading
	if hasFontSize(key) && allOthers(clusters, idx, func(o *StyleCluster) bool {
		return !hasFontSize(o.Key) || o.Key.FontSize < key.FontSize
	}) {
		s.TitleScore++
		s.HeadingScore++
	}

	// Smallest font size: could be body text
	if hasFontSize(key) && allOthers(clusters, idx, func(o *StyleCluster) bool {
		return !hasFontSize(o.Key) || o.Key.FontSize > key.FontSize
	}) {
		s.ParagraphScore++
	}

	if key.IsBold {
		s.TitleScore++
		s.HeadingScore++
	} else {
		s.ParagraphScore++
	}

	if key.IsUnderlined {
		s.TitleScore++
		s.HeadingScore++
	} else {
		s.ParagraphScore++
	}

	if key.JustifyClass == "center" {
		s.TitleScore++
		s.HeadingScore++
	} else {
		s.ParagraphScore++
	}

	n := len(c.Matches)

	// Most matches: body text
	if allOthers(clusters, idx, func(o *StyleCluster) bool { return len(o.Matches) < n }) {
		s.ParagraphScore += 2
	}

	if n == 1 {
		s.TitleScore++
	}

	// Fewest matches: could be a heading
	if allOthers(clusters, idx, func(o *StyleCluster) bool { return len(o.Matches) > n }) {
		s.HeadingScore++
	}

	s.WordCount = firstChildWordTotal(c.Matches)
	if s.WordCount < shortTextWords {
		s.TitleScore++
		s.HeadingScore++
	}

	return s
}

// hasFontSize treats a zero size as unset.
func hasFontSize(k model.ClusterKey) bool {
	return k.HasFontSize && k.FontSize != 0
}

// allOthers reports whether pred holds for every cluster except
// clusters[idx]. It is vacuously true when there are no others.
func allOthers(clusters []*StyleCluster, idx int, pred func(*StyleCluster) bool) bool {
	for i, o := range clusters {
		if i == idx {
			continue
		}
		if !pred(o) {
			return false
		}
	}
	return true
}

// firstChildWordTotal sums, over all paragraphs, the number of
// space-separated words in the first child when it is non-empty text.
func firstChildWordTotal(paragraphs []*model.Paragraph) int {
	total := 0
	for _, p := range paragraphs {
		if len(p.Children) == 0 {
			continue
		}
		t, ok := p.Children[0].(*model.Text)
		if !ok || t.Value == "" {
			continue
		}
		total += len(strings.Split(t.Value, " "))
	}
	return total
}
