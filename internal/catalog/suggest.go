package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultSimilarityThreshold is the lowest similarity reported as a suggestion
const DefaultSimilarityThreshold = 0.6

// Suggestion is the closest catalog product to an unmatched item name
type Suggestion struct {
	Product    string
	Company    string
	Similarity float64
}

// Similarity returns 1 - editDistance/maxLen over the lowercased, trimmed
// names. Two empty names are identical.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// Suggest returns the catalog product most similar to itemName when the
// similarity reaches threshold. Ties keep the earlier catalog entry.
func (c *Catalog) Suggest(itemName string, threshold float64) (Suggestion, bool) {
	var best Suggestion
	found := false
	bestOrder := 0
	for _, n := range c.needles {
		score := Similarity(itemName, n.product)
		if score < threshold {
			continue
		}
		if !found || score > best.Similarity || (score == best.Similarity && n.order < bestOrder) {
			best = Suggestion{Product: n.product, Company: n.company, Similarity: score}
			bestOrder = n.order
			found = true
		}
	}
	return best, found
}

// MatchName returns the candidate closest to name. An exact case-insensitive
// match, or a candidate containing name or contained in it, beats edit
// distance; otherwise the best similarity at or above threshold is returned.
func MatchName(name string, candidates []string, threshold float64) (string, bool) {
	key := normalizeName(name)
	if key == "" {
		return "", false
	}

	for _, c := range candidates {
		if normalizeName(c) == key {
			return c, true
		}
	}
	for _, c := range candidates {
		ck := normalizeName(c)
		if ck != "" && (strings.Contains(ck, key) || strings.Contains(key, ck)) {
			return c, true
		}
	}

	best, bestScore := "", -1.0
	for _, c := range candidates {
		if score := Similarity(key, normalizeName(c)); score >= threshold && score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore >= 0
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
