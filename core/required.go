package core

import "strings"

// RequiredAttributes is the normalized list of attributes extracted from a
// search query. Order carries no meaning; entries are lowercase, trimmed,
// and unique.
type RequiredAttributes []string

// minRequiredLength is the shortest token accepted as a required attribute.
// Single characters are almost always extraction noise.
const minRequiredLength = 2

// NormalizeRequired lowercases, trims, deduplicates, and length-filters raw
// extracted attributes into a RequiredAttributes list. The relative order of
// first occurrences is preserved so that explanations read in query order.
func NormalizeRequired(raw []string) RequiredAttributes {
	normalized := make(RequiredAttributes, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, attr := range raw {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if len(attr) < minRequiredLength || seen[attr] {
			continue
		}
		seen[attr] = true
		normalized = append(normalized, attr)
	}

	return normalized
}
