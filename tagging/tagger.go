// Package tagging derives tags for a note from fixed vocabularies.
//
// Tagging is a pure function of the note's text: the text is lowercased once
// and every vocabulary term found anywhere in it (substring containment, not
// word-bounded) becomes a tag. The result is deduplicated; order follows the
// vocabulary listing and is not significant.
package tagging

import "strings"

// Colors is the fixed color vocabulary.
var Colors = []string{
	"black", "white", "red", "blue", "green", "yellow",
	"grey", "gray", "brown", "purple", "orange", "pink",
}

// Objects is the fixed object vocabulary.
var Objects = []string{
	"shoe", "bag", "shirt", "laptop", "phone", "book",
	"dress", "watch", "bottle", "pen", "car", "bike",
}

// Extract returns the deduplicated union of vocabulary terms contained in
// text. Matching is case-insensitive. Empty input yields an empty result.
func Extract(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	seen := make(map[string]bool)
	for _, vocab := range [][]string{Colors, Objects} {
		for _, term := range vocab {
			if strings.Contains(lower, term) && !seen[term] {
				seen[term] = true
				tags = append(tags, term)
			}
		}
	}
	return tags
}
