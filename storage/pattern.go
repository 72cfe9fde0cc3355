package storage

import (
	"regexp"

	"github.com/poiesic/synapse/core"
)

// CompilePattern builds a case-insensitive matcher for a user-supplied
// pattern. The pattern is escaped before compilation so user input is always
// treated as a literal substring and cannot inject pattern syntax.
func CompilePattern(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(pattern))
}

// MatchNote reports whether the note's text or any of its tags matches.
func MatchNote(re *regexp.Regexp, note *core.Note) bool {
	if re.MatchString(note.Text) {
		return true
	}
	for _, tag := range note.Tags {
		if re.MatchString(tag) {
			return true
		}
	}
	return false
}
