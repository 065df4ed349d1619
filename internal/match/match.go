// Package match implements the comparison primitives used by the grading
// engine: exact matching against alternative-answer sets, edit-distance
// similarity for dictation-style input, and sequence/composite matching for
// reordering and sentence-building exercises.
package match

import "github.com/lingua-loop/lingualms/internal/textnorm"

// Matches reports whether user equals any of the alternatives after
// normalization. Alternatives are a set, not a preference list; empty
// alternatives are skipped. An empty user answer never matches, even against
// an empty alternative.
func Matches(user string, alts ...string) bool {
	nu := textnorm.Normalize(user)
	if nu == "" {
		return false
	}
	for _, alt := range alts {
		if alt == "" {
			continue
		}
		if nu == textnorm.Normalize(alt) {
			return true
		}
	}
	return false
}

// MatchesPunct is Matches with punctuation retained, for dictation variants
// that grade comma and terminal punctuation placement.
func MatchesPunct(user string, alts ...string) bool {
	nu := textnorm.Normalize(user, textnorm.KeepPunctuation())
	if nu == "" {
		return false
	}
	for _, alt := range alts {
		if alt == "" {
			continue
		}
		if nu == textnorm.Normalize(alt, textnorm.KeepPunctuation()) {
			return true
		}
	}
	return false
}
