// Package textnorm canonicalizes learner input and answer keys before
// comparison. Accents, case, punctuation and whitespace never decide
// correctness on their own.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Option func(*config)

type config struct {
	keepPunct bool
}

// KeepPunctuation retains ",", "!" and "?" after normalization. Dictation
// exercises that grade punctuation placement pass this per call; everything
// else strips punctuation entirely.
func KeepPunctuation() Option { return func(c *config) { c.keepPunct = true } }

// stripMarks builds a transformer removing combining diacritical marks left
// behind by NFD decomposition (U+0300..U+036F and friends). Chained
// transformers carry internal state, so each call gets its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// Normalize lowercases, decomposes and strips diacritics, drops characters
// outside [a-z0-9 ], collapses whitespace runs and trims. The step order is a
// compatibility contract with stored answer keys; do not reorder.
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string, opts ...Option) string {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks(), s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case cfg.keepPunct && (r == ',' || r == '!' || r == '?'):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			// skip
		}
	}
	return b.String()
}

// Empty reports whether s normalizes to the empty string, i.e. the learner
// has not really answered. An empty answer is never correct.
func Empty(s string) bool { return Normalize(s) == "" }
