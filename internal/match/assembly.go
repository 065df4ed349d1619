package match

import (
	"strings"

	"github.com/lingua-loop/lingualms/internal/textnorm"
)

// MatchAssembly reports whether user-assembled fragments, joined with single
// spaces, normalize-equal any of the target sentences. Used by drag-to-reorder
// exercises where the learner rebuilds a sentence from shuffled pieces.
func MatchAssembly(fragments []string, targets ...string) bool {
	joined := strings.Join(fragments, " ")
	return Matches(joined, targets...)
}

// SamePermutation reports whether got is a reordering of want, comparing
// normalized fragments as multisets. Used for permutation groups where any
// order of the same tokens is accepted.
func SamePermutation(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	counts := make(map[string]int, len(want))
	for _, w := range want {
		counts[textnorm.Normalize(w)]++
	}
	for _, g := range got {
		ng := textnorm.Normalize(g)
		if ng == "" {
			return false
		}
		counts[ng]--
		if counts[ng] < 0 {
			return false
		}
	}
	return true
}

// CompositeStructure is one structurally valid phrasing of a
// sentence-building answer. Slots are optional; an absent slot is the empty
// string. Order of concatenation is fixed: question word, auxiliary, subject,
// verb, complement, adverb.
type CompositeStructure struct {
	QuestionWord string `json:"question_word,omitempty"`
	Auxiliary    string `json:"auxiliary,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Verb         string `json:"verb,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Adverb       string `json:"adverb,omitempty"`
}

// Sentence builds the expected sentence for the structure.
func (c CompositeStructure) Sentence() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{c.QuestionWord, c.Auxiliary, c.Subject, c.Verb, c.Complement, c.Adverb} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}

func (c CompositeStructure) empty() bool { return c.Sentence() == "" }

// Weights for partial credit over the core slots. Renormalized over the slots
// a candidate actually declares.
const (
	subjectWeight    = 0.30
	verbWeight       = 0.45
	complementWeight = 0.25
)

// MatchComposite scores a free-typed answer against every candidate
// structure and returns the best score in [0,1]. A normalized exact match
// against any candidate's full sentence scores 1. Otherwise each candidate
// earns partial credit for the core slots (subject/verb/complement) found
// verbatim in the answer, weighted and renormalized over the slots the
// candidate declares. A candidate with no slots at all scores 0; malformed
// definitions degrade, they never fail the evaluation.
func MatchComposite(user string, candidates []CompositeStructure) float64 {
	nu := textnorm.Normalize(user)
	if nu == "" {
		return 0
	}
	for _, c := range candidates {
		if !c.empty() && nu == textnorm.Normalize(c.Sentence()) {
			return 1
		}
	}
	best := 0.0
	for _, c := range candidates {
		if s := partialComposite(nu, c); s > best {
			best = s
		}
	}
	if best > 1 {
		best = 1
	}
	return best
}

func partialComposite(normUser string, c CompositeStructure) float64 {
	type slot struct {
		text   string
		weight float64
	}
	slots := []slot{
		{c.Subject, subjectWeight},
		{c.Verb, verbWeight},
		{c.Complement, complementWeight},
	}
	totalWeight := 0.0
	earned := 0.0
	padded := " " + normUser + " "
	for _, s := range slots {
		ns := textnorm.Normalize(s.text)
		if ns == "" {
			continue
		}
		totalWeight += s.weight
		if strings.Contains(padded, " "+ns+" ") {
			earned += s.weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return earned / totalWeight
}
