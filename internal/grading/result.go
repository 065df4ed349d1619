// Package grading evaluates a learner's response set against an exercise
// definition and aggregates per-field outcomes into a single grade in [0,1].
package grading

import "github.com/lingua-loop/lingualms/internal/match"

// FieldResult is the outcome for one gradable field. Score carries the raw
// fractional value for fuzzy-graded fields; Correct is the boolean view
// (threshold for fuzzy, matcher result otherwise). Shown fields are always
// correct and never counted in the grade denominator.
type FieldResult struct {
	Index       int        `json:"index"`
	Correct     bool       `json:"correct"`
	Score       float64    `json:"score"`
	Fuzzy       bool       `json:"fuzzy,omitempty"`
	Tier        match.Tier `json:"tier,omitempty"`
	Shown       bool       `json:"shown,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

// GradeResult is what one Verify produces.
type GradeResult struct {
	Grade    float64       `json:"grade"` // always in [0,1]
	PerField []FieldResult `json:"per_field"`
}

// CorrectCount counts boolean-correct fields, shown included.
func (g GradeResult) CorrectCount() int {
	n := 0
	for _, r := range g.PerField {
		if r.Correct {
			n++
		}
	}
	return n
}
