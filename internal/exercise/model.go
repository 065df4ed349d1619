// Package exercise defines the exercise content model: a tagged union of
// variant shapes fetched from the content source, and the field index that
// flattens any variant into one linear sequence of gradable fields.
package exercise

import (
	"encoding/json"
	"fmt"

	"github.com/lingua-loop/lingualms/internal/match"
)

// Kind discriminates the exercise variants. The grading engine dispatches on
// it; anything structural about a variant lives here, not in the engine.
type Kind string

const (
	KindFlat      Kind = "flat"       // flat list of typed fields
	KindFillBlank Kind = "fill_blank" // sentences split on a blank marker
	KindGrid      Kind = "grid"       // sections -> columns -> fields
	KindTable     Kind = "table"      // sections -> rows -> fields
	KindGroupGrid Kind = "group_grid" // groups -> sections -> columns -> fields
	KindSelect    Kind = "select"     // choose from options
	KindTrueFalse Kind = "true_false" // statement judgments
	KindReorder   Kind = "reorder"    // drag fragments into a sentence
	KindDictation Kind = "dictation"  // free-typed transcription, fuzzy graded
	KindSpeech    Kind = "speech"     // recognized speech transcript, fuzzy graded
	KindComposite Kind = "composite"  // sentence building from grammar slots
)

// MaxAlternates bounds the alternative-answer list per field.
const MaxAlternates = 12

// BlankMarker splits fill-in-the-blank sentence text into segments; each
// occurrence is one gradable blank.
const BlankMarker = "___"

// Answer is the sum of a literal answer string and a permutable fragment set
// (fragments accepted in any order). JSON form is either a plain string or a
// two-element tuple [display, [fragments...]].
type Answer struct {
	Literal    string
	Permutable []string
}

func (a Answer) IsPermutable() bool { return len(a.Permutable) > 0 }

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Literal = s
		a.Permutable = nil
		return nil
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("answer must be a string or [display, fragments] tuple")
	}
	if len(tuple) != 2 {
		return fmt.Errorf("answer tuple must have exactly 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &a.Literal); err != nil {
		return fmt.Errorf("answer tuple display: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &a.Permutable); err != nil {
		return fmt.Errorf("answer tuple fragments: %w", err)
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsPermutable() {
		return json.Marshal([]interface{}{a.Literal, a.Permutable})
	}
	return json.Marshal(a.Literal)
}

// Field is the atomic gradable unit.
type Field struct {
	Answer           Answer                     `json:"answer"`
	Alternates       []string                   `json:"alternates,omitempty"` // capped at MaxAlternates
	Shown            bool                       `json:"shown,omitempty"`
	Explanation      string                     `json:"explanation,omitempty"`
	Options          []string                   `json:"options,omitempty"`
	PermutationGroup string                     `json:"permutation_group,omitempty"`
	Composite        []match.CompositeStructure `json:"composite,omitempty"`
}

// Answers returns the primary answer followed by the alternates, the set the
// matcher compares against.
func (f Field) Answers() []string {
	out := make([]string, 0, 1+len(f.Alternates))
	if f.Answer.Literal != "" {
		out = append(out, f.Answer.Literal)
	}
	out = append(out, f.Alternates...)
	return out
}

type Column struct {
	Label  string  `json:"label,omitempty"`
	Fields []Field `json:"fields"`
}

type Row struct {
	Label  string  `json:"label,omitempty"`
	Fields []Field `json:"fields"`
}

type Section struct {
	Title   string   `json:"title,omitempty"`
	Columns []Column `json:"columns,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
}

type SectionGroup struct {
	Title    string    `json:"title,omitempty"`
	Sections []Section `json:"sections"`
}

// Sentence is one fill-in-the-blank sentence. Text contains BlankMarker once
// per blank; Blanks holds the matching answer fields in marker order.
type Sentence struct {
	Text   string  `json:"text"`
	Blanks []Field `json:"blanks"`
}

// Statement is one true/false judgment item.
type Statement struct {
	Text        string `json:"text"`
	Truth       bool   `json:"truth"`
	Shown       bool   `json:"shown,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Exercise is the discriminated union served by the content source. Exactly
// one variant payload is populated for a given Kind; the engine treats the
// whole value as read-only.
type Exercise struct {
	ID       string `json:"id"`
	UnitID   string `json:"unit_id"`
	Sequence int    `json:"sequence"`
	Kind     Kind   `json:"kind"`

	// GradeOver overrides the raw computable-field count as the grading
	// denominator when > 0.
	GradeOver int `json:"grade_over,omitempty"`

	Fields    []Field        `json:"fields,omitempty"`    // flat, select, dictation, speech, composite
	Sections  []Section      `json:"sections,omitempty"`  // grid (columns) and table (rows)
	Groups    []SectionGroup `json:"groups,omitempty"`    // group_grid
	Sentences []Sentence     `json:"sentences,omitempty"` // fill_blank
	Tokens    []string       `json:"tokens,omitempty"`    // reorder: the draggable fragments
	Targets   []string       `json:"targets,omitempty"`   // reorder: acceptable sentences
	Items     []Statement    `json:"items,omitempty"`     // true_false
}
