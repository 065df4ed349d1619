package exercise

import (
	"fmt"
	"strconv"
	"strings"
)

// Path locates a field inside a variant-shaped exercise body. Unused
// coordinates are -1. Path is comparable, so it keys the reverse mapping
// directly.
type Path struct {
	Group    int
	Section  int
	Column   int
	Row      int
	Field    int
	Sentence int
	Blank    int
}

func emptyPath() Path {
	return Path{Group: -1, Section: -1, Column: -1, Row: -1, Field: -1, Sentence: -1, Blank: -1}
}

// FlatPath addresses position i in a flat field list (also true/false items
// and the single reorder target).
func FlatPath(i int) Path {
	p := emptyPath()
	p.Field = i
	return p
}

// GridPath addresses (section, column, field).
func GridPath(section, column, field int) Path {
	p := emptyPath()
	p.Section, p.Column, p.Field = section, column, field
	return p
}

// TablePath addresses (section, row, field).
func TablePath(section, row, field int) Path {
	p := emptyPath()
	p.Section, p.Row, p.Field = section, row, field
	return p
}

// GroupPath addresses (group, section, column, field).
func GroupPath(group, section, column, field int) Path {
	p := emptyPath()
	p.Group, p.Section, p.Column, p.Field = group, section, column, field
	return p
}

// BlankPath addresses (sentence, blank) in a fill-in-the-blank exercise.
func BlankPath(sentence, blank int) Path {
	p := emptyPath()
	p.Sentence, p.Blank = sentence, blank
	return p
}

func (p Path) String() string {
	var parts []string
	add := func(tag string, v int) {
		if v >= 0 {
			parts = append(parts, tag+strconv.Itoa(v))
		}
	}
	add("g", p.Group)
	add("s", p.Section)
	add("c", p.Column)
	add("r", p.Row)
	add("t", p.Sentence)
	add("b", p.Blank)
	add("f", p.Field)
	return strings.Join(parts, ".")
}

// IndexedField is one gradable field with its stable linear position and
// structural origin.
type IndexedField struct {
	Linear int
	Path   Path
	Field  Field
}

// FieldIndex is the flattened view of one exercise: a linear field sequence
// plus bidirectional path mappings. Building it is pure — indexing the same
// definition twice yields identical results, which is what makes reset and
// retry deterministic.
type FieldIndex struct {
	fields []IndexedField
	byPath map[Path]int
}

func (ix *FieldIndex) Len() int { return len(ix.fields) }

// Fields returns the linear sequence. Callers must not mutate it.
func (ix *FieldIndex) Fields() []IndexedField { return ix.fields }

// At returns the field at linear position i.
func (ix *FieldIndex) At(i int) (IndexedField, bool) {
	if i < 0 || i >= len(ix.fields) {
		return IndexedField{}, false
	}
	return ix.fields[i], true
}

// Linear maps a structural path back to its linear position.
func (ix *FieldIndex) Linear(p Path) (int, bool) {
	i, ok := ix.byPath[p]
	return i, ok
}

func (ix *FieldIndex) add(p Path, f Field) {
	ix.byPath[p] = len(ix.fields)
	ix.fields = append(ix.fields, IndexedField{Linear: len(ix.fields), Path: p, Field: f})
}

// Index flattens an exercise into its gradable fields in structural order.
// Structural order, never user-edit order, defines the linear index. Unknown
// kinds are the only hard error; malformed bodies inside a known kind
// flatten to whatever fields they do declare.
func Index(ex Exercise) (*FieldIndex, error) {
	ix := &FieldIndex{byPath: map[Path]int{}}
	switch ex.Kind {
	case KindFlat, KindSelect, KindDictation, KindSpeech, KindComposite:
		for i, f := range ex.Fields {
			ix.add(FlatPath(i), f)
		}
	case KindFillBlank:
		for si, sen := range ex.Sentences {
			blanks := strings.Count(sen.Text, BlankMarker)
			if blanks > len(sen.Blanks) {
				blanks = len(sen.Blanks)
			}
			if blanks == 0 && len(sen.Blanks) > 0 {
				// No marker in the text; grade declared blanks anyway.
				blanks = len(sen.Blanks)
			}
			for bi := 0; bi < blanks; bi++ {
				ix.add(BlankPath(si, bi), sen.Blanks[bi])
			}
		}
	case KindGrid:
		for si, sec := range ex.Sections {
			for ci, col := range sec.Columns {
				for fi, f := range col.Fields {
					ix.add(GridPath(si, ci, fi), f)
				}
			}
		}
	case KindTable:
		for si, sec := range ex.Sections {
			for ri, row := range sec.Rows {
				for fi, f := range row.Fields {
					ix.add(TablePath(si, ri, fi), f)
				}
			}
		}
	case KindGroupGrid:
		for gi, grp := range ex.Groups {
			for si, sec := range grp.Sections {
				for ci, col := range sec.Columns {
					for fi, f := range col.Fields {
						ix.add(GroupPath(gi, si, ci, fi), f)
					}
				}
			}
		}
	case KindTrueFalse:
		for i, item := range ex.Items {
			f := Field{
				Answer:      Answer{Literal: strconv.FormatBool(item.Truth)},
				Shown:       item.Shown,
				Explanation: item.Explanation,
				Options:     []string{"true", "false"},
			}
			ix.add(FlatPath(i), f)
		}
	case KindReorder:
		// One gradable unit: the assembled sentence, accepted against every
		// declared target.
		f := Field{}
		if len(ex.Targets) > 0 {
			f.Answer = Answer{Literal: ex.Targets[0]}
			f.Alternates = append([]string(nil), ex.Targets[1:]...)
		}
		ix.add(FlatPath(0), f)
	default:
		return nil, fmt.Errorf("unknown exercise kind %q", ex.Kind)
	}
	return ix, nil
}

// SentenceSegments splits a fill-in-the-blank sentence around its blank
// markers for rendering. Degenerate inputs return the whole text as one
// segment.
func SentenceSegments(s Sentence) []string {
	return strings.Split(s.Text, BlankMarker)
}
