package exercise

import (
	"encoding/json"
	"fmt"
)

// Parse validates and decodes an exercise document, then applies the safe
// defaults the content-source contract allows: absent alternates, grade-over
// and shown flags all default to zero values, and alternate lists are capped
// at MaxAlternates.
func Parse(raw []byte) (Exercise, error) {
	if err := ValidateDocument(raw); err != nil {
		return Exercise{}, err
	}
	var ex Exercise
	if err := json.Unmarshal(raw, &ex); err != nil {
		return Exercise{}, fmt.Errorf("decode exercise: %w", err)
	}
	applyDefaults(&ex)
	return ex, nil
}

func applyDefaults(ex *Exercise) {
	capFields(ex.Fields)
	for si := range ex.Sentences {
		capFields(ex.Sentences[si].Blanks)
	}
	for si := range ex.Sections {
		capSection(&ex.Sections[si])
	}
	for gi := range ex.Groups {
		for si := range ex.Groups[gi].Sections {
			capSection(&ex.Groups[gi].Sections[si])
		}
	}
	if ex.GradeOver < 0 {
		ex.GradeOver = 0
	}
}

func capSection(sec *Section) {
	for ci := range sec.Columns {
		capFields(sec.Columns[ci].Fields)
	}
	for ri := range sec.Rows {
		capFields(sec.Rows[ri].Fields)
	}
}

func capFields(fields []Field) {
	for i := range fields {
		if len(fields[i].Alternates) > MaxAlternates {
			fields[i].Alternates = fields[i].Alternates[:MaxAlternates]
		}
	}
}
