package exercise

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fieldSchema is shared by every variant that embeds answer fields.
var fieldSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"answer": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":        "array",
					"prefixItems": []any{map[string]any{"type": "string"}, map[string]any{"type": "array", "items": map[string]any{"type": "string"}}},
					"minItems":    2,
					"maxItems":    2,
				},
			},
		},
		"alternates": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"maxItems": float64(MaxAlternates),
		},
		"shown":             map[string]any{"type": "boolean"},
		"explanation":       map[string]any{"type": "string"},
		"options":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"permutation_group": map[string]any{"type": "string"},
		"composite": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question_word": map[string]any{"type": "string"},
					"auxiliary":     map[string]any{"type": "string"},
					"subject":       map[string]any{"type": "string"},
					"verb":          map[string]any{"type": "string"},
					"complement":    map[string]any{"type": "string"},
					"adverb":        map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

// documentSchema validates the envelope of an exercise document from the
// content source. Variant payloads are kept permissive on purpose: absent
// optional fields default safely at parse time, and missing answers degrade
// to incorrect fields rather than ingest failures.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string", "minLength": 1},
		"unit_id": map[string]any{"type": "string"},
		"sequence": map[string]any{
			"type":    "integer",
			"minimum": float64(0),
		},
		"kind": map[string]any{
			"type": "string",
			"enum": []any{
				string(KindFlat), string(KindFillBlank), string(KindGrid),
				string(KindTable), string(KindGroupGrid), string(KindSelect),
				string(KindTrueFalse), string(KindReorder), string(KindDictation),
				string(KindSpeech), string(KindComposite),
			},
		},
		"grade_over": map[string]any{"type": "integer", "minimum": float64(0)},
		"fields":     map[string]any{"type": "array", "items": fieldSchema},
		"sentences": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":   map[string]any{"type": "string"},
					"blanks": map[string]any{"type": "array", "items": fieldSchema},
				},
			},
		},
		"sections": map[string]any{"type": "array"},
		"groups":   map[string]any{"type": "array"},
		"tokens":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"targets":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":        map[string]any{"type": "string"},
					"truth":       map[string]any{"type": "boolean"},
					"shown":       map[string]any{"type": "boolean"},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"truth"},
			},
		},
	},
	"required": []any{"id", "kind"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://exercise.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks a raw exercise document against the content-source
// schema.
func ValidateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	s, err := compiled()
	if err != nil {
		return err
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
