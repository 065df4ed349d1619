package exercise

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("exercise not found")

// Store persists exercise definitions. Get is learner-safe (answer keys
// redacted, shown fields keep their pre-filled value); GetFull serves the
// grading engine.
type Store interface {
	Put(ctx context.Context, ex Exercise) error
	Get(ctx context.Context, id string) (Exercise, error)
	GetFull(ctx context.Context, id string) (Exercise, error)
	ListByUnit(ctx context.Context, unitID string) ([]Exercise, error)
}

// Redact strips answer keys from an exercise before it is served to a
// learner. Shown fields keep their primary answer since the UI pre-fills
// them; everything else loses answers, alternates and composite structures.
// True/false statements keep their text only.
func Redact(ex Exercise) Exercise {
	out := ex
	out.Fields = redactFields(ex.Fields)
	out.Targets = nil

	out.Sentences = make([]Sentence, len(ex.Sentences))
	for i, s := range ex.Sentences {
		out.Sentences[i] = Sentence{Text: s.Text, Blanks: redactFields(s.Blanks)}
	}
	out.Sections = make([]Section, len(ex.Sections))
	for i, sec := range ex.Sections {
		out.Sections[i] = redactSection(sec)
	}
	out.Groups = make([]SectionGroup, len(ex.Groups))
	for i, g := range ex.Groups {
		rg := SectionGroup{Title: g.Title, Sections: make([]Section, len(g.Sections))}
		for j, sec := range g.Sections {
			rg.Sections[j] = redactSection(sec)
		}
		out.Groups[i] = rg
	}
	out.Items = make([]Statement, len(ex.Items))
	for i, it := range ex.Items {
		out.Items[i] = Statement{Text: it.Text, Shown: it.Shown}
		if it.Shown {
			out.Items[i].Truth = it.Truth
		}
	}
	return out
}

func redactSection(sec Section) Section {
	out := Section{Title: sec.Title}
	out.Columns = make([]Column, len(sec.Columns))
	for i, c := range sec.Columns {
		out.Columns[i] = Column{Label: c.Label, Fields: redactFields(c.Fields)}
	}
	out.Rows = make([]Row, len(sec.Rows))
	for i, r := range sec.Rows {
		out.Rows[i] = Row{Label: r.Label, Fields: redactFields(r.Fields)}
	}
	return out
}

func redactFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		r := Field{
			Shown:            f.Shown,
			Options:          f.Options,
			PermutationGroup: f.PermutationGroup,
		}
		if f.Shown {
			r.Answer = Answer{Literal: f.Answer.Literal}
		}
		out[i] = r
	}
	return out
}

type memoryStore struct {
	mu        sync.RWMutex
	exercises map[string]Exercise
}

// NewInMemoryStore backs tests and single-process dev runs.
func NewInMemoryStore() Store {
	return &memoryStore{exercises: map[string]Exercise{}}
}

func (m *memoryStore) Put(_ context.Context, ex Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises[ex.ID] = ex
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (Exercise, error) {
	ex, err := m.GetFull(ctx, id)
	if err != nil {
		return Exercise{}, err
	}
	return Redact(ex), nil
}

func (m *memoryStore) GetFull(_ context.Context, id string) (Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ex, ok := m.exercises[id]
	if !ok {
		return Exercise{}, ErrNotFound
	}
	return ex, nil
}

func (m *memoryStore) ListByUnit(_ context.Context, unitID string) ([]Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Exercise
	for _, ex := range m.exercises {
		if ex.UnitID == unitID {
			out = append(out, Redact(ex))
		}
	}
	return out, nil
}
