package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolResults(correct ...bool) []FieldResult {
	out := make([]FieldResult, len(correct))
	for i, c := range correct {
		out[i] = FieldResult{Index: i, Correct: c}
		if c {
			out[i].Score = 1
		}
	}
	return out
}

func TestAggregateBasic(t *testing.T) {
	results := boolResults(true, false, true)
	shown := make([]bool, 3)
	assert.InDelta(t, 2.0/3.0, Aggregate(results, shown, 0), 1e-9)
}

func TestAggregateShownExcluded(t *testing.T) {
	// 5 fields, field 3 shown; other 4 correct -> 1.0.
	results := boolResults(true, true, true, true, true)
	results[2].Shown = true
	shown := []bool{false, false, true, false, false}
	assert.Equal(t, 1.0, Aggregate(results, shown, 0))

	// Shown field never reduces the grade even when the rest are wrong.
	results = boolResults(false, false)
	results[1] = FieldResult{Index: 1, Correct: true, Score: 1, Shown: true}
	assert.Equal(t, 0.0, Aggregate(results, []bool{false, true}, 0))
}

func TestAggregateAllShownVacuouslyCorrect(t *testing.T) {
	// Compatibility contract: zero computable fields, no explicit total -> 1.
	results := boolResults(false, false, false)
	shown := []bool{true, true, true}
	assert.Equal(t, 1.0, Aggregate(results, shown, 0))
	assert.Equal(t, 1.0, Aggregate(nil, nil, 0))
}

func TestAggregateGradeOver(t *testing.T) {
	results := boolResults(true, true)
	shown := make([]bool, 2)
	assert.InDelta(t, 0.5, Aggregate(results, shown, 4), 1e-9)

	// Explicit total smaller than successes clamps at 1.
	assert.Equal(t, 1.0, Aggregate(results, shown, 1))
}

func TestAggregateFuzzyScores(t *testing.T) {
	// Dictation-style grading averages raw scores, not thresholded booleans.
	results := []FieldResult{
		{Index: 0, Fuzzy: true, Score: 0.9, Correct: true},
		{Index: 1, Fuzzy: true, Score: 0.5, Correct: false},
	}
	assert.InDelta(t, 0.7, Aggregate(results, make([]bool, 2), 0), 1e-9)
}

func TestAggregateMonotonic(t *testing.T) {
	shown := make([]bool, 4)
	prev := -1.0
	for correct := 0; correct <= 4; correct++ {
		results := make([]FieldResult, 4)
		for i := range results {
			results[i] = FieldResult{Index: i, Correct: i < correct}
		}
		g := Aggregate(results, shown, 0)
		assert.Greater(t, g, prev)
		prev = g
	}
}

func TestAggregateBounds(t *testing.T) {
	// Scores above 1 by construction error still clamp.
	results := []FieldResult{{Index: 0, Fuzzy: true, Score: 3.0}}
	g := Aggregate(results, []bool{false}, 0)
	assert.Equal(t, 1.0, g)
}

func TestAggregateWeighted(t *testing.T) {
	got := AggregateWeighted([]Subtotal{
		{Score: 0.8, Weight: 0.8},
		{Score: 0.5, Weight: 0.2},
	})
	assert.InDelta(t, 0.74, got, 1e-9)
}

func TestAggregateWeightedEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, AggregateWeighted(nil))
	assert.Equal(t, 0.0, AggregateWeighted([]Subtotal{{Score: 1, Weight: 0}}))
	// Unequal weights renormalize.
	got := AggregateWeighted([]Subtotal{{Score: 1, Weight: 3}, {Score: 0, Weight: 1}})
	assert.InDelta(t, 0.75, got, 1e-9)
	// Clamped.
	assert.Equal(t, 1.0, AggregateWeighted([]Subtotal{{Score: 2, Weight: 1}}))
}
