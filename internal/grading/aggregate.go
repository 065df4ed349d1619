package grading

// Aggregate folds per-field results into one grade. Fields flagged in shown
// are excluded from the denominator and contribute nothing negative; fuzzy
// fields contribute their raw score, boolean fields contribute 0 or 1.
// explicitTotal (the exercise's grade-over) overrides the computable count
// when > 0. An exercise with zero computable fields and no explicit total is
// vacuously fully correct — a compatibility contract for all-shown
// exercises, not a bug.
func Aggregate(results []FieldResult, shown []bool, explicitTotal int) float64 {
	successes := 0.0
	computable := 0
	for i, r := range results {
		if (i < len(shown) && shown[i]) || r.Shown {
			continue
		}
		computable++
		if r.Fuzzy {
			successes += r.Score
		} else if r.Correct {
			successes++
		}
	}
	total := computable
	if explicitTotal > 0 {
		total = explicitTotal
	}
	if total == 0 {
		return 1
	}
	return clamp01(successes / float64(total))
}

// Subtotal is one weighted component of a multi-part exercise, e.g.
// completion quizzes at weight 0.8 plus a recognition task at 0.2.
type Subtotal struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// AggregateWeighted computes Σ(score·weight) / Σ(weight), clamped to [0,1].
// Non-positive weights are skipped; no usable subtotals yields 0.
func AggregateWeighted(subtotals []Subtotal) float64 {
	num, den := 0.0, 0.0
	for _, s := range subtotals {
		if s.Weight <= 0 {
			continue
		}
		num += s.Score * s.Weight
		den += s.Weight
	}
	if den == 0 {
		return 0
	}
	return clamp01(num / den)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
