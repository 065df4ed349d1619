package grading

import (
	"fmt"
	"strings"

	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/match"
)

// Strategy grades a single field against one raw response. Implementations
// never fail: a malformed field degrades to an incorrect result.
type Strategy interface {
	Grade(f exercise.Field, response string) FieldResult
}

type Option func(*config)

type config struct {
	fuzzyThreshold float64
	strategies     map[exercise.Kind]Strategy
}

// WithFuzzyThreshold sets the similarity score at which a fuzzy field counts
// as boolean-correct. Default 0.8.
func WithFuzzyThreshold(v float64) Option {
	return func(c *config) { c.fuzzyThreshold = v }
}

// WithStrategy overrides or adds the strategy for a kind.
func WithStrategy(k exercise.Kind, s Strategy) Option {
	return func(c *config) { c.strategies[k] = s }
}

// Evaluator dispatches each field of an exercise to the strategy declared
// for the exercise kind and aggregates the results. It holds no per-exercise
// state; one Evaluator serves any number of concurrent evaluations.
type Evaluator struct {
	strategies map[exercise.Kind]Strategy
}

// NewEvaluator installs the built-in strategies.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := &config{
		fuzzyThreshold: 0.8,
		strategies:     map[exercise.Kind]Strategy{},
	}
	for _, o := range opts {
		o(cfg)
	}
	exact := exactStrategy{}
	fuzzy := fuzzyStrategy{threshold: cfg.fuzzyThreshold}
	builtin := map[exercise.Kind]Strategy{
		exercise.KindFlat:      exact,
		exercise.KindFillBlank: exact,
		exercise.KindGrid:      exact,
		exercise.KindTable:     exact,
		exercise.KindGroupGrid: exact,
		exercise.KindSelect:    exact,
		exercise.KindTrueFalse: exact,
		exercise.KindReorder:   assemblyStrategy{},
		exercise.KindDictation: dictationStrategy{fuzzy: fuzzy},
		exercise.KindSpeech:    fuzzy,
		exercise.KindComposite: compositeStrategy{threshold: cfg.fuzzyThreshold},
	}
	for k, s := range cfg.strategies {
		builtin[k] = s
	}
	return &Evaluator{strategies: builtin}
}

// Evaluate grades one frozen response set against an exercise definition.
// responses are positional over the flattened field index; missing trailing
// slots read as unanswered. The only error is an unindexable definition.
func (e *Evaluator) Evaluate(ex exercise.Exercise, responses []string) (GradeResult, error) {
	ix, err := exercise.Index(ex)
	if err != nil {
		return GradeResult{}, fmt.Errorf("index exercise %s: %w", ex.ID, err)
	}
	strat, ok := e.strategies[ex.Kind]
	if !ok {
		strat = exactStrategy{}
	}

	perField := make([]FieldResult, ix.Len())
	shown := make([]bool, ix.Len())
	for i, idxf := range ix.Fields() {
		f := idxf.Field
		if f.Shown {
			perField[i] = FieldResult{Index: i, Correct: true, Score: 1, Shown: true}
			shown[i] = true
			continue
		}
		resp := ""
		if i < len(responses) {
			resp = responses[i]
		}
		fr := strat.Grade(f, resp)
		fr.Index = i
		if !fr.Correct {
			fr.Explanation = f.Explanation
		}
		perField[i] = fr
	}

	applyPermutationGroups(ix, responses, perField)

	return GradeResult{
		Grade:    Aggregate(perField, shown, ex.GradeOver),
		PerField: perField,
	}, nil
}

// applyPermutationGroups upgrades fields whose group, taken as a whole, is a
// valid reordering of the group's answers. Order among such fields carries
// no meaning (drag targets, list answers in any order).
func applyPermutationGroups(ix *exercise.FieldIndex, responses []string, perField []FieldResult) {
	groups := map[string][]int{}
	for i, idxf := range ix.Fields() {
		if g := idxf.Field.PermutationGroup; g != "" && !idxf.Field.Shown {
			groups[g] = append(groups[g], i)
		}
	}
	for _, members := range groups {
		answers := make([]string, 0, len(members))
		got := make([]string, 0, len(members))
		for _, i := range members {
			f, _ := ix.At(i)
			answers = append(answers, f.Field.Answer.Literal)
			if i < len(responses) {
				got = append(got, responses[i])
			} else {
				got = append(got, "")
			}
		}
		if match.SamePermutation(got, answers) {
			for _, i := range members {
				perField[i].Correct = true
				perField[i].Score = 1
				perField[i].Explanation = ""
			}
		}
	}
}

// --- Strategies ---

type exactStrategy struct{}

func (exactStrategy) Grade(f exercise.Field, response string) FieldResult {
	if f.Answer.IsPermutable() {
		ok := match.SamePermutation(strings.Fields(response), f.Answer.Permutable) ||
			match.Matches(response, f.Answers()...)
		return boolResult(ok)
	}
	return boolResult(match.Matches(response, f.Answers()...))
}

type assemblyStrategy struct{}

func (assemblyStrategy) Grade(f exercise.Field, response string) FieldResult {
	return boolResult(match.MatchAssembly(strings.Fields(response), f.Answers()...))
}

type fuzzyStrategy struct{ threshold float64 }

func (s fuzzyStrategy) Grade(f exercise.Field, response string) FieldResult {
	score := match.Similarity(response, f.Answers()...)
	return FieldResult{
		Correct: score >= s.threshold,
		Score:   score,
		Fuzzy:   true,
		Tier:    match.TierFor(score),
	}
}

// dictationStrategy accepts a punctuation-perfect transcription outright,
// then falls back to fuzzy scoring with punctuation normalized away.
type dictationStrategy struct{ fuzzy fuzzyStrategy }

func (s dictationStrategy) Grade(f exercise.Field, response string) FieldResult {
	if match.MatchesPunct(response, f.Answers()...) {
		return FieldResult{Correct: true, Score: 1, Fuzzy: true, Tier: match.TierHigh}
	}
	return s.fuzzy.Grade(f, response)
}

type compositeStrategy struct{ threshold float64 }

func (s compositeStrategy) Grade(f exercise.Field, response string) FieldResult {
	score := match.MatchComposite(response, f.Composite)
	return FieldResult{
		Correct: score >= s.threshold,
		Score:   score,
		Fuzzy:   true,
		Tier:    match.TierFor(score),
	}
}

func boolResult(ok bool) FieldResult {
	fr := FieldResult{Correct: ok}
	if ok {
		fr.Score = 1
	}
	return fr
}
