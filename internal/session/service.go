package session

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/grading"
	"github.com/lingua-loop/lingualms/internal/progress"
)

// Service orchestrates verification: it owns no grading logic itself, it
// wires the field index, the evaluator and the progress reporter together
// once per Verify.
type Service struct {
	sessions  Store
	exercises exercise.Store
	eval      *grading.Evaluator
	reporter  progress.Reporter
}

func NewService(sessions Store, exercises exercise.Store, eval *grading.Evaluator, reporter progress.Reporter) *Service {
	if reporter == nil {
		reporter = progress.NopReporter{}
	}
	return &Service{sessions: sessions, exercises: exercises, eval: eval, reporter: reporter}
}

// Start creates a fresh session for an exercise. Shown fields come
// pre-populated with their own answer; everything else is blank.
func (s *Service) Start(ctx context.Context, exerciseID, userID string) (Session, error) {
	ex, err := s.exercises.GetFull(ctx, exerciseID)
	if err != nil {
		return Session{}, err
	}
	responses, _, err := freshResponses(ex)
	if err != nil {
		return Session{}, err
	}
	sess := Session{
		ID:         uuid.NewString(),
		ExerciseID: ex.ID,
		UnitID:     ex.UnitID,
		UserID:     userID,
		State:      StateUnanswered,
		Responses:  responses,
		StartedAt:  time.Now().Unix(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.sessions.Get(ctx, id)
}

// Save records responses by linear field index. Saves are rejected once the
// session is verified and silently skip shown slots and out-of-range
// indexes.
func (s *Service) Save(ctx context.Context, id string, updates map[int]string) (Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.State == StateVerified {
		return Session{}, ErrVerified
	}
	ex, err := s.exercises.GetFull(ctx, sess.ExerciseID)
	if err != nil {
		return Session{}, err
	}
	_, shownMask, err := freshResponses(ex)
	if err != nil {
		return Session{}, err
	}
	for i, v := range updates {
		if i < 0 || i >= len(sess.Responses) {
			continue
		}
		if shownMask[i] {
			continue
		}
		sess.Responses[i] = v
	}
	sess.State = StateAnswering
	if err := s.sessions.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Verify freezes the response set, grades it and reports progress. An
// all-empty response set is refused with ErrNotAnswered and the session
// stays answerable. A failed progress save is surfaced via ProgressSaved,
// never as an error: the learner keeps their grade.
func (s *Service) Verify(ctx context.Context, id string) (Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.State == StateVerified {
		return sess, nil
	}
	ex, err := s.exercises.GetFull(ctx, sess.ExerciseID)
	if err != nil {
		return Session{}, err
	}
	_, shownMask, err := freshResponses(ex)
	if err != nil {
		return Session{}, err
	}
	if !sess.Answered(shownMask) && anyComputable(shownMask) {
		return Session{}, ErrNotAnswered
	}

	result, err := s.eval.Evaluate(ex, sess.Responses)
	if err != nil {
		return Session{}, err
	}
	sess.Result = &result
	sess.State = StateVerified
	sess.VerifiedAt = time.Now().Unix()

	sess.ProgressSaved = true
	if err := s.reporter.ReportGrade(ctx, ex.ID, ex.UnitID, sess.UserID, result.Grade); err != nil {
		log.Printf("progress report failed for session %s: %v", sess.ID, err)
		sess.ProgressSaved = false
	} else if err := s.reporter.ReportPosition(ctx, ex.UnitID, sess.UserID, ex.Sequence); err != nil {
		log.Printf("position report failed for session %s: %v", sess.ID, err)
		sess.ProgressSaved = false
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Reset discards responses and grade, returning to Answering with only the
// shown fields populated.
func (s *Service) Reset(ctx context.Context, id string) (Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	ex, err := s.exercises.GetFull(ctx, sess.ExerciseID)
	if err != nil {
		return Session{}, err
	}
	responses, _, err := freshResponses(ex)
	if err != nil {
		return Session{}, err
	}
	sess.Responses = responses
	sess.Result = nil
	sess.State = StateAnswering
	sess.VerifiedAt = 0
	sess.ProgressSaved = false
	if err := s.sessions.Update(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// freshResponses builds the blank response slate and shown mask for an
// exercise. Indexing is pure, so rebuilding it here always agrees with what
// the evaluator will derive at verify time.
func freshResponses(ex exercise.Exercise) ([]string, []bool, error) {
	ix, err := exercise.Index(ex)
	if err != nil {
		return nil, nil, err
	}
	responses := make([]string, ix.Len())
	shown := make([]bool, ix.Len())
	for i, f := range ix.Fields() {
		if f.Field.Shown {
			responses[i] = f.Field.Answer.Literal
			shown[i] = true
		}
	}
	return responses, shown, nil
}

func anyComputable(shown []bool) bool {
	for _, s := range shown {
		if !s {
			return true
		}
	}
	return false
}
