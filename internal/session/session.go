// Package session runs the lifecycle of one learner attempt at one
// exercise: Unanswered -> Answering -> Verified -> (Reset -> Answering).
package session

import (
	"errors"

	"github.com/lingua-loop/lingualms/internal/grading"
)

type State string

const (
	StateUnanswered State = "unanswered"
	StateAnswering  State = "answering"
	StateVerified   State = "verified"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrVerified    = errors.New("session already verified")
	ErrNotAnswered = errors.New("nothing answered")
)

// Session pairs a read-only exercise with a positionally-indexed response
// set. Responses are mutable until Verify freezes them; Reset discards them
// and starts over. The engine holds no state beyond what is stored here.
type Session struct {
	ID         string `json:"id"`
	ExerciseID string `json:"exercise_id"`
	UnitID     string `json:"unit_id"`
	UserID     string `json:"user_id"`
	State      State  `json:"state"`

	// Responses has one slot per flattened field. Shown fields are
	// pre-populated with their own answer and stay that way.
	Responses []string `json:"responses"`

	Result *grading.GradeResult `json:"result,omitempty"`

	// ProgressSaved reports whether the last verify reached the progress
	// store. False is a notification, never a rollback.
	ProgressSaved bool `json:"progress_saved"`

	StartedAt  int64 `json:"started_at"`
	VerifiedAt int64 `json:"verified_at,omitempty"`
}

// Answered reports whether at least one non-shown slot holds input.
func (s *Session) Answered(shown []bool) bool {
	for i, r := range s.Responses {
		if i < len(shown) && shown[i] {
			continue
		}
		if r != "" {
			return true
		}
	}
	return false
}
