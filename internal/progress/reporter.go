// Package progress persists learner progress after verification. Reporting
// is fire-and-forget from the engine's point of view: a failed save never
// invalidates an already-computed grade.
package progress

import "context"

// Reporter is the single external collaborator the evaluation flow calls.
// Grades cross this boundary in [0,1]; any percentage scaling is the
// consumer's concern.
type Reporter interface {
	ReportGrade(ctx context.Context, exerciseID, unitID, userID string, grade float64) error
	ReportPosition(ctx context.Context, unitID, userID string, position int) error
}

// Entry is one learner/exercise progress row.
type Entry struct {
	UnitID     string  `json:"unit_id"`
	ExerciseID string  `json:"exercise_id,omitempty"`
	UserID     string  `json:"user_id"`
	Grade      float64 `json:"grade"`
	Position   int     `json:"position"`
	UpdatedAt  int64   `json:"updated_at"`
}

// NopReporter discards reports. Used in tests and when persistence is not
// configured.
type NopReporter struct{}

func (NopReporter) ReportGrade(context.Context, string, string, string, float64) error { return nil }
func (NopReporter) ReportPosition(context.Context, string, string, int) error          { return nil }
