package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLReporter upserts progress rows and appends an event per report so
// offline sites can replay grade history during sync.
type SQLReporter struct {
	db     *sql.DB
	events *EventRepo
}

func NewSQLReporter(db *sql.DB) *SQLReporter {
	return &SQLReporter{db: db, events: NewEventRepo(db)}
}

func (r *SQLReporter) ReportGrade(ctx context.Context, exerciseID, unitID, userID string, grade float64) error {
	if grade < 0 || grade > 1 {
		return fmt.Errorf("grade %v out of [0,1]", grade)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (unit_id, exercise_id, user_id, grade, position, updated_at)
		 VALUES ($1,$2,$3,$4,0,$5)
		 ON CONFLICT (unit_id, exercise_id, user_id) DO UPDATE SET
		   grade=EXCLUDED.grade, updated_at=EXCLUDED.updated_at`,
		unitID, exerciseID, userID, grade, time.Now().Unix())
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]any{
		"exercise_id": exerciseID, "unit_id": unitID, "user_id": userID, "grade": grade,
	})
	return r.events.Append(ctx, Event{Type: "GradeReported", Key: exerciseID, DataJSON: string(payload)})
}

func (r *SQLReporter) ReportPosition(ctx context.Context, unitID, userID string, position int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (unit_id, exercise_id, user_id, grade, position, updated_at)
		 VALUES ($1,'',$2,0,$3,$4)
		 ON CONFLICT (unit_id, exercise_id, user_id) DO UPDATE SET
		   position=EXCLUDED.position, updated_at=EXCLUDED.updated_at`,
		unitID, userID, position, time.Now().Unix())
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]any{
		"unit_id": unitID, "user_id": userID, "position": position,
	})
	return r.events.Append(ctx, Event{Type: "PositionAdvanced", Key: unitID, DataJSON: string(payload)})
}

// ListUnit returns all progress rows for a unit and user, newest first.
func (r *SQLReporter) ListUnit(ctx context.Context, unitID, userID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT unit_id, exercise_id, user_id, grade, position, updated_at
		 FROM progress WHERE unit_id=$1 AND user_id=$2 ORDER BY updated_at DESC`,
		unitID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UnitID, &e.ExerciseID, &e.UserID, &e.Grade, &e.Position, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
