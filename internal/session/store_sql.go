package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lingua-loop/lingualms/internal/grading"
)

// SQLStore persists sessions with responses and results as JSON columns.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, sess Session) error {
	resp, err := json.Marshal(sess.Responses)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, exercise_id, unit_id, user_id, state, responses_json, grade, result_json, progress_saved, started_at, verified_at)
		 VALUES ($1,$2,$3,$4,$5,$6,0,'',FALSE,$7,0)`,
		sess.ID, sess.ExerciseID, sess.UnitID, sess.UserID, string(sess.State), string(resp), sess.StartedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, exercise_id, unit_id, user_id, state, responses_json, result_json, progress_saved, started_at, verified_at
		 FROM sessions WHERE id=$1`, id)
	var sess Session
	var state, respJSON, resultJSON string
	if err := row.Scan(&sess.ID, &sess.ExerciseID, &sess.UnitID, &sess.UserID, &state,
		&respJSON, &resultJSON, &sess.ProgressSaved, &sess.StartedAt, &sess.VerifiedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	sess.State = State(state)
	if err := json.Unmarshal([]byte(respJSON), &sess.Responses); err != nil {
		sess.Responses = nil
	}
	if resultJSON != "" {
		var result grading.GradeResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err == nil {
			sess.Result = &result
		}
	}
	return sess, nil
}

func (s *SQLStore) Update(ctx context.Context, sess Session) error {
	resp, err := json.Marshal(sess.Responses)
	if err != nil {
		return err
	}
	resultJSON := ""
	grade := 0.0
	if sess.Result != nil {
		buf, err := json.Marshal(sess.Result)
		if err != nil {
			return err
		}
		resultJSON = string(buf)
		grade = sess.Result.Grade
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET state=$1, responses_json=$2, grade=$3, result_json=$4, progress_saved=$5, verified_at=$6
		 WHERE id=$7`,
		string(sess.State), string(resp), grade, resultJSON, sess.ProgressSaved, sess.VerifiedAt, sess.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
