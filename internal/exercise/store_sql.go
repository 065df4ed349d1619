package exercise

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists exercises in the exercises table, body as JSON.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Put(ctx context.Context, ex Exercise) error {
	body, err := json.Marshal(ex)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exercises (id, unit_id, seq, kind, body_json, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (id) DO UPDATE SET unit_id=EXCLUDED.unit_id, seq=EXCLUDED.seq,
		   kind=EXCLUDED.kind, body_json=EXCLUDED.body_json`,
		ex.ID, ex.UnitID, ex.Sequence, string(ex.Kind), string(body), time.Now().Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Exercise, error) {
	ex, err := s.GetFull(ctx, id)
	if err != nil {
		return Exercise{}, err
	}
	return Redact(ex), nil
}

func (s *SQLStore) GetFull(ctx context.Context, id string) (Exercise, error) {
	row := s.db.QueryRowContext(ctx, `SELECT body_json FROM exercises WHERE id=$1`, id)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exercise{}, ErrNotFound
		}
		return Exercise{}, err
	}
	var ex Exercise
	if err := json.Unmarshal([]byte(body), &ex); err != nil {
		return Exercise{}, err
	}
	return ex, nil
}

func (s *SQLStore) ListByUnit(ctx context.Context, unitID string) ([]Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body_json FROM exercises WHERE unit_id=$1 ORDER BY seq`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Exercise
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var ex Exercise
		if err := json.Unmarshal([]byte(body), &ex); err != nil {
			return nil, err
		}
		out = append(out, Redact(ex))
	}
	return out, rows.Err()
}
