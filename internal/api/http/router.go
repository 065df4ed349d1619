// Package http exposes the evaluation engine over a small JSON API: exercise
// ingest and fetch, verify sessions, unit progress.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/progress"
	"github.com/lingua-loop/lingualms/internal/session"
)

// ProgressLister serves unit progress reads. Satisfied by
// progress.SQLReporter.
type ProgressLister interface {
	ListUnit(ctx context.Context, unitID, userID string) ([]progress.Entry, error)
}

// Deps carries everything the routes need.
type Deps struct {
	Exercises     exercise.Store
	Sessions      *session.Service
	Progress      ProgressLister
	PassThreshold float64
}

// Mount attaches all routes to r.
func Mount(r chi.Router, d Deps) {
	r.Put("/exercises", PutExerciseHandler(d.Exercises))
	r.Get("/exercises/{exerciseID}", GetExerciseHandler(d.Exercises))
	r.Get("/units/{unitID}/exercises", ListUnitExercisesHandler(d.Exercises))

	r.Post("/sessions", StartSessionHandler(d.Sessions))
	r.Get("/sessions/{sessionID}", GetSessionHandler(d.Sessions))
	r.Put("/sessions/{sessionID}/responses", SaveResponsesHandler(d.Sessions))
	r.Post("/sessions/{sessionID}/verify", VerifyHandler(d.Sessions, d.PassThreshold))
	r.Post("/sessions/{sessionID}/reset", ResetHandler(d.Sessions))

	if d.Progress != nil {
		r.Get("/units/{unitID}/progress", GetUnitProgressHandler(d.Progress))
	}
}

// userID identifies the learner. Authentication lives outside this service;
// the gateway or a trusted proxy sets the header.
func userID(r *http.Request) string {
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	return "local"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
