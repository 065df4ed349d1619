package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lingua-loop/lingualms/internal/exercise"
)

// PUT /exercises
// Body is one exercise document; it is validated against the content-source
// schema before it is stored.
func PutExerciseHandler(store exercise.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		ex, err := exercise.Parse(raw)
		if err != nil {
			http.Error(w, "invalid exercise: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err := store.Put(r.Context(), ex); err != nil {
			http.Error(w, "store exercise: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": ex.ID})
	}
}

// GET /exercises/{exerciseID}
// Serves the learner-safe view: answer keys redacted, shown fields
// pre-filled.
func GetExerciseHandler(store exercise.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "exerciseID"))
		if id == "" {
			http.Error(w, "exerciseID required", http.StatusBadRequest)
			return
		}
		ex, err := store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, exercise.ErrNotFound) {
				http.Error(w, "exercise not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get exercise: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ex)
	}
}

// GET /units/{unitID}/exercises
func ListUnitExercisesHandler(store exercise.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unitID := strings.TrimSpace(chi.URLParam(r, "unitID"))
		if unitID == "" {
			http.Error(w, "unitID required", http.StatusBadRequest)
			return
		}
		list, err := store.ListByUnit(r.Context(), unitID)
		if err != nil {
			http.Error(w, "list exercises: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []exercise.Exercise{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}
