package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lingua-loop/lingualms/internal/progress"
)

// GET /units/{unitID}/progress
func GetUnitProgressHandler(lister ProgressLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unitID := strings.TrimSpace(chi.URLParam(r, "unitID"))
		if unitID == "" {
			http.Error(w, "unitID required", http.StatusBadRequest)
			return
		}
		entries, err := lister.ListUnit(r.Context(), unitID, userID(r))
		if err != nil {
			http.Error(w, "list progress: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []progress.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
