package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/session"
)

type startSessionReq struct {
	ExerciseID string `json:"exercise_id"`
}

// POST /sessions
func StartSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startSessionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.ExerciseID == "" {
			http.Error(w, "exercise_id required", http.StatusBadRequest)
			return
		}
		sess, err := svc.Start(r.Context(), req.ExerciseID, userID(r))
		if err != nil {
			if errors.Is(err, exercise.ErrNotFound) {
				http.Error(w, "exercise not found", http.StatusNotFound)
				return
			}
			http.Error(w, "start session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, sess)
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Get(r.Context(), sessionID(r))
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

type saveResponsesReq struct {
	// Responses maps linear field index (as a JSON object key) to the raw
	// input value.
	Responses map[string]string `json:"responses"`
}

// PUT /sessions/{sessionID}/responses
func SaveResponsesHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveResponsesReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		updates := make(map[int]string, len(req.Responses))
		for k, v := range req.Responses {
			i, err := strconv.Atoi(k)
			if err != nil {
				http.Error(w, "response index must be an integer: "+k, http.StatusBadRequest)
				return
			}
			updates[i] = v
		}
		sess, err := svc.Save(r.Context(), sessionID(r), updates)
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

type verifyResp struct {
	session.Session
	Pass    bool `json:"pass"`
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
}

// POST /sessions/{sessionID}/verify
func VerifyHandler(svc *session.Service, passThreshold float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Verify(r.Context(), sessionID(r))
		if err != nil {
			sessionError(w, err)
			return
		}
		resp := verifyResp{Session: sess}
		if sess.Result != nil {
			resp.Pass = sess.Result.Grade >= passThreshold
			resp.Correct = sess.Result.CorrectCount()
			resp.Total = len(sess.Result.PerField)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// POST /sessions/{sessionID}/reset
func ResetHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Reset(r.Context(), sessionID(r))
		if err != nil {
			sessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func sessionID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "sessionID"))
}

func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, exercise.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrNotAnswered):
		http.Error(w, "nothing answered yet", http.StatusUnprocessableEntity)
	case errors.Is(err, session.ErrVerified):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
