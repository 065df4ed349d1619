package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/grading"
	"github.com/lingua-loop/lingualms/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	exams := exercise.NewInMemoryStore()
	svc := session.NewService(session.NewInMemoryStore(), exams, grading.NewEvaluator(), nil)
	r := chi.NewRouter()
	Mount(r, Deps{Exercises: exams, Sessions: svc, PassThreshold: 0.6})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

const fillBlankDoc = `{
	"id": "u1-e1",
	"unit_id": "u1",
	"sequence": 1,
	"kind": "fill_blank",
	"sentences": [
		{"text": "They ___ home", "blanks": [{"answer": "go", "alternates": ["goes"], "explanation": "movement verb"}]},
		{"text": "I ___ fast", "blanks": [{"answer": "run"}]}
	]
}`

func putExercise(t *testing.T, srv *httptest.Server, doc string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/exercises", bytes.NewBufferString(doc))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestExerciseIngestAndRedactedFetch(t *testing.T) {
	srv := newTestServer(t)
	putExercise(t, srv, fillBlankDoc)

	resp, err := http.Get(srv.URL + "/exercises/u1-e1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ex exercise.Exercise
	decode(t, resp, &ex)
	assert.Equal(t, "u1-e1", ex.ID)
	// Learner view never carries answer keys.
	assert.Empty(t, ex.Sentences[0].Blanks[0].Answer.Literal)
	assert.Empty(t, ex.Sentences[0].Blanks[0].Alternates)
}

func TestExerciseIngestRejectsInvalid(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/exercises", bytes.NewBufferString(`{"kind":"flat"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExerciseNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/exercises/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	putExercise(t, srv, fillBlankDoc)

	// Start.
	resp := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{"exercise_id": "u1-e1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sess session.Session
	decode(t, resp, &sess)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, session.StateUnanswered, sess.State)

	// Verify with nothing answered is refused.
	resp = doJSON(t, http.MethodPost, srv.URL+"/sessions/"+sess.ID+"/verify", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Answer both blanks, one wrong.
	resp = doJSON(t, http.MethodPut, srv.URL+"/sessions/"+sess.ID+"/responses",
		map[string]interface{}{"responses": map[string]string{"0": "Goes", "1": "walked"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Verify.
	resp = doJSON(t, http.MethodPost, srv.URL+"/sessions/"+sess.ID+"/verify", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verified struct {
		session.Session
		Pass bool `json:"pass"`
	}
	decode(t, resp, &verified)
	require.NotNil(t, verified.Result)
	assert.InDelta(t, 0.5, verified.Result.Grade, 1e-9)
	assert.False(t, verified.Pass)
	require.Len(t, verified.Result.PerField, 2)
	assert.True(t, verified.Result.PerField[0].Correct)
	assert.False(t, verified.Result.PerField[1].Correct)

	// Further saves conflict.
	resp = doJSON(t, http.MethodPut, srv.URL+"/sessions/"+sess.ID+"/responses",
		map[string]interface{}{"responses": map[string]string{"1": "run"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Reset clears the grade.
	resp = doJSON(t, http.MethodPost, srv.URL+"/sessions/"+sess.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sess)
	assert.Equal(t, session.StateAnswering, sess.State)
	assert.Nil(t, sess.Result)
}
