package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/store"
	"github.com/robalobadob/wordle-rl/internal/words"
)

func testServer(t *testing.T, st *store.Store) *Server {
	t.Helper()
	corpus, err := words.NewCorpus(
		[]string{"crane", "slate", "trace"},
		[]string{"crane", "slate", "trace", "crate", "stale"},
	)
	require.NoError(t, err)
	return New(Config{
		Corpus:   corpus,
		Registry: agent.DefaultRegistry(),
		Store:    st,
		Seed:     42,
	})
}

func TestHealthAndWords(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/words", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var counts map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Equal(t, 3, counts["answers"])
	assert.Equal(t, 5, counts["allowed"])
}

func TestNotFoundIsJSON(t *testing.T) {
	srv := testServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestSolveFixedAnswer(t *testing.T) {
	srv := testServer(t, nil)
	body := strings.NewReader(`{"agent":"simple","answer":"crane"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res solveRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "crane", res.Answer)
	assert.NotEmpty(t, res.Guesses)
	// A five-word pool always falls inside the attempt cap.
	assert.True(t, res.Solved)
}

func TestSolveRejectsMalformedBody(t *testing.T) {
	srv := testServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed")
}

func TestSolveRejectsUnknownWord(t *testing.T) {
	srv := testServer(t, nil)
	body := strings.NewReader(`{"answer":"zzzzz"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveRejectsUnknownAgent(t *testing.T) {
	srv := testServer(t, nil)
	body := strings.NewReader(`{"agent":"oracle","answer":"crane"}`)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/solve", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunsWithoutStore(t *testing.T) {
	srv := testServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRunsListsStored(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	srv := testServer(t, st)
	ctx := context.Background()
	require.NoError(t, st.InsertRun(ctx, store.Run{
		ID: "run-1", Agent: "qlearning",
		Alpha: 0.05, Gamma: 0.9, Epsilon: 0.1, TrainFraction: 0.8,
		SolveRate: 0.5, AvgGuesses: 4.2, AvgScore: -1.0,
	}))

	for _, path := range []string{"/runs", "/runs/best"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var runs []store.Run
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "run-1", runs[0].ID)
	}
}
