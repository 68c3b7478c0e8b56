// internal/httpserver/server.go
//
// HTTP wiring for the training/evaluation tooling.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON).
//   - Diagnostics: "/", "/health", "/words".
//   - POST /solve: have an agent play one episode against a chosen (or
//     random) answer word and return the guess/score transcript.
//   - GET /runs, /runs/best: browse persisted training datapoints.
//
// This is local tooling over the run database and trained tables; there is
// no user model and no auth surface.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/game"
	"github.com/robalobadob/wordle-rl/internal/heuristic"
	"github.com/robalobadob/wordle-rl/internal/store"
	"github.com/robalobadob/wordle-rl/internal/words"
)

// Config carries the server's collaborators.
type Config struct {
	Corpus   *words.Corpus
	Registry *agent.Registry
	Store    *store.Store // optional; /runs endpoints 503 without it

	// TablePath optionally points RL agents at a trained value store.
	TablePath string

	// Seed fixes the server's answer-picking RNG (0 means time-based).
	Seed int64
}

// Server bundles router and collaborators.
type Server struct {
	r         *chi.Mux
	corpus    *words.Corpus
	registry  *agent.Registry
	store     *store.Store
	tablePath string

	positions *heuristic.Positions
	tglp      heuristic.TGLP
	rng       *rand.Rand
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Server{
		r:         chi.NewRouter(),
		corpus:    cfg.Corpus,
		registry:  cfg.Registry,
		store:     cfg.Store,
		tablePath: cfg.TablePath,
		positions: heuristic.BuildPositions(cfg.Corpus.Answers),
		rng:       rand.New(rand.NewSource(seed)),
	}
	s.tglp = heuristic.BuildTGLP(cfg.Corpus.Allowed, s.positions)

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second)) // training tables can be slow to page in
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-rl",
			"endpoints": []string{"/health", "/words", "POST /solve", "/runs", "/runs/best"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"answers": len(s.corpus.Answers),
			"allowed": len(s.corpus.Allowed),
		})
	})

	s.r.Post("/solve", s.handleSolve)
	s.r.Get("/runs", s.handleRuns(false))
	s.r.Get("/runs/best", s.handleRuns(true))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ SOLVE --------------------------------------

type solveReq struct {
	Agent  string `json:"agent"`  // registry name; default "qlearning"
	Answer string `json:"answer"` // optional fixed answer (must be a corpus answer)
	Seed   int64  `json:"seed"`   // optional agent seed
}

type solveGuess struct {
	Word  string     `json:"word"`
	Marks game.Score `json:"marks"`
}

type solveRes struct {
	Agent   string       `json:"agent"`
	Answer  string       `json:"answer"`
	Solved  bool         `json:"solved"`
	Guesses []solveGuess `json:"guesses"`
	Score   float64      `json:"score"`
}

// handleSolve plays one episode against a single answer word with a fresh
// agent instance. Each request gets private state; nothing is shared.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	// An empty body means "random answer, default agent"; anything else must
	// parse.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	if req.Agent == "" {
		req.Agent = "qlearning"
	}

	answer := req.Answer
	if answer == "" {
		answer = s.corpus.Answers[s.rng.Intn(len(s.corpus.Answers))]
	}

	episode, err := s.playOne(req.Agent, answer, req.Seed)
	if err != nil {
		log.Error().Err(err).Str("agent", req.Agent).Str("answer", answer).Msg("solve failed")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res := solveRes{
		Agent:  req.Agent,
		Answer: answer,
		Solved: episode.Solved,
		Score:  episode.Score,
	}
	for _, g := range episode.Guesses {
		res.Guesses = append(res.Guesses, solveGuess{Word: g.Word, Marks: g.Score})
	}
	writeJSON(w, http.StatusOK, res)
}

// playOne builds a single-answer corpus over the full allow-list and plays it.
func (s *Server) playOne(name, answer string, seed int64) (agent.Episode, error) {
	if !s.corpus.IsAllowed(answer) {
		return agent.Episode{}, errors.New("answer is not in the word list")
	}
	one, err := words.NewCorpus([]string{answer}, s.corpus.Allowed)
	if err != nil {
		return agent.Episode{}, err
	}
	cfg := agent.Config{
		Alpha: 0.05, Gamma: 0.9, Epsilon: 0.05,
		Seed:      seed,
		Positions: s.positions,
		TGLP:      s.tglp,
		TablePath: s.tablePath,
	}
	p, err := s.registry.New(name, one, cfg)
	if err != nil {
		return agent.Episode{}, err
	}
	res, err := p.Play(1)
	if err != nil {
		return agent.Episode{}, err
	}
	if res.Count == 0 {
		return agent.Episode{}, errors.New("no episode played")
	}
	return res.History[0], nil
}

// ------------------------------ RUNS ---------------------------------------

// handleRuns serves the stored datapoints, recent or best-first.
func (s *Server) handleRuns(best bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no results database configured"})
			return
		}
		var (
			runs []store.Run
			err  error
		)
		if best {
			runs, err = s.store.BestRuns(r.Context(), 0)
		} else {
			runs, err = s.store.ListRuns(r.Context(), 0)
		}
		if err != nil {
			log.Error().Err(err).Msg("query runs")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db_error"})
			return
		}
		if runs == nil {
			runs = []store.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

// ----------------------------- helpers -------------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
