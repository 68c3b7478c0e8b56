// internal/agent/agent.go
//
// The reinforcement-learning agent. One Agent owns one game session, one
// value store, and its own candidate working set; agents never share mutable
// state, which is what makes whole-agent parallelism safe.
//
// Episode shape:
//   START → (select action → guess → score → update → next state)* →
//   solved | attempt cap | candidate pool exhausted
//
// The state the value store learns over is the most recent score (encoded as
// comma-joined marks), with a sentinel for episode start. Rewards are shaped
// from the canonical 0/1/2 marks through an explicit weight table; "solved"
// is always all-marks-correct, never a sum check.

package agent

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-rl/internal/game"
	"github.com/robalobadob/wordle-rl/internal/heuristic"
	"github.com/robalobadob/wordle-rl/internal/qtable"
	"github.com/robalobadob/wordle-rl/internal/words"
)

// MaxAttempts caps the guesses per episode. Reaching it unsolved is a
// recorded loss, not an error.
const MaxAttempts = 6

// rewardWeights maps each canonical mark to its shaped per-letter reward.
// Index order follows the Mark ordinals: absent, present, correct.
var rewardWeights = [3]float64{-1.0, -0.5, 0.0}

// solveBonus is added to the step reward when the episode solves.
const solveBonus = 5.0

// Config carries the tunable parameters for an RL agent.
type Config struct {
	Name    string
	Rule    UpdateRule
	Alpha   float64 // step size
	Gamma   float64 // discount factor
	Epsilon float64 // exploration rate for the training policy
	Seed    int64

	// ShuffleAnswers makes the agent's session randomize answer order (and
	// re-randomize on Reset), seeded independently of the agent RNG.
	ShuffleAnswers bool

	// Positions and TGLP may be supplied to skip derivation (e.g. loaded
	// from precomputed files). When nil they are derived from the corpus.
	Positions *heuristic.Positions
	TGLP      heuristic.TGLP

	// TablePath, when set, loads an existing value store instead of starting
	// from an empty one. A missing or corrupt file is a hard error.
	TablePath string
}

// Agent plays and learns one corpus. Not safe for concurrent use.
type Agent struct {
	name   string
	rule   UpdateRule
	corpus *words.Corpus
	game   *game.Session
	q      *qtable.Table
	rng    *rand.Rand

	alpha, gamma, epsilon float64

	positions *heuristic.Positions
	tglp      heuristic.TGLP

	training bool
	guesses  []string // per-episode action log, diagnostics only
}

// New builds an agent over the corpus. The agent creates and owns its game
// session and value store.
func New(corpus *words.Corpus, cfg Config) (*Agent, error) {
	var opts []game.Option
	if cfg.ShuffleAnswers {
		// The session keeps a separate RNG so shuffling never perturbs the
		// agent's own action sampling.
		opts = append(opts, game.WithShuffle(cfg.Seed+1))
	}

	a := &Agent{
		name:    cfg.Name,
		rule:    cfg.Rule,
		corpus:  corpus,
		game:    game.NewSession(corpus, opts...),
		q:       qtable.New(NumActions),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		alpha:   cfg.Alpha,
		gamma:   cfg.Gamma,
		epsilon: cfg.Epsilon,
	}
	if a.name == "" {
		a.name = cfg.Rule.String()
	}

	if cfg.TablePath != "" {
		if err := a.q.Load(cfg.TablePath); err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.name, err)
		}
	}

	a.positions = cfg.Positions
	if a.positions == nil {
		a.positions = heuristic.BuildPositions(corpus.Answers)
	}
	a.tglp = cfg.TGLP
	if a.tglp == nil {
		a.tglp = heuristic.BuildTGLP(corpus.Allowed, a.positions)
	}
	return a, nil
}

// Name identifies the agent in logs and results.
func (a *Agent) Name() string { return a.name }

// Table exposes the agent's value store (persistence, inspection).
func (a *Agent) Table() *qtable.Table { return a.q }

// SetTraining switches between the stochastic training policy (with value
// updates) and the greedy evaluation policy (no updates).
func (a *Agent) SetTraining(on bool) { a.training = on }

// GuessRecord is one scored guess inside an episode.
type GuessRecord struct {
	Word  string
	Score game.Score
}

// Episode is the outcome of playing a single answer word.
type Episode struct {
	Guesses       []GuessRecord
	Solved        bool
	Word          string  // the solved word, or the answer on a loss
	Score         float64 // cumulative shaped reward
	LearningDelta float64 // Σ|α·δ| over the episode's updates
}

// RunResult aggregates episodes from one Play call.
type RunResult struct {
	History    []Episode
	Count      int
	SolveRate  float64
	AvgGuesses float64
	AvgScore   float64
}

// TrainStats is the combined result of a Train call.
type TrainStats struct {
	Training   RunResult
	Evaluation RunResult
	TableStats qtable.Stats
	DeltaRaw   float64
	DeltaRMS   float64
}

// stateOf encodes a score as a value-store state key.
func stateOf(sc game.Score) qtable.State {
	b := make([]byte, 0, 2*len(sc)-1)
	for i, m := range sc {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '0'+byte(m))
	}
	return qtable.State(b)
}

// selectAction applies the active policy for the current mode.
func (a *Agent) selectAction(s qtable.State) int {
	if a.training {
		return qtable.EpsilonGreedy(a.q, s, a.epsilon, a.rng)
	}
	return qtable.Greedy(a.q, s)
}

// playEpisode plays one answer word to completion. The session must have an
// active word (Start already called and true).
func (a *Agent) playEpisode() (Episode, error) {
	cands := append([]string(nil), a.corpus.Allowed...)
	a.guesses = a.guesses[:0]

	var ep Episode
	state := qtable.Start
	if a.training {
		a.q.Visit(state)
	}

	// Sarsa selects its first action up front and thereafter carries the
	// action chosen during each update into the next iteration.
	action := -1
	if a.training && a.rule == Sarsa {
		action = a.selectAction(state)
	}

	for round := 0; round < MaxAttempts; round++ {
		if action < 0 {
			action = a.selectAction(state)
		}

		guess := actionTable[action](a, cands)
		sc, err := a.game.Guess(guess)
		if err != nil {
			return ep, fmt.Errorf("agent %s: %w", a.name, err)
		}
		ep.Guesses = append(ep.Guesses, GuessRecord{Word: guess, Score: sc})

		reward := shapedReward(sc)
		done := sc.AllCorrect()
		if done {
			ep.Solved = true
			ep.Word = guess
			reward += solveBonus
		} else {
			cands = game.Filter(cands, guess, sc)
		}
		ep.Score += reward
		next := stateOf(sc)

		carried := -1
		if a.training {
			var target float64
			if a.rule == Sarsa {
				na := a.selectAction(next)
				target = reward + a.gamma*a.q.Get(next)[na]
				carried = na
			} else {
				nv := a.q.Get(next)
				target = reward + a.gamma*nv[qtable.Argmax(nv)]
			}
			cur := a.q.Get(state)
			delta := target - cur[action]
			cur[action] += a.alpha * delta
			ep.LearningDelta += math.Abs(a.alpha * delta)
			a.q.Visit(next)
		}

		if done {
			return ep, nil
		}
		if len(cands) == 0 {
			// Contradictory evidence can empty the pool (answers outside the
			// candidate model). Degrade to a loss and move on.
			log.Warn().
				Str("agent", a.name).
				Str("answer", a.game.ActiveWord()).
				Int("round", round+1).
				Msg("candidate pool exhausted; recording loss")
			break
		}
		state = next
		action = carried
	}

	ep.Word = a.game.ActiveWord()
	return ep, nil
}

// shapedReward maps canonical marks through the reward weight table.
func shapedReward(sc game.Score) float64 {
	var r float64
	for _, m := range sc {
		r += rewardWeights[m]
	}
	return r
}

// Play runs episodes until the answer sequence is exhausted, or until limit
// episodes have been played if limit > 0. The limit is checked before a word
// is drawn, so a later Play continues exactly where this one stopped. It does
// not reset the session first, so a Play after Train continues with the
// held-out words.
func (a *Agent) Play(limit int) (RunResult, error) {
	var res RunResult
	for limit <= 0 || res.Count < limit {
		if !a.game.Start() {
			break
		}
		ep, err := a.playEpisode()
		if err != nil {
			return res, err
		}
		res.History = append(res.History, ep)
		res.Count++
	}
	aggregate(&res)
	return res, nil
}

// aggregate fills the summary fields from the history.
func aggregate(res *RunResult) {
	if res.Count == 0 {
		return
	}
	solved, guesses, score := 0, 0, 0.0
	for _, ep := range res.History {
		if ep.Solved {
			solved++
		}
		guesses += len(ep.Guesses)
		score += ep.Score
	}
	n := float64(res.Count)
	res.SolveRate = float64(solved) / n
	res.AvgGuesses = float64(guesses) / n
	res.AvgScore = score / n
}

// Train partitions the answer sequence by position: the leading frac runs in
// training mode (stochastic policy, updates on), the remainder runs greedily
// with updates off. Every answer lands in exactly one segment; evaluation
// starts at the first held-out index. Value-store snapshots around the
// training segment yield the raw and RMS learning deltas.
//
// Train does not reset the session first; callers running several trainings
// reset between them so word sequences stay predictable.
func (a *Agent) Train(frac float64) (TrainStats, error) {
	var st TrainStats
	trainEpisodes := int(float64(len(a.game.Answers())) * frac)

	// Zero training episodes must not turn into an unlimited run: the whole
	// sequence is held out for evaluation instead.
	if trainEpisodes > 0 {
		pre := a.q.Snapshot()
		a.SetTraining(true)
		trainRes, err := a.Play(trainEpisodes)
		a.SetTraining(false)
		if err != nil {
			return st, err
		}
		post := a.q.Snapshot()
		st.DeltaRaw, st.DeltaRMS = qtable.Delta(pre, post)
		st.Training = trainRes
	}
	st.TableStats = a.q.Statistics()

	var err error
	st.Evaluation, err = a.Play(0)
	if err != nil {
		return st, err
	}
	return st, nil
}

// Reset rewinds the agent for another full run: the session restarts (and
// reshuffles, if configured) and visit counters clear. Learned values are
// kept; use a fresh agent to discard them.
func (a *Agent) Reset() {
	a.game.Reset()
	a.q.ResetCounts()
	a.guesses = a.guesses[:0]
}
