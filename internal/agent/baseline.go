// internal/agent/baseline.go
//
// Non-learning baseline agents used for side-by-side comparison with the RL
// agents. Both narrow the candidate pool with the same filter each round;
// they differ only in how they pick from the pool:
//   - simple: highest summed letter frequency over distinct letters.
//   - random: uniform random pick.

package agent

import (
	"fmt"
	"math/rand"

	"github.com/robalobadob/wordle-rl/internal/game"
	"github.com/robalobadob/wordle-rl/internal/words"
)

// Baseline is a heuristic-only player with no value store.
type Baseline struct {
	name   string
	corpus *words.Corpus
	game   *game.Session
	pick   func(candidates []string) string
}

// NewSimple builds the letter-frequency baseline.
func NewSimple(corpus *words.Corpus) *Baseline {
	freq := letterFreq(corpus.Allowed)
	return &Baseline{
		name:   "simple",
		corpus: corpus,
		game:   game.NewSession(corpus),
		pick: func(candidates []string) string {
			best, bestScore := 0, -1
			for i, w := range candidates {
				s := freqScore(w, freq)
				if s > bestScore {
					best, bestScore = i, s
				}
			}
			return candidates[best]
		},
	}
}

// NewRandom builds the uniform-random baseline.
func NewRandom(corpus *words.Corpus, seed int64) *Baseline {
	rng := rand.New(rand.NewSource(seed))
	return &Baseline{
		name:   "random",
		corpus: corpus,
		game:   game.NewSession(corpus),
		pick: func(candidates []string) string {
			return candidates[rng.Intn(len(candidates))]
		},
	}
}

func (b *Baseline) Name() string { return b.name }

// Play mirrors Agent.Play for the baselines: run episodes until exhaustion
// or limit, checking the limit before a word is drawn.
func (b *Baseline) Play(limit int) (RunResult, error) {
	var res RunResult
	for limit <= 0 || res.Count < limit {
		if !b.game.Start() {
			break
		}
		ep, err := b.playEpisode()
		if err != nil {
			return res, err
		}
		res.History = append(res.History, ep)
		res.Count++
	}
	aggregate(&res)
	return res, nil
}

func (b *Baseline) playEpisode() (Episode, error) {
	cands := append([]string(nil), b.corpus.Allowed...)
	var ep Episode
	for round := 0; round < MaxAttempts; round++ {
		guess := b.pick(cands)
		sc, err := b.game.Guess(guess)
		if err != nil {
			return ep, fmt.Errorf("agent %s: %w", b.name, err)
		}
		ep.Guesses = append(ep.Guesses, GuessRecord{Word: guess, Score: sc})
		ep.Score += shapedReward(sc)
		if sc.AllCorrect() {
			ep.Solved = true
			ep.Word = guess
			ep.Score += solveBonus
			return ep, nil
		}
		cands = game.Filter(cands, guess, sc)
		if len(cands) == 0 {
			break
		}
	}
	ep.Word = b.game.ActiveWord()
	return ep, nil
}

// Reset rewinds the baseline's session for another run.
func (b *Baseline) Reset() { b.game.Reset() }

// letterFreq counts letter occurrences across a word list.
func letterFreq(list []string) [26]int {
	var f [26]int
	for _, w := range list {
		for i := 0; i < len(w); i++ {
			f[w[i]-'a']++
		}
	}
	return f
}

// freqScore sums the corpus frequency of a word's distinct letters.
func freqScore(w string, freq [26]int) int {
	var seen [26]bool
	s := 0
	for i := 0; i < len(w); i++ {
		c := w[i] - 'a'
		if !seen[c] {
			seen[c] = true
			s += freq[c]
		}
	}
	return s
}
