// internal/game/engine.go
//
// The game umpire: sequences answer words and rules on each guess.
// Responsibilities:
//   - Walk the answer list one word at a time (optionally shuffled).
//   - Validate guesses (length, allow-list, active session).
//   - Score guesses using the classic two-pass algorithm.
//   - Transition to a no-active-word state when a word is solved.
//
// Notes:
//   - One Session plays every answer word in sequence; Start advances to the
//     next word and reports exhaustion, Reset rewinds for another full run.
//   - The Session keeps its own RNG for shuffling so agent-side randomness
//     is never perturbed by the umpire.

package game

import (
	"math/rand"

	"github.com/robalobadob/wordle-rl/internal/words"
)

// Session is the umpire for one run through a corpus of answer words.
type Session struct {
	corpus    *words.Corpus
	answers   []string // private copy; may be shuffled
	index     int
	active    string // empty when no word is in play
	randomize bool
	rng       *rand.Rand
}

// Option configures a Session at construction.
type Option func(*Session)

// WithShuffle makes the session shuffle the answer order at creation and on
// every Reset, using the given seed.
func WithShuffle(seed int64) Option {
	return func(s *Session) {
		s.randomize = true
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSession constructs a Session over the given corpus.
func NewSession(c *words.Corpus, opts ...Option) *Session {
	s := &Session{
		corpus:  c,
		answers: append([]string(nil), c.Answers...),
	}
	for _, o := range opts {
		o(s)
	}
	if s.randomize {
		s.rng.Shuffle(len(s.answers), func(i, j int) {
			s.answers[i], s.answers[j] = s.answers[j], s.answers[i]
		})
	}
	return s
}

// Answers exposes the session's (possibly shuffled) answer order.
func (s *Session) Answers() []string { return s.answers }

// ActiveWord returns the word currently in play, or "" if none.
func (s *Session) ActiveWord() string { return s.active }

// Start advances to the next answer word. Returns false once the answer list
// is exhausted; callers must not Guess after that.
func (s *Session) Start() bool {
	s.index++
	if s.index > len(s.answers) {
		return false
	}
	s.active = s.answers[s.index-1]
	return true
}

// Guess scores a guess against the active word, per the rules in score().
// If the guess solves the word the session transitions to no-active-word.
func (s *Session) Guess(guess string) (Score, error) {
	var sc Score
	if s.active == "" {
		return sc, ErrNoActiveWord
	}
	if len(guess) != words.WordLen {
		return sc, ErrBadLength
	}
	if !s.corpus.IsAllowed(guess) {
		return sc, ErrNotAllowed
	}

	sc = score(s.active, guess)
	if sc.AllCorrect() {
		s.active = ""
	}
	return sc, nil
}

// Reset rewinds the session so it can be used for another full run. If the
// session was created with WithShuffle, the answer order is re-shuffled.
func (s *Session) Reset() {
	s.index = 0
	s.active = ""
	if s.randomize {
		s.rng.Shuffle(len(s.answers), func(i, j int) {
			s.answers[i], s.answers[j] = s.answers[j], s.answers[i]
		})
	}
}

// score implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters by letter index.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// The count-decrementing second pass is what keeps repeated letters honest:
// a guess with two of a letter against an answer holding one gets exactly one
// Present, never two.
func score(answer, guess string) Score {
	var res Score
	var counts [26]int

	for i := 0; i < len(answer); i++ {
		if guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else {
			counts[answer[i]-'a']++
		}
	}

	for i := 0; i < len(guess); i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}
