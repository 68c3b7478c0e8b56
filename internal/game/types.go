// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter result of a guess (absent/present/correct).
//   - Score: the five per-letter marks for one guess.
//   - The sentinel errors a Session can return from Guess.

package game

import "errors"

// Mark is the evaluation result for a single letter of a guess.
// The ordinal values are canonical: they appear in value-store state keys
// and persisted files, so they must not be reordered.
type Mark int8

const (
	MarkAbsent  Mark = 0 // letter does not occur in the (remaining) answer
	MarkPresent Mark = 1 // letter occurs in the answer, wrong position
	MarkCorrect Mark = 2 // letter is in the correct position
)

// Score holds the marks for one full guess.
type Score [5]Mark

// AllCorrect reports whether every position was marked correct.
func (s Score) AllCorrect() bool {
	for _, m := range s {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Guess validation failures. These indicate wiring bugs in the caller, not
// recoverable runtime conditions.
var (
	ErrNoActiveWord = errors.New("game: guess with no active word")
	ErrBadLength    = errors.New("game: guess is not 5 letters")
	ErrNotAllowed   = errors.New("game: guess is not an allowed word")
)
