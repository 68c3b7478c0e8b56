// internal/game/filter.go
//
// Candidate filtering: turn a scored guess into a smaller pool of words that
// could still be the answer. This is what feeds the heuristic action
// functions their shrinking guess lists.

package game

import "strings"

// Filter returns the subset of candidates consistent with the evidence from
// one scored guess. The rules apply in a fixed order:
//
//  1. Correct positions pin the letter at that position.
//  2. Present letters must occur somewhere, but not at the scored position.
//  3. Absent letters exclude any word containing them, unless the same
//     letter was marked Correct or Present elsewhere in this guess, in which
//     case it is required, not excluded (duplicate-letter case).
//  4. The guess itself is removed; a guess that failed cannot be the answer.
//
// The result is always a subset of the input (a fresh slice; the input is
// never mutated).
func Filter(candidates []string, guess string, sc Score) []string {
	// Letters the score says the answer must contain.
	var required [26]bool
	for i := 0; i < len(guess); i++ {
		if sc[i] != MarkAbsent {
			required[guess[i]-'a'] = true
		}
	}

	out := make([]string, 0, len(candidates))
next:
	for _, w := range candidates {
		if w == guess {
			continue
		}
		for i := 0; i < len(guess); i++ {
			g := guess[i]
			switch sc[i] {
			case MarkCorrect:
				if w[i] != g {
					continue next
				}
			case MarkPresent:
				if w[i] == g || strings.IndexByte(w, g) < 0 {
					continue next
				}
			case MarkAbsent:
				if !required[g-'a'] && strings.IndexByte(w, g) >= 0 {
					continue next
				}
			}
		}
		out = append(out, w)
	}
	return out
}
