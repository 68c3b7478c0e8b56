// internal/agent/actions.go
//
// Action functions: the fixed table of guess-selection heuristics the learned
// policy chooses between. An action index picked by the policy maps through
// this table to one concrete guess word.
//
// Every action records its pick into the agent's per-episode guess log before
// returning; the log is diagnostic only.

package agent

// ActionFunc turns the current candidate list into one concrete guess.
type ActionFunc func(a *Agent, candidates []string) string

// actionTable is the canonical action ordering. Indexes into it are what the
// value store learns over, so the order is fixed.
var actionTable = []ActionFunc{
	guessByExploration,
	guessByTGLP,
	guessByRandom,
}

// NumActions is the fixed action count registered with every value store.
var NumActions = len(actionTable)

// guessByRandom picks uniformly at random from the candidates.
func guessByRandom(a *Agent, candidates []string) string {
	guess := candidates[a.rng.Intn(len(candidates))]
	a.guesses = append(a.guesses, guess)
	return guess
}

// guessByTGLP picks the candidate with the highest precomputed TGLP value.
// Ties go to the first candidate encountered.
func guessByTGLP(a *Agent, candidates []string) string {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if a.tglp[candidates[i]] > a.tglp[candidates[best]] {
			best = i
		}
	}
	guess := candidates[best]
	a.guesses = append(a.guesses, guess)
	return guess
}

// guessByExploration ranks candidates by distinct-letter count first (more
// distinct letters, more information per guess), TGLP second.
func guessByExploration(a *Agent, candidates []string) string {
	best := 0
	bestDistinct := distinctLetters(candidates[0])
	for i := 1; i < len(candidates); i++ {
		d := distinctLetters(candidates[i])
		if d > bestDistinct || (d == bestDistinct && a.tglp[candidates[i]] > a.tglp[candidates[best]]) {
			best, bestDistinct = i, d
		}
	}
	guess := candidates[best]
	a.guesses = append(a.guesses, guess)
	return guess
}

// distinctLetters counts the unique letters in a word.
func distinctLetters(w string) int {
	var seen [26]bool
	n := 0
	for i := 0; i < len(w); i++ {
		if !seen[w[i]-'a'] {
			seen[w[i]-'a'] = true
			n++
		}
	}
	return n
}
