// internal/qtable/policy.go
//
// Policy functions over the value store. Both are stateless: the table and
// the state go in, an action index comes out. Unseen states read as freshly
// zero-initialized entries, so ε-greedy degenerates to uniform choice and
// greedy to the lowest action index.

package qtable

import "math/rand"

// Argmax returns the index of the largest value, breaking ties toward the
// lowest index.
func Argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// Greedy returns the highest-valued action for the state. Used during
// evaluation.
func Greedy(t *Table, s State) int {
	return Argmax(t.Get(s))
}

// EpsilonGreedy samples an action: every action gets probability ε/|A|, and
// the currently-best action gets the remaining (1−ε) on top. Used during
// training.
func EpsilonGreedy(t *Table, s State, epsilon float64, rng *rand.Rand) int {
	n := t.Actions()
	best := Argmax(t.Get(s))

	r := rng.Float64()
	acc := 0.0
	for a := 0; a < n; a++ {
		p := epsilon / float64(n)
		if a == best {
			p += 1.0 - epsilon
		}
		acc += p
		if r < acc {
			return a
		}
	}
	// Float round-off can leave r just past the final accumulator.
	return n - 1
}
