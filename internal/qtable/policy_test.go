package qtable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgmaxTieBreaksLow(t *testing.T) {
	assert.Equal(t, 0, Argmax([]float64{0, 0, 0}))
	assert.Equal(t, 1, Argmax([]float64{0, 3, 3}))
	assert.Equal(t, 2, Argmax([]float64{-1, 0, 2}))
}

func TestGreedyUnseenStatePicksLowestAction(t *testing.T) {
	tb := New(3)
	assert.Equal(t, 0, Greedy(tb, State("1,1,1,1,1")))
}

func TestGreedyPicksBest(t *testing.T) {
	tb := New(3)
	tb.Get(Start)[2] = 1.0
	assert.Equal(t, 2, Greedy(tb, Start))
}

func TestEpsilonGreedyExtremes(t *testing.T) {
	tb := New(3)
	tb.Get(Start)[1] = 2.0
	rng := rand.New(rand.NewSource(42))

	t.Run("epsilon zero is greedy", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.Equal(t, 1, EpsilonGreedy(tb, Start, 0.0, rng))
		}
	})

	t.Run("epsilon one is uniform", func(t *testing.T) {
		counts := map[int]int{}
		const n = 30000
		for i := 0; i < n; i++ {
			counts[EpsilonGreedy(tb, Start, 1.0, rng)]++
		}
		for a := 0; a < 3; a++ {
			assert.InDelta(t, n/3, counts[a], n/20, "action %d frequency", a)
		}
	})
}

func TestEpsilonGreedyFavorsBest(t *testing.T) {
	tb := New(3)
	tb.Get(Start)[2] = 1.0
	rng := rand.New(rand.NewSource(7))

	counts := map[int]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		counts[EpsilonGreedy(tb, Start, 0.3, rng)]++
	}
	// Best action carries 1-ε+ε/3 = 0.8 of the mass.
	assert.InDelta(t, int(0.8*n), counts[2], n/20)
	assert.InDelta(t, int(0.1*n), counts[0], n/25)
	assert.InDelta(t, int(0.1*n), counts[1], n/25)
}
