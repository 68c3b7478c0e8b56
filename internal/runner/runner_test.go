package runner

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/words"
)

func sweepCorpus(t *testing.T) *words.Corpus {
	t.Helper()
	c, err := words.NewCorpus(
		[]string{"crane", "slate", "trace", "audio", "pride", "ghost", "flame", "bread"},
		nil,
	)
	require.NoError(t, err)
	return c
}

func TestRunSweep(t *testing.T) {
	points, err := Run(context.Background(), agent.DefaultRegistry(), sweepCorpus(t), Sweep{
		Agents:        []string{"qlearning", "sarsa"},
		Alphas:        []float64{0.05, 0.2},
		Epsilons:      []float64{0.1},
		Gamma:         0.9,
		TrainFraction: 0.75,
		Workers:       2,
		Seed:          11,
	})
	require.NoError(t, err)
	require.Len(t, points, 4, "2 agents × 2 alphas × 1 epsilon")

	seen := map[string]bool{}
	for i, p := range points {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "datapoint IDs must be unique")
		seen[p.ID] = true
		assert.Equal(t, i, p.TrainingIndex, "results come back in grid order")
		assert.Equal(t, 0.9, p.Gamma)
		assert.GreaterOrEqual(t, p.NumStatesVisited, 1)
	}
	// Grid order: qlearning cells first.
	assert.Equal(t, "qlearning", points[0].Agent)
	assert.Equal(t, "sarsa", points[3].Agent)
}

func TestRunRejectsUntrainableAgent(t *testing.T) {
	_, err := Run(context.Background(), agent.DefaultRegistry(), sweepCorpus(t), Sweep{
		Agents:        []string{"random"},
		Alphas:        []float64{0.05},
		Epsilons:      []float64{0.05},
		Gamma:         0.9,
		TrainFraction: 0.75,
	})
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	rows, err := Compare(context.Background(), agent.DefaultRegistry(), sweepCorpus(t),
		[]string{"simple", "random", "qlearning"}, nil, 0, 5)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "simple", rows[0].Agent)
	for _, r := range rows {
		assert.Equal(t, 8, r.Count, r.Agent)
		assert.GreaterOrEqual(t, r.SolveRate, 0.0)
		assert.LessOrEqual(t, r.SolveRate, 1.0)
	}
}

func TestCompareLoadsTrainedTables(t *testing.T) {
	corpus := sweepCorpus(t)
	reg := agent.DefaultRegistry()

	// Train one agent and save its value store.
	p, err := reg.New("qlearning", corpus, agent.Config{Alpha: 0.2, Gamma: 0.9, Epsilon: 0.2, Seed: 17})
	require.NoError(t, err)
	a := p.(*agent.Agent)
	_, err = a.Train(1.0)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, a.Table().Save(path))

	rows, err := Compare(context.Background(), reg, corpus,
		[]string{"qlearning", "simple"}, map[string]string{"qlearning": path}, 0, 17)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 8, rows[0].Count)

	// A requested table that cannot be loaded fails the comparison.
	_, err = Compare(context.Background(), reg, corpus,
		[]string{"qlearning"}, map[string]string{"qlearning": filepath.Join(t.TempDir(), "missing.json")}, 0, 17)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	points := []Datapoint{
		{ID: "one", Agent: "qlearning", Alpha: 0.05, Gamma: 0.9, Epsilon: 0.1,
			TestPerformance: 0.875, NumStatesVisited: 31, AvgVisitsPerState: 4.5,
			AvgScore: -3.25, AvgGuesses: 3.5, TrainingDeltaRaw: 2.5, TrainingDeltaRMS: 0.25},
	}
	require.NoError(t, WriteCSV(path, points))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "qlearning", rows[1][1])
	assert.Equal(t, "0.875", rows[1][6])
}

func TestWriteCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.html")
	points := []Datapoint{
		{Agent: "qlearning", Alpha: 0.05, Epsilon: 0.1, TestPerformance: 0.8, AvgGuesses: 3.9},
		{Agent: "sarsa", Alpha: 0.05, Epsilon: 0.1, TestPerformance: 0.7, AvgGuesses: 4.2},
	}
	require.NoError(t, WriteCharts(path, points))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
