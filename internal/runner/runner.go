// internal/runner/runner.go
//
// Orchestration of training sweeps and agent comparisons.
//
// A sweep is a grid over (agent, α, ε), each cell trained independently. No
// mutable state is shared between cells: every worker builds its own agent
// (private game session, value store, candidate set) from the registry and
// returns an order-independent Datapoint. The heuristic tables are built
// once and shared; they are read-only after creation.

package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/heuristic"
	"github.com/robalobadob/wordle-rl/internal/words"
)

// Datapoint is one sweep cell's result. Field order mirrors the CSV column
// order.
type Datapoint struct {
	ID                string
	Agent             string
	Alpha             float64
	Gamma             float64
	Epsilon           float64
	TrainingIndex     int
	TestPerformance   float64 // evaluation solve rate
	NumStatesVisited  int
	AvgVisitsPerState float64
	AvgScore          float64
	AvgGuesses        float64
	TrainingDeltaRaw  float64
	TrainingDeltaRMS  float64
}

// Sweep configures a training grid.
type Sweep struct {
	Agents        []string  // names of trainable agents in the registry
	Alphas        []float64 // step-size grid
	Epsilons      []float64 // exploration grid
	Gamma         float64
	TrainFraction float64
	Runs          int // complete repeats of the whole grid
	Workers       int // max concurrent agents; <=0 means 1
	Seed          int64
	Shuffle       bool // shuffle each agent's answer order
}

// trainable is the extra surface RL agents expose beyond Player.
type trainable interface {
	agent.Player
	Train(frac float64) (agent.TrainStats, error)
}

// Run executes the sweep and returns one Datapoint per cell. Cells run in
// parallel, bounded by sw.Workers; results come back in grid order.
func Run(ctx context.Context, reg *agent.Registry, corpus *words.Corpus, sw Sweep) ([]Datapoint, error) {
	if sw.Runs <= 0 {
		sw.Runs = 1
	}
	workers := sw.Workers
	if workers <= 0 {
		workers = 1
	}

	// Derive the heuristic tables once for the whole sweep.
	positions := heuristic.BuildPositions(corpus.Answers)
	tglp := heuristic.BuildTGLP(corpus.Allowed, positions)

	type cell struct {
		agent          string
		alpha, epsilon float64
		index          int
	}
	var cells []cell
	idx := 0
	for run := 0; run < sw.Runs; run++ {
		for _, name := range sw.Agents {
			for _, alpha := range sw.Alphas {
				for _, eps := range sw.Epsilons {
					cells = append(cells, cell{agent: name, alpha: alpha, epsilon: eps, index: idx})
					idx++
				}
			}
		}
	}

	out := make([]Datapoint, len(cells))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, c := range cells {
		c := c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := agent.Config{
				Alpha:          c.alpha,
				Gamma:          sw.Gamma,
				Epsilon:        c.epsilon,
				Seed:           sw.Seed + int64(c.index),
				ShuffleAnswers: sw.Shuffle,
				Positions:      positions,
				TGLP:           tglp,
			}
			p, err := reg.New(c.agent, corpus, cfg)
			if err != nil {
				return err
			}
			tr, ok := p.(trainable)
			if !ok {
				return fmt.Errorf("runner: agent %q is not trainable", c.agent)
			}

			st, err := tr.Train(sw.TrainFraction)
			if err != nil {
				return err
			}
			log.Info().
				Str("agent", c.agent).
				Float64("alpha", c.alpha).
				Float64("epsilon", c.epsilon).
				Float64("solveRate", st.Evaluation.SolveRate).
				Float64("avgGuesses", st.Evaluation.AvgGuesses).
				Msg("sweep cell finished")

			out[c.index] = Datapoint{
				ID:                uuid.NewString(),
				Agent:             c.agent,
				Alpha:             c.alpha,
				Gamma:             sw.Gamma,
				Epsilon:           c.epsilon,
				TrainingIndex:     c.index,
				TestPerformance:   st.Evaluation.SolveRate,
				NumStatesVisited:  st.TableStats.States,
				AvgVisitsPerState: st.TableStats.AvgVisits,
				AvgScore:          st.Evaluation.AvgScore,
				AvgGuesses:        st.Evaluation.AvgGuesses,
				TrainingDeltaRaw:  st.DeltaRaw,
				TrainingDeltaRMS:  st.DeltaRMS,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ComparisonRow summarizes one agent's full playthrough in a comparison.
type ComparisonRow struct {
	Agent      string  `json:"agent"`
	Count      int     `json:"count"`
	SolveRate  float64 `json:"solveRate"`
	AvgGuesses float64 `json:"avgGuesses"`
	AvgScore   float64 `json:"avgScore"`
}

// Compare plays each named agent over the same corpus (each with a private
// session) and returns one row per agent, in input order. tables optionally
// maps agent names to trained value-store files; agents without an entry
// start from an empty store, and baselines ignore theirs.
func Compare(ctx context.Context, reg *agent.Registry, corpus *words.Corpus, names []string, tables map[string]string, limit int, seed int64) ([]ComparisonRow, error) {
	positions := heuristic.BuildPositions(corpus.Answers)
	tglp := heuristic.BuildTGLP(corpus.Allowed, positions)

	out := make([]ComparisonRow, len(names))
	g, ctx := errgroup.WithContext(ctx)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := agent.Config{
				Alpha: 0.05, Gamma: 0.9, Epsilon: 0.05,
				Seed:      seed + int64(i),
				Positions: positions,
				TGLP:      tglp,
				TablePath: tables[name],
			}
			p, err := reg.New(name, corpus, cfg)
			if err != nil {
				return err
			}
			res, err := p.Play(limit)
			if err != nil {
				return err
			}
			out[i] = ComparisonRow{
				Agent:      name,
				Count:      res.Count,
				SolveRate:  res.SolveRate,
				AvgGuesses: res.AvgGuesses,
				AvgScore:   res.AvgScore,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
