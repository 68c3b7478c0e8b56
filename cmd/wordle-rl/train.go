// cmd/wordle-rl/train.go
//
// The train subcommand. Runs a hyperparameter sweep over the trainable
// agents and persists the resulting datapoints: always to stdout (as a log
// line per cell), optionally to CSV, to the SQLite results DB, and to an
// HTML chart page. With --save-table the trained value store of a
// single-cell sweep is written to disk for later play.

package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/runner"
	"github.com/robalobadob/wordle-rl/internal/store"
)

func newTrainCmd() *cobra.Command {
	var (
		agents    []string
		alphas    []float64
		epsilons  []float64
		gamma     float64
		trainFrac float64
		runs      int
		workers   int
		seed      int64
		shuffle   bool
		csvOut    string
		dbPath    string
		chartsOut string
		tableOut  string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run a training sweep over the hyperparameter grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(cmd)
			if err != nil {
				return err
			}
			reg := agent.DefaultRegistry()

			sw := runner.Sweep{
				Agents:        agents,
				Alphas:        alphas,
				Epsilons:      epsilons,
				Gamma:         gamma,
				TrainFraction: trainFrac,
				Runs:          runs,
				Workers:       workers,
				Seed:          seed,
				Shuffle:       shuffle,
			}

			start := time.Now()
			points, err := runner.Run(cmd.Context(), reg, corpus, sw)
			if err != nil {
				return err
			}
			log.Info().
				Int("cells", len(points)).
				Dur("elapsed", time.Since(start)).
				Msg("sweep complete")

			if csvOut != "" {
				if err := runner.WriteCSV(csvOut, points); err != nil {
					return err
				}
				log.Info().Str("path", csvOut).Msg("wrote CSV")
			}
			if chartsOut != "" {
				if err := runner.WriteCharts(chartsOut, points); err != nil {
					return err
				}
				log.Info().Str("path", chartsOut).Msg("wrote charts")
			}
			if dbPath != "" {
				if err := persistRuns(cmd.Context(), dbPath, sw, points); err != nil {
					return err
				}
				log.Info().Str("path", dbPath).Msg("stored datapoints")
			}
			if tableOut != "" {
				if err := trainAndSaveTable(reg, cmd, sw, tableOut); err != nil {
					return err
				}
				log.Info().Str("path", tableOut).Msg("saved value store")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&agents, "agents", []string{"qlearning", "sarsa"}, "trainable agents to sweep")
	cmd.Flags().Float64SliceVar(&alphas, "alpha", []float64{0.05}, "step-size grid")
	cmd.Flags().Float64SliceVar(&epsilons, "epsilon", []float64{0.05}, "exploration grid")
	cmd.Flags().Float64Var(&gamma, "gamma", 0.9, "discount factor")
	cmd.Flags().Float64Var(&trainFrac, "train-fraction", 0.8, "fraction of answers used for training")
	cmd.Flags().IntVar(&runs, "runs", 1, "complete repeats of the grid")
	cmd.Flags().IntVar(&workers, "workers", 4, "max concurrent agents")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle each agent's answer order")
	cmd.Flags().StringVar(&csvOut, "csv", "", "write datapoints to this CSV file")
	cmd.Flags().StringVar(&dbPath, "db", getEnv("WORDLE_RL_DB", ""), "SQLite results database path")
	cmd.Flags().StringVar(&chartsOut, "charts", "", "write comparison charts to this HTML file")
	cmd.Flags().StringVar(&tableOut, "save-table", "", "save the trained value store (single-cell sweeps only)")

	return cmd
}

// persistRuns inserts the sweep's datapoints into the results database.
func persistRuns(ctx context.Context, dbPath string, sw runner.Sweep, points []runner.Datapoint) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, p := range points {
		run := store.Run{
			ID:            p.ID,
			Agent:         p.Agent,
			Alpha:         p.Alpha,
			Gamma:         p.Gamma,
			Epsilon:       p.Epsilon,
			TrainFraction: sw.TrainFraction,
			SolveRate:     p.TestPerformance,
			AvgGuesses:    p.AvgGuesses,
			AvgScore:      p.AvgScore,
			StatesVisited: p.NumStatesVisited,
			AvgVisits:     p.AvgVisitsPerState,
			DeltaRaw:      p.TrainingDeltaRaw,
			DeltaRMS:      p.TrainingDeltaRMS,
		}
		if err := st.InsertRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

// trainAndSaveTable trains one agent outside the sweep machinery and writes
// its value store to disk. Only meaningful when the grid has a single cell.
func trainAndSaveTable(reg *agent.Registry, cmd *cobra.Command, sw runner.Sweep, path string) error {
	if len(sw.Agents) != 1 || len(sw.Alphas) != 1 || len(sw.Epsilons) != 1 {
		return errors.New("--save-table requires exactly one agent, one alpha, and one epsilon")
	}
	corpus, err := loadCorpus(cmd)
	if err != nil {
		return err
	}
	p, err := reg.New(sw.Agents[0], corpus, agent.Config{
		Alpha:          sw.Alphas[0],
		Gamma:          sw.Gamma,
		Epsilon:        sw.Epsilons[0],
		Seed:           sw.Seed,
		ShuffleAnswers: sw.Shuffle,
	})
	if err != nil {
		return err
	}
	a, ok := p.(*agent.Agent)
	if !ok {
		return errors.New("--save-table needs a value-store agent")
	}
	if _, err := a.Train(sw.TrainFraction); err != nil {
		return err
	}
	return a.Table().Save(path)
}
