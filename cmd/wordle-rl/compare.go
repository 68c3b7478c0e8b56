// cmd/wordle-rl/compare.go
//
// The compare subcommand: play several agents over the same corpus and print
// one summary row each. Baselines and (fresh or table-loaded) RL agents mix
// freely here since only the Player surface is used.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/runner"
)

func newCompareCmd() *cobra.Command {
	var (
		agents []string
		tables map[string]string
		limit  int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Play agents side by side and summarize their performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(cmd)
			if err != nil {
				return err
			}
			reg := agent.DefaultRegistry()

			rows, err := runner.Compare(cmd.Context(), reg, corpus, agents, tables, limit, seed)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}

	cmd.Flags().StringSliceVar(&agents, "agents", []string{"qlearning", "sarsa", "simple", "random"}, "agents to compare")
	cmd.Flags().StringToStringVar(&tables, "tables", nil, "trained value-store files per agent, e.g. qlearning=q.json,sarsa=s.json")
	cmd.Flags().IntVar(&limit, "limit", 0, "episodes per agent (0 = whole corpus)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed")

	return cmd
}
