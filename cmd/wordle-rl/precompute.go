// cmd/wordle-rl/precompute.go
//
// The precompute subcommand: derive the letter-position probability matrix
// and the per-word green-probability table from the corpus and save both as
// JSON. Training loads them back instead of re-deriving when the files are
// supplied.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-rl/internal/heuristic"
)

func newPrecomputeCmd() *cobra.Command {
	var (
		positionsOut string
		tglpOut      string
	)

	cmd := &cobra.Command{
		Use:   "precompute",
		Short: "Derive and save the heuristic tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(cmd)
			if err != nil {
				return err
			}

			p := heuristic.BuildPositions(corpus.Answers)
			if err := p.Save(positionsOut); err != nil {
				return err
			}
			log.Info().Str("path", positionsOut).Msg("wrote letter-position matrix")

			t := heuristic.BuildTGLP(corpus.Allowed, p)
			if err := t.Save(tglpOut); err != nil {
				return err
			}
			log.Info().Str("path", tglpOut).Int("words", len(t)).Msg("wrote green-probability table")
			return nil
		},
	}

	cmd.Flags().StringVar(&positionsOut, "positions-out", "letter_pos.json", "output path for the letter-position matrix")
	cmd.Flags().StringVar(&tglpOut, "tglp-out", "tglp_table.json", "output path for the green-probability table")

	return cmd
}
