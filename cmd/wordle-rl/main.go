// cmd/wordle-rl/main.go
//
// CLI entry point. Subcommands:
//   train      - run a hyperparameter sweep, write CSV/DB/charts
//   compare    - play trained and baseline agents side by side
//   precompute - derive and save the heuristic tables
//   serve      - HTTP server over the corpus, agents, and results DB
//
// Environment (.env honored): LOG_LEVEL, PORT, WORDLE_RL_DB.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-rl/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	root := &cobra.Command{
		Use:           "wordle-rl",
		Short:         "Train, evaluate, and serve word-guessing RL agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("answers", "", "answer word list file (default: built-in list)")
	root.PersistentFlags().String("words", "", "allowed-guess word list file (default: built-in list)")

	root.AddCommand(newTrainCmd(), newCompareCmd(), newPrecomputeCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// loadCorpus resolves the word lists from the persistent flags, falling back
// to the embedded defaults.
func loadCorpus(cmd *cobra.Command) (*words.Corpus, error) {
	answersPath, _ := cmd.Flags().GetString("answers")
	allowedPath, _ := cmd.Flags().GetString("words")
	if answersPath == "" && allowedPath == "" {
		return words.Default()
	}

	var answers, allowed []string
	var err error
	if answersPath != "" {
		if answers, err = words.Load(answersPath); err != nil {
			return nil, err
		}
	}
	if allowedPath != "" {
		if allowed, err = words.Load(allowedPath); err != nil {
			return nil, err
		}
	}
	if answers == nil {
		// Allowed list given without answers: play over the whole list.
		answers = allowed
	}
	return words.NewCorpus(answers, allowed)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
