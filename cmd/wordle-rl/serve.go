// cmd/wordle-rl/serve.go
//
// The serve subcommand: stand up the HTTP server over the corpus, the agent
// registry, an optional trained value store, and the results database.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-rl/internal/agent"
	"github.com/robalobadob/wordle-rl/internal/httpserver"
	"github.com/robalobadob/wordle-rl/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port      string
		dbPath    string
		tablePath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver and results over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := loadCorpus(cmd)
			if err != nil {
				return err
			}

			var st *store.Store
			if dbPath != "" {
				if st, err = store.Open(dbPath); err != nil {
					return err
				}
				defer st.Close()
			}

			srv := httpserver.New(httpserver.Config{
				Corpus:    corpus,
				Registry:  agent.DefaultRegistry(),
				Store:     st,
				TablePath: tablePath,
			})
			log.Info().Str("port", port).Msg("starting wordle-rl server")
			return srv.Start(":" + port)
		},
	}

	cmd.Flags().StringVar(&port, "port", getEnv("PORT", "5175"), "listen port")
	cmd.Flags().StringVar(&dbPath, "db", getEnv("WORDLE_RL_DB", ""), "SQLite results database path")
	cmd.Flags().StringVar(&tablePath, "table", "", "trained value store for the RL agents")

	return cmd
}
