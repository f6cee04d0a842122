// Package cli defines the catalog command tree.
package cli

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

const connectTimeout = 10 * time.Second

// NewRootCommand builds the catalog command with its subcommands attached.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Movie catalog REST service",
		Long: `catalog serves the movie, director, and genre REST API.

Examples:

  catalog serve
  catalog migrate
  catalog seed --file db/seed/catalog.yaml
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	return root
}

func newLogger() *log.Logger {
	return log.New(os.Stdout, "[movie-catalog] ", log.LstdFlags|log.Lshortfile)
}

// openStore loads configuration and connects to the database.
func openStore(ctx context.Context, logger *log.Logger) (config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, store.OptionsFromConfig(cfg, logger))
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, st, nil
}
