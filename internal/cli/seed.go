package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/seed"
)

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load directors, genres, and movies from a YAML fixtures file",
		Long: `seed inserts every fixture as a new row inside one transaction.
It is meant for an empty database: running it twice duplicates the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse before connecting so a broken file fails fast.
			fx, err := seed.ReadFile(file)
			if err != nil {
				return err
			}

			logger := newLogger()
			_, st, err := openStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer st.Close()

			summary, err := seed.LoadRepository(cmd.Context(), repository.New(st), fx)
			if err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
				"seeded %d director(s), %d genre(s), %d movie(s)\n",
				summary.Directors, summary.Genres, summary.Movies)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "db/seed/catalog.yaml", "fixtures file")
	return cmd
}
