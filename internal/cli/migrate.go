package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			_, st, err := openStore(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer st.Close()

			applied, err := st.Migrate(cmd.Context())
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), "migration failed")
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				color.New(color.FgYellow).Fprintln(out, "schema is up to date")
				return nil
			}
			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(out, "applied %d migration(s):\n", len(applied))
			for _, name := range applied {
				color.New(color.FgCyan).Fprintf(out, "  - %s\n", name)
			}
			return nil
		},
	}
}
