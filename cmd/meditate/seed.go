package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hperssn/meditate/internal/catalog"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sessions table and insert the demo sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository(cmd.Context())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer repo.Close()

			n, err := catalog.Seed(cmd.Context(), repo)
			if err != nil {
				return err
			}

			if n == 0 {
				a.logger.Info("Sessions table already populated")
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog already seeded, nothing inserted")
				return nil
			}

			a.logger.WithField("sessions", n).Info("Seeded database")
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sessions\n", n)
			return nil
		},
	}
}
