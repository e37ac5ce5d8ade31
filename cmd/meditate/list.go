package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hperssn/meditate/internal/tui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the session catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := a.loadCatalog(cmd.Context(), nil)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, cat.Status())
			fmt.Fprintln(out)
			for _, s := range cat.Sessions() {
				fmt.Fprintln(out, tui.RenderEntry(s))
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, tui.Footer(cat.Len()))
			return nil
		},
	}
}
