package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/hperssn/meditate/internal/logging"
	"github.com/hperssn/meditate/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse sessions and run one in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alt screen owns the terminal; logs go to a file or nowhere
			a.logger.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				a.logger.SetOutput(f)
			}

			cat := a.loadCatalog(cmd.Context(), nil)
			m := tui.New(cat, clockwork.NewRealClock(), logging.Component(a.logger, "tui"), nil)
			return tui.Run(cmd.Context(), m)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the UI is open")
	return cmd
}
