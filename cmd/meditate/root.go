package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hperssn/meditate/internal/catalog"
	"github.com/hperssn/meditate/internal/config"
	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/logging"
	"github.com/hperssn/meditate/internal/storage"
)

// app carries what every subcommand needs once flags and environment are read.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger

	driver   string
	dsn      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "meditate",
		Short:        "Meditation session catalog and timer",
		Long:         "Browse meditation sessions from a database (or the built-in demo set) and run timed sessions from a terminal UI or over HTTP.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.driver, "driver", "", "database driver: mysql, postgres or sqlite3 (overrides MEDITATE_DB_DRIVER)")
	flags.StringVar(&a.dsn, "dsn", "", "database connection string (overrides MEDITATE_DATABASE_URL)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newTUICmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newSeedCmd(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return err
	}

	if a.driver != "" {
		cfg.DBDriver = a.driver
	}
	if a.dsn != "" {
		cfg.DatabaseURL = a.dsn
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.logger = logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if dotenv {
		a.logger.Debug("Loaded .env file")
	}
	a.logger.WithField("driver", cfg.DBDriver).Debug("Configuration loaded")
	return nil
}

func (a *app) openRepository(ctx context.Context) (storage.Repository, error) {
	return storage.Open(ctx, a.cfg.DBDriver, a.cfg.DatabaseURL)
}

// loadCatalog never fails; an unreachable database yields the demo catalog.
func (a *app) loadCatalog(ctx context.Context, rec catalog.Recorder) *domain.Catalog {
	provider := catalog.NewProvider(a.openRepository, a.cfg.CatalogTimeout, logging.Component(a.logger, "catalog"), rec)
	return provider.Load(ctx)
}
