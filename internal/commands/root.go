package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerbook/internal/buildinfo"
	"github.com/cleared-dev/ledgerbook/internal/config"
	"github.com/cleared-dev/ledgerbook/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerbook",
		Short:   "Multi-company double-entry bookkeeping",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", config.FileName, "path to the config file")

	rootCmd.AddCommand(
		newInitCommand(),
		newMigrateCommand(),
		newServeCommand(),
		newCompaniesCommand(),
		newImportCommand(),
		newReportCommand(),
	)

	return rootCmd
}

// loadConfig reads the config file (defaults if absent), then .env and
// environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// openStore connects and, as configured, migrates and seeds.
func openStore(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*store.Store, *logrus.Logger, error) {
	logger := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	st, err := store.Open(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, nil, err
		}
		if cfg.Database.Seed {
			if _, err := st.Seed(ctx); err != nil {
				_ = st.Close()
				return nil, nil, err
			}
		}
	}
	return st, logger, nil
}
