package main

import (
	"errors"
	"fmt"
	"log/slog"

	"printflow/cmd"
	"printflow/internal/adapters/out/postgres"
	"printflow/internal/pkg/logging"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// errDatabaseLocked is returned when another process owns the SQLite file.
var errDatabaseLocked = errors.New("database is in use by another printflow process")

type commandContext struct {
	configFile *string
	envFile    string

	config *cmd.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := &commandContext{configFile: &configFlag, envFile: cmd.DefaultEnvFile}

	rootCmd := &cobra.Command{
		Use:           "printflow",
		Short:         "Production tracking for print-on-demand orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(command *cobra.Command, args []string) error {
			return command.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "TOML configuration file")

	rootCmd.AddCommand(
		newServeCommand(ctx),
		newMigrateCommand(ctx),
		newItemsCommand(ctx),
		newHistoryCommand(ctx),
		newNextNumberCommand(ctx),
	)
	return rootCmd
}

func (c *commandContext) ensureConfig() (cmd.Config, error) {
	if c.config != nil {
		return *c.config, nil
	}
	cfg, err := cmd.LoadConfig(c.envFile, *c.configFile)
	if err != nil {
		return cmd.Config{}, err
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return cmd.Config{}, err
	}
	c.config = &cfg
	c.logger = logger
	return cfg, nil
}

// openStore connects to the configured database. With exclusive set, a SQLite
// file is locked for the lifetime of the returned close function.
func (c *commandContext) openStore(exclusive bool) (*gorm.DB, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	dbCfg := cfg.Database()

	release := func() {}
	if exclusive && dbCfg.Driver == postgres.DriverSQLite {
		lock := flock.New(dbCfg.Path + ".lock")
		ok, err := lock.TryLock()
		if err != nil {
			return nil, nil, fmt.Errorf("acquire database lock: %w", err)
		}
		if !ok {
			return nil, nil, errDatabaseLocked
		}
		release = func() {
			if err := lock.Unlock(); err != nil {
				c.logger.Warn("Failed to release database lock", "error", err)
			}
		}
	}

	db, err := postgres.Open(dbCfg)
	if err != nil {
		release()
		return nil, nil, err
	}

	closeStore := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		release()
	}
	return db, closeStore, nil
}
