package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printflow/cmd"
	"printflow/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and scheduled jobs",
		RunE: func(command *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(runCtx, ctx)
		},
	}
}

func serve(ctx context.Context, cc *commandContext) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}

	db, closeStore, err := cc.openStore(true)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(cfg, db, cc.logger)

	e, err := app.CreateEcho(ctx)
	if err != nil {
		return err
	}
	e.HideBanner = true
	e.HidePort = true

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(addr)
	}()
	cc.logger.Info("Server started", "addr", addr, "driver", cfg.Database().Driver)

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	cc.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(command *cobra.Command, args []string) error {
			db, closeStore, err := ctx.openStore(true)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := postgres.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
