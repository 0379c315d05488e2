package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/exercise-tracker/internal/logging"
	"github.com/example/exercise-tracker/internal/tracker"
	"github.com/example/exercise-tracker/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(logging.Config{
				Level:  logging.ParseLevel(cfg.LogLevel),
				Format: logging.ParseFormat(cfg.LogFormat),
			})

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st, err := openStore(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer st.Close()

			if migrateUp {
				applied, err := st.Migrate(ctx)
				if err != nil {
					return err
				}
				for _, name := range applied {
					logger.Info("migration applied", "file", name)
				}
			}

			ws := &web.Server{
				Tracker:      tracker.New(st, logger),
				Logger:       logger,
				StoreTimeout: cfg.StoreTimeout,
				LegacyStatus: cfg.LegacyStatus,
			}
			return web.Start(ctx, cfg.ListenAddr(), ws.Routes(), logger)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
