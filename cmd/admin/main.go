package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/app"
	"github.com/gblsmlo/lemind/internal/core/config"
	"github.com/gblsmlo/lemind/internal/core/database"
	"github.com/gblsmlo/lemind/internal/core/server"
	"github.com/gblsmlo/lemind/internal/transport/http/handler"
	"github.com/gblsmlo/lemind/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfgPath := os.Getenv("CONFIG_PATH")

	root := &cobra.Command{
		Use:          "lemind-admin",
		Short:        "Operator tooling for the lemind CRM",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", cfgPath, "config file (env CONFIG_PATH)")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(cfgPath)
			if err != nil {
				return err
			}
			log, cleanup := app.NewLogger(cfg)
			defer cleanup()

			db, err := app.OpenDB(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrate done", zap.String("driver", cfg.DB.Driver), zap.Int("tables", len(database.Models())))
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /admin/v1 to admin tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(cfgPath)
			if err != nil {
				return err
			}
			log, cleanup := app.NewLogger(cfg)
			defer cleanup()

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			reg := &router.Registry{}
			reg.Register(handler.NewAdmin(a.Services.Users))
			r := router.NewAdminEngine(log, a.JWT, a.Services.Auth, reg)

			addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
			srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)
			base := server.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
			log.Info("admin api starting",
				zap.String("addr", addr),
				zap.String("health", base+"/health"),
				zap.String("admin_v1", base+"/admin/v1"),
			)
			return server.Run(cmd.Context(), srv, log, 10*time.Second)
		},
	}

	root.AddCommand(migrateCmd, serveCmd)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
