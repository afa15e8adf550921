package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/app"
	"github.com/gblsmlo/lemind/internal/core/config"
	"github.com/gblsmlo/lemind/internal/core/server"
	"github.com/gblsmlo/lemind/internal/transport/http/handler"
	"github.com/gblsmlo/lemind/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	s := a.Services
	reg := &router.Registry{}
	reg.Register(
		handler.NewAuth(s.Auth),
		handler.NewSpaces(s.Spaces, s.Members),
		handler.NewContacts(s.Contacts),
		handler.NewBilling(s),
		handler.NewProjects(s.Projects),
	)

	r := router.NewAPIEngine(router.APIDeps{
		Log:      log,
		JWT:      a.JWT,
		Revoked:  s.Auth,
		Access:   s.Access,
		Registry: reg,
		Limits:   a.Limits(),
		Health:   a.Health(),
		FilesDir: cfg.Storage.Root,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	base := server.BaseURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("crm api starting",
		zap.String("addr", addr),
		zap.String("health", base+"/health"),
		zap.String("api_v1", base+"/api/v1"),
	)
	if err := server.Run(context.Background(), srv, log, 10*time.Second); err != nil {
		log.Error("crm api stopped", zap.Error(err))
	}
}
