// Package app wires config into the store, cache, storage and service graph
// shared by the api and admin binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/core/auth"
	"github.com/gblsmlo/lemind/internal/core/cache"
	"github.com/gblsmlo/lemind/internal/core/config"
	"github.com/gblsmlo/lemind/internal/core/database"
	"github.com/gblsmlo/lemind/internal/core/logger"
	"github.com/gblsmlo/lemind/internal/core/storage"
	"github.com/gblsmlo/lemind/internal/repo"
	"github.com/gblsmlo/lemind/internal/service"
	"github.com/gblsmlo/lemind/internal/transport/http/router"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Cache    *cache.Cache
	Files    *storage.Local
	JWT      *auth.JWTer
	Services *service.Services

	closers []func()
}

func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	f := cfg.Log.File
	return logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     f.Enable,
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		SlowThresholdMs:    cfg.DB.SlowThresholdMs,
		Log:                l.Named("gorm"),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DB.Driver, err)
	}
	return db, nil
}

// NewCache picks redis when an address is configured.
func NewCache(cfg *config.Config) *cache.Cache {
	if cfg.Redis.Addr != "" {
		return cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	ttl := time.Duration(cfg.Cache.DefaultTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return cache.NewMemory(ttl, 10*time.Minute)
}

// New opens every backing resource. Close releases them in reverse order.
func New(cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l}

	db, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}

	a.Cache = NewCache(cfg)
	a.closers = append(a.closers, func() { _ = a.Cache.Close() })

	a.Files, err = storage.NewLocal(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.JWT = &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	}

	store := repo.NewStore(db)
	a.Services = service.New(service.Deps{
		Repos:     store.Repositories,
		Tx:        store,
		JWT:       a.JWT,
		Cache:     a.Cache,
		Bucket:    a.Files,
		AccessTTL: cfg.Cache.AccessTTL(),
		Log:       l,
	})
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Health is the check set served on /health.
func (a *App) Health() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"db": func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"cache": a.Cache.Ping,
	}
}

func (a *App) Limits() router.Limits {
	l := a.Cfg.Limits
	return router.Limits{
		RPS:          l.RPS,
		Burst:        l.Burst,
		PerIPRPS:     l.PerIPRPS,
		PerIPBurst:   l.PerIPBurst,
		MaxInFlight:  l.MaxInFlight,
		MaxBodyBytes: l.MaxBodyMB << 20,
		Timeout:      time.Duration(l.TimeoutSec) * time.Second,
	}
}
