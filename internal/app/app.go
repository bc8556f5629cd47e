// Package app wires configuration into a ready Analyzer and owns the
// connections behind it.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sonnimal/internal/analyzer"
	"sonnimal/internal/cache"
	"sonnimal/internal/common/config"
	"sonnimal/internal/common/database"
	"sonnimal/internal/common/logger"
	"sonnimal/internal/common/observability"
	"sonnimal/internal/history"
	"sonnimal/internal/sentiment"
	"sonnimal/internal/sources"
	"sonnimal/internal/sources/naverapi"
	"sonnimal/internal/sources/naverweb"
	"sonnimal/internal/sources/searchproxy"
)

const connectTimeout = 5 * time.Second

type App struct {
	Config        *config.Config
	Analyzer      *analyzer.Analyzer
	Cache         cache.Store
	History       history.Store
	Observability *observability.Observability

	redis    *database.RedisClient
	postgres *database.PostgresClient
	logger   logger.Logger
}

// New connects the optional backends and assembles the fallback chain.
// Redis and PostgreSQL failures degrade to no-op stores.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	a := &App{
		Config:        cfg,
		Observability: observability.New(cfg.Observability.ServiceName),
		logger:        log,
	}

	a.Cache = a.connectCache(ctx)
	a.History = a.connectHistory(ctx)

	primary := sources.NewChain(log,
		naverapi.New(naverapi.LoadConfig(cfg), log),
		naverweb.New(naverweb.LoadConfig(cfg), log),
	)
	proxy := searchproxy.New(searchproxy.LoadConfig(cfg), log)

	a.Analyzer = analyzer.New(analyzer.Deps{
		Primary:       primary,
		Proxy:         proxy,
		Cache:         a.Cache,
		History:       a.History,
		Engine:        sentiment.New(),
		Observability: a.Observability,
	}, analyzer.Options{
		PageSize:           cfg.APIs.NaverAPI.PageSize,
		SyntheticEnabled:   cfg.Analysis.IsSyntheticEnabled(),
		MergeProxySkeleton: cfg.Analysis.MergeProxySkeleton,
		CacheSynthetic:     cfg.Analysis.CacheSynthetic,
	}, log)

	return a, nil
}

func (a *App) connectCache(ctx context.Context) cache.Store {
	if a.Config.Database.Redis.Address == "" {
		a.logger.Info("redis address not set, analysis cache disabled", nil)
		return cache.Noop{}
	}

	a.redis = database.NewRedis(a.Config.Database.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var client redis.Cmdable = a.redis.Client
	return cache.New(pingCtx, client, cache.Options{
		Prefix: a.Config.Analysis.CachePrefix,
		TTL:    a.Config.Analysis.TTL(),
	}, a.logger)
}

func (a *App) connectHistory(ctx context.Context) history.Store {
	if !a.Config.Analysis.HistoryEnabled {
		return history.Noop{}
	}

	pg, err := database.NewPostgres(a.Config.Database.Postgres)
	if err != nil {
		a.logger.Warn("postgres unavailable, run history disabled", map[string]interface{}{"error": err.Error()})
		return history.Noop{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pg.Ping(pingCtx); err != nil {
		a.logger.Warn("postgres unavailable, run history disabled", map[string]interface{}{"error": err.Error()})
		pg.Close()
		return history.Noop{}
	}

	recorder := history.NewRecorder(pg.GetDB(), a.logger)
	if err := recorder.EnsureSchema(pingCtx); err != nil {
		a.logger.Warn("run history schema setup failed", map[string]interface{}{"error": err.Error()})
	}
	a.postgres = pg
	return recorder
}

// Ready pings whichever backends were connected at startup.
func (a *App) Ready(ctx context.Context) error {
	if a.redis != nil && a.Cache.Available() {
		if err := a.redis.Ping(ctx); err != nil {
			return err
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Ping(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			a.logger.Warn("error closing postgres", map[string]interface{}{"error": err.Error()})
		}
	}
	a.Observability.Shutdown()
}
