package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/core"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/neighborhood"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/osm"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/server"
	logx "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/logger"
	pkgredis "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig defines all configurable parameters for the service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// Providers
	OSM osm.Config

	// Inbound MCP surface
	Server server.Config

	// Provider query cache: memory, redis or none.
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheTTL     string `envconfig:"CACHE_TTL" default:"15m"`
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromEnv()})

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	cache, closeCache, err := buildCache(cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise query cache")
	}
	defer closeCache()

	client := osm.NewClient(cfg.OSM, cache)
	if err := client.Connect(); err != nil {
		logx.Fatal().Err(err).Msg("failed to connect geo provider client")
	}
	defer client.Close()

	analyzer := neighborhood.NewAnalyzer(client)
	httpSrv := server.NewStreamableHTTP(server.New(analyzer))

	go func() {
		logx.Info().Str("addr", cfg.Server.Addr()).Msg("MCP server listening")
		if err := httpSrv.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error().Err(err).Msg("MCP server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown failed")
	}
}

// buildCache selects the query cache backend. The returned closer
// releases the Redis connection when that backend is active.
func buildCache(cfg AppConfig) (osm.QueryCache, func(), error) {
	noop := func() {}
	switch cfg.CacheBackend {
	case "none":
		return nil, noop, nil
	case "memory":
		return osm.NewMemoryCache(), noop, nil
	case "redis":
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			return nil, noop, err
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, noop, err
		}
		return osm.NewRedisCache(rdb, ttl), func() { rdb.Close() }, nil
	default:
		return nil, noop, errors.New("unknown CACHE_BACKEND: " + cfg.CacheBackend)
	}
}
