package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/campusgo/assistant/api"
	"github.com/campusgo/assistant/cache"
	"github.com/campusgo/assistant/config"
	"github.com/campusgo/assistant/faq"
	"github.com/campusgo/assistant/llm"
	"github.com/campusgo/assistant/localsearch"
	"github.com/campusgo/assistant/logger"
	"github.com/campusgo/assistant/memory"
	"github.com/campusgo/assistant/metrics"
	"github.com/campusgo/assistant/policy"
	"github.com/campusgo/assistant/resolver"
	"github.com/campusgo/assistant/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("database", cfg.DatabaseURL).
		Str("cache_backend", cfg.CacheBackend).
		Str("ai_base_url", cfg.AIBaseURL).
		Msg("starting campus assistant")

	// Store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	// Metrics
	m := metrics.New()

	// Response cache, on either backend
	var backend cache.Backend = db
	if cfg.CacheBackend == "redis" {
		redisBackend, err := cache.NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisBackend.Close()
		backend = redisBackend
	}
	responseCache := cache.New(backend, log, m)

	// AI fallback client and policy gate
	llmClient := llm.NewLLMClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AITimeout)
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize policy engine")
	}

	// Pipeline
	mem := memory.New(db, log)
	r := resolver.New(
		faq.NewMatcher(db, log),
		responseCache,
		localsearch.NewRouter(db, log),
		llmClient,
		policyEngine,
		mem,
		cfg.AIModel,
		log,
		m,
	)
	r.SetContextMessages(cfg.AIContextMessages)

	// HTTP server
	h := api.NewHandler(db, r, mem, cfg, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.HTTPPort).Msg("api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
