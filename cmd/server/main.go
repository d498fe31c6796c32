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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pricegrid/internal/api"
	"pricegrid/internal/config"
	"pricegrid/internal/engine"
	"pricegrid/internal/metrics"
	"pricegrid/internal/store"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("PRICEGRID_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// A broken tier table must stop the process here, not surface later
	// inside the resolver.
	tiers, err := config.LoadTiers(cfg.Pricing.TiersPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load rate tier table")
	}
	logger.Info().Int("tiers", len(tiers)).Msg("rate tier table loaded")

	bookings, err := store.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open bookings database error")
	}
	defer bookings.Close()

	var source store.Source = bookings
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.CacheTTL() > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		source = store.NewCachedSource(bookings, rdb, cfg.CacheTTL(), &logger)
		logger.Info().Str("address", cfg.Redis.Address).Msg("booking cache enabled")
	}

	eng := engine.New(tiers, engine.Params{
		BufferBefore: cfg.BufferBefore(),
		BufferAfter:  cfg.BufferAfter(),
		MinLead:      cfg.MinLead(),
		MinDuration:  cfg.MinDuration(),
		MaxDuration:  cfg.MaxDuration(),
		HorizonDays:  cfg.SearchHorizon(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond()), cfg.RateLimitBurst())
	server := api.NewServer(cfg.Server.Port, eng, source, cfg.BaseHourlyRate(), limiter, &logger)

	logger.Info().Msg("availability and pricing service started")
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("API server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	logger.Info().Int("port", port).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
