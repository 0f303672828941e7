package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	goutils "github.com/jkaninda/go-utils"

	"github.com/jkaninda/maestro/internal/config"
	"github.com/jkaninda/maestro/internal/gateway/httpapi"
	"github.com/jkaninda/maestro/internal/gateway/ws"
	"github.com/jkaninda/maestro/internal/observability"
	"github.com/jkaninda/maestro/internal/producer"
	"github.com/jkaninda/maestro/internal/ratelimit"
)

var (
	serveConfigPath string
	servePort       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the orchestration gateway (HTTP SSE + WebSocket)",
	RunE:  runServe,
}

func init() {
	// Register flags on both root and serve so that
	// `maestro --config path` and `maestro serve --config path` both work.
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&serveConfigPath, "config", config.DefaultConfigPath(), "path to config file")
		cmd.Flags().StringVar(&servePort, "port", "", "override HTTP listen address (e.g. :8080)")
	}
}

// runServe starts the Maestro gateway.
func runServe(_ *cobra.Command, _ []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	path := goutils.Env("MAESTRO_CONFIG", serveConfigPath)
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("config file not found, using defaults", slog.String("path", path))
		cfg, err = config.Load("")
	}
	if err != nil {
		return err
	}

	// Apply CLI overrides.
	if servePort != "" {
		cfg.Server.ListenAddr = servePort
	}

	// Observability (optional).
	obs, err := observability.New(cfg.Observability, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		obs.Shutdown(shutdownCtx)
	}()

	// Orchestration producer.
	var prodMetrics *producer.Metrics
	if obs.MetricsOrNil() != nil {
		prodMetrics = producer.NewMetrics(obs.Metrics.Registry)
	}
	orch := producer.New(buildProducerConfig(cfg.Producer), prodMetrics, logger)

	// Per-session rate limiting (optional).
	var limiter *ratelimit.Limiter
	if cfg.RateLimit != nil {
		limiter = ratelimit.NewLimiter(ratelimit.Config{
			RunsPerMinute: cfg.RateLimit.RunsPerMinute,
			BurstSize:     cfg.RateLimit.BurstSize,
		})
	}

	// HTTP gateway.
	httpCfg := httpapi.Config{
		ListenAddr: cfg.Server.Addr(),
		EnableDocs: cfg.Server.EnableDocs,
	}
	if obs != nil {
		httpCfg.Metrics = obs.Metrics
		httpCfg.HealthChecker = obs.Health
		if obs.Metrics != nil {
			httpCfg.MetricsRegistry = obs.Metrics.Registry
		}
		if obs.Tracer != nil {
			httpCfg.Tracer = obs.Tracer.Tracer()
		}
		if cfg.Observability != nil && cfg.Observability.Metrics != nil {
			httpCfg.MetricsPath = cfg.Observability.Metrics.Path
		}
	}
	gw := httpapi.NewGateway(httpCfg, orch, limiter, logger)

	// WebSocket stream transport, mounted on the HTTP gateway (optional).
	if cfg.WebSocket != nil && cfg.WebSocket.Enabled {
		wsServer := ws.NewServer(orch, limiter, obs.MetricsOrNil(), logger)
		gw.WithHandler(cfg.WebSocket.WSPath(), wsServer.Handler())
		logger.Debug("websocket stream endpoint mounted",
			slog.String("path", cfg.WebSocket.WSPath()),
		)
	}

	// Signal-aware context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- gw.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errs:
		if err != nil {
			logger.Error("gateway exited with error", slog.String("error", err.Error()))
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return gw.Stop(shutdownCtx)
}

// buildProducerConfig maps file config onto the producer's pacing config.
// The phase delay covers the longer inter-phase pauses; the shorter kickoff
// and post-analysis pauses keep their live defaults unless unpaced.
func buildProducerConfig(pc config.ProducerConfig) producer.Config {
	if pc.Unpaced {
		return producer.Config{
			SpecialistChunkSize: pc.SpecialistChunkSize,
			SynthesisChunkSize:  pc.SynthesisChunkSize,
		}
	}

	cfg := producer.DefaultConfig()
	if pc.SpecialistChunkSize > 0 {
		cfg.SpecialistChunkSize = pc.SpecialistChunkSize
	}
	if pc.SynthesisChunkSize > 0 {
		cfg.SynthesisChunkSize = pc.SynthesisChunkSize
	}
	cfg.TickDelay = pc.TickDelay()
	cfg.SynthesisTickDelay = pc.SynthesisDelay()

	phase := pc.PhaseDelay()
	cfg.AnalysisDelay = phase
	cfg.RoutingDelay = phase
	cfg.PreSynthesisDelay = phase
	return cfg
}
