package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rickgao/market-loader/internal/api"
	"github.com/rickgao/market-loader/internal/config"
	"github.com/rickgao/market-loader/internal/database"
	"github.com/rickgao/market-loader/internal/fetcher"
	"github.com/rickgao/market-loader/internal/logx"
	"github.com/rickgao/market-loader/internal/pipeline"
	"github.com/rickgao/market-loader/internal/scheduler"
	"github.com/rickgao/market-loader/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/loader.yaml", "path to config file")
	once := flag.Bool("once", false, "run once and exit, ignoring schedule.cron")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	os.Exit(run(*configPath, *once))
}

func run(configPath string, once bool) int {
	// Load configuration
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		slog.Error("failed to load config", "config", configPath, "error", err)
		return 1
	}

	logger := logx.New(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting market loader", append(version.Attrs(), "config", configPath)...)

	loadTZ, err := time.LoadLocation(cfg.Load.Timezone)
	if err != nil {
		logger.Error("invalid load timezone", "timezone", cfg.Load.Timezone, "error", err)
		return 1
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"provider_url", cfg.Provider.BaseURL,
		"driver", cfg.Database.Driver,
		"instruments", len(cfg.Instruments),
		"schedule", cfg.Schedule.Cron,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.Provider.BaseURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Provider.Timeout),
		api.WithUserAgent(cfg.Provider.UserAgent),
	)

	f := fetcher.New(fetcher.Config{
		MaxAttempts: cfg.Fetch.MaxAttempts,
		RetryDelay:  cfg.Fetch.RetryDelay,
	}, apiClient, logger)

	open := func(ctx context.Context) (pipeline.Store, error) {
		logger.Info("connecting to database",
			"driver", cfg.Database.Driver,
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Name,
		)
		return database.Open(ctx, cfg.Database)
	}

	runner := pipeline.NewRunner(cfg.Instruments, f, open, loadTZ, logger)

	if once || cfg.Schedule.Cron == "" {
		if _, err := runner.Run(ctx); err != nil {
			return 1
		}
		return 0
	}

	sched := scheduler.New(scheduler.Config{
		Spec:       cfg.Schedule.Cron,
		RunOnStart: true,
	}, runner, logger)

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		return 1
	}

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Schedule.HealthPort),
		Handler: createHealthHandler(sched),
	}

	go func() {
		logger.Info("starting health server", "port", cfg.Schedule.HealthPort)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("market loader running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Schedule.HealthPort),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler did not stop cleanly", "error", err)
	}
	healthServer.Shutdown(shutdownCtx)

	logger.Info("market loader stopped")
	return 0
}

// StatusSource reports the scheduler's run history.
type StatusSource interface {
	Status() scheduler.Status
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(src StatusSource) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		st := src.Status()

		health := struct {
			Status    string           `json:"status"`
			Version   string           `json:"version"`
			Scheduler scheduler.Status `json:"scheduler"`
		}{
			Status:    "healthy",
			Version:   version.Version,
			Scheduler: st,
		}

		// Degraded, not unhealthy: the next tick may succeed.
		if st.LastError != "" {
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
