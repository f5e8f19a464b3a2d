package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"IntradaySentinel/internal/collector"
	"IntradaySentinel/internal/config"
	"IntradaySentinel/internal/logging"
	"IntradaySentinel/internal/notifier"
	"IntradaySentinel/internal/recorder"
	"IntradaySentinel/internal/scheduler"

	"go.uber.org/zap"
)

func main() {
	config.LoadDotenv()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("IntradaySentinel starting", zap.String("config", cfgPath))

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "rest":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		fetcher = &collector.MockFetcher{Price: cfg.DataSource.MockPrice}
	default:
		yf := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			yf.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = yf
	}
	logger.Info("data source ready", zap.String("provider", fetcher.Name()))

	col := collector.NewCollector(fetcher, cfg.Signal)
	col.Period = cfg.DataSource.Period
	col.Interval = cfg.DataSource.Interval
	col.Timeout = cfg.DataSource.FetchTimeout

	rec := buildRecorders(ctx, cfg, logger)
	defer func() {
		if err := rec.Close(); err != nil {
			logger.Warn("close recorders", zap.Error(err))
		}
	}()

	sched := scheduler.NewScheduler(scheduler.Options{
		Symbols:    cfg.Symbols,
		Interval:   cfg.Schedule.Interval,
		CronSpec:   cfg.Schedule.Cron,
		RunOnStart: cfg.Schedule.RunOnStart,
	}, col, rec, notifier.NewConsoleNotifier(), logger)

	logger.Info("IntradaySentinel is running. Press Ctrl+C to stop.")
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler exited", zap.Error(err))
		return
	}
	logger.Info("IntradaySentinel stopped")
}

// buildRecorders always writes the CSV snapshot and adds every optional sink
// that is configured and reachable.
func buildRecorders(ctx context.Context, cfg *config.Config, logger *zap.Logger) *recorder.MultiRecorder {
	rec := recorder.NewMultiRecorder(recorder.NewCSVRecorder(cfg.Output.CSVPath))

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("sqlite recorder disabled", zap.Error(err))
		} else {
			rec.Add(sr)
		}
	}
	if cfg.Database.PostgresDSN != "" {
		pr, err := recorder.NewPostgresRecorder(ctx, cfg.Database.PostgresDSN, logger)
		if err != nil {
			logger.Warn("postgres recorder disabled", zap.Error(err))
		} else {
			rec.Add(pr)
		}
	}
	if cfg.Redis.Addr != "" {
		rr, err := recorder.NewRedisRecorder(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Key, logger)
		if err != nil {
			logger.Warn("redis recorder disabled", zap.Error(err))
		} else {
			rec.Add(rr)
		}
	}
	logger.Info("recorders ready", zap.Int("sinks", rec.Len()), zap.String("csv", cfg.Output.CSVPath))
	return rec
}
