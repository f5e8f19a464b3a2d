package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"IntradaySentinel/internal/model"
	"IntradaySentinel/internal/notifier"
	"IntradaySentinel/internal/recorder"
	"IntradaySentinel/internal/strategy"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultInterval is the pause between the end of one cycle and the start of the next.
const DefaultInterval = 30 * time.Second

// Evaluator produces the snapshot for one symbol.
type Evaluator interface {
	Collect(ctx context.Context, symbol string) (*model.IndicatorSnapshot, error)
}

// Options configures the polling loop.
type Options struct {
	Symbols  []string
	Interval time.Duration
	// CronSpec, when set, drives cycles from a cron schedule (seconds field enabled)
	// instead of the fixed-delay loop.
	CronSpec   string
	RunOnStart bool
}

// Scheduler runs polling cycles on a single worker.
type Scheduler struct {
	Options   Options
	Cron      *cron.Cron
	Collector Evaluator
	Recorder  recorder.Recorder
	Notifier  notifier.Notifier
	logger    *zap.Logger
	entryID   cron.EntryID
}

// NewScheduler creates a new Scheduler.
func NewScheduler(opts Options, col Evaluator, rec recorder.Recorder, n notifier.Notifier, logger *zap.Logger) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		Options: opts,
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Collector: col,
		Recorder:  rec,
		Notifier:  n,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled, returning ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Options.CronSpec != "" {
		return s.runCron(ctx)
	}
	s.logger.Info("scheduler started",
		zap.Strings("symbols", s.Options.Symbols),
		zap.Duration("interval", s.Options.Interval))

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
		}
		s.tick(ctx)
		timer.Reset(s.Options.Interval)
	}
}

func (s *Scheduler) runCron(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	if s.Options.RunOnStart {
		// Through the wrapped job so a cron tick cannot overlap the startup cycle.
		s.Cron.Entry(s.entryID).WrappedJob.Run()
	}
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

// Start registers the cycle on the cron schedule and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context) error {
	id, err := s.Cron.AddFunc(s.Options.CronSpec, func() { s.tick(ctx) })
	if err != nil {
		return fmt.Errorf("register polling task: %w", err)
	}
	s.entryID = id
	s.Cron.Start()
	s.logger.Info("cron scheduler started",
		zap.String("cron", s.Options.CronSpec),
		zap.Strings("symbols", s.Options.Symbols))
	return nil
}

// Stop stops the cron runner and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}

// RunCycle evaluates every symbol in order, then persists and renders the batch.
// Per-symbol failures are logged and skipped; a sink failure is logged and does
// not affect the next cycle.
func (s *Scheduler) RunCycle(ctx context.Context) model.Batch {
	start := time.Now()
	batch := make(model.Batch, 0, len(s.Options.Symbols))
	for _, symbol := range s.Options.Symbols {
		if ctx.Err() != nil {
			return nil
		}
		snap, err := s.collect(ctx, symbol)
		switch {
		case errors.Is(err, strategy.ErrNoData):
			s.logger.Info("no data available", zap.String("symbol", symbol))
		case errors.Is(err, strategy.ErrInsufficientData):
			s.logger.Info("not enough samples yet", zap.String("symbol", symbol), zap.Error(err))
		case err != nil:
			s.logger.Warn("symbol skipped", zap.String("symbol", symbol), zap.Error(err))
		default:
			batch = append(batch, *snap)
		}
	}

	if len(batch) == 0 {
		s.logger.Info("no data available this cycle, snapshot left unchanged")
		return batch
	}

	if err := s.Recorder.RecordBatch(ctx, batch); err != nil {
		s.logger.Error("record batch", zap.Error(err))
	} else {
		s.logger.Info("snapshot updated",
			zap.Int("rows", len(batch)),
			zap.Duration("took", time.Since(start)))
	}
	if err := s.Notifier.Notify(batch); err != nil {
		s.logger.Error("render batch", zap.Error(err))
	}
	return batch
}

// tick runs one cycle and tells the notifier how long until the next one.
func (s *Scheduler) tick(ctx context.Context) {
	batch := s.RunCycle(ctx)
	if ctx.Err() != nil {
		return
	}
	if err := s.Notifier.Waiting(s.nextIn(), len(batch) > 0); err != nil {
		s.logger.Error("render wait", zap.Error(err))
	}
}

// nextIn is the fixed interval, or the time until the next cron run.
func (s *Scheduler) nextIn() time.Duration {
	if s.entryID == 0 {
		return s.Options.Interval
	}
	next := s.Cron.Entry(s.entryID).Next
	if next.IsZero() {
		return 0
	}
	return time.Until(next).Round(time.Second)
}

func (s *Scheduler) collect(ctx context.Context, symbol string) (snap *model.IndicatorSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Collector.Collect(ctx, symbol)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
