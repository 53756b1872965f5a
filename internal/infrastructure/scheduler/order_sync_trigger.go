package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/infrastructure/logger"
)

// ErrInvalidInterval is returned when the trigger interval is not positive
var ErrInvalidInterval = errors.New("scheduler: sync interval must be positive")

// ScheduledSyncRunner runs one timer-driven sync. ran is false when the
// tick was skipped because another run held the sync lock.
type ScheduledSyncRunner interface {
	RunScheduled(ctx context.Context) (result *integration.SyncAllResult, ran bool, err error)
}

// OrderSyncTriggerConfig holds configuration for the order sync trigger
type OrderSyncTriggerConfig struct {
	// Interval between scheduled runs
	Interval time.Duration
	// RunOnStart fires one run as soon as the trigger starts
	RunOnStart bool
	// RunTimeout bounds a single run; zero means no bound
	RunTimeout time.Duration
}

// DefaultOrderSyncTriggerConfig returns default configuration
func DefaultOrderSyncTriggerConfig() OrderSyncTriggerConfig {
	return OrderSyncTriggerConfig{
		Interval: 15 * time.Minute,
	}
}

// OrderSyncTrigger fires scheduled order syncs on a fixed interval.
// Ticks never overlap: the next tick is only taken after a run returns.
type OrderSyncTrigger struct {
	config OrderSyncTriggerConfig
	runner ScheduledSyncRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOrderSyncTrigger creates a new order sync trigger
func NewOrderSyncTrigger(config OrderSyncTriggerConfig, runner ScheduledSyncRunner, log *zap.Logger) (*OrderSyncTrigger, error) {
	if config.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderSyncTrigger{
		config: config,
		runner: runner,
		logger: log,
	}, nil
}

// Start starts the trigger loop. Starting a running trigger is a no-op.
func (t *OrderSyncTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Order sync trigger started",
		zap.Duration("interval", t.config.Interval),
		zap.Bool("run_on_start", t.config.RunOnStart),
	)
	return nil
}

// Stop stops the trigger and waits for an in-flight run to finish
func (t *OrderSyncTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Order sync trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the trigger loop is active
func (t *OrderSyncTrigger) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isRunning
}

func (t *OrderSyncTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	if t.config.RunOnStart {
		t.tick(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

// tick runs one scheduled sync and logs its outcome
func (t *OrderSyncTrigger) tick(ctx context.Context) {
	if t.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.RunTimeout)
		defer cancel()
	}
	ctx = logger.WithSyncTrigger(ctx, "scheduled")
	log := logger.Enrich(ctx, t.logger)

	start := time.Now()
	result, ran, err := t.runner.RunScheduled(ctx)
	switch {
	case err != nil:
		log.Error("Scheduled order sync failed", zap.Error(err))
	case !ran:
		log.Debug("Scheduled order sync skipped")
	default:
		saved, updated, skipped, errCount := totals(result)
		log.Info("Scheduled order sync completed",
			zap.Int("stores", result.TotalStores),
			zap.Int("saved", saved),
			zap.Int("updated", updated),
			zap.Int("skipped", skipped),
			zap.Int("errors", errCount),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func totals(result *integration.SyncAllResult) (saved, updated, skipped, errCount int) {
	if result == nil {
		return
	}
	for _, r := range result.Results {
		if r.Result == nil {
			errCount++
			continue
		}
		saved += r.Result.Saved
		updated += r.Result.Updated
		skipped += r.Result.Skipped
		errCount += r.Result.Errors
	}
	return
}
