package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CenterProvider lists the centers a sweep should visit
type CenterProvider interface {
	ListCenterIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// Local time of day the daily sweep fires
	SweepHour   int
	SweepMinute int

	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		SweepHour:     1,
		SweepMinute:   0,
		CheckInterval: time.Minute,
	}
}

// CronTrigger submits one sweep job per center once a day
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	centers   CenterProvider
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(
	config CronTriggerConfig,
	scheduler *Scheduler,
	centers CenterProvider,
	logger *zap.Logger,
) *CronTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronTrigger{
		config:    config,
		scheduler: scheduler,
		centers:   centers,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Int("sweep_hour", c.config.SweepHour),
		zap.Int("sweep_minute", c.config.SweepMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger fires at most once per calendar day, and only once the
// configured time has been reached
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return false
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), c.config.SweepHour, c.config.SweepMinute, 0, 0, now.Location())
	if now.Before(due) {
		c.mu.Unlock()
		return false
	}
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering daily overdue sweep")
	c.TriggerNow(ctx)
	return true
}

// TriggerNow schedules a sweep for every center immediately and returns
// how many jobs were queued
func (c *CronTrigger) TriggerNow(ctx context.Context) int {
	centerIDs, err := c.centers.ListCenterIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to list centers for sweep", zap.Error(err))
		return 0
	}

	queued := 0
	for _, centerID := range centerIDs {
		if err := c.scheduler.ScheduleCenter(centerID); err != nil {
			c.logger.Error("Failed to schedule sweep for center",
				zap.String("center_id", centerID.String()),
				zap.Error(err),
			)
			continue
		}
		queued++
	}
	c.logger.Info("Scheduled overdue sweeps", zap.Int("center_count", queued))
	return queued
}
