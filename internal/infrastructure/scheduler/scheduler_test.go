package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	mu       sync.Mutex
	calls    []uuid.UUID
	failures int
}

func (f *fakeRefresher) RefreshOverdue(_ context.Context, centerID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, centerID)
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("database unavailable")
	}
	return 1, nil
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type staticCenters struct {
	ids []uuid.UUID
	err error
}

func (s staticCenters) ListCenterIDs(context.Context) ([]uuid.UUID, error) {
	return s.ids, s.err
}

func testConfig() Config {
	return Config{
		Workers:       2,
		JobTimeout:    time.Second,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		QueueSize:     10,
	}
}

func startScheduler(t *testing.T, fees OverdueRefresher) *Scheduler {
	t.Helper()
	s := NewScheduler(testConfig(), NewOverdueSweepExecutor(fees, zap.NewNop()), zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func TestScheduler_SubmitRequiresRunning(t *testing.T) {
	s := NewScheduler(testConfig(), NewOverdueSweepExecutor(&fakeRefresher{}, nil), nil)
	assert.ErrorIs(t, s.ScheduleCenter(uuid.New()), ErrSchedulerNotRunning)
}

func TestScheduler_RunsSweep(t *testing.T) {
	fees := &fakeRefresher{}
	s := startScheduler(t, fees)

	centerID := uuid.New()
	require.NoError(t, s.ScheduleCenter(centerID))

	assert.Eventually(t, func() bool { return fees.callCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, centerID, fees.calls[0])
}

func TestScheduler_RetriesFailedSweep(t *testing.T) {
	fees := &fakeRefresher{failures: 1}
	s := startScheduler(t, fees)

	require.NoError(t, s.ScheduleCenter(uuid.New()))
	assert.Eventually(t, func() bool { return fees.callCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	fees := &fakeRefresher{failures: 10}
	s := startScheduler(t, fees)

	require.NoError(t, s.ScheduleCenter(uuid.New()))
	assert.Eventually(t, func() bool { return fees.callCount() == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, fees.callCount())
}

func TestJob_ShouldRetry(t *testing.T) {
	job := NewJob(uuid.New(), 1)
	assert.False(t, job.ShouldRetry())

	job.fail("boom", time.Now())
	assert.True(t, job.ShouldRetry())

	job.scheduleRetry(time.Now())
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.Empty(t, job.Error)

	job.fail("boom", time.Now())
	assert.False(t, job.ShouldRetry())
}

func TestCronTrigger_FiresOncePerDay(t *testing.T) {
	fees := &fakeRefresher{}
	s := startScheduler(t, fees)
	centers := staticCenters{ids: []uuid.UUID{uuid.New(), uuid.New()}}

	trigger := NewCronTrigger(CronTriggerConfig{SweepHour: 1, SweepMinute: 30}, s, centers, nil)
	now := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	trigger.now = func() time.Time { return now }

	ctx := context.Background()
	assert.False(t, trigger.checkAndTrigger(ctx), "before the sweep time")

	now = now.Add(45 * time.Minute)
	assert.True(t, trigger.checkAndTrigger(ctx))
	assert.False(t, trigger.checkAndTrigger(ctx), "already ran today")

	now = now.AddDate(0, 0, 1)
	assert.True(t, trigger.checkAndTrigger(ctx))

	assert.Eventually(t, func() bool { return fees.callCount() == 4 }, time.Second, 5*time.Millisecond)
}

func TestCronTrigger_TriggerNow(t *testing.T) {
	s := startScheduler(t, &fakeRefresher{})

	trigger := NewCronTrigger(DefaultCronTriggerConfig(), s, staticCenters{ids: []uuid.UUID{uuid.New()}}, nil)
	assert.Equal(t, 1, trigger.TriggerNow(context.Background()))

	failing := NewCronTrigger(DefaultCronTriggerConfig(), s, staticCenters{err: errors.New("no db")}, nil)
	assert.Equal(t, 0, failing.TriggerNow(context.Background()))
}

func TestCronTrigger_StartStop(t *testing.T) {
	s := startScheduler(t, &fakeRefresher{})
	trigger := NewCronTrigger(DefaultCronTriggerConfig(), s, staticCenters{}, nil)

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(ctx))
	require.NoError(t, trigger.Stop(ctx))
}
