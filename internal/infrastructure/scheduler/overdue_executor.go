package scheduler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverdueRefresher marks past-due ledgers of one center as OVERDUE
type OverdueRefresher interface {
	RefreshOverdue(ctx context.Context, centerID uuid.UUID) (int, error)
}

// OverdueSweepExecutor runs the overdue refresh for the job's center
type OverdueSweepExecutor struct {
	fees   OverdueRefresher
	logger *zap.Logger
}

// NewOverdueSweepExecutor creates a new OverdueSweepExecutor
func NewOverdueSweepExecutor(fees OverdueRefresher, logger *zap.Logger) *OverdueSweepExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueSweepExecutor{fees: fees, logger: logger}
}

// Execute implements JobExecutor
func (e *OverdueSweepExecutor) Execute(ctx context.Context, job *Job) error {
	count, err := e.fees.RefreshOverdue(ctx, job.CenterID)
	if err != nil {
		e.logger.Warn("Overdue sweep incomplete",
			zap.String("center_id", job.CenterID.String()),
			zap.Int("marked_overdue", count),
			zap.Error(err))
		return err
	}
	e.logger.Info("Overdue sweep finished",
		zap.String("center_id", job.CenterID.String()),
		zap.Int("marked_overdue", count))
	return nil
}
