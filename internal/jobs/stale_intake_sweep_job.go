package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

const staleIntakeReason = "auto-cancelled: stale intake"

// StaleIntakeSweepJob cancels orders that sat in intake past the cutoff.
// Runs every five minutes and pushes the expired ids through the regular
// bulk status handler, so the sweep obeys the same transition and trigger
// rules as a manual cancellation.
type StaleIntakeSweepJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.BulkUpdateStatusCommandHandler
	sweeper    actor.Context
	maxAge     time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleIntakeSweepJob creates the sweep job. maxAge is how long an
// order may stay in intake before it is cancelled.
func NewStaleIntakeSweepJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.BulkUpdateStatusCommandHandler,
	sweeper actor.Context,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleIntakeSweepJob {
	return &StaleIntakeSweepJob{
		uowFactory: uowFactory,
		handler:    handler,
		sweeper:    sweeper,
		maxAge:     maxAge,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_intake_sweep_job"),
	}
}

// Start begins the sweep on a five minute schedule.
func (j *StaleIntakeSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale intake sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale intake sweep job started (running every five minutes)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleIntakeSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale intake sweep job stopped")
}

func (j *StaleIntakeSweepJob) run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.maxAge)

	uow := j.uowFactory.Create()
	ids, err := uow.OrderRepository().GetStaleIntakeIDs(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	cmd, err := commands.NewBulkUpdateStatusCommand(ids, order.Cancelled, j.sweeper, staleIntakeReason)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	j.logger.InfoContext(ctx, "Stale intake sweep completed",
		"cancelled", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return nil
}
