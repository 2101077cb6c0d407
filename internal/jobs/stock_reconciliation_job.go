package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// StockReconciliationJob compares the ledger's reserved quantities against
// the sum of line quantities of orders that currently hold a reservation
// (converted and on-hold orders). Drift is logged, never corrected here:
// the trigger executor is allowed to fail after a committed status write,
// so a mismatch is an expected operational signal rather than a bug.
type StockReconciliationJob struct {
	uowFactory  commands.OrderUoWFactory
	stockReader services.StockReader
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStockReconciliationJob creates the hourly reconciliation job.
func NewStockReconciliationJob(
	uowFactory commands.OrderUoWFactory,
	stockReader services.StockReader,
	logger *slog.Logger,
) *StockReconciliationJob {
	return &StockReconciliationJob{
		uowFactory:  uowFactory,
		stockReader: stockReader,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "stock_reconciliation_job"),
	}
}

// Start begins the reconciliation on an hourly schedule.
func (j *StockReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stock reconciliation failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock reconciliation job started (running hourly)")
	return nil
}

// Stop stops the reconciliation job.
func (j *StockReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stock reconciliation job stopped")
}

func (j *StockReconciliationJob) run(ctx context.Context) error {
	expected, err := j.expectedReservations(ctx)
	if err != nil {
		return err
	}
	if len(expected) == 0 {
		j.logger.InfoContext(ctx, "Stock reconciliation completed", "variants", 0, "drifted", 0)
		return nil
	}

	variantIDs := make([]kernel.UUID, 0, len(expected))
	for id := range expected {
		variantIDs = append(variantIDs, id)
	}

	levels, err := j.stockReader.ReadAvailable(ctx, variantIDs)
	if err != nil {
		return err
	}

	drifted := 0
	for variantID, want := range expected {
		got := levels[variantID].Reserved
		if got == want {
			continue
		}
		drifted++
		j.logger.WarnContext(ctx, "Reserved stock drift detected",
			"variant_id", variantID.String(),
			"expected_reserved", want,
			"ledger_reserved", got,
		)
	}

	j.logger.InfoContext(ctx, "Stock reconciliation completed",
		"variants", len(expected),
		"drifted", drifted,
	)
	return nil
}

// expectedReservations sums line quantities per variant over every order
// that should currently hold a reservation.
func (j *StockReconciliationJob) expectedReservations(ctx context.Context) (map[kernel.UUID]int, error) {
	repo := j.uowFactory.Create().OrderRepository()
	expected := make(map[kernel.UUID]int)

	for _, status := range []order.Status{order.Converted, order.Hold} {
		orders, err := repo.GetAllInStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			for _, line := range o.Lines() {
				expected[line.VariantID()] += line.Quantity()
			}
		}
	}

	return expected, nil
}
