package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"
)

// StockLedger is the gateway to variant stock records. Each batch mutation
// is applied atomically server-side and reports per-line results; a
// response naming both applied and failed lines is treated by the engine
// as a hard failure requiring manual reconciliation. Idempotency of
// individual calls is the ledger's responsibility, not the engine's.
//
// The ledger is deliberately not enlisted in the order-record transaction:
// the status write and the inventory side effect are two separate commits
// (see the workflow executor).
type StockLedger interface {
	// ReadAvailable returns current/reserved levels for the variants.
	// Variants without a stock record are simply absent from the map.
	ReadAvailable(ctx context.Context, variantIDs []kernel.UUID) (map[kernel.UUID]stock.Level, error)

	// DeductBatch subtracts quantities from current stock, flooring at
	// zero, and consumes any matching reservation.
	DeductBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// RestoreBatch adds quantities back to current stock.
	RestoreBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// ReserveBatch increments reserved stock without touching current.
	ReserveBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// ReleaseBatch decrements reserved stock, flooring at zero.
	ReleaseBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)
}

// MovementRepository is the append-only audit trail of stock mutations.
type MovementRepository interface {
	// Append persists movement records. Movements are never updated or
	// deleted afterwards.
	Append(ctx context.Context, movements []stock.Movement) error

	// GetByOrder returns every movement originating from the order, in
	// insertion order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]stock.Movement, error)
}
