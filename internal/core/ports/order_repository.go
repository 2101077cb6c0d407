// Package ports defines the contracts between the workflow engine and its
// infrastructure: the order record store, the stock ledger gateway, the
// movement audit trail, the audit/log sink, and the event publisher.
// These interfaces keep the domain layer free of persistence concerns and
// make every collaborator replaceable in tests.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its line snapshots.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves every order currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetStaleIntakeIDs lists orders sitting in intake since before the
	// cutoff. Used by the stale-intake sweep job.
	GetStaleIntakeIDs(ctx context.Context, olderThan time.Time) ([]kernel.UUID, error)
}
