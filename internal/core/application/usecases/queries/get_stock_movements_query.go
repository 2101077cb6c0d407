package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/pkg/guard"
)

var ErrGetStockMovementsQueryIsNotConstructed = errors.New(
	"GetStockMovementsQuery must be created via NewGetStockMovementsQuery constructor",
)

// GetStockMovementsQuery retrieves the stock movement audit trail for one
// order: every deduction, restoration, and reservation change the order's
// triggers produced, in the order they were recorded.
type GetStockMovementsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockMovementsQuery creates a query for an order's movement
// history.
func NewGetStockMovementsQuery(orderID kernel.UUID) (GetStockMovementsQuery, error) {
	q := GetStockMovementsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetStockMovementsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockMovementsQueryIsNotConstructed)
}

// OrderID returns the order whose movement history is requested.
func (q GetStockMovementsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetStockMovementsQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetStockMovementsQueryResponse is one recorded stock movement.
type GetStockMovementsQueryResponse struct {
	VariantID     kernel.UUID
	Delta         int
	BalanceBefore int
	BalanceAfter  int
	Kind          stock.MovementKind
	ActorID       kernel.UUID
	RecordedAt    time.Time
}
