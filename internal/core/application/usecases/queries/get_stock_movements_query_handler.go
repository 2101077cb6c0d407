package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockMovementsQueryHandler reads an order's stock movement audit
// trail from the database.
type GetStockMovementsQueryHandler struct {
	db *gorm.DB
}

// NewGetStockMovementsQueryHandler creates a handler for movement history
// queries.
func NewGetStockMovementsQueryHandler(db *gorm.DB) GetStockMovementsQueryHandler {
	return GetStockMovementsQueryHandler{db: db}
}

// Handle executes the query. Movements are returned oldest first.
func (h GetStockMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetStockMovementsQuery,
) ([]GetStockMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movements := make([]GetStockMovementsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			variant_id,
			delta,
			balance_before,
			balance_after,
			kind,
			actor_id,
			created_at
		FROM stock_movements
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStockMovementsQueryResponse
		var variantID, actorID uuid.UUID
		var kind int
		var recordedAt time.Time

		err = rows.Scan(
			&variantID,
			&resp.Delta,
			&resp.BalanceBefore,
			&resp.BalanceAfter,
			&kind,
			&actorID,
			&recordedAt,
		)
		if err != nil {
			return nil, err
		}

		vID, idErr := kernel.UUIDFromBytes(variantID[:])
		if idErr != nil {
			return nil, idErr
		}
		aID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.VariantID = vID
		resp.ActorID = aID
		resp.Kind = stock.MovementKind(kind)
		resp.RecordedAt = recordedAt
		movements = append(movements, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}
