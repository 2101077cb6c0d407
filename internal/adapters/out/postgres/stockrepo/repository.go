package stockrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements the stock ledger gateway on Postgres.
//
// The ledger is deliberately not enlisted in the order unit of work: each
// batch mutation runs in its own transaction, committed independently of
// the status write that triggered it. Rows are locked FOR UPDATE for the
// duration of a batch, current and reserved quantities are floored at
// zero, and a deduction consumes any matching reservation.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a ledger over the given connection.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// ReadAvailable returns the stock level for each requested variant.
// Variants without a stock row are simply absent from the result.
func (l *GormStockLedger) ReadAvailable(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[kernel.UUID]stock.Level, error) {
	raw := make([]uuid.UUID, len(variantIDs))
	for i, id := range variantIDs {
		raw[i] = id.Bytes()
	}

	var dtos []VariantStockDTO
	if err := l.db.WithContext(ctx).Find(&dtos, "variant_id IN ?", raw).Error; err != nil {
		return nil, err
	}

	levels := make(map[kernel.UUID]stock.Level, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.VariantID[:])
		if err != nil {
			return nil, err
		}
		levels[id] = stock.Level{Current: dto.Current, Reserved: dto.Reserved}
	}

	return levels, nil
}

// DeductBatch subtracts quantities from current stock, floored at zero,
// and consumes any matching reservation.
func (l *GormStockLedger) DeductBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	return l.mutate(ctx, lines, func(row *VariantStockDTO, qty int) (before, after int) {
		before = row.Current
		row.Current = floor(row.Current - qty)
		row.Reserved = floor(row.Reserved - qty)
		return before, row.Current
	})
}

// RestoreBatch adds quantities back to current stock.
func (l *GormStockLedger) RestoreBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	return l.mutate(ctx, lines, func(row *VariantStockDTO, qty int) (before, after int) {
		before = row.Current
		row.Current += qty
		return before, row.Current
	})
}

// ReserveBatch increments reserved stock without touching current.
func (l *GormStockLedger) ReserveBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	return l.mutate(ctx, lines, func(row *VariantStockDTO, qty int) (before, after int) {
		before = row.Reserved
		row.Reserved += qty
		return before, row.Reserved
	})
}

// ReleaseBatch decrements reserved stock, floored at zero.
func (l *GormStockLedger) ReleaseBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	return l.mutate(ctx, lines, func(row *VariantStockDTO, qty int) (before, after int) {
		before = row.Reserved
		row.Reserved = floor(row.Reserved - qty)
		return before, row.Reserved
	})
}

// mutate applies one batch inside a single transaction. Every touched row
// is locked FOR UPDATE first; a missing row is created at zero so floor
// semantics apply uniformly. Any error rolls the whole batch back.
func (l *GormStockLedger) mutate(
	ctx context.Context,
	lines []stock.BatchLine,
	apply func(row *VariantStockDTO, qty int) (before, after int),
) (stock.BatchResult, error) {
	result := stock.BatchResult{}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			raw := line.VariantID.Bytes()

			var row VariantStockDTO
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(VariantStockDTO{VariantID: raw}).
				FirstOrCreate(&row).Error
			if err != nil {
				return err
			}

			before, after := apply(&row, line.Quantity)
			if err = tx.Save(&row).Error; err != nil {
				return err
			}

			result.Lines = append(result.Lines, stock.BatchLineResult{
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				Before:    before,
				After:     after,
			})
		}
		return nil
	})
	if err != nil {
		return stock.BatchResult{}, err
	}

	return result, nil
}

func floor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// GormMovementRepository implements the append-only movement audit trail.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a movement repository over the given
// connection.
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append records a batch of movements. Movements are immutable; there is
// no update or delete path.
func (r *GormMovementRepository) Append(ctx context.Context, movements []stock.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	dtos := make([]MovementDTO, len(movements))
	for i, m := range movements {
		dtos[i] = movementFromDomain(m)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByOrder retrieves every movement recorded for an order, oldest first.
func (r *GormMovementRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]stock.Movement, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	movements := make([]stock.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, mErr := movementToDomain(dto)
		if mErr != nil {
			return nil, mErr
		}
		movements = append(movements, m)
	}

	return movements, nil
}
