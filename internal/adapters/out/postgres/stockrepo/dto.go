// Package stockrepo implements the stock ledger gateway and the movement
// audit trail on Postgres. Batch mutations run inside one transaction with
// row locks, so a batch either applies fully or not at all.
package stockrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// VariantStockDTO is the stock row for one variant: what is physically on
// hand and how much of it is promised to converted orders.
type VariantStockDTO struct {
	VariantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Current   int
	Reserved  int
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "variant_stocks".
func (VariantStockDTO) TableName() string {
	return "variant_stocks"
}

// MovementDTO is one immutable stock movement record. Rows are append
// only; there is no update path.
type MovementDTO struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	VariantID     uuid.UUID `gorm:"type:uuid;index"`
	Delta         int
	BalanceBefore int
	BalanceAfter  int
	Kind          int
	ActorID       uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming to use "stock_movements".
func (MovementDTO) TableName() string {
	return "stock_movements"
}

func movementFromDomain(m stock.Movement) MovementDTO {
	return MovementDTO{
		OrderID:       m.OrderID().Bytes(),
		VariantID:     m.VariantID().Bytes(),
		Delta:         m.Delta(),
		BalanceBefore: m.BalanceBefore(),
		BalanceAfter:  m.BalanceAfter(),
		Kind:          int(m.Kind()),
		ActorID:       m.ActorID().Bytes(),
	}
}

func movementToDomain(dto MovementDTO) (stock.Movement, error) {
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return stock.Movement{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return stock.Movement{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return stock.Movement{}, err
	}

	return stock.NewMovement(
		variantID,
		dto.Delta,
		dto.BalanceBefore,
		dto.BalanceAfter,
		orderID,
		stock.MovementKind(dto.Kind),
		actorID,
	)
}
