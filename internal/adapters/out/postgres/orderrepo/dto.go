// Package orderrepo persists order aggregates and their line snapshots.
// It implements the repository pattern for the order aggregate, mapping
// between domain entities and the orders / order_lines tables.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for one order aggregate. Lines live in
// their own table and are loaded together with the order.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status            int        `gorm:"index"`
	FulfillmentType   int        `gorm:"index"`
	RiderID           *uuid.UUID `gorm:"type:uuid;index"`
	CourierPartner    string
	TrackingCode      string
	DestinationBranch string
	DeliveryVariant   int
	StatusReason      string
	TotalAmount       int64
	TotalCost         int64
	Lines             []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is the database row for one order line snapshot. Lines are
// immutable after creation, matching the domain invariant.
type LineDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	VariantID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice int64
	UnitCost  int64
}

// TableName overrides GORM's default naming to use "order_lines".
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := o.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	lines := o.Lines()
	lineDTOs := make([]LineDTO, len(lines))
	for i, l := range lines {
		lineDTOs[i] = LineDTO{
			OrderID:   o.ID().Bytes(),
			VariantID: l.VariantID().Bytes(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().Int64(),
			UnitCost:  l.UnitCost().Int64(),
		}
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		Status:            int(o.Status()),
		FulfillmentType:   int(o.FulfillmentType()),
		RiderID:           riderID,
		CourierPartner:    o.CourierPartner(),
		TrackingCode:      o.TrackingCode(),
		DestinationBranch: o.DestinationBranch(),
		DeliveryVariant:   int(o.DeliveryVariant()),
		StatusReason:      o.StatusReason(),
		TotalAmount:       o.TotalAmount().Int64(),
		TotalCost:         o.TotalCost().Int64(),
		Lines:             lineDTOs,
	}
}

// toDomain reconstructs the order aggregate from its database rows.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		variantID, lineErr := kernel.UUIDFromBytes(l.VariantID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		unitPrice, lineErr := kernel.NewMoney(l.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		unitCost, lineErr := kernel.NewMoney(l.UnitCost)
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := order.NewLine(variantID, l.Quantity, unitPrice, unitCost)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		order.FulfillmentType(dto.FulfillmentType),
		order.Status(dto.Status),
		riderID,
		dto.CourierPartner,
		dto.TrackingCode,
		dto.DestinationBranch,
		order.DeliveryVariant(dto.DeliveryVariant),
		dto.StatusReason,
		lines,
	)
}
