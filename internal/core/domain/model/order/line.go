package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Line is a snapshot of one purchased variant at order time: identity,
// quantity and the prices in effect when the order was captured. Lines are
// immutable after creation and owned exclusively by their Order. The
// inventory triggers read quantities from lines, never from the live
// catalog.
type Line struct {
	variantID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	unitCost  kernel.Money
}

// NewLine creates an order line snapshot.
// Quantity must be positive; prices must be non-negative.
func NewLine(variantID kernel.UUID, quantity int, unitPrice, unitCost kernel.Money) (Line, error) {
	if err := variantID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 || unitCost < 0 {
		return Line{}, errs.NewValueIsInvalidError("line prices must not be negative")
	}

	return Line{
		variantID: variantID,
		quantity:  quantity,
		unitPrice: unitPrice,
		unitCost:  unitCost,
	}, nil
}

// Validate reports whether the line was built through NewLine.
// Zero-value lines fail validation.
func (l Line) Validate() error {
	if err := l.variantID.Validate(); err != nil {
		return err
	}
	if l.quantity <= 0 {
		return errs.NewValueIsRequiredError("quantity")
	}
	return nil
}

// VariantID returns the identity of the purchased variant.
func (l Line) VariantID() kernel.UUID {
	return l.variantID
}

// Quantity returns the purchased quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the sale price per unit at order time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// UnitCost returns the cost per unit at order time.
func (l Line) UnitCost() kernel.Money {
	return l.unitCost
}

// Total returns quantity times unit price.
func (l Line) Total() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}
