package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Money is a monetary amount expressed in minor currency units (e.g. cents).
// Amounts on order lines and totals are captured at order time and never
// recomputed from the live catalog, so integer arithmetic is sufficient.
type Money int64

// NewMoney creates a non-negative monetary amount.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money(amount), nil
}

// Mul multiplies the amount by a quantity. Used to derive line totals.
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Int64 returns the raw amount in minor units.
func (m Money) Int64() int64 {
	return int64(m)
}
