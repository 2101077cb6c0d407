// Package stock contains the inventory-side value objects the workflow
// engine reads and emits: per-variant stock levels and immutable movement
// records. The variant stock record itself is owned by the stock ledger;
// this package only models the snapshot the engine works with.
package stock

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Level is a point-in-time snapshot of one variant's stock counts.
// Current is physically on hand; Reserved is committed to not-yet-deducted
// orders. Available stock is the difference.
type Level struct {
	Current  int
	Reserved int
}

// Available returns the quantity that can still be promised to new orders.
func (l Level) Available() int {
	return l.Current - l.Reserved
}

// MovementKind classifies an inventory mutation.
type MovementKind int

const (
	// UnknownMovement represents an invalid movement classification.
	UnknownMovement MovementKind = iota

	// Sale records a deduction of current stock for a packed or sold order.
	Sale

	// Return records stock coming back from a cancelled or returned order.
	Return

	// Reserve records a reservation against a converted order.
	Reserve
)

func getMovementKindStrings() map[MovementKind]string {
	return map[MovementKind]string{
		UnknownMovement: "unknown",
		Sale:            "sale",
		Return:          "return",
		Reserve:         "reserve",
	}
}

// String returns the snake_case kind name. Implements fmt.Stringer.
func (k MovementKind) String() string {
	if str, ok := getMovementKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the kind is one of the declared classifications.
func (k MovementKind) Validate() error {
	if k == UnknownMovement {
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid",
			fmt.Errorf("%d is not a valid movement kind", k))
	}
	if _, ok := getMovementKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid",
			fmt.Errorf("%d is not a valid movement kind", k))
	}
	return nil
}

// Movement is an immutable audit record of one inventory mutation: which
// variant moved, by how much (signed), the balances around the mutation,
// the originating order, and the actor who triggered it. Movements are
// appended by the inventory trigger executor and never updated or deleted.
type Movement struct {
	variantID     kernel.UUID
	delta         int
	balanceBefore int
	balanceAfter  int
	orderID       kernel.UUID
	kind          MovementKind
	actorID       kernel.UUID
}

// NewMovement creates a movement record. Delta must be non-zero and
// consistent with the before/after balances.
func NewMovement(
	variantID kernel.UUID,
	delta, balanceBefore, balanceAfter int,
	orderID kernel.UUID,
	kind MovementKind,
	actorID kernel.UUID,
) (Movement, error) {
	if err := variantID.Validate(); err != nil {
		return Movement{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Movement{}, err
	}
	if err := actorID.Validate(); err != nil {
		return Movement{}, err
	}
	if err := kind.Validate(); err != nil {
		return Movement{}, err
	}
	if delta == 0 {
		return Movement{}, errs.NewValueIsInvalidError("movement delta must not be zero")
	}
	if balanceBefore+delta != balanceAfter {
		return Movement{}, errs.NewValueIsInvalidErrorWithCause("movement balances are inconsistent",
			fmt.Errorf("%d + %d != %d", balanceBefore, delta, balanceAfter))
	}

	return Movement{
		variantID:     variantID,
		delta:         delta,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceAfter,
		orderID:       orderID,
		kind:          kind,
		actorID:       actorID,
	}, nil
}

// VariantID returns the identity of the moved variant.
func (m Movement) VariantID() kernel.UUID {
	return m.variantID
}

// Delta returns the signed quantity change.
func (m Movement) Delta() int {
	return m.delta
}

// BalanceBefore returns the current-stock balance before the mutation.
func (m Movement) BalanceBefore() int {
	return m.balanceBefore
}

// BalanceAfter returns the current-stock balance after the mutation.
func (m Movement) BalanceAfter() int {
	return m.balanceAfter
}

// OrderID returns the originating order's identity.
func (m Movement) OrderID() kernel.UUID {
	return m.orderID
}

// Kind returns the movement classification.
func (m Movement) Kind() MovementKind {
	return m.kind
}

// ActorID returns the identity of the user who triggered the mutation.
func (m Movement) ActorID() kernel.UUID {
	return m.actorID
}
