package services

import (
	"orderflow/internal/core/domain/model/order"
)

// ValidationMode controls whether a stock shortfall blocks, warns, or is
// ignored during order creation and the packed transition.
type ValidationMode int

const (
	// ModeNone performs no blocking; a shortfall is at most logged.
	ModeNone ValidationMode = iota

	// ModeSoft permits the operation but attaches a warning on shortfall.
	ModeSoft

	// ModeStrict rejects the operation outright on shortfall.
	ModeStrict
)

// String returns the lowercase mode name. Implements fmt.Stringer.
func (m ValidationMode) String() string {
	switch m {
	case ModeSoft:
		return "soft"
	case ModeStrict:
		return "strict"
	default:
		return "none"
	}
}

// StockValidationMode returns the validation mode for an order of the given
// channel sitting at (or entering) the given status. The mode is not a
// fixed global policy; it tightens as the order moves down the funnel:
//
//   - intake, follow_up: NONE. Nothing is committed yet.
//   - converted, hold: SOFT. Quantities are reserved, not deducted; a
//     shortfall becomes a backorder warning, never a rejection.
//   - packed and everything downstream (delivery channels): STRICT.
//     Deduction is required and a shortfall blocks the transition.
//   - in_store: always SOFT regardless of status. A counter sale is
//     permitted even on a stock mismatch (the item is already in the
//     customer's hands), but the mismatch is still surfaced for later
//     reconciliation.
//
// This single function is the shared policy for both of its call sites:
// order creation and the validator's packed check. Keeping one
// implementation prevents the two from diverging.
func StockValidationMode(ft order.FulfillmentType, status order.Status) ValidationMode {
	if ft == order.InStore {
		return ModeSoft
	}

	switch status {
	case order.Intake, order.FollowUp:
		return ModeNone
	case order.Converted, order.Hold:
		return ModeSoft
	default:
		// Packed and every status downstream of it.
		return ModeStrict
	}
}
