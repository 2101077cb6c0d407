package services

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
)

// StockReader supplies the availability snapshot the packed check reads.
// Satisfied by the stock ledger gateway.
type StockReader interface {
	ReadAvailable(ctx context.Context, variantIDs []kernel.UUID) (map[kernel.UUID]stock.Level, error)
}

// Warning codes attached to otherwise successful validations.
const (
	WarningStockShortfall  = "stock_shortfall"
	WarningStockUnverified = "stock_unverified"
)

// Warning is a non-blocking finding the caller may surface without treating
// the transition as failed.
type Warning struct {
	Code    string
	Message string
}

// ValidationResult is returned for an allowed transition, carrying any
// warnings accumulated along the way.
type ValidationResult struct {
	Warnings []Warning
}

// TransitionValidator is the single decision function for status changes.
// It composes the four rule tables (adjacency, role lock, dispatch
// requirements, and the stock validation policy) into one ordered check
// that short-circuits on the first failure:
//
//  1. the target must be in the current status's allowed-next set for the
//     order's channel,
//  2. the actor must pass the role/identity lock of the current status,
//  3. the target's dispatch requirements must be satisfiable,
//  4. entering Packed, the stock policy is applied against a fresh
//     availability snapshot.
//
// Checks 1-3 and a strict check 4 reject before any write occurs; a
// non-strict check 4 attaches warnings instead.
type TransitionValidator struct {
	stockReader StockReader
}

// NewTransitionValidator creates a validator reading availability through
// the given stock reader.
func NewTransitionValidator(stockReader StockReader) TransitionValidator {
	return TransitionValidator{stockReader: stockReader}
}

// Validate decides whether the actor may move the order to the target
// status with the supplied fields. On rejection the returned error is one
// of the rejection types of this package; on success the result carries
// any non-blocking warnings.
func (v TransitionValidator) Validate(
	ctx context.Context,
	o *order.Order,
	target order.Status,
	a actor.Context,
	supplied order.TransitionFields,
) (*ValidationResult, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if !order.CanTransition(o.Status(), target, o.FulfillmentType()) {
		return nil, &InvalidTransitionError{
			From:    o.Status(),
			To:      target,
			Channel: o.FulfillmentType(),
			Allowed: order.AllowedNext(o.Status(), o.FulfillmentType()),
		}
	}

	if err := CheckRoleLock(o, a); err != nil {
		return nil, err
	}

	if err := CheckRequirements(o, target, supplied); err != nil {
		return nil, err
	}

	result := &ValidationResult{}
	if target == order.Packed {
		if err := v.checkStock(ctx, o, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// checkStock applies the shared stock validation policy to the packed
// transition. A snapshot read failure degrades to a warning: the pipeline
// keeps moving and the deduction step will surface a real shortage.
func (v TransitionValidator) checkStock(ctx context.Context, o *order.Order, result *ValidationResult) error {
	mode := StockValidationMode(o.FulfillmentType(), order.Packed)
	if mode == ModeNone {
		return nil
	}

	lines := o.Lines()
	variantIDs := make([]kernel.UUID, len(lines))
	for i, l := range lines {
		variantIDs[i] = l.VariantID()
	}

	levels, err := v.stockReader.ReadAvailable(ctx, variantIDs)
	if err != nil {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningStockUnverified,
			Message: fmt.Sprintf("could not verify stock, proceeding: %s", err),
		})
		return nil
	}

	shortfalls := ComputeShortfalls(lines, levels)
	if len(shortfalls) == 0 {
		return nil
	}

	if mode == ModeStrict {
		return &InsufficientStockError{Shortfalls: shortfalls}
	}

	for _, s := range shortfalls {
		result.Warnings = append(result.Warnings, Warning{
			Code: WarningStockShortfall,
			Message: fmt.Sprintf("variant %s short by %d (requested %d, available %d)",
				s.VariantID, s.Shortfall, s.Requested, s.Available),
		})
	}
	return nil
}

// ComputeShortfalls compares requested line quantities against an
// availability snapshot. Variants missing from the snapshot count as zero
// available. Shared by the validator and the order creation flow.
func ComputeShortfalls(lines []order.Line, levels map[kernel.UUID]stock.Level) []Shortfall {
	var shortfalls []Shortfall
	for _, l := range lines {
		available := levels[l.VariantID()].Available()
		if available < l.Quantity() {
			shortfalls = append(shortfalls, Shortfall{
				VariantID: l.VariantID(),
				Requested: l.Quantity(),
				Available: available,
				Shortfall: l.Quantity() - available,
			})
		}
	}
	return shortfalls
}
