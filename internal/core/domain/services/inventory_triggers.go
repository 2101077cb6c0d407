package services

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
)

// StockMutator is the atomic mutation surface of the stock ledger gateway.
// Each call applies its batch atomically server-side and reports per-line
// results; idempotency is the gateway's responsibility.
type StockMutator interface {
	// DeductBatch subtracts quantities from current stock (floored at
	// zero) and consumes any matching reservation.
	DeductBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// RestoreBatch adds quantities back to current stock.
	RestoreBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// ReserveBatch increments reserved stock without touching current.
	ReserveBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)

	// ReleaseBatch decrements reserved stock (floored at zero).
	ReleaseBatch(ctx context.Context, orderID kernel.UUID, lines []stock.BatchLine) (stock.BatchResult, error)
}

// MovementRecorder appends immutable stock movement audit records.
type MovementRecorder interface {
	Append(ctx context.Context, movements []stock.Movement) error
}

// TriggerAction identifies the inventory side effect selected for a
// transition.
type TriggerAction int

const (
	// TriggerNone means the target status carries no inventory effect.
	TriggerNone TriggerAction = iota

	// TriggerReserve increments reserved stock for a converted order.
	TriggerReserve

	// TriggerDeduct subtracts packed quantities from current stock.
	TriggerDeduct

	// TriggerRelease gives an outstanding reservation back.
	TriggerRelease

	// TriggerRestore re-credits current stock for returned goods.
	TriggerRestore
)

// String returns the lowercase action name. Implements fmt.Stringer.
func (a TriggerAction) String() string {
	switch a {
	case TriggerReserve:
		return "reserve"
	case TriggerDeduct:
		return "deduct"
	case TriggerRelease:
		return "release"
	case TriggerRestore:
		return "restore"
	default:
		return "none"
	}
}

// TriggerOutcome reports what the executor did after a committed
// transition. Err is non-fatal to the transition: the status write has
// already committed and is never rolled back, so callers must inspect the
// outcome explicitly instead of relying on an error channel.
type TriggerOutcome struct {
	Action    TriggerAction
	Applied   bool
	Movements []stock.Movement
	Err       error
}

// InventoryTriggerExecutor performs the stock side effect of a committed
// transition, keyed by the transition's target status:
//
//	packed                -> deduct line quantities (SALE movements)
//	converted             -> reserve line quantities (RESERVE movements)
//	cancelled             -> release the reservation, but only when the
//	                         prior status is converted, packed, or hold.
//	                         An order cancelled in intake or follow_up
//	                         never committed stock, so restoring would
//	                         double-credit
//	rejected              -> restore current stock, only from custody
//	                         statuses (assigned, out_for_delivery,
//	                         in_transit)
//	returned              -> restore current stock unconditionally
//	anything else         -> no-op, logged explicitly
//
// The only-from guards are checked against the order's status before the
// transition, never its current (already updated) one.
type InventoryTriggerExecutor struct {
	ledger    StockMutator
	movements MovementRecorder
	logger    *slog.Logger
}

// NewInventoryTriggerExecutor creates an executor writing through the given
// ledger and movement recorder.
func NewInventoryTriggerExecutor(
	ledger StockMutator,
	movements MovementRecorder,
	logger *slog.Logger,
) InventoryTriggerExecutor {
	return InventoryTriggerExecutor{
		ledger:    ledger,
		movements: movements,
		logger:    logger.With("component", "inventory_triggers"),
	}
}

// Execute runs the inventory trigger for a transition that has already
// committed. prior is the order's status before the transition. The
// returned outcome reports failures; it never fails the transition itself.
func (e InventoryTriggerExecutor) Execute(
	ctx context.Context,
	o *order.Order,
	prior order.Status,
	a actor.Context,
) TriggerOutcome {
	action := selectTrigger(o.Status(), prior)
	if action == TriggerNone {
		e.logger.InfoContext(ctx, "no inventory trigger for transition",
			"order_id", o.ID().String(),
			"prior_status", prior.String(),
			"status", o.Status().String(),
		)
		return TriggerOutcome{Action: TriggerNone, Applied: true}
	}

	result, err := e.mutate(ctx, action, o)
	if err != nil {
		e.logger.ErrorContext(ctx, "inventory trigger failed",
			"order_id", o.ID().String(),
			"action", action.String(),
			"error", err,
		)
		return TriggerOutcome{Action: action, Err: err}
	}

	outcome := TriggerOutcome{Action: action, Applied: result.AllApplied()}
	outcome.Movements = e.buildMovements(action, o, a, result)

	if !result.AllApplied() {
		// A partial batch response is a hard failure: some lines moved,
		// others did not, and only manual reconciliation can square it.
		outcome.Err = fmt.Errorf("%s batch incomplete for order %s: %d of %d lines failed",
			action, o.ID(), len(result.Failed), len(result.Failed)+len(result.Lines))
		e.logger.ErrorContext(ctx, "inventory trigger partially applied",
			"order_id", o.ID().String(),
			"action", action.String(),
			"failed_lines", len(result.Failed),
		)
	}

	if len(outcome.Movements) > 0 {
		if appendErr := e.movements.Append(ctx, outcome.Movements); appendErr != nil {
			e.logger.ErrorContext(ctx, "failed to record stock movements",
				"order_id", o.ID().String(),
				"error", appendErr,
			)
			if outcome.Err == nil {
				outcome.Err = appendErr
			}
		}
	}

	return outcome
}

// ExecuteCounterSale deducts stock for an in-store order created directly
// in delivered status. Such orders never pass through packed, so the keyed
// trigger table cannot fire for them; the deduction is forced here instead.
func (e InventoryTriggerExecutor) ExecuteCounterSale(
	ctx context.Context,
	o *order.Order,
	a actor.Context,
) TriggerOutcome {
	result, err := e.ledger.DeductBatch(ctx, o.ID(), batchLines(o))
	if err != nil {
		e.logger.ErrorContext(ctx, "counter sale deduction failed",
			"order_id", o.ID().String(),
			"error", err,
		)
		return TriggerOutcome{Action: TriggerDeduct, Err: err}
	}

	outcome := TriggerOutcome{Action: TriggerDeduct, Applied: result.AllApplied()}
	outcome.Movements = e.buildMovements(TriggerDeduct, o, a, result)

	if !result.AllApplied() {
		outcome.Err = fmt.Errorf("deduct batch incomplete for order %s: %d of %d lines failed",
			o.ID(), len(result.Failed), len(result.Failed)+len(result.Lines))
	}

	if len(outcome.Movements) > 0 {
		if appendErr := e.movements.Append(ctx, outcome.Movements); appendErr != nil {
			e.logger.ErrorContext(ctx, "failed to record stock movements",
				"order_id", o.ID().String(),
				"error", appendErr,
			)
			if outcome.Err == nil {
				outcome.Err = appendErr
			}
		}
	}

	return outcome
}

// selectTrigger maps (target, prior) to the inventory action. The switch
// keeps every only-from guard visible at its case.
func selectTrigger(target, prior order.Status) TriggerAction {
	switch target {
	case order.Packed:
		return TriggerDeduct
	case order.Converted:
		return TriggerReserve
	case order.Cancelled:
		if prior == order.Converted || prior == order.Packed || prior == order.Hold {
			return TriggerRelease
		}
		return TriggerNone
	case order.Rejected:
		if prior == order.OutForDelivery || prior == order.Assigned || prior == order.InTransit {
			return TriggerRestore
		}
		return TriggerNone
	case order.Returned:
		return TriggerRestore
	default:
		return TriggerNone
	}
}

func (e InventoryTriggerExecutor) mutate(
	ctx context.Context,
	action TriggerAction,
	o *order.Order,
) (stock.BatchResult, error) {
	lines := batchLines(o)

	switch action {
	case TriggerDeduct:
		return e.ledger.DeductBatch(ctx, o.ID(), lines)
	case TriggerReserve:
		return e.ledger.ReserveBatch(ctx, o.ID(), lines)
	case TriggerRelease:
		return e.ledger.ReleaseBatch(ctx, o.ID(), lines)
	case TriggerRestore:
		return e.ledger.RestoreBatch(ctx, o.ID(), lines)
	default:
		return stock.BatchResult{}, nil
	}
}

// batchLines converts the order's line snapshots into ledger batch lines.
// Quantities always come from the snapshot, never from the live catalog.
func batchLines(o *order.Order) []stock.BatchLine {
	lines := o.Lines()
	out := make([]stock.BatchLine, len(lines))
	for i, l := range lines {
		out[i] = stock.BatchLine{
			VariantID: l.VariantID(),
			Quantity:  l.Quantity(),
		}
	}
	return out
}

func (e InventoryTriggerExecutor) buildMovements(
	action TriggerAction,
	o *order.Order,
	a actor.Context,
	result stock.BatchResult,
) []stock.Movement {
	kind := movementKind(action)
	movements := make([]stock.Movement, 0, len(result.Lines))

	for _, line := range result.Lines {
		delta := line.After - line.Before
		if delta == 0 {
			continue
		}
		m, err := stock.NewMovement(
			line.VariantID, delta, line.Before, line.After, o.ID(), kind, a.UserID())
		if err != nil {
			e.logger.Error("dropping inconsistent movement record",
				"order_id", o.ID().String(),
				"variant_id", line.VariantID.String(),
				"error", err,
			)
			continue
		}
		movements = append(movements, m)
	}

	return movements
}

func movementKind(action TriggerAction) stock.MovementKind {
	switch action {
	case TriggerDeduct:
		return stock.Sale
	case TriggerReserve, TriggerRelease:
		return stock.Reserve
	default:
		return stock.Return
	}
}
