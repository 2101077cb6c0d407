package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder, NewStoreSaleOrder, or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrFulfillmentTypeIsLocked is returned when attempting to change the
	// fulfillment channel after stock has been committed against the order.
	// Changing channel at that point would orphan reserved or deducted stock.
	ErrFulfillmentTypeIsLocked = errors.New("fulfillment type is immutable once stock is committed")
)

// TransitionFields is the operation-specific payload accompanying a status
// transition request: rider identity for dispatch, courier routing data for
// handover, and a human-readable reason for cancellations and returns.
// Fields left at their zero value are simply not applied.
type TransitionFields struct {
	RiderID           *kernel.UUID
	CourierPartner    string
	TrackingCode      string
	DestinationBranch string
	DeliveryVariant   DeliveryVariant
	Reason            string
}

// Order is the aggregate root for one retail order. It owns its line
// snapshots and walks the per-channel status state machine; monetary totals
// are computed at creation and immutable thereafter.
//
// Invariants:
//   - lines are non-empty and immutable after creation
//   - status changes only through Transition, which consults the channel's
//     adjacency table
//   - the fulfillment channel is immutable once stock has been committed
//   - rider identity is only meaningful on local delivery orders, courier
//     routing data only on third-party courier orders
type Order struct {
	id                kernel.UUID
	status            Status
	fulfillmentType   FulfillmentType
	riderID           *kernel.UUID
	courierPartner    string
	trackingCode      string
	destinationBranch string
	deliveryVariant   DeliveryVariant
	statusReason      string
	lines             []Line
	totalAmount       kernel.Money
	totalCost         kernel.Money

	isConstructed bool
}

// NewOrder creates an order in Intake status for one of the delivery
// channels. Totals are derived from the line snapshots and never
// recomputed afterwards.
func NewOrder(id kernel.UUID, ft FulfillmentType, lines []Line) (*Order, error) {
	o := &Order{
		status:        Intake,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFulfillmentType(ft),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewStoreSaleOrder creates an in-store counter sale. The physical item is
// already in the customer's hands, so the order is born Delivered.
func NewStoreSaleOrder(id kernel.UUID, lines []Line) (*Order, error) {
	o, err := NewOrder(id, InStore, lines)
	if err != nil {
		return nil, err
	}
	o.status = Delivered
	return o, nil
}

// RestoreOrder reconstructs an order from persistence without walking the
// state machine. The stored status is trusted but still validated.
func RestoreOrder(
	id kernel.UUID,
	ft FulfillmentType,
	status Status,
	riderID *kernel.UUID,
	courierPartner, trackingCode, destinationBranch string,
	deliveryVariant DeliveryVariant,
	statusReason string,
	lines []Line,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFulfillmentType(ft),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.riderID = riderID
	o.courierPartner = courierPartner
	o.trackingCode = trackingCode
	o.destinationBranch = destinationBranch
	o.deliveryVariant = deliveryVariant
	o.statusReason = statusReason
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// FulfillmentType returns the order's fulfillment channel.
func (o *Order) FulfillmentType() FulfillmentType {
	return o.fulfillmentType
}

// RiderID returns the assigned rider's identity, or nil when unassigned.
// Only local delivery orders carry a rider.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// CourierPartner returns the courier partner name, empty until handover.
func (o *Order) CourierPartner() string {
	return o.courierPartner
}

// TrackingCode returns the courier tracking code (AWB), empty until handover.
func (o *Order) TrackingCode() string {
	return o.trackingCode
}

// DestinationBranch returns the courier branch for branch-pickup parcels.
func (o *Order) DestinationBranch() string {
	return o.destinationBranch
}

// DeliveryVariant returns home-delivery vs branch-pickup for courier orders.
func (o *Order) DeliveryVariant() DeliveryVariant {
	return o.deliveryVariant
}

// StatusReason returns the reason supplied with the most recent
// cancellation, rejection, or return.
func (o *Order) StatusReason() string {
	return o.statusReason
}

// Lines returns a copy of the order's line snapshots.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// TotalAmount returns the sale total computed at creation.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// TotalCost returns the cost total computed at creation.
func (o *Order) TotalCost() kernel.Money {
	return o.totalCost
}

// StockCommitted reports whether stock has been reserved or deducted
// against the order, i.e. the order has left the pre-fulfillment phase.
func (o *Order) StockCommitted() bool {
	return o.status != Intake && o.status != FollowUp
}

// ChangeFulfillmentType switches the order to a different channel.
// Only permitted while the order is still pre-fulfillment; afterwards the
// channel is locked because reserved or deducted stock would be orphaned.
func (o *Order) ChangeFulfillmentType(ft FulfillmentType) error {
	if err := ft.Validate(); err != nil {
		return err
	}
	if o.StockCommitted() {
		return ErrFulfillmentTypeIsLocked
	}
	o.fulfillmentType = ft
	return nil
}

// Transition moves the order to the target status and applies any supplied
// dispatch fields. The one-step adjacency rule of the order's channel is
// enforced here as a last line of defense; role, requirement, and stock
// gating live in the transition validator, which callers must run first.
func (o *Order) Transition(target Status, fields TransitionFields) error {
	if !CanTransition(o.status, target, o.fulfillmentType) {
		return errs.NewValueIsInvalidErrorWithCause("status transition is invalid",
			fmt.Errorf("cannot move from %s to %s on %s", o.status, target, o.fulfillmentType))
	}

	if err := o.applyFields(fields); err != nil {
		return err
	}

	o.status = target
	return nil
}

func (o *Order) applyFields(fields TransitionFields) error {
	if fields.RiderID != nil {
		if err := fields.RiderID.Validate(); err != nil {
			return err
		}
		rider := *fields.RiderID
		o.riderID = &rider
	}
	if fields.CourierPartner != "" {
		o.courierPartner = fields.CourierPartner
	}
	if fields.TrackingCode != "" {
		o.trackingCode = fields.TrackingCode
	}
	if fields.DestinationBranch != "" {
		o.destinationBranch = fields.DestinationBranch
	}
	if fields.DeliveryVariant != UnknownVariant {
		o.deliveryVariant = fields.DeliveryVariant
	}
	if fields.Reason != "" {
		o.statusReason = fields.Reason
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFulfillmentType(ft FulfillmentType) error {
	if err := ft.Validate(); err != nil {
		return err
	}
	o.fulfillmentType = ft
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)

	var amount, cost kernel.Money
	for _, l := range o.lines {
		amount = amount.Add(l.Total())
		cost = cost.Add(l.UnitCost().Mul(l.Quantity()))
	}
	o.totalAmount = amount
	o.totalCost = cost
	return nil
}
