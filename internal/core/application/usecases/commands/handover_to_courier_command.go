package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrHandoverToCourierCommandIsNotConstructed = errors.New(
		"HandoverToCourierCommand must be created via NewHandoverToCourierCommand constructor",
	)
	ErrCourierPartnerIsRequired = errors.New("courier partner is required")
	ErrTrackingCodeIsRequired   = errors.New("tracking code is required")
)

// HandoverToCourierCommand requests handover of a packed third-party
// courier order to its partner. Branch pickup shipments additionally name
// the destination branch.
type HandoverToCourierCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	courierPartner    string
	trackingCode      string
	destinationBranch string
	deliveryVariant   order.DeliveryVariant
	actor             actor.Context

	guard guard.ConstructorGuard
}

// NewHandoverToCourierCommand creates a command to hand an order over to a
// courier partner. Partner and tracking code are mandatory here; whether a
// destination branch is needed depends on the delivery variant and is
// decided by the dispatch requirement check.
func NewHandoverToCourierCommand(
	orderID kernel.UUID,
	courierPartner string,
	trackingCode string,
	destinationBranch string,
	deliveryVariant order.DeliveryVariant,
	a actor.Context,
) (HandoverToCourierCommand, error) {
	cmd := HandoverToCourierCommand{
		destinationBranch: destinationBranch,
		deliveryVariant:   deliveryVariant,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierPartner(courierPartner),
		cmd.setTrackingCode(trackingCode),
		cmd.setActor(a),
	); err != nil {
		return HandoverToCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HandoverToCourierCommand) Validate() error {
	return c.guard.Validate(ErrHandoverToCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c HandoverToCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierPartner returns the courier partner name.
func (c HandoverToCourierCommand) CourierPartner() string {
	return c.courierPartner
}

// TrackingCode returns the partner's AWB or tracking code.
func (c HandoverToCourierCommand) TrackingCode() string {
	return c.trackingCode
}

// DestinationBranch returns the branch receiving a pickup shipment, empty
// for home delivery.
func (c HandoverToCourierCommand) DestinationBranch() string {
	return c.destinationBranch
}

// DeliveryVariant returns the requested delivery variant.
func (c HandoverToCourierCommand) DeliveryVariant() order.DeliveryVariant {
	return c.deliveryVariant
}

// Actor returns the acting user context.
func (c HandoverToCourierCommand) Actor() actor.Context {
	return c.actor
}

func (c *HandoverToCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *HandoverToCourierCommand) setCourierPartner(courierPartner string) error {
	if courierPartner == "" {
		return ErrCourierPartnerIsRequired
	}

	c.courierPartner = courierPartner
	return nil
}

func (c *HandoverToCourierCommand) setTrackingCode(trackingCode string) error {
	if trackingCode == "" {
		return ErrTrackingCodeIsRequired
	}

	c.trackingCode = trackingCode
	return nil
}

func (c *HandoverToCourierCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
