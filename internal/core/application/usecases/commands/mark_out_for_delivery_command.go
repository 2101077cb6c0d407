package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrMarkOutForDeliveryCommandIsNotConstructed = errors.New(
	"MarkOutForDeliveryCommand must be created via NewMarkOutForDeliveryCommand constructor",
)

// MarkOutForDeliveryCommand requests that an assigned local-delivery order
// leaves with its rider. Riders may only move orders assigned to them.
type MarkOutForDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Context

	guard guard.ConstructorGuard
}

// NewMarkOutForDeliveryCommand creates a command to mark an order out for
// delivery.
func NewMarkOutForDeliveryCommand(orderID kernel.UUID, a actor.Context) (MarkOutForDeliveryCommand, error) {
	cmd := MarkOutForDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(a),
	); err != nil {
		return MarkOutForDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOutForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrMarkOutForDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c MarkOutForDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user context.
func (c MarkOutForDeliveryCommand) Actor() actor.Context {
	return c.actor
}

func (c *MarkOutForDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkOutForDeliveryCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
