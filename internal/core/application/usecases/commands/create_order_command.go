package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderCommand represents a request to register a new order on one of
// the fulfillment channels. In-store orders are counter sales and come into
// existence already delivered; every other channel starts in intake.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, order.LocalDelivery, lines, actorCtx)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	fulfillmentType order.FulfillmentType
	lines           []order.Line
	actor           actor.Context

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID, channel, and actor are valid and that at
// least one line is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	fulfillmentType order.FulfillmentType,
	lines []order.Line,
	a actor.Context,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFulfillmentType(fulfillmentType),
		cmd.setLines(lines),
		cmd.setActor(a),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillmentType returns the channel the order will be fulfilled on.
func (c CreateOrderCommand) FulfillmentType() order.FulfillmentType {
	return c.fulfillmentType
}

// Lines returns the order lines.
func (c CreateOrderCommand) Lines() []order.Line {
	return c.lines
}

// Actor returns the acting user context.
func (c CreateOrderCommand) Actor() actor.Context {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setFulfillmentType(fulfillmentType order.FulfillmentType) error {
	if err := fulfillmentType.Validate(); err != nil {
		return err
	}

	c.fulfillmentType = fulfillmentType
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
