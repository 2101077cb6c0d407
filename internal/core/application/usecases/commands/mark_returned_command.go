package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrMarkReturnedCommandIsNotConstructed = errors.New(
		"MarkReturnedCommand must be created via NewMarkReturnedCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// MarkReturnedCommand completes a return: goods are back in the warehouse
// and stock is restored. Initiating a return goes through the generic
// status update instead.
type MarkReturnedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	actor   actor.Context

	guard guard.ConstructorGuard
}

// NewMarkReturnedCommand creates a command to mark an order returned.
// A reason is mandatory.
func NewMarkReturnedCommand(orderID kernel.UUID, reason string, a actor.Context) (MarkReturnedCommand, error) {
	cmd := MarkReturnedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setActor(a),
	); err != nil {
		return MarkReturnedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReturnedCommand) Validate() error {
	return c.guard.Validate(ErrMarkReturnedCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c MarkReturnedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the return reason.
func (c MarkReturnedCommand) Reason() string {
	return c.reason
}

// Actor returns the acting user context.
func (c MarkReturnedCommand) Actor() actor.Context {
	return c.actor
}

func (c *MarkReturnedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkReturnedCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *MarkReturnedCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
