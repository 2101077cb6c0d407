package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand requests a transition of one order to an explicit
// target status. It is the generic entry point for the intake funnel
// (follow_up, converted, hold, packed) and the backing path of the bulk
// update; the dispatch operations use their dedicated commands instead.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   actor.Context
	reason  string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to move an order to the target
// status. The reason is optional unless the target's dispatch requirements
// demand one.
func NewUpdateStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	a actor.Context,
	reason string,
) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(a),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c UpdateStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns the acting user context.
func (c UpdateStatusCommand) Actor() actor.Context {
	return c.actor
}

// Reason returns the optional free-text reason.
func (c UpdateStatusCommand) Reason() string {
	return c.reason
}

func (c *UpdateStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateStatusCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
