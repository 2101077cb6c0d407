package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrBulkUpdateStatusCommandIsNotConstructed = errors.New(
		"BulkUpdateStatusCommand must be created via NewBulkUpdateStatusCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// BulkUpdateStatusCommand requests the same status transition for a list
// of orders. Each order is processed independently through the single
// order path.
type BulkUpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	target   order.Status
	actor    actor.Context
	reason   string

	guard guard.ConstructorGuard
}

// NewBulkUpdateStatusCommand creates a command to move several orders to
// the same target status.
func NewBulkUpdateStatusCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	a actor.Context,
	reason string,
) (BulkUpdateStatusCommand, error) {
	cmd := BulkUpdateStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
		cmd.setActor(a),
	); err != nil {
		return BulkUpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkUpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateStatusCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to transition.
func (c BulkUpdateStatusCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Target returns the requested target status.
func (c BulkUpdateStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns the acting user context.
func (c BulkUpdateStatusCommand) Actor() actor.Context {
	return c.actor
}

// Reason returns the optional free-text reason.
func (c BulkUpdateStatusCommand) Reason() string {
	return c.reason
}

func (c *BulkUpdateStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *BulkUpdateStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *BulkUpdateStatusCommand) setActor(a actor.Context) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
