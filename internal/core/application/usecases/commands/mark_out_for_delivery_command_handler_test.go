package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignedOrderWithRider(riderID kernel.UUID) *order.Order {
	o, _ := order.RestoreOrder(
		kernel.NewUUID(), order.LocalDelivery, order.Assigned,
		&riderID, "", "", "", order.UnknownVariant, "",
		testLines(2),
	)
	return o
}

func TestMarkOutForDeliveryCommandHandler_Handle_AssignedRiderSucceeds(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	o := assignedOrderWithRider(riderID)
	rider, err := actor.NewContext(riderID, actor.Rider)
	require.NoError(t, err)
	cmd, err := commands.NewMarkOutForDeliveryCommand(o.ID(), rider)
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.expectPostCommit()

	h := commands.NewMarkOutForDeliveryCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, result.Order.Status())
}

func TestMarkOutForDeliveryCommandHandler_Handle_WrongRiderRejected(t *testing.T) {
	ctx := t.Context()
	o := assignedOrderWithRider(kernel.NewUUID())
	otherRider := testActor(actor.Rider)
	cmd, err := commands.NewMarkOutForDeliveryCommand(o.ID(), otherRider)
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)

	h := commands.NewMarkOutForDeliveryCommandHandler(m.workflow())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAccessDenied)

	var riderErr *services.WrongAssignedRiderError
	require.ErrorAs(t, err, &riderErr)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkOutForDeliveryCommandHandler_Handle_AdminBypassesIdentityLock(t *testing.T) {
	ctx := t.Context()
	o := assignedOrderWithRider(kernel.NewUUID())
	cmd, err := commands.NewMarkOutForDeliveryCommand(o.ID(), testActor(actor.Admin))
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.expectPostCommit()

	h := commands.NewMarkOutForDeliveryCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, result.Order.Status())
}
