package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandoverToCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.Packed, order.ThirdPartyCourier)
	cmd, err := commands.NewHandoverToCourierCommand(
		o.ID(), "FastShip", "AWB-42", "", order.HomeDelivery, testActor(actor.Manager))
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.expectPostCommit()

	h := commands.NewHandoverToCourierCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.HandoverToCourier, result.Order.Status())
	assert.Equal(t, "FastShip", result.Order.CourierPartner())
	assert.Equal(t, "AWB-42", result.Order.TrackingCode())
}

func TestHandoverToCourierCommandHandler_Handle_BranchPickupNeedsBranch(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.Packed, order.ThirdPartyCourier)
	cmd, err := commands.NewHandoverToCourierCommand(
		o.ID(), "FastShip", "AWB-42", "", order.BranchPickup, testActor(actor.Manager))
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)

	h := commands.NewHandoverToCourierCommandHandler(m.workflow())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrMissingRequiredFields)

	var missingErr *services.MissingFieldsError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, missingErr.Fields, services.FieldDestinationBranch)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewHandoverToCourierCommand_MissingPartnerAndCode(t *testing.T) {
	o := testOrderInStatus(order.Packed, order.ThirdPartyCourier)
	_, err := commands.NewHandoverToCourierCommand(
		o.ID(), "", "", "", order.HomeDelivery, testActor(actor.Manager))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCourierPartnerIsRequired)
	assert.ErrorIs(t, err, commands.ErrTrackingCodeIsRequired)
}
