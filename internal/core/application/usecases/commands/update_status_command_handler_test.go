package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workflowMocks struct {
	factory   *MockOrderUoWFactory
	uow       *MockOrderUoW
	repo      *MockOrderRepository
	ledger    *MockStockLedger
	movements *MockMovementRecorder
	audit     *MockAuditSink
	events    *MockEventPublisher
}

func newWorkflowMocks() workflowMocks {
	return workflowMocks{
		factory:   new(MockOrderUoWFactory),
		uow:       new(MockOrderUoW),
		repo:      new(MockOrderRepository),
		ledger:    new(MockStockLedger),
		movements: new(MockMovementRecorder),
		audit:     new(MockAuditSink),
		events:    new(MockEventPublisher),
	}
}

func (m workflowMocks) workflow() commands.TransitionWorkflow {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return commands.NewTransitionWorkflow(
		m.factory,
		services.NewTransitionValidator(m.ledger),
		services.NewInventoryTriggerExecutor(m.ledger, m.movements, logger),
		m.audit,
		m.events,
		logger,
	)
}

// expectTx wires the unit of work for loading one order.
func (m workflowMocks) expectTx(ctx interface{}, o *order.Order) {
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("OrderRepository").Return(m.repo).Once()
	m.repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
}

func (m workflowMocks) expectCommit(ctx interface{}) {
	m.repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
}

func (m workflowMocks) expectPostCommit() {
	m.audit.On("RecordTransition", mock.Anything, mock.AnythingOfType("ports.TransitionAuditEntry")).Once()
	m.audit.On("RecordTriggerOutcome", mock.Anything, mock.AnythingOfType("ports.TriggerAuditEntry")).Once()
	m.events.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.OrderStatusChangedEvent")).
		Return(nil).Once()
}

func reservedBatchResult(lines []order.Line) stock.BatchResult {
	result := stock.BatchResult{}
	for _, l := range lines {
		result.Lines = append(result.Lines, stock.BatchLineResult{
			VariantID: l.VariantID(),
			Quantity:  l.Quantity(),
			Before:    0,
			After:     l.Quantity(),
		})
	}
	return result
}

func TestUpdateStatusCommandHandler_Handle_ConvertReservesStock(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.FollowUp, order.LocalDelivery)
	a := testActor(actor.Operator)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Converted, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.ledger.On("ReserveBatch", mock.Anything, o.ID(), mock.Anything).
		Return(reservedBatchResult(o.Lines()), nil).Once()
	m.movements.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	m.expectPostCommit()

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Converted, result.Order.Status())
	assert.Equal(t, services.TriggerReserve, result.Trigger.Action)
	assert.True(t, result.Trigger.Applied)
	require.NoError(t, result.Trigger.Err)
	m.ledger.AssertExpectations(t)
	m.repo.AssertExpectations(t)
	m.audit.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_InvalidTransitionRejected(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.Intake, order.LocalDelivery)
	a := testActor(actor.Manager)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Delivered, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	var transitionErr *services.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Intake, transitionErr.From)
	assert.Equal(t, order.Delivered, transitionErr.To)
	assert.NotEmpty(t, transitionErr.Allowed)

	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateStatusCommandHandler_Handle_ViewerRejected(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.FollowUp, order.LocalDelivery)
	a := testActor(actor.Viewer)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Converted, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAccessDenied)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusCommandHandler_Handle_PackStrictShortfallRejected(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.Converted, order.LocalDelivery)
	a := testActor(actor.Manager)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Packed, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	// one unit available, two requested
	levels := map[kernel.UUID]stock.Level{
		o.Lines()[0].VariantID(): {Current: 1, Reserved: 0},
	}
	m.ledger.On("ReadAvailable", mock.Anything, mock.Anything).Return(levels, nil).Once()

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 1)
	assert.Equal(t, 1, stockErr.Shortfalls[0].Shortfall)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusCommandHandler_Handle_PackReadFailureDegradesToWarning(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.Converted, order.LocalDelivery)
	a := testActor(actor.Manager)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Packed, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.ledger.On("ReadAvailable", mock.Anything, mock.Anything).
		Return(nil, errors.New("gateway timeout")).Once()
	m.ledger.On("DeductBatch", mock.Anything, o.ID(), mock.Anything).
		Return(appliedBatchResult(o.Lines(), 10), nil).Once()
	m.movements.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	m.expectPostCommit()

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, services.WarningStockUnverified, result.Warnings[0].Code)
	assert.Equal(t, order.Packed, result.Order.Status())
}

func TestUpdateStatusCommandHandler_Handle_TriggerFailureDoesNotFailTransition(t *testing.T) {
	ctx := t.Context()
	o := testOrderInStatus(order.FollowUp, order.LocalDelivery)
	a := testActor(actor.Manager)
	cmd, err := commands.NewUpdateStatusCommand(o.ID(), order.Converted, a, "")
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.expectTx(ctx, o)
	m.expectCommit(ctx)
	m.ledger.On("ReserveBatch", mock.Anything, o.ID(), mock.Anything).
		Return(stock.BatchResult{}, errors.New("ledger down")).Once()
	m.expectPostCommit()

	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Converted, result.Order.Status())
	require.Error(t, result.Trigger.Err)
	assert.False(t, result.Trigger.Applied)
}

func TestUpdateStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateStatusCommand{} // not constructed properly

	m := newWorkflowMocks()
	h := commands.NewUpdateStatusCommandHandler(m.workflow())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrUpdateStatusCommandIsNotConstructed)
}
