package commands_test

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/stock"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetStaleIntakeIDs(_ context.Context, _ time.Time) ([]kernel.UUID, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockStockLedger satisfies both the reader and the mutator side of the
// stock ledger gateway.
type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) ReadAvailable(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[kernel.UUID]stock.Level, error) {
	args := m.Called(ctx, variantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]stock.Level), args.Error(1)
}

func (m *MockStockLedger) DeductBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	args := m.Called(ctx, orderID, lines)
	return args.Get(0).(stock.BatchResult), args.Error(1)
}

func (m *MockStockLedger) RestoreBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	args := m.Called(ctx, orderID, lines)
	return args.Get(0).(stock.BatchResult), args.Error(1)
}

func (m *MockStockLedger) ReserveBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	args := m.Called(ctx, orderID, lines)
	return args.Get(0).(stock.BatchResult), args.Error(1)
}

func (m *MockStockLedger) ReleaseBatch(
	ctx context.Context,
	orderID kernel.UUID,
	lines []stock.BatchLine,
) (stock.BatchResult, error) {
	args := m.Called(ctx, orderID, lines)
	return args.Get(0).(stock.BatchResult), args.Error(1)
}

type MockMovementRecorder struct{ mock.Mock }

func (m *MockMovementRecorder) Append(ctx context.Context, movements []stock.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

type MockAuditSink struct{ mock.Mock }

func (m *MockAuditSink) RecordTransition(ctx context.Context, entry ports.TransitionAuditEntry) {
	m.Called(ctx, entry)
}

func (m *MockAuditSink) RecordTriggerOutcome(ctx context.Context, entry ports.TriggerAuditEntry) {
	m.Called(ctx, entry)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// test fixtures

func testActor(role actor.Role) actor.Context {
	a, _ := actor.NewContext(kernel.NewUUID(), role)
	return a
}

func testLines(quantity int) []order.Line {
	price, _ := kernel.NewMoney(1500)
	cost, _ := kernel.NewMoney(900)
	line, _ := order.NewLine(kernel.NewUUID(), quantity, price, cost)
	return []order.Line{line}
}

func testOrderInStatus(status order.Status, ft order.FulfillmentType) *order.Order {
	o, _ := order.RestoreOrder(
		kernel.NewUUID(), ft, status,
		nil, "", "", "", order.UnknownVariant, "",
		testLines(2),
	)
	return o
}

func appliedBatchResult(lines []order.Line, before int) stock.BatchResult {
	result := stock.BatchResult{}
	for _, l := range lines {
		result.Lines = append(result.Lines, stock.BatchLineResult{
			VariantID: l.VariantID(),
			Quantity:  l.Quantity(),
			Before:    before,
			After:     before - l.Quantity(),
		})
	}
	return result
}
