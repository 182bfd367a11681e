package commands_test

import (
	"context"
	"testing"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveExecutionDraft(ctx context.Context, id kernel.UUID,
	notes string, items []order.LineItem) error {
	args := m.Called(ctx, id, notes, items)
	return args.Error(0)
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

// noopUoWFactory satisfies ports.UnitOfWorkFactory for schedulers that must
// never flush during a test.
type noopUoWFactory struct{}

func (noopUoWFactory) Create() ports.UnitOfWork {
	panic("unexpected auto-save flush")
}

type MockLocator struct{ mock.Mock }

func (m *MockLocator) Capture(ctx context.Context, technicianID string) (order.GeoEvent, error) {
	args := m.Called(ctx, technicianID)
	return args.Get(0).(order.GeoEvent), args.Error(1)
}

type MockBlobStorage struct{ mock.Mock }

func (m *MockBlobStorage) Upload(ctx context.Context, path string,
	contentType string, data []byte) (string, error) {
	args := m.Called(ctx, path, contentType, data)
	return args.String(0), args.Error(1)
}

func testGeoEvent(t *testing.T) order.GeoEvent {
	t.Helper()

	point, err := kernel.NewGeoPoint(-23.55, -46.63)
	require.NoError(t, err)

	event, err := order.NewGeoEvent(time.Now(), point)
	require.NoError(t, err)

	return event
}

func testLineItem(t *testing.T, name string, quantity int, unitPrice float64) order.LineItem {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), order.ItemKindProduct, name, quantity, unitPrice, nil)
	require.NoError(t, err)

	return item
}

func newOrderAggregate(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(id, order.PriorityMedium)
	require.NoError(t, err)

	return aggregate
}

// readyAggregate builds an in-progress order whose completion checklist is
// fully satisfied.
func readyAggregate(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()

	aggregate := newOrderAggregate(t, id)
	require.NoError(t, aggregate.Start(testGeoEvent(t)))

	photo, err := order.NewPhoto(kernel.NewUUID(),
		"https://storage.example.com/service-photos/p1", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, aggregate.AttachPhoto(photo))

	aggregate.SetServiceNotes("replaced compressor valve")
	require.NoError(t, aggregate.ReplaceLineItems([]order.LineItem{testLineItem(t, "Valve", 1, 35.50)}))
	require.NoError(t, aggregate.SetCustomerSignature("https://storage.example.com/signatures/s1.png"))

	return aggregate
}
