package commands_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	// Separate instances for the preflight read and the transactional write,
	// as two repository reads would produce.
	preflightAggregate := readyAggregate(t, orderID)
	writeAggregate := readyAggregate(t, orderID)
	checkOut := testGeoEvent(t)

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	preflightUoW := new(MockOrderUoW)
	writeUoW := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(preflightUoW).Once(),
		preflightUoW.On("Begin", ctx).Return(nil).Once(),
		preflightUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(preflightAggregate, nil).Once(),
		preflightUoW.On("Rollback", ctx).Return(nil).Once(),
		locator.On("Capture", ctx, "tech-042").Return(checkOut, nil).Once(),
		factory.On("Create").Return(writeUoW).Once(),
		writeUoW.On("Begin", ctx).Return(nil).Once(),
		writeUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(writeAggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		writeUoW.On("Commit", ctx).Return(nil).Once(),
		writeUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	drafts := draft.NewStore()
	d, _ := drafts.GetOrCreate(orderID)
	d.Seed(preflightAggregate.ServiceNotes(), preflightAggregate.LineItems())

	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, writeAggregate.Status())
	require.NotNil(t, writeAggregate.CompletedAt())
	assert.Equal(t, checkOut.OccurredAt(), *writeAggregate.CompletedAt())

	_, stillThere := drafts.Get(orderID)
	assert.False(t, stillThere)

	locator.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	preflightUoW.AssertExpectations(t)
	writeUoW.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_UnmetConditionsBeforeLocationFix(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	aggregate := newOrderAggregate(t, orderID)

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	drafts := draft.NewStore()
	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrCompletionPreconditions)

	var completionErr *order.CompletionError
	require.ErrorAs(t, err, &completionErr)
	assert.Len(t, completionErr.Unmet, 4)

	// The technician is never prompted for a location fix when the order
	// cannot complete.
	locator.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestCompleteOrderCommandHandler_Handle_SignatureOnlyBlocker(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	ready := readyAggregate(t, orderID)
	unsigned, err := order.RestoreOrder(ready.ID(), ready.Status(), ready.Priority(),
		ready.CheckIn(), nil, ready.EvidencePhotos(), ready.ServiceNotes(),
		ready.LineItems(), "", nil)
	require.NoError(t, err)

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(unsigned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	drafts := draft.NewStore()
	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	var completionErr *order.CompletionError
	require.ErrorAs(t, err, &completionErr)
	assert.True(t, completionErr.SignatureOnly())
	locator.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestCompleteOrderCommandHandler_Handle_ChecklistSatisfiedByDraft(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	// Persisted state is missing notes and items; the draft carries both.
	buildAggregate := func() *order.Order {
		ready := readyAggregate(t, orderID)
		bare, restoreErr := order.RestoreOrder(ready.ID(), ready.Status(), ready.Priority(),
			ready.CheckIn(), nil, ready.EvidencePhotos(), "", nil,
			ready.CustomerSignature(), nil)
		require.NoError(t, restoreErr)
		return bare
	}
	preflightAggregate := buildAggregate()
	writeAggregate := buildAggregate()

	drafts := draft.NewStore()
	d, _ := drafts.GetOrCreate(orderID)
	require.True(t, d.StageNotes("replaced compressor valve", time.Now()))
	require.NoError(t, d.AddItem(testLineItem(t, "Valve", 1, 35.50)))

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	preflightUoW := new(MockOrderUoW)
	writeUoW := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(preflightUoW).Once(),
		preflightUoW.On("Begin", ctx).Return(nil).Once(),
		preflightUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(preflightAggregate, nil).Once(),
		preflightUoW.On("Rollback", ctx).Return(nil).Once(),
		locator.On("Capture", ctx, "tech-042").Return(testGeoEvent(t), nil).Once(),
		factory.On("Create").Return(writeUoW).Once(),
		writeUoW.On("Begin", ctx).Return(nil).Once(),
		writeUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(writeAggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		writeUoW.On("Commit", ctx).Return(nil).Once(),
		writeUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, writeAggregate.Status())
	assert.Equal(t, "replaced compressor valve", writeAggregate.ServiceNotes())
	assert.Len(t, writeAggregate.LineItems(), 1)
}

func TestCompleteOrderCommandHandler_Handle_AlreadyCompletedIsNoOp(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	aggregate := readyAggregate(t, orderID)
	require.NoError(t, aggregate.Complete(testGeoEvent(t)))

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	drafts := draft.NewStore()
	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	locator.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestCompleteOrderCommandHandler_Handle_LocationFailureAfterPreflight(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(orderID, "tech-042")
	require.NoError(t, err)

	aggregate := readyAggregate(t, orderID)

	locator := new(MockLocator)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		locator.On("Capture", ctx, "tech-042").
			Return(order.GeoEvent{}, ports.NewGeoError(ports.GeoTimeout, nil)).Once(),
	)

	drafts := draft.NewStore()
	handler := commands.NewCompleteOrderCommandHandler(factory, locator, drafts, newTestScheduler(drafts))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrLocationUnobtainable)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestCompleteOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CompleteOrderCommand{}

	factory := new(MockOrderUoWFactory)
	drafts := draft.NewStore()

	handler := commands.NewCompleteOrderCommandHandler(factory, new(MockLocator), drafts,
		newTestScheduler(drafts))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCompleteOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
