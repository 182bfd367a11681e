package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/orderrepo"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/order"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Visible inside the transaction before commit
	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Visible to a new unit of work after commit
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder()
	order2 := createTestOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_OrderExecutionWorkflow tests the complete order execution
// workflow within transaction boundaries: check-in, evidence collection,
// draft persistence, and completion.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderExecutionWorkflow() {
	ctx := context.Background()

	// Step 1: dispatch the order (auto-commit, no transaction needed)
	testOrder := createTestOrder()
	initialUow := suite.factory.Create()
	err := initialUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Step 2: technician checks in
	startUow := suite.factory.Create()
	err = startUow.Begin(ctx)
	suite.Require().NoError(err)

	started, err := startUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = started.Start(createGeoEvent())
	suite.Require().NoError(err)
	err = startUow.OrderRepository().Update(ctx, started)
	suite.Require().NoError(err)

	err = startUow.Commit(ctx)
	suite.Require().NoError(err)

	// Step 3: an auto-save flush lands notes and line items mid-execution
	flushUow := suite.factory.Create()
	err = flushUow.Begin(ctx)
	suite.Require().NoError(err)

	items := []order.LineItem{createLineItem("Compressor valve", 2, 35.50)}
	err = flushUow.OrderRepository().SaveExecutionDraft(ctx, testOrder.ID(),
		"replaced compressor valve", items)
	suite.Require().NoError(err)

	err = flushUow.Commit(ctx)
	suite.Require().NoError(err)

	// Step 4: remaining evidence and completion in one transaction
	completeUow := suite.factory.Create()
	err = completeUow.Begin(ctx)
	suite.Require().NoError(err)

	executing, err := completeUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	photo, err := order.NewPhoto(kernel.NewUUID(),
		"https://storage.example.com/p1.jpg", "after repair", time.Now())
	suite.Require().NoError(err)
	err = executing.AttachPhoto(photo)
	suite.Require().NoError(err)

	err = executing.SetCustomerSignature("https://storage.example.com/s1.png")
	suite.Require().NoError(err)

	err = executing.Complete(createGeoEvent())
	suite.Require().NoError(err)

	err = completeUow.OrderRepository().Update(ctx, executing)
	suite.Require().NoError(err)

	err = completeUow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state using a new unit of work
	newUow := suite.factory.Create()
	completed, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Completed, completed.Status())
	suite.NotNil(completed.CheckIn())
	suite.NotNil(completed.CheckOut())
	suite.NotNil(completed.CompletedAt())
	suite.Equal("replaced compressor valve", completed.ServiceNotes())
	suite.Len(completed.LineItems(), 1)
	suite.InEpsilon(71.0, completed.Value(), 1e-9)
	suite.Len(completed.EvidencePhotos(), 1)
	suite.Equal("https://storage.example.com/s1.png", completed.CustomerSignature())

	// Completed order no longer appears in the work queue
	remaining, err := newUow.OrderRepository().GetAllUncompleted(ctx)
	suite.Require().NoError(err)
	suite.Empty(remaining)
}

// TestUnitOfWork_ConcurrentPhotoAttachments verifies that two transactions
// attaching evidence photos to the same order serialize on the row lock.
// Each handler reads the aggregate, mutates it, and writes the full row back;
// without the lock the later write would silently drop the earlier photo.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentPhotoAttachments() {
	ctx := context.Background()

	testOrder := createTestOrder()
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	attach := func(url string) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() { _ = uow.Rollback(ctx) }()

		loaded, err := uow.OrderRepository().Get(ctx, testOrder.ID())
		if err != nil {
			return err
		}

		photo, err := order.NewPhoto(kernel.NewUUID(), url, "evidence", time.Now())
		if err != nil {
			return err
		}
		if err := loaded.AttachPhoto(photo); err != nil {
			return err
		}

		if err := uow.OrderRepository().Update(ctx, loaded); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	urls := []string{
		"https://storage.example.com/p1.jpg",
		"https://storage.example.com/p2.jpg",
	}
	attachErrs := make([]error, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			attachErrs[i] = attach(url)
		}()
	}
	wg.Wait()

	suite.Require().NoError(attachErrs[0])
	suite.Require().NoError(attachErrs[1])

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(restored.EvidencePhotos(), 2, "Both photos should survive concurrent attachment")
}

// TestUnitOfWork_WorkflowRollback tests rollback behavior during a multi-step workflow.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowRollback() {
	ctx := context.Background()

	testOrder := createTestOrder()
	initialUow := suite.factory.Create()
	err := initialUow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	started, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = started.Start(createGeoEvent())
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, started)
	suite.Require().NoError(err)

	err = uow.OrderRepository().SaveExecutionDraft(ctx, testOrder.ID(),
		"abandoned edit", []order.LineItem{createLineItem("Relay", 1, 8)})
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Nothing from the transaction was persisted
	newUow := suite.factory.Create()
	restored, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.New, restored.Status())
	suite.Nil(restored.CheckIn())
	suite.Empty(restored.ServiceNotes())
	suite.Empty(restored.LineItems())
}

// TestUnitOfWork_PartialFailureScenario tests behavior when some operations succeed and others fail.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PartialFailureScenario() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Create initial order outside transaction
	existingOrder := createTestOrder()
	err := uow.OrderRepository().Add(ctx, existingOrder)
	suite.Require().NoError(err)

	// Begin new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	newOrder := createTestOrder()
	err = uow.OrderRepository().Add(ctx, newOrder)
	suite.Require().NoError(err)

	// Adding a duplicate of the existing order must fail
	duplicate, err := order.NewOrder(existingOrder.ID(), order.PriorityLow)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, duplicate)
	suite.Require().Error(err, "Adding duplicate order should fail")

	// Even though some operations succeeded, rollback should undo everything
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, existingOrder.ID())
	suite.Require().NoError(err, "Existing order should still exist")

	_, err = newUow.OrderRepository().Get(ctx, newOrder.ID())
	suite.Require().Error(err, "New order should not exist after rollback")
}

// createTestOrder creates a valid order for testing purposes.
func createTestOrder() *order.Order {
	id := kernel.NewUUID()
	testOrder, _ := order.NewOrder(id, order.PriorityMedium)
	return testOrder
}

// createGeoEvent creates a valid geolocation event for testing purposes.
func createGeoEvent() order.GeoEvent {
	point, _ := kernel.NewGeoPoint(-23.55, -46.63)
	event, _ := order.NewGeoEvent(time.Now(), point)
	return event
}

// createLineItem creates a valid product line item for testing purposes.
func createLineItem(name string, quantity int, unitPrice float64) order.LineItem {
	item, _ := order.NewLineItem(kernel.NewUUID(), order.ItemKindProduct,
		name, quantity, unitPrice, nil)
	return item
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
