package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/adapters/out/postgres/storetest"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("postgres container tests are skipped in short mode")
	}

	container, db, err := storetest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(storetest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string, productNames ...string) *order.Order {
	id := kernel.NewUUID()
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	products := make([]*order.Product, 0, len(productNames))
	for _, name := range productNames {
		p, err := order.NewProduct(kernel.NewUUID(), id, name, now)
		suite.Require().NoError(err)
		products = append(products, p)
	}
	shipBy := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(id, order.Details{
		Number:       number,
		CustomerName: "Grace Hopper",
		Platform:     order.CustomOrder,
		Notes:        "two boxes",
		ShipByDate:   &shipBy,
		IsExpress:    true,
	}, products, now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsOrderAndProducts() {
	ctx := context.Background()
	testOrder := suite.newOrder("001", "Dragon", "Castle", "Boat")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("001", stored.Number())
	suite.Equal(order.CustomOrder, stored.Platform())
	suite.Equal("two boxes", stored.Notes())
	suite.True(stored.IsExpress())
	suite.False(stored.IsArchived())
	suite.Require().NotNil(stored.ShipByDate())
	suite.True(testOrder.ShipByDate().Equal(*stored.ShipByDate()))

	names := make([]string, 0, 3)
	for _, p := range stored.Products() {
		names = append(names, p.Name())
	}
	suite.Equal([]string{"Dragon", "Castle", "Boat"}, names)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_ReturnsDuplicateKey() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("007", "Dragon")))

	err := suite.repository.Add(ctx, suite.newOrder("007", "Castle"))

	suite.Require().ErrorIs(err, errs.ErrDuplicateKey)
	var dup *errs.DuplicateKeyError
	suite.Require().ErrorAs(err, &dup)
	suite.Equal("order_number", dup.Field)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsHeaderAndArchive() {
	ctx := context.Background()
	testOrder := suite.newOrder("010", "Dragon")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	details := testOrder.Details()
	details.Notes = ""
	details.IsExpress = false
	details.ShipByDate = nil
	suite.Require().NoError(testOrder.UpdateDetails(details, time.Now()))
	suite.Require().NoError(testOrder.MarkShipped(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(stored.Notes())
	suite.False(stored.IsExpress())
	suite.Nil(stored.ShipByDate())
	suite.True(stored.IsArchived())
	suite.NotNil(stored.ShippedAt())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleCopy_ReturnsConcurrentModification() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	testOrder := suite.newOrder("011", "Dragon")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Equal(1, testOrder.Version())

	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(testOrder.MarkShipped(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Equal(2, testOrder.Version())

	details := stale.Details()
	details.Notes = "late edit"
	suite.Require().NoError(stale.UpdateDetails(details, time.Now()))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsArchived())
	suite.Equal("two boxes", stored.Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder("404", "Ghost"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrievedOrder, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrievedOrder)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextOrderNumber() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	next, err := suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal("001", next)

	for _, number := range []string{"001", "002", "007", "CUSTOM-1"} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(number, "Dragon")))
	}

	next, err = suite.repository.NextOrderNumber(ctx)
	suite.Require().NoError(err)
	suite.Equal("008", next)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
