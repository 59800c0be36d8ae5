package itemrepo_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres/itemrepo"
	"printflow/internal/adapters/out/postgres/storetest"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ItemRepositoryTestSuite runs the item repository against an embedded SQLite store.
type ItemRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	catalog    storetest.Catalog
	fixture    storetest.OrderFixture
	tracker    *MockAggregateTracker
	repository *itemrepo.GormItemRepository
}

func (suite *ItemRepositoryTestSuite) SetupTest() {
	suite.db = storetest.OpenSQLite(suite.T())
	suite.catalog = storetest.SeedCatalog(suite.T(), suite.db)
	suite.fixture = storetest.SeedOrder(suite.T(), suite.db, suite.catalog, storetest.OrderSpec{
		Number:   "001",
		Statuses: []item.Status{item.Printed},
	})
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = itemrepo.NewGormItemRepository(suite.db, suite.tracker)
}

func (suite *ItemRepositoryTestSuite) newItem() *item.Item {
	it, err := item.NewItem(
		kernel.NewUUID(), suite.fixture.Product.ID(), "Dragon head",
		suite.catalog.ColorIDs(3),
		[]item.PartSpec{
			{PartID: suite.catalog.Parts[2].ID(), Quantity: 2},
			{PartID: suite.catalog.Parts[0].ID(), Quantity: 1},
		},
		time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	return it
}

func (suite *ItemRepositoryTestSuite) history(id kernel.UUID) []itemrepo.StatusHistoryDTO {
	var rows []itemrepo.StatusHistoryDTO
	suite.Require().NoError(suite.db.Order("seq").Find(&rows, "item_id = ?", id.Bytes()).Error)
	return rows
}

func (suite *ItemRepositoryTestSuite) TestAdd_PersistsChildrenAndCreationHistory() {
	ctx := context.Background()
	it := suite.newItem()

	suite.Require().NoError(suite.repository.Add(ctx, it))

	suite.Equal(1, it.Version())
	suite.Empty(it.PendingChanges())

	stored, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.InQueue, stored.Status())
	suite.Equal(1, stored.Version())
	suite.Require().Len(stored.Colors(), 3)
	for idx, slot := range stored.Colors() {
		suite.Equal(idx+1, slot.Position)
		suite.True(slot.ColorID.IsEqual(suite.catalog.Colors[idx].ID()))
	}
	suite.Require().Len(stored.Parts(), 2)
	suite.True(stored.Parts()[0].PartID().IsEqual(suite.catalog.Parts[2].ID()))
	suite.Equal(2, stored.Parts()[0].Quantity())

	rows := suite.history(it.ID())
	suite.Require().Len(rows, 1)
	suite.Nil(rows[0].OldStatus)
	suite.Equal(int(item.InQueue), rows[0].NewStatus)
	suite.Equal(item.CreatedReason, rows[0].Reason)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", it.ID(), it)
}

func (suite *ItemRepositoryTestSuite) TestUpdate_WritesStatusFlagsAndHistory() {
	ctx := context.Background()
	it := suite.newItem()
	suite.Require().NoError(suite.repository.Add(ctx, it))

	suite.Require().NoError(it.Advance(item.InPrintfarm, "printer 2", time.Now()))
	suite.Require().NoError(it.Advance(item.Printed, "", time.Now()))
	scope, err := item.NewPartSet(suite.catalog.Parts[0].ID())
	suite.Require().NoError(err)
	suite.Require().NoError(it.RequestReprint(scope, "stringing", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, it))

	stored, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.InQueue, stored.Status())
	suite.Equal(2, stored.Version())
	suite.Equal([]kernel.UUID{suite.catalog.Parts[0].ID()}, stored.PartsNeedingReprint())

	rows := suite.history(it.ID())
	suite.Require().Len(rows, 4)
	for idx := 1; idx < len(rows); idx++ {
		suite.Require().NotNil(rows[idx].OldStatus)
		suite.Equal(rows[idx-1].NewStatus, *rows[idx].OldStatus)
	}
	suite.Equal("printer 2", rows[1].Reason)
	suite.Equal("stringing", rows[3].Reason)
}

func (suite *ItemRepositoryTestSuite) TestUpdate_StaleVersionIsConcurrentModification() {
	ctx := context.Background()
	it := suite.newItem()
	suite.Require().NoError(suite.repository.Add(ctx, it))

	first, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, it.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Advance(item.InPrintfarm, "", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Advance(item.InPrintfarm, "", time.Now()))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)
	suite.Len(suite.history(it.ID()), 2)
}

func (suite *ItemRepositoryTestSuite) TestUpdate_MissingItemIsNotFound() {
	it := suite.newItem()

	err := suite.repository.Update(context.Background(), it)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryTestSuite) TestGet_UnknownItemIsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryTestSuite) TestGetByProductAndOrder() {
	ctx := context.Background()
	it := suite.newItem()
	suite.Require().NoError(suite.repository.Add(ctx, it))
	other := storetest.SeedOrder(suite.T(), suite.db, suite.catalog, storetest.OrderSpec{
		Number:   "002",
		Statuses: []item.Status{item.Packed, item.Packed},
	})

	byProduct, err := suite.repository.GetByProduct(ctx, suite.fixture.Product.ID())
	suite.Require().NoError(err)
	suite.Len(byProduct, 2)

	byOrder, err := suite.repository.GetByOrder(ctx, other.Order.ID())
	suite.Require().NoError(err)
	suite.Require().Len(byOrder, 2)
	for _, stored := range byOrder {
		suite.Equal(item.Packed, stored.Status())
	}

	none, err := suite.repository.GetByOrder(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *ItemRepositoryTestSuite) TestAdd_UnknownColorIsRejected() {
	it, err := item.NewItem(
		kernel.NewUUID(), suite.fixture.Product.ID(), "Ghost",
		[]kernel.UUID{kernel.NewUUID()},
		[]item.PartSpec{{PartID: suite.catalog.Parts[0].ID(), Quantity: 1}},
		time.Now(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), it)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestItemRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryTestSuite))
}
