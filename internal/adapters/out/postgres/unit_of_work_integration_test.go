package postgres_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres"
	"printflow/internal/adapters/out/postgres/storetest"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	catalog   storetest.Catalog
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("postgres container tests are skipped in short mode")
	}

	container, db, err := storetest.StartPostgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(storetest.Truncate(suite.db))
	suite.catalog = storetest.SeedCatalog(suite.T(), suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrderWithItem(number string) (*order.Order, *item.Item) {
	now := time.Now().UTC()
	orderID := kernel.NewUUID()
	product, err := order.NewProduct(kernel.NewUUID(), orderID, "Dragon", now)
	suite.Require().NoError(err)
	o, err := order.NewOrder(orderID, order.Details{
		Number: number, CustomerName: "Ada", Platform: order.Shopify,
	}, []*order.Product{product}, now)
	suite.Require().NoError(err)

	it, err := item.NewItem(kernel.NewUUID(), product.ID(), "Dragon body",
		suite.catalog.ColorIDs(2),
		[]item.PartSpec{{PartID: suite.catalog.Parts[0].ID(), Quantity: 1}},
		now,
	)
	suite.Require().NoError(err)
	return o, it
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotSame(first, second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsEveryRepository() {
	ctx := context.Background()
	o, it := suite.newOrderWithItem("001")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, it))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	items, err := reader.ItemRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryRepository() {
	ctx := context.Background()
	o, it := suite.newOrderWithItem("002")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, it))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.ItemRepository().Get(ctx, it.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFailedWrite_LeavesNothingBehind() {
	ctx := context.Background()
	existing, _ := suite.newOrderWithItem("003")
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, existing))

	o, it := suite.newOrderWithItem("004")
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, it))

	clash, _ := suite.newOrderWithItem("003")
	err := uow.OrderRepository().Add(ctx, clash)
	suite.Require().ErrorIs(err, errs.ErrDuplicateKey)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentItemUpdates_SecondWriterLoses() {
	ctx := context.Background()
	o, it := suite.newOrderWithItem("005")
	setup := suite.factory.Create()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.ItemRepository().Add(ctx, it))

	first := suite.factory.Create()
	second := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	mine, err := first.ItemRepository().Get(ctx, it.ID())
	suite.Require().NoError(err)
	theirs, err := second.ItemRepository().Get(ctx, it.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(mine.Advance(item.InPrintfarm, "", time.Now()))
	suite.Require().NoError(first.ItemRepository().Update(ctx, mine))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(theirs.Advance(item.InPrintfarm, "", time.Now()))
	err = second.ItemRepository().Update(ctx, theirs)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	stored, err := suite.factory.Create().ItemRepository().Get(ctx, it.ID())
	suite.Require().NoError(err)
	suite.Equal(item.InPrintfarm, stored.Status())
	suite.Equal(2, stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
