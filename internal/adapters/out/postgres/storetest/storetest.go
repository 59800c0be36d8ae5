// Package storetest starts throwaway stores for tests: an embedded SQLite file in
// the test's temp dir, or a PostgreSQL container, both with the schema migrated.
// It also seeds catalog and order fixtures through the real repositories.
package storetest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres"
	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenSQLite opens a migrated SQLite database in t.TempDir.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := postgres.Open(postgres.DatabaseConfig{
		Driver: postgres.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "printflow.db"),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// StartPostgres runs a PostgreSQL container and returns a migrated connection.
func StartPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return container, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// Truncate empties every printflow table on PostgreSQL.
func Truncate(db *gorm.DB) error {
	return db.Exec(
		"TRUNCATE TABLE status_history, item_parts, item_colors, items, products, orders, " +
			"template_parts, product_templates, parts, colors",
	).Error
}

// Catalog is a seeded set of active colors and parts.
type Catalog struct {
	Colors []*catalog.Color
	Parts  []*catalog.Part
}

// ColorIDs returns the IDs of the first n colors.
func (c Catalog) ColorIDs(n int) []kernel.UUID {
	ids := make([]kernel.UUID, 0, n)
	for _, color := range c.Colors[:n] {
		ids = append(ids, color.ID())
	}
	return ids
}

// SeedCatalog stores four colors and three parts.
func SeedCatalog(t testing.TB, db *gorm.DB) Catalog {
	t.Helper()
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	var seeded Catalog
	for idx, hex := range []string{"#FF0000", "#00FF00", "#0000FF", "#FFFFFF"} {
		color, err := catalog.NewColor(kernel.NewUUID(), catalog.ColorSpec{
			Name:    fmt.Sprintf("Color %d", idx+1),
			HexCode: hex,
			Material: catalog.Material{
				Type:        "PLA",
				CostPerUnit: decimal.RequireFromString("19.90"),
			},
		})
		require.NoError(t, err)
		require.NoError(t, uow.ColorRepository().Add(ctx, color))
		seeded.Colors = append(seeded.Colors, color)
	}
	for idx := range 3 {
		part, err := catalog.NewPart(kernel.NewUUID(), catalog.PartSpec{
			Code: fmt.Sprintf("P%d", idx+1),
			Name: fmt.Sprintf("Part %d", idx+1),
		})
		require.NoError(t, err)
		require.NoError(t, uow.PartRepository().Add(ctx, part))
		seeded.Parts = append(seeded.Parts, part)
	}
	return seeded
}

// OrderFixture is an order with one product whose items were stored directly at
// the given statuses.
type OrderFixture struct {
	Order   *order.Order
	Product *order.Product
	Items   []*item.Item
}

// OrderSpec configures SeedOrder.
type OrderSpec struct {
	Number     string
	IsExpress  bool
	ShipByDate *time.Time
	CreatedAt  time.Time
	Statuses   []item.Status
}

// SeedOrder stores an order, one product and one item per status. Items use the
// first color and the first two parts of cat.
func SeedOrder(t testing.TB, db *gorm.DB, cat Catalog, spec OrderSpec) OrderFixture {
	t.Helper()
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	createdAt := spec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	orderID := kernel.NewUUID()
	product, err := order.NewProduct(kernel.NewUUID(), orderID, "Product "+spec.Number, createdAt)
	require.NoError(t, err)
	o, err := order.NewOrder(orderID, order.Details{
		Number:       spec.Number,
		CustomerName: "Customer " + spec.Number,
		Platform:     order.Etsy,
		ShipByDate:   spec.ShipByDate,
		IsExpress:    spec.IsExpress,
	}, []*order.Product{product}, createdAt)
	require.NoError(t, err)
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	fixture := OrderFixture{Order: o, Product: product}
	for idx, status := range spec.Statuses {
		parts := make([]*item.Part, 0, 2)
		for _, catalogPart := range cat.Parts[:2] {
			p, err := item.RestorePart(catalogPart.ID(), 1, false)
			require.NoError(t, err)
			parts = append(parts, p)
		}
		it, err := item.RestoreItem(
			kernel.NewUUID(), product.ID(), fmt.Sprintf("Item %s-%d", spec.Number, idx+1), status,
			[]item.ColorSlot{{ColorID: cat.Colors[0].ID(), Position: 1}},
			parts, createdAt, createdAt, 0,
		)
		require.NoError(t, err)
		require.NoError(t, uow.ItemRepository().Add(ctx, it))
		fixture.Items = append(fixture.Items, it)
	}
	return fixture
}
