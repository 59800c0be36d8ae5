// Package postgres provides the GORM-backed store: database opening and schema
// migration for PostgreSQL and embedded SQLite, and the Unit of Work that binds
// every repository to one transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	it, err := uow.ItemRepository().Get(ctx, itemID)
//	if err != nil {
//	    return err
//	}
//	if err := it.Advance(item.InPrintfarm, "", time.Now()); err != nil {
//	    return err
//	}
//	if err := uow.ItemRepository().Update(ctx, it); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Item writes use optimistic versions; the losing writer gets
//     errs.ConcurrentModificationError and its transaction is rolled back
package postgres

import (
	"context"

	"printflow/internal/adapters/out/postgres/catalogrepo"
	"printflow/internal/adapters/out/postgres/itemrepo"
	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := postgres.Open(cfg)
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
//
// Repositories obtained before Begin run against the plain connection; repositories
// obtained after Begin share the transaction. Command handlers always Begin first.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ItemRepository provides access to item persistence within the unit of work.
func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn(), uow)
}

// ColorRepository provides access to color persistence within the unit of work.
func (uow *GormUnitOfWork) ColorRepository() ports.ColorRepository {
	return catalogrepo.NewGormColorRepository(uow.conn(), uow)
}

// PartRepository provides access to part persistence within the unit of work.
func (uow *GormUnitOfWork) PartRepository() ports.PartRepository {
	return catalogrepo.NewGormPartRepository(uow.conn(), uow)
}

// TemplateRepository provides access to template persistence within the unit of work.
func (uow *GormUnitOfWork) TemplateRepository() ports.TemplateRepository {
	return catalogrepo.NewGormTemplateRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
