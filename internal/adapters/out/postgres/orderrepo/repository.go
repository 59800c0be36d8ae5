package orderrepo

import (
	"context"

	"printflow/internal/adapters/out/postgres/dberr"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its products.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "order", aggregate.Number())
	}
	if err := db.Create(&dto.Products).Error; err != nil {
		return dberr.Translate(err, "product", aggregate.ID().String())
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the header fields, archive flag and timestamps of an existing order.
// The write is a compare-and-set on the version read with the order, so a stale
// copy never overwrites a newer row (a shipped order stays archived).
//
// Returns:
//   - ConcurrentModificationError if another writer updated the order after it was read
//   - ObjectNotFoundError if the order no longer exists
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select(
			"order_number", "customer_name", "platform", "notes", "ship_by_date",
			"is_express", "is_archived", "updated_at", "shipped_at", "version",
		).
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "order", aggregate.Number())
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(db, aggregate.ID())
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its products in entry order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, dberr.Translate(err, "order", id.String())
	}

	return toDomain(dto)
}

// NextOrderNumber reads every order number, archived orders included, and applies
// the numbering rule of order.NextNumber.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Pluck("order_number", &numbers).Error; err != nil {
		return "", err
	}
	return order.NextNumber(numbers), nil
}

func (r *GormOrderRepository) missingOrStale(db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return dberr.Translate(err, "order", id.String())
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConcurrentModificationError("order", id.String())
}
