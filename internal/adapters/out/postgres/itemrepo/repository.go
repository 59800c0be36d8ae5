package itemrepo

import (
	"context"

	"printflow/internal/adapters/out/postgres/dberr"
	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormItemRepository implements ItemRepository using GORM.
//
// Every write bumps the item version with a compare-and-set on the version read
// earlier, and appends the aggregate's pending status changes to status_history
// through the same handle. Bound to a unit of work transaction, the item row and
// its audit entries commit or roll back together.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item, its color slots, its parts and its pending history.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "item", aggregate.ID().String())
	}
	if err := db.Omit(clause.Associations).Create(&dto.Colors).Error; err != nil {
		return dberr.Translate(err, "color", aggregate.ID().String())
	}
	if err := db.Omit(clause.Associations).Create(&dto.Parts).Error; err != nil {
		return dberr.Translate(err, "part", aggregate.ID().String())
	}
	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status, name, reprint flags and pending history of an existing item.
//
// Returns:
//   - ConcurrentModificationError if another writer updated the item after it was read
//   - ObjectNotFoundError if the item no longer exists
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID()
	newVersion := aggregate.Version() + 1

	result := db.Model(&ItemDTO{}).
		Where("id = ? AND version = ?", id.Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"item_name":  aggregate.Name(),
			"status":     int(aggregate.Status()),
			"version":    newVersion,
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return dberr.Translate(result.Error, "item", id.String())
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(db, id)
	}

	for _, p := range aggregate.Parts() {
		err := db.Model(&ItemPartDTO{}).
			Where("item_id = ? AND part_id = ?", id.Bytes(), p.PartID().Bytes()).
			Update("needs_reprint", p.NeedsReprint()).Error
		if err != nil {
			return dberr.Translate(err, "item", id.String())
		}
	}
	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(newVersion)
	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Get retrieves an item by ID with colors by position and parts in attachment order.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := withChildren(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "item", id.String())
	}
	return toDomain(dto)
}

// GetByProduct retrieves all items of a product.
func (r *GormItemRepository) GetByProduct(ctx context.Context, productID kernel.UUID) ([]*item.Item, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	err := withChildren(r.db.WithContext(ctx)).
		Where("product_id = ?", productID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// GetByOrder retrieves all items across all products of an order.
func (r *GormItemRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*item.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	products := db.Model(&orderrepo.ProductDTO{}).Select("id").Where("order_id = ?", orderID.Bytes())

	var dtos []ItemDTO
	err := withChildren(db).
		Where("product_id IN (?)", products).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormItemRepository) appendHistory(db *gorm.DB, aggregate *item.Item) error {
	rows := historyFromDomain(aggregate.ID(), aggregate.PendingChanges())
	if len(rows) == 0 {
		return nil
	}
	if err := db.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return dberr.Translate(err, "item", aggregate.ID().String())
	}
	return nil
}

func (r *GormItemRepository) missingOrStale(db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.Model(&ItemDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return dberr.Translate(err, "item", id.String())
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}
	return errs.NewConcurrentModificationError("item", id.String())
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("color_order") }).
		Preload("Parts", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func toDomainList(dtos []ItemDTO) ([]*item.Item, error) {
	items := make([]*item.Item, 0, len(dtos))
	for _, dto := range dtos {
		it, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
