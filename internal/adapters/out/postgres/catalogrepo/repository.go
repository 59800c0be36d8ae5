package catalogrepo

import (
	"context"

	"printflow/internal/adapters/out/postgres/dberr"
	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormColorRepository implements ports.ColorRepository using GORM.
type GormColorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormColorRepository creates a new GORM color repository.
func NewGormColorRepository(db *gorm.DB, tracker aggregateTracker) *GormColorRepository {
	return &GormColorRepository{db: db, tracker: tracker}
}

// Add saves a new color. A taken color name yields DuplicateKeyError.
func (r *GormColorRepository) Add(ctx context.Context, aggregate *catalog.Color) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := colorFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "color", aggregate.Name())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves every editable field of an existing color, including the active flag.
func (r *GormColorRepository) Update(ctx context.Context, aggregate *catalog.Color) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := colorFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ColorDTO{}).Where("id = ?", dto.ID).
		Select(
			"color_name", "hex_code", "pantone_code",
			"material_type", "material_supplier", "material_category",
			"material_cost_per_unit", "material_stock_quantity",
			"is_active", "updated_at",
		).
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "color", aggregate.Name())
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound, "color", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a color by ID, active or not.
func (r *GormColorRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Color, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ColorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "color", id.String())
	}
	return colorToDomain(dto)
}

// GormPartRepository implements ports.PartRepository using GORM.
type GormPartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPartRepository creates a new GORM part repository.
func NewGormPartRepository(db *gorm.DB, tracker aggregateTracker) *GormPartRepository {
	return &GormPartRepository{db: db, tracker: tracker}
}

// Add saves a new part. A taken code or name yields DuplicateKeyError.
func (r *GormPartRepository) Add(ctx context.Context, aggregate *catalog.Part) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := partFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "part", aggregate.Code())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves every editable field of an existing part, including the active flag.
func (r *GormPartRepository) Update(ctx context.Context, aggregate *catalog.Part) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := partFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PartDTO{}).Where("id = ?", dto.ID).
		Select("part_code", "part_name", "description", "is_active", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "part", aggregate.Code())
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound, "part", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a part by ID, active or not.
func (r *GormPartRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Part, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "part", id.String())
	}
	return partToDomain(dto)
}

// GormTemplateRepository implements ports.TemplateRepository using GORM.
type GormTemplateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB, tracker aggregateTracker) *GormTemplateRepository {
	return &GormTemplateRepository{db: db, tracker: tracker}
}

// Add saves a new template and its parts. Parts must exist in the parts table.
func (r *GormTemplateRepository) Add(ctx context.Context, aggregate *catalog.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := templateFromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "template", aggregate.Name())
	}
	if err := db.Omit(clause.Associations).Create(&dto.Parts).Error; err != nil {
		return dberr.Translate(err, "part", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the active flag. Template contents are immutable.
func (r *GormTemplateRepository) Update(ctx context.Context, aggregate *catalog.Template) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := templateFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TemplateDTO{}).Where("id = ?", dto.ID).
		Select("is_active", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "template", aggregate.Name())
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound, "template", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a template with its parts in definition order.
func (r *GormTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TemplateDTO
	err := r.db.WithContext(ctx).
		Preload("Parts", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, dberr.Translate(err, "template", id.String())
	}
	return templateToDomain(dto)
}
