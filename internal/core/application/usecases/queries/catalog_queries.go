package queries

import (
	"context"

	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogFilter selects which reference records a listing returns.
type CatalogFilter struct {
	IncludeInactive bool
}

type ColorView struct {
	ID            kernel.UUID
	Name          string
	HexCode       string
	PantoneCode   *string
	MaterialType  string
	Supplier      string
	Category      string
	CostPerUnit   decimal.Decimal
	StockQuantity int
	IsActive      bool
}

type PartView struct {
	ID          kernel.UUID
	Code        string
	Name        string
	Description string
	IsActive    bool
}

type TemplatePartView struct {
	PartID   kernel.UUID
	Code     string
	Name     string
	Quantity int
}

// TemplateView is a template with its parts in the order they were defined.
type TemplateView struct {
	ID               kernel.UUID
	Name             string
	NumColors        int
	PrintTimeMinutes int
	PrintCost        decimal.Decimal
	IsActive         bool
	Parts            []TemplatePartView
}

// CatalogQueryHandler lists colors, parts and templates sorted by name.
type CatalogQueryHandler struct {
	db *gorm.DB
}

func NewCatalogQueryHandler(db *gorm.DB) CatalogQueryHandler {
	return CatalogQueryHandler{db: db}
}

func (h CatalogQueryHandler) scope(ctx context.Context, table string, filter CatalogFilter) *gorm.DB {
	tx := h.db.WithContext(ctx).Table(table)
	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	return tx
}

func (h CatalogQueryHandler) ListColors(ctx context.Context, filter CatalogFilter) ([]ColorView, error) {
	var rows []struct {
		ID                    uuid.UUID
		ColorName             string
		HexCode               string
		PantoneCode           *string
		MaterialType          string
		MaterialSupplier      string
		MaterialCategory      string
		MaterialCostPerUnit   decimal.Decimal
		MaterialStockQuantity int
		IsActive              bool
	}
	if err := h.scope(ctx, "colors", filter).Order("color_name").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ColorView, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.FromGoogle(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ColorView{
			ID:            id,
			Name:          r.ColorName,
			HexCode:       r.HexCode,
			PantoneCode:   r.PantoneCode,
			MaterialType:  r.MaterialType,
			Supplier:      r.MaterialSupplier,
			Category:      r.MaterialCategory,
			CostPerUnit:   r.MaterialCostPerUnit,
			StockQuantity: r.MaterialStockQuantity,
			IsActive:      r.IsActive,
		})
	}
	return views, nil
}

func (h CatalogQueryHandler) ListParts(ctx context.Context, filter CatalogFilter) ([]PartView, error) {
	var rows []struct {
		ID          uuid.UUID
		PartCode    string
		PartName    string
		Description string
		IsActive    bool
	}
	if err := h.scope(ctx, "parts", filter).Order("part_name").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]PartView, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.FromGoogle(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, PartView{
			ID:          id,
			Code:        r.PartCode,
			Name:        r.PartName,
			Description: r.Description,
			IsActive:    r.IsActive,
		})
	}
	return views, nil
}

// ListTemplates joins template_parts with parts once and groups the rows per
// template.
func (h CatalogQueryHandler) ListTemplates(ctx context.Context, filter CatalogFilter) ([]TemplateView, error) {
	var rows []struct {
		ID               uuid.UUID
		TemplateName     string
		NumColors        int
		PrintTimeMinutes int
		PrintCost        decimal.Decimal
		IsActive         bool
	}
	if err := h.scope(ctx, "product_templates", filter).Order("template_name").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]TemplateView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		id, err := kernel.FromGoogle(r.ID)
		if err != nil {
			return nil, err
		}
		index[r.ID] = len(views)
		ids = append(ids, r.ID)
		views = append(views, TemplateView{
			ID:               id,
			Name:             r.TemplateName,
			NumColors:        r.NumColors,
			PrintTimeMinutes: r.PrintTimeMinutes,
			PrintCost:        r.PrintCost,
			IsActive:         r.IsActive,
			Parts:            make([]TemplatePartView, 0),
		})
	}

	var parts []struct {
		TemplateID uuid.UUID
		PartID     uuid.UUID
		PartCode   string
		PartName   string
		Quantity   int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT tp.template_id, tp.part_id, p.part_code, p.part_name, tp.quantity
		FROM template_parts tp
		JOIN parts p ON p.id = tp.part_id
		WHERE tp.template_id IN ?
		ORDER BY tp.template_id, tp.position
	`, ids).Scan(&parts).Error
	if err != nil {
		return nil, err
	}

	for _, p := range parts {
		partID, err := kernel.FromGoogle(p.PartID)
		if err != nil {
			return nil, err
		}
		v := &views[index[p.TemplateID]]
		v.Parts = append(v.Parts, TemplatePartView{
			PartID:   partID,
			Code:     p.PartCode,
			Name:     p.PartName,
			Quantity: p.Quantity,
		})
	}

	return views, nil
}
