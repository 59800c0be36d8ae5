// Package catalogrepo persists colors, parts and product templates with GORM.
package catalogrepo

import (
	"time"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ColorDTO is the colors table. Material fields are embedded with a material_ prefix.
type ColorDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ColorName   string      `gorm:"size:100;not null;uniqueIndex"`
	HexCode     string      `gorm:"size:7;not null"`
	PantoneCode *string     `gorm:"size:50"`
	Material    MaterialDTO `gorm:"embedded;embeddedPrefix:material_"`
	IsActive    bool        `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ColorDTO) TableName() string {
	return "colors"
}

// MaterialDTO is the filament description embedded in ColorDTO.
type MaterialDTO struct {
	Type          string          `gorm:"size:50"`
	Supplier      string          `gorm:"size:100"`
	Category      string          `gorm:"size:50"`
	CostPerUnit   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	StockQuantity int             `gorm:"not null"`
}

// PartDTO is the parts table. Code and name are unique independently.
type PartDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartCode    string    `gorm:"size:50;not null;uniqueIndex"`
	PartName    string    `gorm:"size:100;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PartDTO) TableName() string {
	return "parts"
}

// TemplateDTO is the product_templates table.
type TemplateDTO struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TemplateName     string            `gorm:"size:100;not null;uniqueIndex"`
	NumColors        int               `gorm:"not null"`
	PrintTimeMinutes int               `gorm:"not null"`
	PrintCost        decimal.Decimal   `gorm:"type:numeric(10,2);not null"`
	IsActive         bool              `gorm:"not null;index"`
	Parts            []TemplatePartDTO `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (TemplateDTO) TableName() string {
	return "product_templates"
}

// TemplatePartDTO is one row of a template's parts multiset.
type TemplatePartDTO struct {
	TemplateID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Part       *PartDTO  `gorm:"foreignKey:PartID;constraint:OnDelete:RESTRICT"`
}

func (TemplatePartDTO) TableName() string {
	return "template_parts"
}

func colorFromDomain(c *catalog.Color) ColorDTO {
	m := c.Material()
	return ColorDTO{
		ID:          c.ID().Bytes(),
		ColorName:   c.Name(),
		HexCode:     c.HexCode(),
		PantoneCode: c.PantoneCode(),
		Material: MaterialDTO{
			Type:          m.Type,
			Supplier:      m.Supplier,
			Category:      m.Category,
			CostPerUnit:   m.CostPerUnit,
			StockQuantity: m.StockQuantity,
		},
		IsActive: c.IsActive(),
	}
}

func colorToDomain(dto ColorDTO) (*catalog.Color, error) {
	id, err := kernel.FromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreColor(id, catalog.ColorSpec{
		Name:        dto.ColorName,
		HexCode:     dto.HexCode,
		PantoneCode: dto.PantoneCode,
		Material: catalog.Material{
			Type:          dto.Material.Type,
			Supplier:      dto.Material.Supplier,
			Category:      dto.Material.Category,
			CostPerUnit:   dto.Material.CostPerUnit,
			StockQuantity: dto.Material.StockQuantity,
		},
	}, dto.IsActive)
}

func partFromDomain(p *catalog.Part) PartDTO {
	return PartDTO{
		ID:          p.ID().Bytes(),
		PartCode:    p.Code(),
		PartName:    p.Name(),
		Description: p.Description(),
		IsActive:    p.IsActive(),
	}
}

func partToDomain(dto PartDTO) (*catalog.Part, error) {
	id, err := kernel.FromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return catalog.RestorePart(id, catalog.PartSpec{
		Code:        dto.PartCode,
		Name:        dto.PartName,
		Description: dto.Description,
	}, dto.IsActive)
}

func templateFromDomain(t *catalog.Template) TemplateDTO {
	parts := make([]TemplatePartDTO, 0, len(t.Parts()))
	for idx, p := range t.Parts() {
		parts = append(parts, TemplatePartDTO{
			TemplateID: t.ID().Bytes(),
			PartID:     p.PartID.Bytes(),
			Position:   idx + 1,
			Quantity:   p.Quantity,
		})
	}
	return TemplateDTO{
		ID:               t.ID().Bytes(),
		TemplateName:     t.Name(),
		NumColors:        t.NumColors(),
		PrintTimeMinutes: t.PrintTimeMinutes(),
		PrintCost:        t.PrintCost(),
		IsActive:         t.IsActive(),
		Parts:            parts,
	}
}

func templateToDomain(dto TemplateDTO) (*catalog.Template, error) {
	id, err := kernel.FromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	parts := make([]catalog.TemplatePart, 0, len(dto.Parts))
	for _, p := range dto.Parts {
		partID, err := kernel.FromGoogle(p.PartID)
		if err != nil {
			return nil, err
		}
		parts = append(parts, catalog.TemplatePart{PartID: partID, Quantity: p.Quantity})
	}
	return catalog.RestoreTemplate(id, catalog.TemplateSpec{
		Name:             dto.TemplateName,
		NumColors:        dto.NumColors,
		PrintTimeMinutes: dto.PrintTimeMinutes,
		PrintCost:        dto.PrintCost,
		Parts:            parts,
	}, dto.IsActive)
}
