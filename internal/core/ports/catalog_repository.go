package ports

import (
	"context"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"
)

// ColorRepository persists filament colors. Colors are never deleted.
type ColorRepository interface {
	Add(ctx context.Context, aggregate *catalog.Color) error
	Update(ctx context.Context, aggregate *catalog.Color) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Color, error)
}

// PartRepository persists printable parts. Parts are never deleted.
type PartRepository interface {
	Add(ctx context.Context, aggregate *catalog.Part) error
	Update(ctx context.Context, aggregate *catalog.Part) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Part, error)
}

// TemplateRepository persists product templates with their parts multiset.
// Update only changes the active flag; the parts of a template are fixed.
type TemplateRepository interface {
	Add(ctx context.Context, aggregate *catalog.Template) error
	Update(ctx context.Context, aggregate *catalog.Template) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Template, error)
}
