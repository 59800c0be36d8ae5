package services

import (
	"time"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
)

// PartUsage pairs a catalog part with the quantity an item needs.
type PartUsage struct {
	Part     *catalog.Part
	Quantity int
}

// ItemComposer builds new items from catalog references.
//
// Business rules:
//   - Every color and part must be active
//   - With a template, the template must be active and the item must use exactly
//     template.NumColors colors
//   - Slot positions follow the order of colors
type ItemComposer struct{}

// NewItemComposer creates a new ItemComposer.
func NewItemComposer() ItemComposer {
	return ItemComposer{}
}

// Compose validates the references and creates the item at InQueue.
//
// Parameters:
//   - id, productID: identifiers of the new item and its product
//   - name: item name
//   - colors: loaded colors in slot order
//   - parts: loaded parts with quantities; use TemplateParts to fill them from a template
//   - tpl: optional template the item is based on
//   - now: creation timestamp
func (c ItemComposer) Compose(
	id, productID kernel.UUID,
	name string,
	colors []*catalog.Color,
	parts []PartUsage,
	tpl *catalog.Template,
	now time.Time,
) (*item.Item, error) {
	if tpl != nil {
		if err := tpl.EnsureActive(); err != nil {
			return nil, err
		}
		if err := tpl.ValidateColorCount(len(colors)); err != nil {
			return nil, err
		}
	}

	colorIDs := make([]kernel.UUID, 0, len(colors))
	for _, color := range colors {
		if err := color.Validate(); err != nil {
			return nil, err
		}
		if err := color.EnsureActive(); err != nil {
			return nil, err
		}
		colorIDs = append(colorIDs, color.ID())
	}

	specs := make([]item.PartSpec, 0, len(parts))
	for _, usage := range parts {
		if err := usage.Part.Validate(); err != nil {
			return nil, err
		}
		if err := usage.Part.EnsureActive(); err != nil {
			return nil, err
		}
		specs = append(specs, item.PartSpec{PartID: usage.Part.ID(), Quantity: usage.Quantity})
	}

	return item.NewItem(id, productID, name, colorIDs, specs, now)
}

// TemplateParts returns the template's parts as item part specs.
func TemplateParts(tpl *catalog.Template) []item.PartSpec {
	tplParts := tpl.Parts()
	specs := make([]item.PartSpec, 0, len(tplParts))
	for _, p := range tplParts {
		specs = append(specs, item.PartSpec{PartID: p.PartID, Quantity: p.Quantity})
	}
	return specs
}
