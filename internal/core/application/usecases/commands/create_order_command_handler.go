package commands

import (
	"context"
	"fmt"
	"time"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/services"
)

// CreateOrderCommandHandler creates an order, its products and its items in one
// transaction. Every item starts InQueue with a "created" history entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	composer   services.ItemComposer
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates the handler.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, now func() time.Time) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		composer:   services.NewItemComposer(),
		now:        now,
	}
}

// Handle stores the order.
//
// Errors:
//   - DuplicateKeyError: the order number is taken (also possible for a generated
//     number when two orders are created at once; the caller retries)
//   - ObjectNotFoundError: a color, part or template does not exist
//   - InactiveReferenceError: a color, part or template is deactivated
//   - ValueIsOutOfRangeError: color count differs from the template's
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now().UTC()
	orderRepo := uow.OrderRepository()

	details := command.Details()
	if details.Number == "" {
		next, err := orderRepo.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		details.Number = next
	}

	inputs := command.Products()
	products := make([]*order.Product, 0, len(inputs))
	for _, input := range inputs {
		product, err := order.NewProduct(kernel.NewUUID(), command.OrderID(), input.Name, now)
		if err != nil {
			return err
		}
		products = append(products, product)
	}

	o, err := order.NewOrder(command.OrderID(), details, products, now)
	if err != nil {
		return err
	}
	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	refs := newCatalogRefs(uow)
	itemRepo := uow.ItemRepository()
	for pi, input := range inputs {
		for ii, spec := range input.Items {
			it, err := h.composeItem(ctx, refs, products[pi], spec, now)
			if err != nil {
				return fmt.Errorf("product %q item %d: %w", input.Name, ii+1, err)
			}
			if err = itemRepo.Add(ctx, it); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) composeItem(
	ctx context.Context,
	refs *catalogRefs,
	product *order.Product,
	spec NewItem,
	now time.Time,
) (*item.Item, error) {
	var tpl *catalog.Template
	if spec.TemplateID != nil {
		loaded, err := refs.template(ctx, *spec.TemplateID)
		if err != nil {
			return nil, err
		}
		tpl = loaded
	}

	colors := make([]*catalog.Color, 0, len(spec.ColorIDs))
	for _, id := range spec.ColorIDs {
		color, err := refs.color(ctx, id)
		if err != nil {
			return nil, err
		}
		colors = append(colors, color)
	}

	wanted := spec.Parts
	if len(wanted) == 0 && tpl != nil {
		for _, p := range services.TemplateParts(tpl) {
			wanted = append(wanted, NewPart{PartID: p.PartID, Quantity: p.Quantity})
		}
	}

	usages := make([]services.PartUsage, 0, len(wanted))
	for _, p := range wanted {
		part, err := refs.part(ctx, p.PartID)
		if err != nil {
			return nil, err
		}
		quantity := p.Quantity
		if quantity == 0 {
			quantity = 1
		}
		usages = append(usages, services.PartUsage{Part: part, Quantity: quantity})
	}

	return h.composer.Compose(kernel.NewUUID(), product.ID(), spec.Name, colors, usages, tpl, now)
}
