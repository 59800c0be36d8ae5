package commands

import (
	"context"
	"time"

	"printflow/internal/core/domain/services"
)

// ShipOrderCommandHandler ships an order when every item is packed.
//
// Example:
//
//	cmd, _ := NewShipOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNotReady) {
//	    // some item is not packed yet; nothing changed
//	}
type ShipOrderCommandHandler struct {
	uowFactory UoWFactory
	shipper    services.OrderShipper
	now        func() time.Time
}

// NewShipOrderCommandHandler creates the handler.
func NewShipOrderCommandHandler(uowFactory UoWFactory, now func() time.Time) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		shipper:    services.NewOrderShipper(),
		now:        now,
	}
}

// Handle moves every item Packed → Shipped, archives the order and writes one
// history entry per item, all in one transaction. Returns NotReadyError when the
// order is not ready to ship.
func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	itemRepo := uow.ItemRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	items, err := itemRepo.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = h.shipper.Ship(o, items, h.now().UTC()); err != nil {
		return err
	}

	for _, it := range items {
		if err = itemRepo.Update(ctx, it); err != nil {
			return err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
