package commands

import (
	"context"
	"time"
)

// UpdateOrderDetailsCommandHandler edits order headers.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewUpdateOrderDetailsCommandHandler creates the handler.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle returns InvalidTransitionError for archived orders and DuplicateKeyError
// when the new number belongs to another order.
func (h UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, command UpdateOrderDetailsCommand) error {
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
	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.UpdateDetails(command.Details(), h.now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
