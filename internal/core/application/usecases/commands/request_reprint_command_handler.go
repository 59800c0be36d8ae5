package commands

import (
	"context"
	"time"
)

// RequestReprintCommandHandler resets an item for reprint and records the reset.
type RequestReprintCommandHandler struct {
	uowFactory ItemUoWFactory
	now        func() time.Time
}

// NewRequestReprintCommandHandler creates the handler.
func NewRequestReprintCommandHandler(uowFactory ItemUoWFactory, now func() time.Time) RequestReprintCommandHandler {
	return RequestReprintCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle applies the reprint scope to the item.
//
// Errors:
//   - NoOpTransitionError: whole-item reprint of an InQueue item
//   - UnknownPartError: a named part is not on the item; no flag is stored
//   - InvalidTransitionError: the item has shipped
func (h RequestReprintCommandHandler) Handle(ctx context.Context, command RequestReprintCommand) error {
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

	itemRepo := uow.ItemRepository()
	it, err := itemRepo.Get(ctx, command.ItemID())
	if err != nil {
		return err
	}

	if err = it.RequestReprint(command.Scope(), command.Reason(), h.now().UTC()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
