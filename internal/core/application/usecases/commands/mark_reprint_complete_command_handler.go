package commands

import (
	"context"
	"time"
)

// MarkReprintCompleteCommandHandler clears reprint flags. The item status is left
// alone; the item advances again through the normal workflow.
type MarkReprintCompleteCommandHandler struct {
	uowFactory ItemUoWFactory
	now        func() time.Time
}

// NewMarkReprintCompleteCommandHandler creates the handler.
func NewMarkReprintCompleteCommandHandler(uowFactory ItemUoWFactory, now func() time.Time) MarkReprintCompleteCommandHandler {
	return MarkReprintCompleteCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle returns UnknownPartError if any part is not on the item.
func (h MarkReprintCompleteCommandHandler) Handle(ctx context.Context, command MarkReprintCompleteCommand) error {
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

	if err = it.CompleteReprint(command.PartIDs(), h.now().UTC()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
