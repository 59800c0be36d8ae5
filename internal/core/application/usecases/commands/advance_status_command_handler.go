package commands

import (
	"context"
	"time"
)

// AdvanceStatusCommandHandler applies a single forward transition and its audit
// entry in one transaction.
type AdvanceStatusCommandHandler struct {
	uowFactory ItemUoWFactory
	now        func() time.Time
}

// NewAdvanceStatusCommandHandler creates the handler. now supplies transition
// timestamps.
func NewAdvanceStatusCommandHandler(uowFactory ItemUoWFactory, now func() time.Time) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle loads the item, advances it and writes status and history together.
// Returns InvalidTransitionError when the target is not the immediate successor.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, command AdvanceStatusCommand) error {
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

	if err = it.Advance(command.Target(), command.Reason(), h.now().UTC()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, it); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
