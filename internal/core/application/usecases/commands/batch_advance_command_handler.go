package commands

import (
	"context"
	"fmt"
	"time"
)

// BatchAdvanceCommandHandler advances a list of items in one transaction.
//
// Example:
//
//	cmd, _ := NewBatchAdvanceCommand(itemIDs, item.Printed, "plate done")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // at least one item was not InPrintfarm; nothing changed
//	}
type BatchAdvanceCommandHandler struct {
	uowFactory ItemUoWFactory
	now        func() time.Time
}

// NewBatchAdvanceCommandHandler creates the handler.
func NewBatchAdvanceCommandHandler(uowFactory ItemUoWFactory, now func() time.Time) BatchAdvanceCommandHandler {
	return BatchAdvanceCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle advances every item or none. The first failing item aborts the batch
// with its original error kind and the transaction is rolled back.
func (h BatchAdvanceCommandHandler) Handle(ctx context.Context, command BatchAdvanceCommand) error {
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
	itemRepo := uow.ItemRepository()
	for _, id := range command.ItemIDs() {
		it, err := itemRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = it.Advance(command.Target(), command.Reason(), now); err != nil {
			return fmt.Errorf("item %s: %w", id, err)
		}
		if err = itemRepo.Update(ctx, it); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
