package commands

import (
	"errors"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand moves one item to the next production stage.
//
// Example:
//
//	cmd, err := NewAdvanceStatusCommand(itemID, item.InPrintfarm, "")
//	if err != nil {
//	    return fmt.Errorf("invalid advance request: %w", err)
//	}
//
//	handler := NewAdvanceStatusCommandHandler(uowFactory, time.Now)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	target item.Status
	reason string

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand validates the item ID and target status. An empty reason
// is recorded as item.DefaultAdvanceReason.
func NewAdvanceStatusCommand(itemID kernel.UUID, target item.Status, reason string) (AdvanceStatusCommand, error) {
	command := AdvanceStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(itemID),
		command.setTarget(target),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

func (c AdvanceStatusCommand) ItemID() kernel.UUID { return c.itemID }
func (c AdvanceStatusCommand) Target() item.Status { return c.target }
func (c AdvanceStatusCommand) Reason() string      { return c.reason }

func (c *AdvanceStatusCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AdvanceStatusCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
