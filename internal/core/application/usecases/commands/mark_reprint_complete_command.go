package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrMarkReprintCompleteCommandIsNotConstructed = errors.New(
	"MarkReprintCompleteCommand must be created via NewMarkReprintCompleteCommand constructor",
)

// MarkReprintCompleteCommand clears the reprint flag on parts of an item.
type MarkReprintCompleteCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	partIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReprintCompleteCommand requires an item and at least one part.
func NewMarkReprintCompleteCommand(itemID kernel.UUID, partIDs []kernel.UUID) (MarkReprintCompleteCommand, error) {
	command := MarkReprintCompleteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(itemID),
		command.setPartIDs(partIDs),
	); err != nil {
		return MarkReprintCompleteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReprintCompleteCommand) Validate() error {
	return c.guard.Validate(ErrMarkReprintCompleteCommandIsNotConstructed)
}

func (c MarkReprintCompleteCommand) ItemID() kernel.UUID { return c.itemID }

func (c MarkReprintCompleteCommand) PartIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.partIDs...)
}

func (c *MarkReprintCompleteCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *MarkReprintCompleteCommand) setPartIDs(partIDs []kernel.UUID) error {
	if len(partIDs) == 0 {
		return errs.NewValueIsRequiredError("partIds")
	}

	c.partIDs = append([]kernel.UUID(nil), partIDs...)
	return nil
}
