package commands

import (
	"errors"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrBatchAdvanceCommandIsNotConstructed = errors.New(
	"BatchAdvanceCommand must be created via NewBatchAdvanceCommand constructor",
)

// BatchAdvanceCommand moves several items to the same target stage. Either all of
// them move or none does.
type BatchAdvanceCommand struct { //nolint:recvcheck //using for validation
	itemIDs []kernel.UUID
	target  item.Status
	reason  string

	guard guard.ConstructorGuard
}

// NewBatchAdvanceCommand requires at least one item ID. Repeated IDs are collapsed
// keeping first-seen order.
func NewBatchAdvanceCommand(itemIDs []kernel.UUID, target item.Status, reason string) (BatchAdvanceCommand, error) {
	command := BatchAdvanceCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemIDs(itemIDs),
		command.setTarget(target),
	); err != nil {
		return BatchAdvanceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BatchAdvanceCommand) Validate() error {
	return c.guard.Validate(ErrBatchAdvanceCommandIsNotConstructed)
}

// ItemIDs returns the distinct item IDs in request order.
func (c BatchAdvanceCommand) ItemIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.itemIDs...)
}

func (c BatchAdvanceCommand) Target() item.Status { return c.target }
func (c BatchAdvanceCommand) Reason() string      { return c.reason }

func (c *BatchAdvanceCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return errs.NewValueIsRequiredError("itemIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(itemIDs))
	unique := make([]kernel.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("itemIds", err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	c.itemIDs = unique
	return nil
}

func (c *BatchAdvanceCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
