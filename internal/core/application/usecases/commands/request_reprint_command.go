package commands

import (
	"errors"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrRequestReprintCommandIsNotConstructed = errors.New(
	"RequestReprintCommand must be created via NewRequestReprintCommand constructor",
)

// RequestReprintCommand sends an item back to the queue, either whole or with
// specific parts flagged for reprint.
//
// Example:
//
//	scope, _ := item.NewPartSet(wingID)
//	cmd, err := NewRequestReprintCommand(itemID, scope, "warped wing")
type RequestReprintCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	scope  item.ReprintScope
	reason string

	guard guard.ConstructorGuard
}

// NewRequestReprintCommand creates the command. scope must be item.EntireItem or a
// PartSet built with item.NewPartSet.
func NewRequestReprintCommand(itemID kernel.UUID, scope item.ReprintScope, reason string) (RequestReprintCommand, error) {
	command := RequestReprintCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(itemID),
		command.setScope(scope),
	); err != nil {
		return RequestReprintCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestReprintCommand) Validate() error {
	return c.guard.Validate(ErrRequestReprintCommandIsNotConstructed)
}

func (c RequestReprintCommand) ItemID() kernel.UUID      { return c.itemID }
func (c RequestReprintCommand) Scope() item.ReprintScope { return c.scope }
func (c RequestReprintCommand) Reason() string           { return c.reason }

func (c *RequestReprintCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *RequestReprintCommand) setScope(scope item.ReprintScope) error {
	if scope == nil {
		return errs.NewValueIsRequiredError("scope")
	}

	c.scope = scope
	return nil
}
