package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand replaces the header fields of an open order.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand reduces customer name and notes to plain text.
// Field rules are enforced by the order itself.
func NewUpdateOrderDetailsCommand(orderID kernel.UUID, details order.Details) (UpdateOrderDetailsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	details.CustomerName = plainText(details.CustomerName)
	details.Notes = plainText(details.Notes)

	return UpdateOrderDetailsCommand{
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID   { return c.orderID }
func (c UpdateOrderDetailsCommand) Details() order.Details { return c.details }
