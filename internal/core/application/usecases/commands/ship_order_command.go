package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand ships every item of an order and archives it.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.UUID) (ShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}

	return ShipOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
