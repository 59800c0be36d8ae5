package ports

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their products.
type OrderRepository interface {
	// Add persists a new order together with its products.
	// Returns DuplicateKeyError if the order number is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists header changes and the archived flag of an existing order.
	// Products are immutable once the order is created.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its products.
	// Returns ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// NextOrderNumber returns the number a new order receives when none is given.
	NextOrderNumber(ctx context.Context) (string, error)
}
