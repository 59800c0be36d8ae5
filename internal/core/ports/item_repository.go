package ports

import (
	"context"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for item aggregates.
//
// Writes drain the item's pending status changes into the status history in the
// same transaction as the item row, so every status change has exactly one audit
// entry.
type ItemRepository interface {
	// Add persists a new item with its colors, parts and creation history entry.
	Add(ctx context.Context, aggregate *item.Item) error

	// Update persists status, reprint flags and pending history entries.
	// Returns ConcurrentModificationError when the stored version moved on since
	// the item was read.
	Update(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item with its colors and parts.
	// Returns ObjectNotFoundError if the item does not exist.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetByProduct retrieves all items of a product.
	GetByProduct(ctx context.Context, productID kernel.UUID) ([]*item.Item, error)

	// GetByOrder retrieves all items across all products of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*item.Item, error)
}
