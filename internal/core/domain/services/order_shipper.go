package services

import (
	"fmt"
	"time"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
)

// OrderShipper moves a fully packed order to Shipped.
//
// Business rules:
//   - The order must be valid and not archived
//   - The order must have at least one item and every item must be Packed
//   - Every item advances Packed -> Shipped with reason "order shipped"
//   - The order is archived with shipped_at = now
//
// Ship mutates the aggregates in memory only; the caller persists order and items
// in one transaction so the change is all-or-nothing.
type OrderShipper struct {
	readiness Readiness
}

// NewOrderShipper creates a new OrderShipper.
func NewOrderShipper() OrderShipper {
	return OrderShipper{readiness: NewReadiness()}
}

// Ship validates readiness and applies the ship transition.
//
// Parameters:
//   - o: the order to ship
//   - items: all items across all products of the order
//   - now: the shipping timestamp
//
// Returns:
//   - NotReadyError if the order is not ready to ship; nothing is changed
//   - InvalidTransitionError if the order is already archived
func (s OrderShipper) Ship(o *order.Order, items []*item.Item, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsArchived() {
		return errs.NewInvalidTransitionErrorWithCause(
			"Archived", item.Shipped.String(),
			fmt.Errorf("order %s is already shipped", o.Number()),
		)
	}
	if !s.readiness.OrderReadyToShip(StatusesOf(items)) {
		return errs.NewNotReadyError("order", o.ID().String(), notReadyReason(items, item.Packed))
	}

	for _, it := range items {
		if err := it.Advance(item.Shipped, item.ShippedReason, now); err != nil {
			return err
		}
	}
	return o.MarkShipped(now)
}

func notReadyReason(items []*item.Item, want item.Status) string {
	if len(items) == 0 {
		return "order has no items"
	}
	pending := 0
	for _, it := range items {
		if it.Status() != want {
			pending++
		}
	}
	return fmt.Sprintf("%d of %d items are not %s", pending, len(items), want)
}
