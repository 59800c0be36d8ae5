package services

import (
	"printflow/internal/core/domain/model/item"
)

// Readiness evaluates aggregate readiness over the statuses of a set of items.
// The ship command feeds it loaded aggregates through StatusesOf; read models
// feed it statuses straight from the store.
//
// Example usage:
//
//	readiness := services.NewReadiness()
//	if readiness.OrderReadyToShip(services.StatusesOf(items)) {
//	    // every item of the order is packed
//	}
type Readiness struct{}

// NewReadiness creates a Readiness service.
func NewReadiness() Readiness {
	return Readiness{}
}

// ProductReadyForAssembly reports whether every item of a product is Printed.
func (r Readiness) ProductReadyForAssembly(statuses []item.Status) bool {
	return AllStatusesAt(statuses, item.Printed)
}

// OrderReadyToPack reports whether every item across all products of an order is
// Assembled.
func (r Readiness) OrderReadyToPack(statuses []item.Status) bool {
	return AllStatusesAt(statuses, item.Assembled)
}

// OrderReadyToShip reports whether every item across all products of an order is
// Packed.
func (r Readiness) OrderReadyToShip(statuses []item.Status) bool {
	return AllStatusesAt(statuses, item.Packed)
}

// StatusesOf lists item statuses in order. A nil item reads as Unknown and so is
// never ready.
func StatusesOf(items []*item.Item) []item.Status {
	statuses := make([]item.Status, 0, len(items))
	for _, it := range items {
		if it == nil {
			statuses = append(statuses, item.Unknown)
			continue
		}
		statuses = append(statuses, it.Status())
	}
	return statuses
}

// AllStatusesAt reports whether statuses is non-empty and every entry is exactly
// status. Items past the stage do not count as ready.
func AllStatusesAt(statuses []item.Status, status item.Status) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if s != status {
			return false
		}
	}
	return true
}
