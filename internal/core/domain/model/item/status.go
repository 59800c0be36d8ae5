package item

import (
	"fmt"
	"strings"

	"printflow/internal/pkg/errs"
)

// Status is the production stage of an item. Values are ranked: the integer value
// of a status is its position in the production line, so "next stage" and
// "is forward" are arithmetic checks.
//
// State transitions:
//
//	InQueue ──> InPrintfarm ──> Printed ──> Assembled ──> Packed ──> Shipped
//	   ^             │             │            │           │
//	   └─────────────┴─────────────┴────────────┴───────────┘
//	                        (reprint reset only)
//
// Forward moves go exactly one stage at a time. The only backward edge is the
// reprint reset to InQueue, which Shipped items cannot take.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// InQueue is the initial stage: the plate is waiting for a printer.
	InQueue

	// InPrintfarm means the plate is on a printer.
	InPrintfarm

	// Printed means every part of the plate has come off the printer.
	Printed

	// Assembled means the printed parts have been put together.
	Assembled

	// Packed means the item is boxed with the rest of its order.
	Packed

	// Shipped is terminal. It is reached only through the forward path.
	Shipped
)

var statusNames = map[Status]string{
	InQueue:     "InQueue",
	InPrintfarm: "InPrintfarm",
	Printed:     "Printed",
	Assembled:   "Assembled",
	Packed:      "Packed",
	Shipped:     "Shipped",
}

// AllStatuses returns the valid statuses in production order.
func AllStatuses() []Status {
	return []Status{InQueue, InPrintfarm, Printed, Assembled, Packed, Shipped}
}

// ParseStatus resolves a status name. Matching ignores case, spaces, hyphens and
// underscores, so "in_queue", "In Queue" and "InQueue" are equivalent.
func ParseStatus(name string) (Status, error) {
	normalized := normalizeStatusName(name)
	for _, s := range AllStatuses() {
		if normalizeStatusName(statusNames[s]) == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

func normalizeStatusName(name string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(name)))
}

// Validate checks that the status is one of the six production stages.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stage name, or "Unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Shipped
}

// Next returns the immediate successor stage.
//
// Returns:
//   - (successor, nil) for InQueue through Packed
//   - (Unknown, InvalidTransitionError) for Shipped and invalid values
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(s.String(), "next", err)
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), "next", fmt.Errorf("%s is a terminal status", s),
		)
	}
	return s + 1, nil
}

// ValidateAdvanceTo checks that target is exactly the next stage after s.
// Skipping stages, staying put and moving backwards are all rejected.
//
// Example:
//
//	if err := item.Printed.ValidateAdvanceTo(item.Packed); err != nil {
//	    // errors.Is(err, errs.ErrInvalidTransition) == true
//	}
func (s Status) ValidateAdvanceTo(target Status) error {
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(), err)
	}
	next, err := s.Next()
	if err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(), err)
	}
	if target != next {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("next status after %s is %s", s, next),
		)
	}
	return nil
}

// Reset returns InQueue for the stages that may be sent back for a reprint.
//
// Returns:
//   - (InQueue, nil) for InPrintfarm, Printed, Assembled and Packed
//   - (Unknown, NoOpTransitionError) for InQueue
//   - (Unknown, InvalidTransitionError) for Shipped and invalid values
func (s Status) Reset() (Status, error) {
	switch s {
	case InPrintfarm, Printed, Assembled, Packed:
		return InQueue, nil
	case InQueue:
		return Unknown, errs.NewNoOpTransitionError("item", s.String())
	case Unknown, Shipped:
		return Unknown, errs.NewInvalidTransitionError(s.String(), InQueue.String())
	default:
		return Unknown, errs.NewInvalidTransitionError(s.String(), InQueue.String())
	}
}
