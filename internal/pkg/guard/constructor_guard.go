// Package guard provides ConstructorGuard, a marker embedded in commands, queries
// and domain objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was built by its constructor.
// The zero value is "not constructed".
//
// Example usage:
//
//	var ErrAdvanceCommandNotConstructed = errors.New("AdvanceStatusCommand must be created via its constructor")
//
//	type AdvanceStatusCommand struct {
//	    itemID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AdvanceStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
