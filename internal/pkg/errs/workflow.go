package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrNoOpTransition         = errors.New("status transition is a no-op")
	ErrUnknownPart            = errors.New("part is not associated with item")
	ErrInactiveReference      = errors.New("referenced record is inactive")
	ErrNotReady               = errors.New("precondition not satisfied")
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// InvalidTransitionError reports a status change that is not a defined step of the
// production workflow, e.g. skipping a stage or moving backwards outside a reprint.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %v)", ErrInvalidTransition, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NoOpTransitionError reports a request that would leave the status unchanged.
type NoOpTransitionError struct {
	ID     any
	Status string
}

func NewNoOpTransitionError(id any, status string) *NoOpTransitionError {
	return &NoOpTransitionError{ID: id, Status: status}
}

func (e *NoOpTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is already %s", ErrNoOpTransition, e.ID, e.Status)
}

func (e *NoOpTransitionError) Unwrap() error {
	return ErrNoOpTransition
}

// UnknownPartError reports a part ID that is not attached to the item.
type UnknownPartError struct {
	ItemID any
	PartID any
}

func NewUnknownPartError(itemID, partID any) *UnknownPartError {
	return &UnknownPartError{ItemID: itemID, PartID: partID}
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("%s: part %s, item %s", ErrUnknownPart, e.PartID, e.ItemID)
}

func (e *UnknownPartError) Unwrap() error {
	return ErrUnknownPart
}

// InactiveReferenceError reports an attempt to attach a soft-deleted record.
type InactiveReferenceError struct {
	Kind string
	ID   any
}

func NewInactiveReferenceError(kind string, id any) *InactiveReferenceError {
	return &InactiveReferenceError{Kind: kind, ID: id}
}

func (e *InactiveReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInactiveReference, e.Kind, e.ID)
}

func (e *InactiveReferenceError) Unwrap() error {
	return ErrInactiveReference
}

// NotReadyError reports an unsatisfied aggregate precondition such as
// "every item of the order is packed".
type NotReadyError struct {
	Subject string
	ID      any
	Reason  string
}

func NewNotReadyError(subject string, id any, reason string) *NotReadyError {
	return &NotReadyError{Subject: subject, ID: id, Reason: reason}
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrNotReady, e.Subject, e.ID, e.Reason)
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}

// DuplicateKeyError reports a uniqueness violation on Field.
type DuplicateKeyError struct {
	Field string
	Value any
	Cause error
}

func NewDuplicateKeyError(field string, value any) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, Value: value}
}

func NewDuplicateKeyErrorWithCause(field string, value any, cause error) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, Value: value, Cause: cause}
}

func (e *DuplicateKeyError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrDuplicateKey, e.Field, sanitize(e.Value))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// ConcurrentModificationError reports that another transaction changed the record
// after it was read. Callers re-read current state and retry.
type ConcurrentModificationError struct {
	Kind  string
	ID    any
	Cause error
}

func NewConcurrentModificationError(kind string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{Kind: kind, ID: id}
}

func NewConcurrentModificationErrorWithCause(kind string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{Kind: kind, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrConcurrentModification, e.Kind, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrConcurrentModification, e.Kind, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
