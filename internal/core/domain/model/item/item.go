package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

const (
	// MaxColors is the number of filament slots on a plate.
	MaxColors = 4

	CreatedReason        = "created"
	DefaultAdvanceReason = "status advanced"
	DefaultReprintReason = "reprint requested"
	ShippedReason        = "order shipped"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// StatusChange is one audit entry produced by the aggregate. From is nil for the
// entry written when the item is created.
type StatusChange struct {
	From   *Status
	To     Status
	Reason string
	At     time.Time
}

// ColorSlot places a color at a 1-based position on the plate.
type ColorSlot struct {
	ColorID  kernel.UUID
	Position int
}

// PartSpec describes a part to attach when creating an item.
type PartSpec struct {
	PartID   kernel.UUID
	Quantity int
}

// Part is the item's association with a catalog part. NeedsReprint is tracked
// independently for every part of the item.
type Part struct {
	partID       kernel.UUID
	quantity     int
	needsReprint bool
}

// RestorePart rebuilds a part association from storage.
func RestorePart(partID kernel.UUID, quantity int, needsReprint bool) (*Part, error) {
	if err := partID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Part{partID: partID, quantity: quantity, needsReprint: needsReprint}, nil
}

func (p *Part) PartID() kernel.UUID { return p.partID }
func (p *Part) Quantity() int       { return p.quantity }
func (p *Part) NeedsReprint() bool  { return p.needsReprint }

// Item is a printable plate and the aggregate that owns production status.
//
// Item follows these invariants:
//   - Status is always one of the six production stages
//   - Forward moves advance exactly one stage; the reprint reset is the only backward edge
//   - Every status change appends exactly one StatusChange to the pending audit log
//   - Colors occupy positions 1..k (k in [1, MaxColors]) without gaps
//   - At least one part is attached and each part appears once
//
// Pending status changes are drained by the repository when the item is persisted,
// so history rows are written in the same transaction as the status itself.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	name      string
	status    Status
	colors    []ColorSlot
	parts     []*Part
	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic-lock counter of the persisted row.
	version int

	pending       []StatusChange
	isConstructed bool
}

// NewItem creates an item at InQueue and records the "created" audit entry.
//
// Parameters:
//   - id, productID: identifiers (must be valid)
//   - name: display name of the plate (required)
//   - colorIDs: 1..4 colors in slot order; position i+1 is assigned to colorIDs[i]
//   - parts: at least one part, each part once, quantities greater than zero
//   - now: creation timestamp
//
// Whether the referenced colors and parts exist and are active is checked by the
// caller against the catalog before construction.
func NewItem(
	id, productID kernel.UUID,
	name string,
	colorIDs []kernel.UUID,
	parts []PartSpec,
	now time.Time,
) (*Item, error) {
	it := &Item{
		status:        InQueue,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setProductID(productID),
		it.setName(name),
		it.setColors(colorIDs),
		it.setParts(parts),
	); err != nil {
		return nil, err
	}

	it.record(nil, InQueue, CreatedReason, now)
	return it, nil
}

// RestoreItem rebuilds an item from persisted state without recording history.
func RestoreItem(
	id, productID kernel.UUID,
	name string,
	status Status,
	colors []ColorSlot,
	parts []*Part,
	createdAt, updatedAt time.Time,
	version int,
) (*Item, error) {
	it := &Item{
		status:        status,
		parts:         parts,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setProductID(productID),
		it.setName(name),
		status.Validate(),
		it.restoreColors(colors),
		validateParts(parts),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// Validate ensures the Item was built by NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID        { return i.id }
func (i *Item) ProductID() kernel.UUID { return i.productID }
func (i *Item) Name() string           { return i.name }
func (i *Item) Status() Status         { return i.status }
func (i *Item) CreatedAt() time.Time   { return i.createdAt }
func (i *Item) UpdatedAt() time.Time   { return i.updatedAt }
func (i *Item) Version() int           { return i.version }

// Colors returns the color slots ordered by position.
func (i *Item) Colors() []ColorSlot {
	return append([]ColorSlot(nil), i.colors...)
}

// Parts returns the attached parts in attachment order.
func (i *Item) Parts() []*Part {
	return append([]*Part(nil), i.parts...)
}

// PartsNeedingReprint returns the IDs of parts currently flagged for reprint.
func (i *Item) PartsNeedingReprint() []kernel.UUID {
	flagged := make([]kernel.UUID, 0)
	for _, p := range i.parts {
		if p.needsReprint {
			flagged = append(flagged, p.partID)
		}
	}
	return flagged
}

// PendingChanges returns status changes not yet written to the audit log.
func (i *Item) PendingChanges() []StatusChange {
	return append([]StatusChange(nil), i.pending...)
}

// MarkPersisted is called by the repository after a successful write. It drops the
// pending audit entries and moves the item to the stored version.
func (i *Item) MarkPersisted(version int) {
	i.pending = nil
	i.version = version
}

// Advance moves the item one stage forward.
//
// Returns InvalidTransitionError unless target is the immediate successor of the
// current status. An empty reason is recorded as DefaultAdvanceReason.
//
// Example:
//
//	if err := it.Advance(item.InPrintfarm, "", time.Now()); err != nil {
//	    return err
//	}
func (i *Item) Advance(target Status, reason string, now time.Time) error {
	if err := i.status.ValidateAdvanceTo(target); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		reason = DefaultAdvanceReason
	}
	i.transition(target, reason, now)
	return nil
}

// RequestReprint sends the item back to InQueue.
//
// Business rules:
//   - EntireItem on an InQueue item fails with NoOpTransitionError
//   - PartSet fails with UnknownPartError (and changes nothing) if any part is not on the item
//   - PartSet flags exactly the named parts; on an InQueue item only the flags change
//   - Shipped items cannot be reprinted (InvalidTransitionError)
//
// An empty reason is recorded as DefaultReprintReason.
func (i *Item) RequestReprint(scope ReprintScope, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		reason = DefaultReprintReason
	}

	switch s := scope.(type) {
	case EntireItem:
		if i.status == InQueue {
			return errs.NewNoOpTransitionError(i.id.String(), i.status.String())
		}
		target, err := i.status.Reset()
		if err != nil {
			return err
		}
		i.transition(target, reason, now)
		return nil

	case PartSet:
		if len(s.partIDs) == 0 {
			return errs.NewValueIsRequiredError("partIds")
		}
		if i.status != InQueue {
			if _, err := i.status.Reset(); err != nil {
				return err
			}
		}
		targets, err := i.lookupParts(s.partIDs)
		if err != nil {
			return err
		}
		for _, p := range targets {
			p.needsReprint = true
		}
		if i.status != InQueue {
			i.transition(InQueue, reason, now)
		} else {
			i.updatedAt = now
		}
		return nil

	default:
		return errs.NewValueIsInvalidErrorWithCause("reprint scope", fmt.Errorf("unsupported scope %T", scope))
	}
}

// CompleteReprint clears the reprint flag on the named parts. The status is not
// touched; the item moves forward again through Advance.
func (i *Item) CompleteReprint(partIDs []kernel.UUID, now time.Time) error {
	unique, err := uniqueIDs("partIds", partIDs)
	if err != nil {
		return err
	}
	targets, err := i.lookupParts(unique)
	if err != nil {
		return err
	}
	for _, p := range targets {
		p.needsReprint = false
	}
	i.updatedAt = now
	return nil
}

func (i *Item) lookupParts(partIDs []kernel.UUID) ([]*Part, error) {
	found := make([]*Part, 0, len(partIDs))
	for _, id := range partIDs {
		p := i.findPart(id)
		if p == nil {
			return nil, errs.NewUnknownPartError(i.id.String(), id.String())
		}
		found = append(found, p)
	}
	return found, nil
}

func (i *Item) findPart(partID kernel.UUID) *Part {
	for _, p := range i.parts {
		if p.partID.IsEqual(partID) {
			return p
		}
	}
	return nil
}

func (i *Item) transition(to Status, reason string, now time.Time) {
	from := i.status
	i.status = to
	i.updatedAt = now
	i.record(&from, to, reason, now)
}

func (i *Item) record(from *Status, to Status, reason string, at time.Time) {
	i.pending = append(i.pending, StatusChange{From: from, To: to, Reason: reason, At: at})
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item_name")
	}
	i.name = name
	return nil
}

func (i *Item) setColors(colorIDs []kernel.UUID) error {
	if len(colorIDs) == 0 || len(colorIDs) > MaxColors {
		return errs.NewValueIsOutOfRangeError("colors", len(colorIDs), 1, MaxColors)
	}
	slots := make([]ColorSlot, 0, len(colorIDs))
	for idx, colorID := range colorIDs {
		if err := colorID.Validate(); err != nil {
			return err
		}
		slots = append(slots, ColorSlot{ColorID: colorID, Position: idx + 1})
	}
	i.colors = slots
	return nil
}

// restoreColors accepts slots in any order and checks they form 1..k.
func (i *Item) restoreColors(slots []ColorSlot) error {
	if len(slots) == 0 || len(slots) > MaxColors {
		return errs.NewValueIsOutOfRangeError("colors", len(slots), 1, MaxColors)
	}
	ordered := make([]ColorSlot, len(slots))
	for _, slot := range slots {
		if slot.Position < 1 || slot.Position > len(slots) {
			return errs.NewValueIsOutOfRangeError("color_order", slot.Position, 1, len(slots))
		}
		if ordered[slot.Position-1].Position != 0 {
			return errs.NewValueIsInvalidErrorWithCause("color_order", fmt.Errorf("position %d is used twice", slot.Position))
		}
		if err := slot.ColorID.Validate(); err != nil {
			return err
		}
		ordered[slot.Position-1] = slot
	}
	i.colors = ordered
	return nil
}

func (i *Item) setParts(specs []PartSpec) error {
	parts := make([]*Part, 0, len(specs))
	for _, spec := range specs {
		p, err := RestorePart(spec.PartID, spec.Quantity, false)
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}
	if err := validateParts(parts); err != nil {
		return err
	}
	i.parts = parts
	return nil
}

func validateParts(parts []*Part) error {
	if len(parts) == 0 {
		return errs.NewValueIsRequiredError("parts")
	}
	seen := make(map[kernel.UUID]struct{}, len(parts))
	for _, p := range parts {
		if p == nil {
			return errs.NewValueIsRequiredError("part")
		}
		if _, dup := seen[p.partID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parts", fmt.Errorf("part %s is attached twice", p.partID))
		}
		seen[p.partID] = struct{}{}
	}
	return nil
}
