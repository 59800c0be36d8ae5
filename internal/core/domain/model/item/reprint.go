package item

import (
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// ReprintScope selects what a reprint request covers. It is a closed set of
// variants: EntireItem or PartSet. Code that consumes a scope switches on the
// concrete type.
type ReprintScope interface {
	isReprintScope()
}

// EntireItem sends the whole plate back to the queue without flagging parts.
type EntireItem struct{}

func (EntireItem) isReprintScope() {}

// PartSet flags the named parts for reprint. Any flagged part sends the whole
// item back to InQueue; progress is not tracked per part.
type PartSet struct {
	partIDs []kernel.UUID
}

func (PartSet) isReprintScope() {}

// NewPartSet builds a part scope. At least one part is required; repeated IDs
// are collapsed while keeping first-seen order.
func NewPartSet(partIDs ...kernel.UUID) (PartSet, error) {
	unique, err := uniqueIDs("partIds", partIDs)
	if err != nil {
		return PartSet{}, err
	}
	return PartSet{partIDs: unique}, nil
}

// PartIDs returns a copy of the selected part identifiers.
func (p PartSet) PartIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), p.partIDs...)
}

func uniqueIDs(param string, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError(param)
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique, nil
}
