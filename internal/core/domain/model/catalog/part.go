package catalog

import (
	"errors"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

var ErrPartIsNotConstructed = errors.New("Part must be created via NewPart constructor")

// PartSpec are the editable fields of a part. Code and Name are each unique.
type PartSpec struct {
	Code        string
	Name        string
	Description string
}

// Part is a printable component that items attach with a quantity.
type Part struct {
	id          kernel.UUID
	code        string
	name        string
	description string
	isActive    bool

	isConstructed bool
}

// NewPart creates an active part.
func NewPart(id kernel.UUID, spec PartSpec) (*Part, error) {
	return RestorePart(id, spec, true)
}

// RestorePart rebuilds a part from persisted state.
func RestorePart(id kernel.UUID, spec PartSpec, isActive bool) (*Part, error) {
	p := &Part{isActive: isActive, isConstructed: true}
	if err := errors.Join(id.Validate(), p.apply(spec)); err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *Part) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartIsNotConstructed
	}
	return nil
}

func (p *Part) ID() kernel.UUID     { return p.id }
func (p *Part) Code() string        { return p.code }
func (p *Part) Name() string        { return p.name }
func (p *Part) Description() string { return p.description }
func (p *Part) IsActive() bool      { return p.isActive }

// Update replaces the editable fields. On error the part is unchanged.
func (p *Part) Update(spec PartSpec) error {
	draft := *p
	if err := draft.apply(spec); err != nil {
		return err
	}
	*p = draft
	return nil
}

func (p *Part) Deactivate() { p.isActive = false }
func (p *Part) Activate()   { p.isActive = true }

// EnsureActive returns InactiveReferenceError for a deactivated part.
func (p *Part) EnsureActive() error {
	if !p.isActive {
		return errs.NewInactiveReferenceError("part", p.id.String())
	}
	return nil
}

func (p *Part) apply(spec PartSpec) error {
	code := strings.TrimSpace(spec.Code)
	name := strings.TrimSpace(spec.Name)

	var errList []error
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("part_code"))
	}
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("part_name"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	p.code = code
	p.name = name
	p.description = strings.TrimSpace(spec.Description)
	return nil
}
