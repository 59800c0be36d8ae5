package commands

import (
	"errors"
	"fmt"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var (
	ErrSaveColorCommandIsNotConstructed = errors.New(
		"SaveColorCommand must be created via NewCreateColorCommand or NewUpdateColorCommand",
	)
	ErrSavePartCommandIsNotConstructed = errors.New(
		"SavePartCommand must be created via NewCreatePartCommand or NewUpdatePartCommand",
	)
	ErrCreateTemplateCommandIsNotConstructed = errors.New(
		"CreateTemplateCommand must be created via NewCreateTemplateCommand constructor",
	)
	ErrSetActiveCommandIsNotConstructed = errors.New(
		"SetActiveCommand must be created via NewSetActiveCommand constructor",
	)
)

// SaveColorCommand creates a color or replaces the editable fields of an existing
// one. Field rules live on catalog.Color.
type SaveColorCommand struct { //nolint:recvcheck //using for validation
	colorID  kernel.UUID
	spec     catalog.ColorSpec
	isUpdate bool

	guard guard.ConstructorGuard
}

func NewCreateColorCommand(colorID kernel.UUID, spec catalog.ColorSpec) (SaveColorCommand, error) {
	return newSaveColorCommand(colorID, spec, false)
}

func NewUpdateColorCommand(colorID kernel.UUID, spec catalog.ColorSpec) (SaveColorCommand, error) {
	return newSaveColorCommand(colorID, spec, true)
}

func newSaveColorCommand(colorID kernel.UUID, spec catalog.ColorSpec, isUpdate bool) (SaveColorCommand, error) {
	if err := colorID.Validate(); err != nil {
		return SaveColorCommand{}, err
	}
	return SaveColorCommand{
		colorID:  colorID,
		spec:     spec,
		isUpdate: isUpdate,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SaveColorCommand) Validate() error {
	return c.guard.Validate(ErrSaveColorCommandIsNotConstructed)
}

func (c SaveColorCommand) ColorID() kernel.UUID    { return c.colorID }
func (c SaveColorCommand) Spec() catalog.ColorSpec { return c.spec }
func (c SaveColorCommand) IsUpdate() bool          { return c.isUpdate }

// SavePartCommand creates a part or replaces the fields of an existing one.
type SavePartCommand struct { //nolint:recvcheck //using for validation
	partID   kernel.UUID
	spec     catalog.PartSpec
	isUpdate bool

	guard guard.ConstructorGuard
}

func NewCreatePartCommand(partID kernel.UUID, spec catalog.PartSpec) (SavePartCommand, error) {
	return newSavePartCommand(partID, spec, false)
}

func NewUpdatePartCommand(partID kernel.UUID, spec catalog.PartSpec) (SavePartCommand, error) {
	return newSavePartCommand(partID, spec, true)
}

func newSavePartCommand(partID kernel.UUID, spec catalog.PartSpec, isUpdate bool) (SavePartCommand, error) {
	if err := partID.Validate(); err != nil {
		return SavePartCommand{}, err
	}
	spec.Description = plainText(spec.Description)
	return SavePartCommand{
		partID:   partID,
		spec:     spec,
		isUpdate: isUpdate,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SavePartCommand) Validate() error {
	return c.guard.Validate(ErrSavePartCommandIsNotConstructed)
}

func (c SavePartCommand) PartID() kernel.UUID    { return c.partID }
func (c SavePartCommand) Spec() catalog.PartSpec { return c.spec }
func (c SavePartCommand) IsUpdate() bool         { return c.isUpdate }

// CreateTemplateCommand defines a new product template.
type CreateTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	spec       catalog.TemplateSpec

	guard guard.ConstructorGuard
}

func NewCreateTemplateCommand(templateID kernel.UUID, spec catalog.TemplateSpec) (CreateTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return CreateTemplateCommand{}, err
	}
	spec.Parts = append([]catalog.TemplatePart(nil), spec.Parts...)
	return CreateTemplateCommand{
		templateID: templateID,
		spec:       spec,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrCreateTemplateCommandIsNotConstructed)
}

func (c CreateTemplateCommand) TemplateID() kernel.UUID    { return c.templateID }
func (c CreateTemplateCommand) Spec() catalog.TemplateSpec { return c.spec }

// CatalogKind names a kind of reference data record.
type CatalogKind string

const (
	ColorKind    CatalogKind = "color"
	PartKind     CatalogKind = "part"
	TemplateKind CatalogKind = "template"
)

// SetActiveCommand soft-deletes or restores a reference data record. Records are
// never removed; inactive ones just cannot be attached to new items.
type SetActiveCommand struct { //nolint:recvcheck //using for validation
	kind   CatalogKind
	id     kernel.UUID
	active bool

	guard guard.ConstructorGuard
}

func NewSetActiveCommand(kind CatalogKind, id kernel.UUID, active bool) (SetActiveCommand, error) {
	command := SetActiveCommand{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	switch kind {
	case ColorKind, PartKind, TemplateKind:
		command.kind = kind
	default:
		return SetActiveCommand{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown catalog kind %q", kind))
	}
	if err := id.Validate(); err != nil {
		return SetActiveCommand{}, err
	}
	command.id = id

	return command, nil
}

func (c SetActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetActiveCommandIsNotConstructed)
}

func (c SetActiveCommand) Kind() CatalogKind { return c.kind }
func (c SetActiveCommand) ID() kernel.UUID   { return c.id }
func (c SetActiveCommand) Active() bool      { return c.active }
