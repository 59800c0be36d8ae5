package catalog

import (
	"errors"
	"fmt"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MinColors = 1
	MaxColors = 4
)

var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// TemplatePart is one entry of a template's parts multiset.
type TemplatePart struct {
	PartID   kernel.UUID
	Quantity int
}

// TemplateSpec are the fields a template is created with.
type TemplateSpec struct {
	Name             string
	NumColors        int
	PrintTimeMinutes int
	PrintCost        decimal.Decimal
	Parts            []TemplatePart
}

// Template is a reusable item definition. Items created from a template get its
// parts and quantities and must use exactly NumColors colors.
type Template struct {
	id               kernel.UUID
	name             string
	numColors        int
	printTimeMinutes int
	printCost        decimal.Decimal
	parts            []TemplatePart
	isActive         bool

	isConstructed bool
}

// NewTemplate creates an active template.
//
// Business rules:
//   - Name is required and unique (uniqueness is enforced by the store)
//   - NumColors is between 1 and 4
//   - Print time and cost are not negative
//   - Each part appears once with a quantity greater than zero
func NewTemplate(id kernel.UUID, spec TemplateSpec) (*Template, error) {
	return RestoreTemplate(id, spec, true)
}

// RestoreTemplate rebuilds a template from persisted state.
func RestoreTemplate(id kernel.UUID, spec TemplateSpec, isActive bool) (*Template, error) {
	name := strings.TrimSpace(spec.Name)

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("template_name"))
	}
	if spec.NumColors < MinColors || spec.NumColors > MaxColors {
		errList = append(errList, errs.NewValueIsOutOfRangeError("num_colors", spec.NumColors, MinColors, MaxColors))
	}
	if spec.PrintTimeMinutes < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"print_time_minutes", fmt.Errorf("%d is negative", spec.PrintTimeMinutes),
		))
	}
	if spec.PrintCost.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"print_cost", fmt.Errorf("%s is negative", spec.PrintCost),
		))
	}
	if err := validateTemplateParts(spec.Parts); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Template{
		id:               id,
		name:             name,
		numColors:        spec.NumColors,
		printTimeMinutes: spec.PrintTimeMinutes,
		printCost:        spec.PrintCost,
		parts:            append([]TemplatePart(nil), spec.Parts...),
		isActive:         isActive,
		isConstructed:    true,
	}, nil
}

func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

func (t *Template) ID() kernel.UUID            { return t.id }
func (t *Template) Name() string               { return t.name }
func (t *Template) NumColors() int             { return t.numColors }
func (t *Template) PrintTimeMinutes() int      { return t.printTimeMinutes }
func (t *Template) PrintCost() decimal.Decimal { return t.printCost }
func (t *Template) IsActive() bool             { return t.isActive }

// Parts returns a copy of the template's parts multiset.
func (t *Template) Parts() []TemplatePart {
	return append([]TemplatePart(nil), t.parts...)
}

func (t *Template) Deactivate() { t.isActive = false }
func (t *Template) Activate()   { t.isActive = true }

// EnsureActive returns InactiveReferenceError for a deactivated template.
func (t *Template) EnsureActive() error {
	if !t.isActive {
		return errs.NewInactiveReferenceError("template", t.id.String())
	}
	return nil
}

// ValidateColorCount checks that an item built from this template uses exactly
// NumColors colors.
func (t *Template) ValidateColorCount(count int) error {
	if count != t.numColors {
		return errs.NewValueIsOutOfRangeError("colors", count, t.numColors, t.numColors)
	}
	return nil
}

func validateTemplateParts(parts []TemplatePart) error {
	if len(parts) == 0 {
		return errs.NewValueIsRequiredError("parts")
	}
	seen := make(map[kernel.UUID]struct{}, len(parts))
	for _, p := range parts {
		if err := p.PartID.Validate(); err != nil {
			return err
		}
		if p.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", p.Quantity))
		}
		if _, dup := seen[p.PartID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parts", fmt.Errorf("part %s is listed twice", p.PartID))
		}
		seen[p.PartID] = struct{}{}
	}
	return nil
}
