package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrColorIsNotConstructed = errors.New("Color must be created via NewColor constructor")

	hexCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Material describes the filament a color is printed with.
type Material struct {
	Type          string
	Supplier      string
	Category      string
	CostPerUnit   decimal.Decimal
	StockQuantity int
}

// Validate checks that costs and stock are not negative.
func (m Material) Validate() error {
	var errList []error
	if m.CostPerUnit.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"cost_per_unit", fmt.Errorf("%s is negative", m.CostPerUnit),
		))
	}
	if m.StockQuantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"stock_quantity", fmt.Errorf("%d is negative", m.StockQuantity),
		))
	}
	return errors.Join(errList...)
}

// ColorSpec are the editable fields of a color.
type ColorSpec struct {
	Name        string
	HexCode     string
	PantoneCode *string
	Material    Material
}

// Color is a filament color that items reference by position.
type Color struct {
	id          kernel.UUID
	name        string
	hexCode     string
	pantoneCode *string
	material    Material
	isActive    bool

	isConstructed bool
}

// NewColor creates an active color. Hex codes are stored upper-case.
func NewColor(id kernel.UUID, spec ColorSpec) (*Color, error) {
	return RestoreColor(id, spec, true)
}

// RestoreColor rebuilds a color from persisted state.
func RestoreColor(id kernel.UUID, spec ColorSpec, isActive bool) (*Color, error) {
	c := &Color{isActive: isActive, isConstructed: true}
	if err := errors.Join(id.Validate(), c.apply(spec)); err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}

func (c *Color) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrColorIsNotConstructed
	}
	return nil
}

func (c *Color) ID() kernel.UUID    { return c.id }
func (c *Color) Name() string       { return c.name }
func (c *Color) HexCode() string    { return c.hexCode }
func (c *Color) Material() Material { return c.material }
func (c *Color) IsActive() bool     { return c.isActive }

func (c *Color) PantoneCode() *string {
	if c.pantoneCode == nil {
		return nil
	}
	code := *c.pantoneCode
	return &code
}

// Update replaces the editable fields. On error the color is unchanged.
func (c *Color) Update(spec ColorSpec) error {
	draft := *c
	if err := draft.apply(spec); err != nil {
		return err
	}
	*c = draft
	return nil
}

// Deactivate soft-deletes the color.
func (c *Color) Deactivate() { c.isActive = false }

// Activate reverses Deactivate.
func (c *Color) Activate() { c.isActive = true }

// EnsureActive returns InactiveReferenceError for a deactivated color.
func (c *Color) EnsureActive() error {
	if !c.isActive {
		return errs.NewInactiveReferenceError("color", c.id.String())
	}
	return nil
}

func (c *Color) apply(spec ColorSpec) error {
	name := strings.TrimSpace(spec.Name)
	hexCode := strings.ToUpper(strings.TrimSpace(spec.HexCode))

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("color_name"))
	}
	if !hexCodePattern.MatchString(hexCode) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"hex_code", fmt.Errorf("%q is not in #RRGGBB form", spec.HexCode),
		))
	}
	if err := spec.Material.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.name = name
	c.hexCode = hexCode
	c.material = spec.Material
	c.pantoneCode = nil
	if spec.PantoneCode != nil && strings.TrimSpace(*spec.PantoneCode) != "" {
		code := strings.TrimSpace(*spec.PantoneCode)
		c.pantoneCode = &code
	}
	return nil
}
