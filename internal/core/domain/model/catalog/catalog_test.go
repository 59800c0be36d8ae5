package catalog_test

import (
	"testing"

	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validColorSpec() catalog.ColorSpec {
	pantone := " 186 C "
	return catalog.ColorSpec{
		Name:        "Signal Red",
		HexCode:     "#ff0000",
		PantoneCode: &pantone,
		Material: catalog.Material{
			Type:          "PLA",
			Supplier:      "Prusament",
			Category:      "Standard",
			CostPerUnit:   decimal.RequireFromString("24.99"),
			StockQuantity: 3,
		},
	}
}

func TestNewColor(t *testing.T) {
	t.Run("should normalise fields", func(t *testing.T) {
		c, err := catalog.NewColor(kernel.NewUUID(), validColorSpec())

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "#FF0000", c.HexCode())
		require.NotNil(t, c.PantoneCode())
		assert.Equal(t, "186 C", *c.PantoneCode())
		assert.True(t, c.IsActive())
		assert.True(t, decimal.RequireFromString("24.99").Equal(c.Material().CostPerUnit))
	})

	t.Run("should reject bad hex codes", func(t *testing.T) {
		for _, hex := range []string{"", "FF0000", "#FF00", "#GG0000", "#FF00000"} {
			spec := validColorSpec()
			spec.HexCode = hex

			_, err := catalog.NewColor(kernel.NewUUID(), spec)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, hex)
		}
	})

	t.Run("should reject negative material values", func(t *testing.T) {
		spec := validColorSpec()
		spec.Material.CostPerUnit = decimal.NewFromInt(-1)
		spec.Material.StockQuantity = -2

		_, err := catalog.NewColor(kernel.NewUUID(), spec)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cost_per_unit")
		assert.Contains(t, err.Error(), "stock_quantity")
	})
}

func TestColor_UpdateAndActivation(t *testing.T) {
	c, err := catalog.NewColor(kernel.NewUUID(), validColorSpec())
	require.NoError(t, err)

	bad := validColorSpec()
	bad.Name = ""
	require.ErrorIs(t, c.Update(bad), errs.ErrValueIsRequired)
	assert.Equal(t, "Signal Red", c.Name())

	good := validColorSpec()
	good.Name = "Deep Red"
	good.PantoneCode = nil
	require.NoError(t, c.Update(good))
	assert.Equal(t, "Deep Red", c.Name())
	assert.Nil(t, c.PantoneCode())

	c.Deactivate()
	require.ErrorIs(t, c.EnsureActive(), errs.ErrInactiveReference)
	c.Activate()
	require.NoError(t, c.EnsureActive())
}

func TestPart(t *testing.T) {
	t.Run("should require code and name", func(t *testing.T) {
		_, err := catalog.NewPart(kernel.NewUUID(), catalog.PartSpec{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "part_code")
		assert.Contains(t, err.Error(), "part_name")
	})

	t.Run("should toggle activation", func(t *testing.T) {
		p, err := catalog.NewPart(kernel.NewUUID(), catalog.PartSpec{Code: "WING-L", Name: "Left wing"})
		require.NoError(t, err)

		p.Deactivate()
		require.ErrorIs(t, p.EnsureActive(), errs.ErrInactiveReference)
		p.Activate()
		require.NoError(t, p.EnsureActive())
	})

	t.Run("should keep part unchanged on invalid update", func(t *testing.T) {
		p, err := catalog.NewPart(kernel.NewUUID(), catalog.PartSpec{Code: "WING-L", Name: "Left wing"})
		require.NoError(t, err)

		require.Error(t, p.Update(catalog.PartSpec{Code: "WING-R"}))
		assert.Equal(t, "WING-L", p.Code())
	})
}

func TestNewTemplate(t *testing.T) {
	partA, partB := kernel.NewUUID(), kernel.NewUUID()
	valid := catalog.TemplateSpec{
		Name:             "Dragon plate",
		NumColors:        2,
		PrintTimeMinutes: 95,
		PrintCost:        decimal.RequireFromString("3.40"),
		Parts:            []catalog.TemplatePart{{PartID: partA, Quantity: 2}, {PartID: partB, Quantity: 1}},
	}

	t.Run("should create active template", func(t *testing.T) {
		tpl, err := catalog.NewTemplate(kernel.NewUUID(), valid)

		require.NoError(t, err)
		assert.True(t, tpl.IsActive())
		assert.Len(t, tpl.Parts(), 2)
		require.NoError(t, tpl.ValidateColorCount(2))
		require.ErrorIs(t, tpl.ValidateColorCount(3), errs.ErrValueIsOutOfRange)
	})

	testCases := []struct {
		name   string
		mutate func(*catalog.TemplateSpec)
		target error
	}{
		{"blank name", func(s *catalog.TemplateSpec) { s.Name = " " }, errs.ErrValueIsRequired},
		{"zero colors", func(s *catalog.TemplateSpec) { s.NumColors = 0 }, errs.ErrValueIsOutOfRange},
		{"five colors", func(s *catalog.TemplateSpec) { s.NumColors = 5 }, errs.ErrValueIsOutOfRange},
		{"negative time", func(s *catalog.TemplateSpec) { s.PrintTimeMinutes = -1 }, errs.ErrValueIsInvalid},
		{"negative cost", func(s *catalog.TemplateSpec) { s.PrintCost = decimal.NewFromInt(-3) }, errs.ErrValueIsInvalid},
		{"no parts", func(s *catalog.TemplateSpec) { s.Parts = nil }, errs.ErrValueIsRequired},
		{"zero quantity", func(s *catalog.TemplateSpec) {
			s.Parts = []catalog.TemplatePart{{PartID: partA, Quantity: 0}}
		}, errs.ErrValueIsInvalid},
		{"duplicate part", func(s *catalog.TemplateSpec) {
			s.Parts = []catalog.TemplatePart{{PartID: partA, Quantity: 1}, {PartID: partA, Quantity: 1}}
		}, errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid
			spec.Parts = append([]catalog.TemplatePart(nil), valid.Parts...)
			tc.mutate(&spec)

			_, err := catalog.NewTemplate(kernel.NewUUID(), spec)

			require.ErrorIs(t, err, tc.target)
		})
	}

	t.Run("deactivated template is rejected as reference", func(t *testing.T) {
		tpl, err := catalog.NewTemplate(kernel.NewUUID(), valid)
		require.NoError(t, err)

		tpl.Deactivate()

		require.ErrorIs(t, tpl.EnsureActive(), errs.ErrInactiveReference)
	})
}
