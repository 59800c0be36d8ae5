package http

import (
	"net/http"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/catalog"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListColors handles GET /api/v1/colors.
func (s *Server) ListColors(c echo.Context) error {
	filter, err := includeInactive(c)
	if err != nil {
		return err
	}
	colors, err := s.handlers.Catalog.ListColors(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	response := make([]Color, 0, len(colors))
	for _, color := range colors {
		response = append(response, Color{
			ColorInput: ColorInput{
				Name:        color.Name,
				HexCode:     color.HexCode,
				PantoneCode: color.PantoneCode,
				Material: Material{
					Type:          color.MaterialType,
					Supplier:      color.Supplier,
					Category:      color.Category,
					CostPerUnit:   color.CostPerUnit.StringFixed(2),
					StockQuantity: color.StockQuantity,
				},
			},
			Id:       color.ID.Bytes(),
			IsActive: color.IsActive,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// CreateColor handles POST /api/v1/colors.
func (s *Server) CreateColor(c echo.Context) error {
	spec, err := bindColor(c)
	if err != nil {
		return err
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateColorCommand(id, spec)
	if err != nil {
		return err
	}
	if err := s.handlers.SaveColor.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{Id: id.Bytes()})
}

// UpdateColor handles PUT /api/v1/colors/{colorId}.
func (s *Server) UpdateColor(c echo.Context) error {
	id, err := pathID(c, "colorId")
	if err != nil {
		return err
	}
	spec, err := bindColor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateColorCommand(id, spec)
	if err != nil {
		return err
	}
	if err := s.handlers.SaveColor.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListParts handles GET /api/v1/parts.
func (s *Server) ListParts(c echo.Context) error {
	filter, err := includeInactive(c)
	if err != nil {
		return err
	}
	parts, err := s.handlers.Catalog.ListParts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	response := make([]Part, 0, len(parts))
	for _, p := range parts {
		response = append(response, Part{
			PartInput: PartInput{Code: p.Code, Name: p.Name, Description: p.Description},
			Id:        p.ID.Bytes(),
			IsActive:  p.IsActive,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// CreatePart handles POST /api/v1/parts.
func (s *Server) CreatePart(c echo.Context) error {
	var body PartInput
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePartCommand(id, catalog.PartSpec{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return err
	}
	if err := s.handlers.SavePart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{Id: id.Bytes()})
}

// UpdatePart handles PUT /api/v1/parts/{partId}.
func (s *Server) UpdatePart(c echo.Context) error {
	id, err := pathID(c, "partId")
	if err != nil {
		return err
	}
	var body PartInput
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cmd, err := commands.NewUpdatePartCommand(id, catalog.PartSpec{
		Code:        body.Code,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return err
	}
	if err := s.handlers.SavePart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTemplates handles GET /api/v1/templates.
func (s *Server) ListTemplates(c echo.Context) error {
	filter, err := includeInactive(c)
	if err != nil {
		return err
	}
	templates, err := s.handlers.Catalog.ListTemplates(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	response := make([]Template, 0, len(templates))
	for _, t := range templates {
		tpl := Template{
			Id:               t.ID.Bytes(),
			Name:             t.Name,
			NumColors:        t.NumColors,
			PrintTimeMinutes: t.PrintTimeMinutes,
			PrintCost:        t.PrintCost.StringFixed(2),
			IsActive:         t.IsActive,
			Parts:            make([]TemplatePart, 0, len(t.Parts)),
		}
		for _, p := range t.Parts {
			tpl.Parts = append(tpl.Parts, TemplatePart{
				PartId:   p.PartID.Bytes(),
				Code:     p.Code,
				Name:     p.Name,
				Quantity: p.Quantity,
			})
		}
		response = append(response, tpl)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateTemplate handles POST /api/v1/templates. A part without quantity is used
// once.
func (s *Server) CreateTemplate(c echo.Context) error {
	var body TemplateInput
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cost, err := money("printCost", body.PrintCost)
	if err != nil {
		return err
	}

	parts := make([]catalog.TemplatePart, 0, len(body.Parts))
	for _, p := range body.Parts {
		partID, err := toKernel("partId", p.PartId)
		if err != nil {
			return err
		}
		quantity := deref(p.Quantity)
		if p.Quantity == nil {
			quantity = 1
		}
		parts = append(parts, catalog.TemplatePart{PartID: partID, Quantity: quantity})
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateTemplateCommand(id, catalog.TemplateSpec{
		Name:             body.Name,
		NumColors:        body.NumColors,
		PrintTimeMinutes: body.PrintTimeMinutes,
		PrintCost:        cost,
		Parts:            parts,
	})
	if err != nil {
		return err
	}
	if err := s.handlers.CreateTemplate.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{Id: id.Bytes()})
}

// setActive serves the deactivate and activate routes of one catalog kind.
func (s *Server) setActive(kind commands.CatalogKind, param string, active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, param)
		if err != nil {
			return err
		}
		cmd, err := commands.NewSetActiveCommand(kind, id, active)
		if err != nil {
			return err
		}
		if err := s.handlers.SetActive.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func bindColor(c echo.Context) (catalog.ColorSpec, error) {
	var body ColorInput
	if err := c.Bind(&body); err != nil {
		return catalog.ColorSpec{}, errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	cost, err := money("costPerUnit", body.Material.CostPerUnit)
	if err != nil {
		return catalog.ColorSpec{}, err
	}
	return catalog.ColorSpec{
		Name:        body.Name,
		HexCode:     body.HexCode,
		PantoneCode: body.PantoneCode,
		Material: catalog.Material{
			Type:          body.Material.Type,
			Supplier:      body.Material.Supplier,
			Category:      body.Material.Category,
			CostPerUnit:   cost,
			StockQuantity: body.Material.StockQuantity,
		},
	}, nil
}

func money(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}
