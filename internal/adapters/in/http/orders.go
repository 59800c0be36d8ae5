package http

import (
	"net/http"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	details, err := orderDetails(body.OrderHeader)
	if err != nil {
		return err
	}

	products := make([]commands.NewProduct, 0, len(body.Products))
	for _, p := range body.Products {
		product := commands.NewProduct{Name: p.Name, Items: make([]commands.NewItem, 0, len(p.Items))}
		for _, it := range p.Items {
			newItem, err := newItem(it)
			if err != nil {
				return err
			}
			product.Items = append(product.Items, newItem)
		}
		products = append(products, product)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, details, products)
	if err != nil {
		return err
	}
	if err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+orderID.String())
	return c.JSON(http.StatusCreated, Created{Id: orderID.Bytes()})
}

// UpdateOrderDetails handles PUT /api/v1/orders/{orderId}.
func (s *Server) UpdateOrderDetails(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var body OrderHeader
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	details, err := orderDetails(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(orderID, details)
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateOrderDetails.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.orderDetailsResponse(c, orderID)
}

// ShipOrder handles POST /api/v1/orders/{orderId}/ship.
func (s *Server) ShipOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewShipOrderCommand(orderID)
	if err != nil {
		return err
	}
	if err := s.handlers.ShipOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.orderDetailsResponse(c, orderID)
}

// ListActiveOrders handles GET /api/v1/orders.
func (s *Server) ListActiveOrders(c echo.Context) error {
	orders, err := s.handlers.ListActiveOrders.Handle(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderSummaries(orders))
}

// ListOverdueOrders handles GET /api/v1/orders/overdue.
func (s *Server) ListOverdueOrders(c echo.Context) error {
	query, err := queries.NewListOverdueOrdersQuery(s.now())
	if err != nil {
		return err
	}
	orders, err := s.handlers.ListOverdueOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderSummaries(orders))
}

// NextOrderNumber handles GET /api/v1/orders/next-number.
func (s *Server) NextOrderNumber(c echo.Context) error {
	number, err := s.handlers.NextOrderNumber.Handle(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NextNumber{Number: number})
}

// GetOrderDetails handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderDetails(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	return s.orderDetailsResponse(c, orderID)
}

func (s *Server) orderDetailsResponse(c echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := OrderDetails{
		OrderSummary: orderSummary(view.OrderSummary),
		Notes:        view.Notes,
		ShippedAt:    view.ShippedAt,
		Products:     make([]Product, 0, len(view.Products)),
	}
	for _, p := range view.Products {
		response.Products = append(response.Products, Product{
			Id:    p.ID.Bytes(),
			Name:  p.Name,
			Items: itemViews(p.Items),
		})
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrderReadiness handles GET /api/v1/orders/{orderId}/readiness.
func (s *Server) GetOrderReadiness(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderReadinessQuery(orderID)
	if err != nil {
		return err
	}
	r, err := s.handlers.Readiness.HandleOrder(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OrderReadiness{
		OrderId:     r.OrderID.Bytes(),
		ItemCount:   r.ItemCount,
		ReadyToPack: r.ReadyToPack,
		ReadyToShip: r.ReadyToShip,
	})
}

// GetProductReadiness handles GET /api/v1/products/{productId}/readiness.
func (s *Server) GetProductReadiness(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetProductReadinessQuery(productID)
	if err != nil {
		return err
	}
	r, err := s.handlers.Readiness.HandleProduct(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProductReadiness{
		ProductId:        r.ProductID.Bytes(),
		ItemCount:        r.ItemCount,
		ReadyForAssembly: r.ReadyForAssembly,
	})
}

func orderDetails(h OrderHeader) (order.Details, error) {
	platform, err := order.ParsePlatform(h.Platform)
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		Number:       trimmed(h.Number),
		CustomerName: h.CustomerName,
		Platform:     platform,
		Notes:        deref(h.Notes),
		ShipByDate:   fromDate(h.ShipByDate),
		IsExpress:    deref(h.IsExpress),
	}, nil
}

func newItem(in NewItem) (commands.NewItem, error) {
	colorIDs, err := toKernelList("colorIds", in.ColorIds)
	if err != nil {
		return commands.NewItem{}, err
	}
	result := commands.NewItem{Name: in.Name, ColorIDs: colorIDs}
	for _, p := range in.Parts {
		partID, err := toKernel("partId", p.PartId)
		if err != nil {
			return commands.NewItem{}, err
		}
		result.Parts = append(result.Parts, commands.NewPart{PartID: partID, Quantity: deref(p.Quantity)})
	}
	if in.TemplateId != nil {
		templateID, err := toKernel("templateId", *in.TemplateId)
		if err != nil {
			return commands.NewItem{}, err
		}
		result.TemplateID = &templateID
	}
	return result, nil
}

func orderSummary(o queries.OrderSummary) OrderSummary {
	counts := make(map[string]int, len(o.StatusCounts))
	for status, n := range o.StatusCounts {
		counts[status.String()] = n
	}
	return OrderSummary{
		Id:           o.ID.Bytes(),
		Number:       o.Number,
		CustomerName: o.CustomerName,
		Platform:     o.Platform.String(),
		IsExpress:    o.IsExpress,
		IsArchived:   o.IsArchived,
		ShipByDate:   toDate(o.ShipByDate),
		CreatedAt:    o.CreatedAt,
		ItemCount:    o.ItemCount,
		StatusCounts: counts,
	}
}

func orderSummaries(orders []queries.OrderSummary) []OrderSummary {
	response := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderSummary(o))
	}
	return response
}

func itemViews(views []queries.ItemView) []Item {
	response := make([]Item, 0, len(views))
	for _, v := range views {
		it := Item{
			Id:           v.ID.Bytes(),
			Name:         v.Name,
			Status:       v.Status.String(),
			ProductId:    v.ProductID.Bytes(),
			ProductName:  v.ProductName,
			OrderId:      v.OrderID.Bytes(),
			OrderNumber:  v.OrderNumber,
			CustomerName: v.CustomerName,
			IsExpress:    v.IsExpress,
			ShipByDate:   toDate(v.ShipByDate),
			NeedsReprint: v.NeedsReprint(),
			Colors:       make([]ColorSlot, 0, len(v.Colors)),
			Parts:        make([]ItemPart, 0, len(v.Parts)),
		}
		for _, color := range v.Colors {
			it.Colors = append(it.Colors, ColorSlot{
				Position: color.Position,
				ColorId:  color.ColorID.Bytes(),
				Name:     color.Name,
				HexCode:  color.HexCode,
			})
		}
		for _, p := range v.Parts {
			it.Parts = append(it.Parts, ItemPart{
				PartId:       p.PartID.Bytes(),
				Code:         p.Code,
				Name:         p.Name,
				Quantity:     p.Quantity,
				NeedsReprint: p.NeedsReprint,
			})
		}
		response = append(response, it)
	}
	return response
}
