package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers are the use cases the API exposes.
type Handlers struct {
	// Command handlers
	CreateOrder         commands.CreateOrderCommandHandler
	UpdateOrderDetails  commands.UpdateOrderDetailsCommandHandler
	ShipOrder           commands.ShipOrderCommandHandler
	AdvanceStatus       commands.AdvanceStatusCommandHandler
	BatchAdvance        commands.BatchAdvanceCommandHandler
	RequestReprint      commands.RequestReprintCommandHandler
	MarkReprintComplete commands.MarkReprintCompleteCommandHandler
	SaveColor           commands.SaveColorCommandHandler
	SavePart            commands.SavePartCommandHandler
	CreateTemplate      commands.CreateTemplateCommandHandler
	SetActive           commands.SetActiveCommandHandler

	// Query handlers
	ListItemsByStatus queries.ListItemsByStatusQueryHandler
	GetItems          queries.GetItemsQueryHandler
	GetItemHistory    queries.GetItemHistoryQueryHandler
	Readiness         queries.ReadinessQueryHandler
	ListActiveOrders  queries.ListActiveOrdersQueryHandler
	GetOrderDetails   queries.GetOrderDetailsQueryHandler
	ListOverdueOrders queries.ListOverdueOrdersQueryHandler
	NextOrderNumber   queries.NextOrderNumberQueryHandler
	Catalog           queries.CatalogQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	now      func() time.Time
}

// NewServer creates a new HTTP server with the required command and query handlers.
// now is the clock used for overdue checks.
func NewServer(handlers Handlers, now func() time.Time) *Server {
	return &Server{handlers: handlers, now: now}
}

// NewEcho builds the echo instance: health check, API docs, request validation
// against the embedded OpenAPI document and every /api/v1 route.
func NewEcho(ctx context.Context, server *Server, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	server.register(api)

	return e, nil
}

func (s *Server) register(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.ListActiveOrders)
	g.GET("/orders/overdue", s.ListOverdueOrders)
	g.GET("/orders/next-number", s.NextOrderNumber)
	g.GET("/orders/:orderId", s.GetOrderDetails)
	g.PUT("/orders/:orderId", s.UpdateOrderDetails)
	g.GET("/orders/:orderId/readiness", s.GetOrderReadiness)
	g.POST("/orders/:orderId/ship", s.ShipOrder)
	g.GET("/products/:productId/readiness", s.GetProductReadiness)

	g.GET("/items", s.ListItemsByStatus)
	g.POST("/items/batch-advance", s.BatchAdvance)
	g.POST("/items/:itemId/advance", s.AdvanceStatus)
	g.POST("/items/:itemId/reprint", s.RequestReprint)
	g.POST("/items/:itemId/reprint-complete", s.MarkReprintComplete)
	g.GET("/items/:itemId/history", s.GetItemHistory)

	g.GET("/colors", s.ListColors)
	g.POST("/colors", s.CreateColor)
	g.PUT("/colors/:colorId", s.UpdateColor)
	g.DELETE("/colors/:colorId", s.setActive(commands.ColorKind, "colorId", false))
	g.POST("/colors/:colorId/activate", s.setActive(commands.ColorKind, "colorId", true))
	g.GET("/parts", s.ListParts)
	g.POST("/parts", s.CreatePart)
	g.PUT("/parts/:partId", s.UpdatePart)
	g.DELETE("/parts/:partId", s.setActive(commands.PartKind, "partId", false))
	g.POST("/parts/:partId/activate", s.setActive(commands.PartKind, "partId", true))
	g.GET("/templates", s.ListTemplates)
	g.POST("/templates", s.CreateTemplate)
	g.DELETE("/templates/:templateId", s.setActive(commands.TemplateKind, "templateId", false))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
