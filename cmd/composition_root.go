package cmd

import (
	"context"
	"log/slog"
	"time"

	httpapi "printflow/internal/adapters/in/http"
	"printflow/internal/adapters/out/postgres"
	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/jobs"
	"printflow/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	now        func() time.Time
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (c *CompositionRoot) itemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) allUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// Commands

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.allUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.allUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.itemUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateBatchAdvanceCommandHandler() commands.BatchAdvanceCommandHandler {
	return commands.NewBatchAdvanceCommandHandler(c.itemUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateRequestReprintCommandHandler() commands.RequestReprintCommandHandler {
	return commands.NewRequestReprintCommandHandler(c.itemUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateMarkReprintCompleteCommandHandler() commands.MarkReprintCompleteCommandHandler {
	return commands.NewMarkReprintCompleteCommandHandler(c.itemUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateSaveColorCommandHandler() commands.SaveColorCommandHandler {
	return commands.NewSaveColorCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateSavePartCommandHandler() commands.SavePartCommandHandler {
	return commands.NewSavePartCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateTemplateCommandHandler() commands.CreateTemplateCommandHandler {
	return commands.NewCreateTemplateCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateSetActiveCommandHandler() commands.SetActiveCommandHandler {
	return commands.NewSetActiveCommandHandler(c.catalogUoWFactory())
}

// Queries

func (c *CompositionRoot) CreateListItemsByStatusQueryHandler() queries.ListItemsByStatusQueryHandler {
	return queries.NewListItemsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetItemHistoryQueryHandler() queries.GetItemHistoryQueryHandler {
	return queries.NewGetItemHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNextOrderNumberQueryHandler() queries.NextOrderNumberQueryHandler {
	return queries.NewNextOrderNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOverdueOrdersQueryHandler() queries.ListOverdueOrdersQueryHandler {
	return queries.NewListOverdueOrdersQueryHandler(c.gormDB)
}

// Adapters

// CreateEcho wires every handler into the HTTP API.
func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	server := httpapi.NewServer(httpapi.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrderDetails:  c.CreateUpdateOrderDetailsCommandHandler(),
		ShipOrder:           c.CreateShipOrderCommandHandler(),
		AdvanceStatus:       c.CreateAdvanceStatusCommandHandler(),
		BatchAdvance:        c.CreateBatchAdvanceCommandHandler(),
		RequestReprint:      c.CreateRequestReprintCommandHandler(),
		MarkReprintComplete: c.CreateMarkReprintCompleteCommandHandler(),
		SaveColor:           c.CreateSaveColorCommandHandler(),
		SavePart:            c.CreateSavePartCommandHandler(),
		CreateTemplate:      c.CreateCreateTemplateCommandHandler(),
		SetActive:           c.CreateSetActiveCommandHandler(),

		ListItemsByStatus: c.CreateListItemsByStatusQueryHandler(),
		GetItems:          queries.NewGetItemsQueryHandler(c.gormDB),
		GetItemHistory:    c.CreateGetItemHistoryQueryHandler(),
		Readiness:         queries.NewReadinessQueryHandler(c.gormDB),
		ListActiveOrders:  queries.NewListActiveOrdersQueryHandler(c.gormDB),
		GetOrderDetails:   queries.NewGetOrderDetailsQueryHandler(c.gormDB),
		ListOverdueOrders: c.CreateListOverdueOrdersQueryHandler(),
		NextOrderNumber:   c.CreateNextOrderNumberQueryHandler(),
		Catalog:           queries.NewCatalogQueryHandler(c.gormDB),
	}, c.now)

	return httpapi.NewEcho(ctx, server, logging.NewComponentLogger(c.logger, "http"))
}

// CreateJobManager builds the scheduled jobs; none is started yet.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	overdue, err := jobs.NewOverdueOrdersJob(
		c.CreateListOverdueOrdersQueryHandler(),
		c.configs.OverdueReportSchedule,
		c.now,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(overdue), nil
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
