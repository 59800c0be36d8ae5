package queries

import (
	"context"
	"errors"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/services"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetProductReadinessQueryIsNotConstructed = errors.New(
		"GetProductReadinessQuery must be created via NewGetProductReadinessQuery constructor",
	)
	ErrGetOrderReadinessQueryIsNotConstructed = errors.New(
		"GetOrderReadinessQuery must be created via NewGetOrderReadinessQuery constructor",
	)
)

type GetProductReadinessQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductReadinessQuery(productID kernel.UUID) (GetProductReadinessQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductReadinessQuery{}, err
	}
	return GetProductReadinessQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductReadinessQuery) Validate() error {
	return q.guard.Validate(ErrGetProductReadinessQueryIsNotConstructed)
}

func (q GetProductReadinessQuery) ProductID() kernel.UUID { return q.productID }

// ProductReadiness reports whether a product can be assembled. A product without
// items is never ready.
type ProductReadiness struct {
	ProductID        kernel.UUID
	ItemCount        int
	ReadyForAssembly bool
}

type GetOrderReadinessQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderReadinessQuery(orderID kernel.UUID) (GetOrderReadinessQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderReadinessQuery{}, err
	}
	return GetOrderReadinessQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderReadinessQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderReadinessQueryIsNotConstructed)
}

func (q GetOrderReadinessQuery) OrderID() kernel.UUID { return q.orderID }

// OrderReadiness aggregates the items of every product of an order.
type OrderReadiness struct {
	OrderID     kernel.UUID
	ItemCount   int
	ReadyToPack bool
	ReadyToShip bool
}

// ReadinessQueryHandler answers the readiness questions from item statuses alone,
// with the same rules the ship command applies.
type ReadinessQueryHandler struct {
	db        *gorm.DB
	readiness services.Readiness
}

func NewReadinessQueryHandler(db *gorm.DB) ReadinessQueryHandler {
	return ReadinessQueryHandler{db: db, readiness: services.NewReadiness()}
}

// HandleProduct returns ObjectNotFoundError for an unknown product.
func (h ReadinessQueryHandler) HandleProduct(ctx context.Context, query GetProductReadinessQuery) (ProductReadiness, error) {
	if err := query.Validate(); err != nil {
		return ProductReadiness{}, err
	}

	found, err := exists(ctx, h.db, "products", query.ProductID())
	if err != nil {
		return ProductReadiness{}, err
	}
	if !found {
		return ProductReadiness{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}

	statuses, err := h.statuses(ctx, `
		SELECT i.status FROM items i WHERE i.product_id = ?
	`, query.ProductID())
	if err != nil {
		return ProductReadiness{}, err
	}

	return ProductReadiness{
		ProductID:        query.ProductID(),
		ItemCount:        len(statuses),
		ReadyForAssembly: h.readiness.ProductReadyForAssembly(statuses),
	}, nil
}

// HandleOrder returns ObjectNotFoundError for an unknown order.
func (h ReadinessQueryHandler) HandleOrder(ctx context.Context, query GetOrderReadinessQuery) (OrderReadiness, error) {
	if err := query.Validate(); err != nil {
		return OrderReadiness{}, err
	}

	found, err := exists(ctx, h.db, "orders", query.OrderID())
	if err != nil {
		return OrderReadiness{}, err
	}
	if !found {
		return OrderReadiness{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	statuses, err := h.statuses(ctx, `
		SELECT i.status
		FROM items i
		JOIN products p ON p.id = i.product_id
		WHERE p.order_id = ?
	`, query.OrderID())
	if err != nil {
		return OrderReadiness{}, err
	}

	return OrderReadiness{
		OrderID:     query.OrderID(),
		ItemCount:   len(statuses),
		ReadyToPack: h.readiness.OrderReadyToPack(statuses),
		ReadyToShip: h.readiness.OrderReadyToShip(statuses),
	}, nil
}

func (h ReadinessQueryHandler) statuses(ctx context.Context, sql string, id kernel.UUID) ([]item.Status, error) {
	var raw []int
	if err := h.db.WithContext(ctx).Raw(sql, id.Bytes()).Scan(&raw).Error; err != nil {
		return nil, err
	}
	statuses := make([]item.Status, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, item.Status(s))
	}
	return statuses, nil
}
