package queries

import (
	"context"
	"errors"
	"time"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
		"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
	)
	ErrListOverdueOrdersQueryIsNotConstructed = errors.New(
		"ListOverdueOrdersQuery must be created via NewListOverdueOrdersQuery constructor",
	)
)

// OrderSummary is an order header with item counts per status.
type OrderSummary struct {
	ID           kernel.UUID
	Number       string
	CustomerName string
	Platform     order.Platform
	IsExpress    bool
	IsArchived   bool
	ShipByDate   *time.Time
	CreatedAt    time.Time
	ItemCount    int
	StatusCounts map[item.Status]int
}

// ProductView is a product with its items.
type ProductView struct {
	ID    kernel.UUID
	Name  string
	Items []ItemView
}

// OrderDetailsView is an order with everything below it.
type OrderDetailsView struct {
	OrderSummary
	Notes     string
	ShippedAt *time.Time
	UpdatedAt time.Time
	Products  []ProductView
}

type orderRow struct {
	ID           uuid.UUID
	OrderNumber  string
	CustomerName string
	Platform     string
	Notes        string
	IsExpress    bool
	IsArchived   bool
	ShipByDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ShippedAt    *time.Time
}

type statusCountRow struct {
	OrderID uuid.UUID
	Status  int
	Total   int
}

const orderColumns = `
	o.id,
	o.order_number,
	o.customer_name,
	o.platform,
	o.notes,
	o.is_express,
	o.is_archived,
	o.ship_by_date,
	o.created_at,
	o.updated_at,
	o.shipped_at`

func (r orderRow) toSummary() (OrderSummary, error) {
	id, err := kernel.FromGoogle(r.ID)
	if err != nil {
		return OrderSummary{}, err
	}
	platform, err := order.ParsePlatform(r.Platform)
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		ID:           id,
		Number:       r.OrderNumber,
		CustomerName: r.CustomerName,
		Platform:     platform,
		IsExpress:    r.IsExpress,
		IsArchived:   r.IsArchived,
		ShipByDate:   r.ShipByDate,
		CreatedAt:    r.CreatedAt,
		StatusCounts: make(map[item.Status]int),
	}, nil
}

// summarize converts rows and attaches per-status item counts.
func summarize(ctx context.Context, db *gorm.DB, rows []orderRow) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0, len(rows))
	if len(rows) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		s, err := row.toSummary()
		if err != nil {
			return nil, err
		}
		index[row.ID] = len(summaries)
		summaries = append(summaries, s)
		ids = append(ids, row.ID)
	}

	var counts []statusCountRow
	err := db.WithContext(ctx).Raw(`
		SELECT p.order_id, i.status, COUNT(*) AS total
		FROM items i
		JOIN products p ON p.id = i.product_id
		WHERE p.order_id IN ?
		GROUP BY p.order_id, i.status
	`, ids).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		s := &summaries[index[c.OrderID]]
		s.StatusCounts[item.Status(c.Status)] = c.Total
		s.ItemCount += c.Total
	}

	return summaries, nil
}

// ListActiveOrdersQueryHandler lists non-archived orders in priority order.
type ListActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListActiveOrdersQueryHandler(db *gorm.DB) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{db: db}
}

func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context) ([]OrderSummary, error) {
	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders o
		WHERE o.is_archived = ?
		ORDER BY `+priorityOrder, false).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return summarize(ctx, h.db, rows)
}

type GetOrderDetailsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderDetailsQueryHandler returns one order, archived or not.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns products in entry order, each with its items in creation order.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetailsView, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailsView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Scan(&rows).Error
	if err != nil {
		return OrderDetailsView{}, err
	}
	if len(rows) == 0 {
		return OrderDetailsView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	summaries, err := summarize(ctx, h.db, rows)
	if err != nil {
		return OrderDetailsView{}, err
	}
	view := OrderDetailsView{
		OrderSummary: summaries[0],
		Notes:        rows[0].Notes,
		ShippedAt:    rows[0].ShippedAt,
		UpdatedAt:    rows[0].UpdatedAt,
	}

	var products []struct {
		ID          uuid.UUID
		ProductName string
	}
	err = h.db.WithContext(ctx).Raw(`
		SELECT p.id, p.product_name
		FROM products p
		WHERE p.order_id = ?
		ORDER BY p.position
	`, query.OrderID().Bytes()).Scan(&products).Error
	if err != nil {
		return OrderDetailsView{}, err
	}

	items, err := loadItemViews(ctx, h.db, "o.id = ?", "p.position, i.created_at, i.id", query.OrderID().Bytes())
	if err != nil {
		return OrderDetailsView{}, err
	}

	byProduct := make(map[kernel.UUID][]ItemView, len(products))
	for _, it := range items {
		byProduct[it.ProductID] = append(byProduct[it.ProductID], it)
	}

	view.Products = make([]ProductView, 0, len(products))
	for _, p := range products {
		id, err := kernel.FromGoogle(p.ID)
		if err != nil {
			return OrderDetailsView{}, err
		}
		view.Products = append(view.Products, ProductView{
			ID:    id,
			Name:  p.ProductName,
			Items: byProduct[id],
		})
	}

	return view, nil
}

type ListOverdueOrdersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewListOverdueOrdersQuery fixes the reference time; only its calendar day matters.
func NewListOverdueOrdersQuery(now time.Time) (ListOverdueOrdersQuery, error) {
	if now.IsZero() {
		return ListOverdueOrdersQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListOverdueOrdersQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueOrdersQueryIsNotConstructed)
}

func (q ListOverdueOrdersQuery) Now() time.Time { return q.now }

// ListOverdueOrdersQueryHandler finds open orders whose ship-by day has passed.
type ListOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOverdueOrdersQueryHandler(db *gorm.DB) ListOverdueOrdersQueryHandler {
	return ListOverdueOrdersQueryHandler{db: db}
}

// Handle compares calendar days in UTC. An order due today is not overdue.
func (h ListOverdueOrdersQueryHandler) Handle(ctx context.Context, query ListOverdueOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders o
		WHERE o.is_archived = ? AND o.ship_by_date IS NOT NULL
		ORDER BY `+priorityOrder, false).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	overdue := rows[:0]
	for _, row := range rows {
		if order.Overdue(row.ShipByDate, row.IsArchived, query.Now()) {
			overdue = append(overdue, row)
		}
	}

	return summarize(ctx, h.db, overdue)
}

// NextOrderNumberQueryHandler proposes the number a new order would get.
type NextOrderNumberQueryHandler struct {
	db *gorm.DB
}

func NewNextOrderNumberQueryHandler(db *gorm.DB) NextOrderNumberQueryHandler {
	return NextOrderNumberQueryHandler{db: db}
}

// Handle considers archived orders too. The result is a suggestion; the unique
// index decides when two orders race for it.
func (h NextOrderNumberQueryHandler) Handle(ctx context.Context) (string, error) {
	var numbers []string
	if err := h.db.WithContext(ctx).Table("orders").Pluck("order_number", &numbers).Error; err != nil {
		return "", err
	}
	return order.NextNumber(numbers), nil
}
