package queries

import (
	"context"
	"errors"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListItemsByStatusQueryIsNotConstructed = errors.New(
	"ListItemsByStatusQuery must be created via NewListItemsByStatusQuery constructor",
)

// ListItemsByStatusQuery is the work queue of one production stage.
//
// Example:
//
//	query, _ := NewListItemsByStatusQuery(item.InQueue)
//	queue, err := NewListItemsByStatusQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, it := range queue {
//	    fmt.Printf("%s %s reprint=%v\n", it.OrderNumber, it.Name, it.NeedsReprint())
//	}
type ListItemsByStatusQuery struct {
	status item.Status

	guard guard.ConstructorGuard
}

func NewListItemsByStatusQuery(status item.Status) (ListItemsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return ListItemsByStatusQuery{}, err
	}
	return ListItemsByStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListItemsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListItemsByStatusQueryIsNotConstructed)
}

func (q ListItemsByStatusQuery) Status() item.Status {
	return q.status
}

// ListItemsByStatusQueryHandler lists the items of open orders at a stage, most
// urgent first.
type ListItemsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewListItemsByStatusQueryHandler(db *gorm.DB) ListItemsByStatusQueryHandler {
	return ListItemsByStatusQueryHandler{db: db}
}

// Handle excludes archived orders. Items of the same order keep creation order.
func (h ListItemsByStatusQueryHandler) Handle(ctx context.Context, query ListItemsByStatusQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadItemViews(ctx, h.db,
		"i.status = ? AND o.is_archived = ?",
		priorityOrder+", i.created_at, i.id",
		int(query.Status()), false,
	)
}
