package queries

import (
	"context"
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetItemsQueryIsNotConstructed = errors.New(
	"GetItemsQuery must be created via NewGetItemsQuery constructor",
)

// GetItemsQuery reads items by id, archived orders included. Mutation endpoints
// use it to return the state a command left behind.
type GetItemsQuery struct {
	itemIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetItemsQuery(itemIDs ...kernel.UUID) (GetItemsQuery, error) {
	if len(itemIDs) == 0 {
		return GetItemsQuery{}, errs.NewValueIsRequiredError("itemIds")
	}
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return GetItemsQuery{}, errs.NewValueIsInvalidErrorWithCause("itemIds", err)
		}
	}
	return GetItemsQuery{
		itemIDs: append([]kernel.UUID(nil), itemIDs...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetItemsQueryIsNotConstructed)
}

func (q GetItemsQuery) ItemIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.itemIDs...)
}

type GetItemsQueryHandler struct {
	db *gorm.DB
}

func NewGetItemsQueryHandler(db *gorm.DB) GetItemsQueryHandler {
	return GetItemsQueryHandler{db: db}
}

// Handle returns one view per distinct id, in the order the ids were given.
// A missing item is ObjectNotFoundError.
func (h GetItemsQueryHandler) Handle(ctx context.Context, query GetItemsQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(query.itemIDs))
	for _, id := range query.itemIDs {
		ids = append(ids, id.Bytes())
	}

	views, err := loadItemViews(ctx, h.db, "i.id IN ?", "i.created_at, i.id", ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]ItemView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	result := make([]ItemView, 0, len(query.itemIDs))
	seen := make(map[kernel.UUID]struct{}, len(query.itemIDs))
	for _, id := range query.itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		v, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		result = append(result, v)
	}
	return result, nil
}
