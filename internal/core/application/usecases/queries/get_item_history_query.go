package queries

import (
	"context"
	"errors"
	"time"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetItemHistoryQueryIsNotConstructed = errors.New(
	"GetItemHistoryQuery must be created via NewGetItemHistoryQuery constructor",
)

// GetItemHistoryQuery returns the audit trail of one item.
type GetItemHistoryQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetItemHistoryQuery(itemID kernel.UUID) (GetItemHistoryQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemHistoryQuery{}, err
	}
	return GetItemHistoryQuery{itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetItemHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetItemHistoryQueryIsNotConstructed)
}

func (q GetItemHistoryQuery) ItemID() kernel.UUID {
	return q.itemID
}

// HistoryEntry is one status change. OldStatus is nil on the creation entry.
type HistoryEntry struct {
	Seq       uint64
	OldStatus *item.Status
	NewStatus item.Status
	ChangedAt time.Time
	Reason    string
}

// GetItemHistoryQueryHandler reads status_history.
type GetItemHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetItemHistoryQueryHandler(db *gorm.DB) GetItemHistoryQueryHandler {
	return GetItemHistoryQueryHandler{db: db}
}

// Handle returns entries in the order they were written, or ObjectNotFoundError
// for an unknown item.
func (h GetItemHistoryQueryHandler) Handle(ctx context.Context, query GetItemHistoryQuery) ([]HistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := exists(ctx, h.db, "items", query.ItemID())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("item", query.ItemID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			old_status,
			new_status,
			changed_at,
			reason
		FROM status_history
		WHERE item_id = ?
		ORDER BY seq
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		var oldStatus *int
		var newStatus int

		if err = rows.Scan(&entry.Seq, &oldStatus, &newStatus, &entry.ChangedAt, &entry.Reason); err != nil {
			return nil, err
		}
		if oldStatus != nil {
			s := item.Status(*oldStatus)
			entry.OldStatus = &s
		}
		entry.NewStatus = item.Status(newStatus)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
