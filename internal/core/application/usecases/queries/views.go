// Package queries contains read-only operations. Handlers run SQL directly on the
// injected *gorm.DB and return flat views; they never load aggregates and never
// open a unit of work.
package queries

import (
	"context"
	"time"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColorSlotView is a color on a plate.
type ColorSlotView struct {
	Position int
	ColorID  kernel.UUID
	Name     string
	HexCode  string
}

// ItemPartView is a part of a plate with its reprint flag.
type ItemPartView struct {
	PartID       kernel.UUID
	Code         string
	Name         string
	Quantity     int
	NeedsReprint bool
}

// ItemView is an item with enough order context to schedule it.
type ItemView struct {
	ID           kernel.UUID
	Name         string
	Status       item.Status
	ProductID    kernel.UUID
	ProductName  string
	OrderID      kernel.UUID
	OrderNumber  string
	CustomerName string
	IsExpress    bool
	ShipByDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Colors       []ColorSlotView
	Parts        []ItemPartView
}

// NeedsReprint reports whether any part of the item is flagged.
func (v ItemView) NeedsReprint() bool {
	for _, p := range v.Parts {
		if p.NeedsReprint {
			return true
		}
	}
	return false
}

// priorityOrder sorts express orders first, then by ship-by date with undated
// orders last, then by creation time. Expects orders aliased as o.
const priorityOrder = `o.is_express DESC,
		CASE WHEN o.ship_by_date IS NULL THEN 1 ELSE 0 END,
		o.ship_by_date,
		o.created_at`

type itemRow struct {
	ID           uuid.UUID
	ItemName     string
	Status       int
	ProductID    uuid.UUID
	ProductName  string
	OrderID      uuid.UUID
	OrderNumber  string
	CustomerName string
	IsExpress    bool
	ShipByDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type colorRow struct {
	ItemID     uuid.UUID
	ColorOrder int
	ColorID    uuid.UUID
	ColorName  string
	HexCode    string
}

type partRow struct {
	ItemID       uuid.UUID
	PartID       uuid.UUID
	PartCode     string
	PartName     string
	Quantity     int
	NeedsReprint bool
}

// loadItemViews selects items joined with their product and order, filtered by
// where and sorted by orderBy, then attaches colors and parts.
func loadItemViews(ctx context.Context, db *gorm.DB, where, orderBy string, args ...any) ([]ItemView, error) {
	var rows []itemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.item_name,
			i.status,
			p.id AS product_id,
			p.product_name,
			o.id AS order_id,
			o.order_number,
			o.customer_name,
			o.is_express,
			o.ship_by_date,
			i.created_at,
			i.updated_at
		FROM items i
		JOIN products p ON p.id = i.product_id
		JOIN orders o ON o.id = p.order_id
		WHERE `+where+`
		ORDER BY `+orderBy, args...).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		index[row.ID] = len(views)
		views = append(views, view)
		ids = append(ids, row.ID)
	}

	var colors []colorRow
	err = db.WithContext(ctx).Raw(`
		SELECT ic.item_id, ic.color_order, c.id AS color_id, c.color_name, c.hex_code
		FROM item_colors ic
		JOIN colors c ON c.id = ic.color_id
		WHERE ic.item_id IN ?
		ORDER BY ic.item_id, ic.color_order
	`, ids).Scan(&colors).Error
	if err != nil {
		return nil, err
	}
	for _, c := range colors {
		colorID, err := kernel.FromGoogle(c.ColorID)
		if err != nil {
			return nil, err
		}
		v := &views[index[c.ItemID]]
		v.Colors = append(v.Colors, ColorSlotView{
			Position: c.ColorOrder,
			ColorID:  colorID,
			Name:     c.ColorName,
			HexCode:  c.HexCode,
		})
	}

	var parts []partRow
	err = db.WithContext(ctx).Raw(`
		SELECT ip.item_id, ip.part_id, pt.part_code, pt.part_name, ip.quantity, ip.needs_reprint
		FROM item_parts ip
		JOIN parts pt ON pt.id = ip.part_id
		WHERE ip.item_id IN ?
		ORDER BY ip.item_id, ip.position
	`, ids).Scan(&parts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		partID, err := kernel.FromGoogle(p.PartID)
		if err != nil {
			return nil, err
		}
		v := &views[index[p.ItemID]]
		v.Parts = append(v.Parts, ItemPartView{
			PartID:       partID,
			Code:         p.PartCode,
			Name:         p.PartName,
			Quantity:     p.Quantity,
			NeedsReprint: p.NeedsReprint,
		})
	}

	return views, nil
}

func (r itemRow) toView() (ItemView, error) {
	id, err := kernel.FromGoogle(r.ID)
	if err != nil {
		return ItemView{}, err
	}
	productID, err := kernel.FromGoogle(r.ProductID)
	if err != nil {
		return ItemView{}, err
	}
	orderID, err := kernel.FromGoogle(r.OrderID)
	if err != nil {
		return ItemView{}, err
	}
	return ItemView{
		ID:           id,
		Name:         r.ItemName,
		Status:       item.Status(r.Status),
		ProductID:    productID,
		ProductName:  r.ProductName,
		OrderID:      orderID,
		OrderNumber:  r.OrderNumber,
		CustomerName: r.CustomerName,
		IsExpress:    r.IsExpress,
		ShipByDate:   r.ShipByDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

// exists reports whether a row with the given id is in table.
func exists(ctx context.Context, db *gorm.DB, table string, id kernel.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table(table).Where("id = ?", id.Bytes()).Count(&count).Error
	return count > 0, err
}
