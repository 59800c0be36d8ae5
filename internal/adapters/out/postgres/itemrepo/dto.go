// Package itemrepo persists item aggregates: the items row, the color slots, the
// part associations with their reprint flags and the append-only status history.
package itemrepo

import (
	"time"

	"printflow/internal/adapters/out/postgres/catalogrepo"
	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO is the items table. Version is the optimistic-lock counter.
type ItemDTO struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Product   *orderrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ItemName  string                `gorm:"size:200;not null"`
	Status    int                   `gorm:"not null;index"`
	Version   int                   `gorm:"not null"`
	CreatedAt time.Time             `gorm:"not null"`
	UpdatedAt time.Time             `gorm:"not null"`
	Colors    []ItemColorDTO        `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Parts     []ItemPartDTO         `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

func (ItemDTO) TableName() string {
	return "items"
}

// ItemColorDTO places a color on a plate. The composite key keeps color_order
// unique per item.
type ItemColorDTO struct {
	ItemID   uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Position int                   `gorm:"column:color_order;primaryKey;autoIncrement:false"`
	ColorID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Color    *catalogrepo.ColorDTO `gorm:"foreignKey:ColorID;constraint:OnDelete:RESTRICT"`
}

func (ItemColorDTO) TableName() string {
	return "item_colors"
}

// ItemPartDTO attaches a part to an item. NeedsReprint is tracked per part.
type ItemPartDTO struct {
	ItemID       uuid.UUID            `gorm:"type:uuid;primaryKey"`
	PartID       uuid.UUID            `gorm:"type:uuid;primaryKey;index"`
	Part         *catalogrepo.PartDTO `gorm:"foreignKey:PartID;constraint:OnDelete:RESTRICT"`
	Position     int                  `gorm:"not null"`
	Quantity     int                  `gorm:"not null"`
	NeedsReprint bool                 `gorm:"not null"`
}

func (ItemPartDTO) TableName() string {
	return "item_parts"
}

// StatusHistoryDTO is one append-only audit row. Seq orders rows of an item in
// the order they were written.
type StatusHistoryDTO struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Item      *ItemDTO  `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	OldStatus *int
	NewStatus int       `gorm:"not null"`
	ChangedAt time.Time `gorm:"not null"`
	Reason    string    `gorm:"size:500;not null"`
}

func (StatusHistoryDTO) TableName() string {
	return "status_history"
}

// fromDomain converts an item aggregate to its rows. The version is the one read
// from storage; repositories decide the version to write.
func fromDomain(it *item.Item) ItemDTO {
	colors := make([]ItemColorDTO, 0, len(it.Colors()))
	for _, slot := range it.Colors() {
		colors = append(colors, ItemColorDTO{
			ItemID:   it.ID().Bytes(),
			Position: slot.Position,
			ColorID:  slot.ColorID.Bytes(),
		})
	}

	parts := make([]ItemPartDTO, 0, len(it.Parts()))
	for idx, p := range it.Parts() {
		parts = append(parts, ItemPartDTO{
			ItemID:       it.ID().Bytes(),
			PartID:       p.PartID().Bytes(),
			Position:     idx + 1,
			Quantity:     p.Quantity(),
			NeedsReprint: p.NeedsReprint(),
		})
	}

	return ItemDTO{
		ID:        it.ID().Bytes(),
		ProductID: it.ProductID().Bytes(),
		ItemName:  it.Name(),
		Status:    int(it.Status()),
		Version:   it.Version(),
		CreatedAt: it.CreatedAt(),
		UpdatedAt: it.UpdatedAt(),
		Colors:    colors,
		Parts:     parts,
	}
}

// historyFromDomain converts pending status changes to history rows.
func historyFromDomain(itemID kernel.UUID, changes []item.StatusChange) []StatusHistoryDTO {
	rows := make([]StatusHistoryDTO, 0, len(changes))
	for _, change := range changes {
		var oldStatus *int
		if change.From != nil {
			v := int(*change.From)
			oldStatus = &v
		}
		rows = append(rows, StatusHistoryDTO{
			ItemID:    itemID.Bytes(),
			OldStatus: oldStatus,
			NewStatus: int(change.To),
			ChangedAt: change.At,
			Reason:    change.Reason,
		})
	}
	return rows
}

// toDomain rebuilds an item from a DTO with colors and parts preloaded.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.FromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.FromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}

	colors := make([]item.ColorSlot, 0, len(dto.Colors))
	for _, c := range dto.Colors {
		colorID, err := kernel.FromGoogle(c.ColorID)
		if err != nil {
			return nil, err
		}
		colors = append(colors, item.ColorSlot{ColorID: colorID, Position: c.Position})
	}

	parts := make([]*item.Part, 0, len(dto.Parts))
	for _, p := range dto.Parts {
		partID, err := kernel.FromGoogle(p.PartID)
		if err != nil {
			return nil, err
		}
		part, err := item.RestorePart(partID, p.Quantity, p.NeedsReprint)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	return item.RestoreItem(
		id, productID, dto.ItemName, item.Status(dto.Status),
		colors, parts, dto.CreatedAt, dto.UpdatedAt, dto.Version,
	)
}
