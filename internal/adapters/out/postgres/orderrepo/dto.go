// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders and their products are stored in the orders and products tables; the order
// number carries a unique index that also covers archived orders.
package orderrepo

import (
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Version is the optimistic-lock counter.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber  string     `gorm:"size:50;not null;uniqueIndex"`
	CustomerName string     `gorm:"size:200;not null"`
	Platform     string     `gorm:"size:20;not null"`
	Notes        string     `gorm:"type:text"`
	ShipByDate   *time.Time `gorm:"index"`
	IsExpress    bool       `gorm:"not null"`
	IsArchived   bool       `gorm:"not null;index"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
	ShippedAt    *time.Time
	Version      int          `gorm:"not null;default:1"`
	Products     []ProductDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ProductDTO is a product row. Position keeps the order in which products were entered.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	ProductName string    `gorm:"size:200;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts an order aggregate to its database representation.
// Timestamps come from the aggregate.
func fromDomain(o *order.Order) OrderDTO {
	var shipBy *time.Time
	if d := o.ShipByDate(); d != nil {
		utc := d.UTC()
		shipBy = &utc
	}

	products := make([]ProductDTO, 0, len(o.Products()))
	for idx, p := range o.Products() {
		products = append(products, ProductDTO{
			ID:          p.ID().Bytes(),
			OrderID:     o.ID().Bytes(),
			Position:    idx + 1,
			ProductName: p.Name(),
			CreatedAt:   p.CreatedAt(),
			UpdatedAt:   p.UpdatedAt(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		OrderNumber:  o.Number(),
		CustomerName: o.CustomerName(),
		Platform:     o.Platform().String(),
		Notes:        o.Notes(),
		ShipByDate:   shipBy,
		IsExpress:    o.IsExpress(),
		IsArchived:   o.IsArchived(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		ShippedAt:    o.ShippedAt(),
		Version:      o.Version(),
		Products:     products,
	}
}

// toDomain converts a database DTO, with products preloaded, to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.FromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	platform, err := order.ParsePlatform(dto.Platform)
	if err != nil {
		return nil, err
	}

	products := make([]*order.Product, 0, len(dto.Products))
	for _, p := range dto.Products {
		productID, err := kernel.FromGoogle(p.ID)
		if err != nil {
			return nil, err
		}
		product, err := order.RestoreProduct(productID, id, p.ProductName, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	details := order.Details{
		Number:       dto.OrderNumber,
		CustomerName: dto.CustomerName,
		Platform:     platform,
		Notes:        dto.Notes,
		ShipByDate:   dto.ShipByDate,
		IsExpress:    dto.IsExpress,
	}
	return order.RestoreOrder(id, details, dto.IsArchived, dto.CreatedAt, dto.UpdatedAt, dto.ShippedAt, dto.Version, products)
}
