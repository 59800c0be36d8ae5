package order

import (
	"errors"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned for a Product not built by NewProduct or
// RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a line of an order. Its production state is never stored: it is
// derived from the statuses of the items that reference it.
type Product struct {
	id            kernel.UUID
	orderID       kernel.UUID
	name          string
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewProduct creates a product belonging to orderID.
func NewProduct(id, orderID kernel.UUID, name string, now time.Time) (*Product, error) {
	return RestoreProduct(id, orderID, name, now, now)
}

// RestoreProduct rebuilds a product from persisted state.
func RestoreProduct(id, orderID kernel.UUID, name string, createdAt, updatedAt time.Time) (*Product, error) {
	p := &Product{createdAt: createdAt, updatedAt: updatedAt, isConstructed: true}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Join(id.Validate(), orderID.Validate(), errs.NewValueIsRequiredError("product_name"))
	}
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	p.id = id
	p.orderID = orderID
	p.name = name
	return p, nil
}

// Validate ensures the Product was built by a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID      { return p.id }
func (p *Product) OrderID() kernel.UUID { return p.orderID }
func (p *Product) Name() string         { return p.name }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
