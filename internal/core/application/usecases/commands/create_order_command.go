package commands

import (
	"errors"
	"fmt"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// NewPart names a catalog part and how many of it an item needs. A zero quantity
// means one.
type NewPart struct {
	PartID   kernel.UUID
	Quantity int
}

// NewItem describes a plate to create. When TemplateID is set and Parts is empty
// the parts are copied from the template.
type NewItem struct {
	Name       string
	ColorIDs   []kernel.UUID
	Parts      []NewPart
	TemplateID *kernel.UUID
}

// NewProduct describes a product and its plates.
type NewProduct struct {
	Name  string
	Items []NewItem
}

// CreateOrderCommand registers an order with its products and items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.Details{
//	    CustomerName: "Ada",
//	    Platform:     order.Etsy,
//	}, []NewProduct{{
//	    Name: "Dragon",
//	    Items: []NewItem{{
//	        Name:       "Dragon body",
//	        ColorIDs:   []kernel.UUID{redID, blackID},
//	        TemplateID: &dragonTemplateID,
//	    }},
//	}})
//
// An empty Number in details is replaced by the next generated order number.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	details  order.Details
	products []NewProduct

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Customer name and notes are
// reduced to plain text. Catalog references are checked by the handler.
func NewCreateOrderCommand(orderID kernel.UUID, details order.Details, products []NewProduct) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDetails(details),
		command.setProducts(products),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Details returns the sanitised header. Number is empty when it is to be generated.
func (c CreateOrderCommand) Details() order.Details {
	details := c.details
	if details.ShipByDate != nil {
		shipBy := *details.ShipByDate
		details.ShipByDate = &shipBy
	}
	return details
}

func (c CreateOrderCommand) Products() []NewProduct {
	return append([]NewProduct(nil), c.products...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	details.CustomerName = plainText(details.CustomerName)
	details.Notes = plainText(details.Notes)
	if details.CustomerName == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	if err := details.Platform.Validate(); err != nil {
		return err
	}
	if details.ShipByDate != nil {
		shipBy := order.DateOf(*details.ShipByDate)
		details.ShipByDate = &shipBy
	}

	c.details = details
	return nil
}

func (c *CreateOrderCommand) setProducts(products []NewProduct) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}

	for pi, product := range products {
		if len(product.Items) == 0 {
			return errs.NewValueIsRequiredErrorWithCause(
				"items",
				fmt.Errorf("product %d %q has no items", pi+1, product.Name),
			)
		}
		for ii, it := range product.Items {
			if len(it.Parts) == 0 && it.TemplateID == nil {
				return errs.NewValueIsRequiredErrorWithCause(
					"parts",
					fmt.Errorf("product %d item %d has neither parts nor a template", pi+1, ii+1),
				)
			}
			for _, p := range it.Parts {
				if p.Quantity < 0 {
					return errs.NewValueIsInvalidErrorWithCause(
						"quantity",
						fmt.Errorf("product %d item %d: quantity %d is negative", pi+1, ii+1, p.Quantity),
					)
				}
			}
		}
	}

	c.products = products
	return nil
}

