package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

const (
	maxNumberLength       = 50
	maxCustomerNameLength = 200
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details are the editable header fields of an order.
type Details struct {
	Number       string
	CustomerName string
	Platform     Platform
	Notes        string

	// ShipByDate is a calendar date; the time of day is discarded.
	ShipByDate *time.Time
	IsExpress  bool
}

// Order is a customer order and the aggregate root for its products.
//
// Order follows these invariants:
//   - Must have a valid identifier, a non-blank number and a customer name
//   - Must have at least one product, each belonging to this order
//   - Once archived it is read-only; archiving is done only by MarkShipped
//
// Production status lives on items. An order knows nothing about its items
// except through its products.
type Order struct {
	id kernel.UUID

	// number is unique across all orders, archived ones included
	number string

	customerName string
	platform     Platform
	notes        string
	shipByDate   *time.Time
	isExpress    bool

	// isArchived is set when the order ships and is never cleared
	isArchived bool

	createdAt time.Time
	updatedAt time.Time
	shippedAt *time.Time

	products []*Product

	// version is the optimistic-lock counter of the persisted row; 0 until stored.
	version int

	isConstructed bool
}

// NewOrder creates a new, non-archived order.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - details: header fields; Number must already be resolved (generated or supplied)
//   - products: at least one product built for this order id
//   - now: creation timestamp
//
// Returns:
//   - *Order: the created order
//   - error: all validation failures joined
//
// Example:
//
//	orderID := kernel.NewUUID()
//	product, _ := order.NewProduct(kernel.NewUUID(), orderID, "Dragon", now)
//	o, err := order.NewOrder(orderID, order.Details{
//	    Number:       "008",
//	    CustomerName: "Ada",
//	    Platform:     order.Etsy,
//	}, []*order.Product{product}, now)
func NewOrder(id kernel.UUID, details Details, products []*Product, now time.Time) (*Order, error) {
	o := &Order{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setProducts(id, products),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state.
func RestoreOrder(
	id kernel.UUID,
	details Details,
	isArchived bool,
	createdAt, updatedAt time.Time,
	shippedAt *time.Time,
	version int,
	products []*Product,
) (*Order, error) {
	o := &Order{
		isArchived:    isArchived,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		shippedAt:     shippedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setProducts(id, products),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID       { return o.id }
func (o *Order) Number() string        { return o.number }
func (o *Order) CustomerName() string  { return o.customerName }
func (o *Order) Platform() Platform    { return o.platform }
func (o *Order) Notes() string         { return o.notes }
func (o *Order) IsExpress() bool       { return o.isExpress }
func (o *Order) IsArchived() bool      { return o.isArchived }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }
func (o *Order) ShippedAt() *time.Time { return copyTime(o.shippedAt) }
func (o *Order) Version() int          { return o.version }

// MarkPersisted is called by the repository after a successful write.
func (o *Order) MarkPersisted(version int) {
	o.version = version
}

// ShipByDate returns the promised ship date at midnight UTC, or nil.
func (o *Order) ShipByDate() *time.Time {
	return copyTime(o.shipByDate)
}

// Details returns the current header fields.
func (o *Order) Details() Details {
	return Details{
		Number:       o.number,
		CustomerName: o.customerName,
		Platform:     o.platform,
		Notes:        o.notes,
		ShipByDate:   copyTime(o.shipByDate),
		IsExpress:    o.isExpress,
	}
}

// Products returns the order's products in insertion order.
func (o *Order) Products() []*Product {
	return append([]*Product(nil), o.products...)
}

// Overdue reports whether an open order with the given ship-by date is late on
// the calendar day of now. An order due today is not overdue.
func Overdue(shipByDate *time.Time, isArchived bool, now time.Time) bool {
	if isArchived || shipByDate == nil {
		return false
	}
	return DateOf(*shipByDate).Before(DateOf(now))
}

// UpdateDetails replaces the header fields of a non-archived order.
//
// Returns InvalidTransitionError for archived orders and validation errors for bad
// input; on error the order is unchanged.
func (o *Order) UpdateDetails(details Details, now time.Time) error {
	if o.isArchived {
		return errs.NewInvalidTransitionErrorWithCause(
			"Archived", "Archived",
			fmt.Errorf("order %s is archived and read-only", o.number),
		)
	}

	draft := *o
	if err := draft.setDetails(details); err != nil {
		return err
	}

	o.number = draft.number
	o.customerName = draft.customerName
	o.platform = draft.platform
	o.notes = draft.notes
	o.shipByDate = draft.shipByDate
	o.isExpress = draft.isExpress
	o.updatedAt = now
	return nil
}

// MarkShipped archives the order. Whether every item is packed is checked by the
// caller before the items are shipped; MarkShipped only guards the order itself.
func (o *Order) MarkShipped(now time.Time) error {
	if o.isArchived {
		return errs.NewInvalidTransitionErrorWithCause(
			"Archived", "Archived",
			fmt.Errorf("order %s is already shipped", o.number),
		)
	}
	shippedAt := now
	o.isArchived = true
	o.shippedAt = &shippedAt
	o.updatedAt = now
	return nil
}

// DateOf truncates t to midnight UTC of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(details Details) error {
	number := strings.TrimSpace(details.Number)
	customer := strings.TrimSpace(details.CustomerName)

	var errList []error
	switch {
	case number == "":
		errList = append(errList, errs.NewValueIsRequiredError("order_number"))
	case len(number) > maxNumberLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("order_number length", len(number), 1, maxNumberLength))
	}
	switch {
	case customer == "":
		errList = append(errList, errs.NewValueIsRequiredError("customer_name"))
	case len(customer) > maxCustomerNameLength:
		errList = append(errList, errs.NewValueIsOutOfRangeError("customer_name length", len(customer), 1, maxCustomerNameLength))
	}
	if err := details.Platform.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.number = number
	o.customerName = customer
	o.platform = details.Platform
	o.notes = strings.TrimSpace(details.Notes)
	o.isExpress = details.IsExpress
	o.shipByDate = nil
	if details.ShipByDate != nil {
		date := DateOf(*details.ShipByDate)
		o.shipByDate = &date
	}
	return nil
}

func (o *Order) setProducts(orderID kernel.UUID, products []*Product) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if !p.OrderID().IsEqual(orderID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"products",
				fmt.Errorf("product %s belongs to order %s", p.ID(), p.OrderID()),
			)
		}
	}
	o.products = append([]*Product(nil), products...)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
