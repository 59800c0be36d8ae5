// Package order provides the Order aggregate of the print-production workflow
// together with its products and the order numbering rule.
//
// The package includes:
//   - Order: the aggregate root holding customer, platform and shipping details
//   - Product: a line of an order that groups printable items
//   - Platform: the sales channel an order came from
//   - NextNumber: the order number generator contract
//
// Key business rules:
//   - An order has at least one product when it is created
//   - Header fields can be edited only while the order is not archived
//   - Archiving happens exclusively through MarkShipped and is never reverted
//   - Order numbers are unique; generated numbers are the next free integer,
//     zero-padded to three digits
//
// Item production status is owned by the item package; readiness of products and
// orders is derived from item statuses by the domain services.
package order
