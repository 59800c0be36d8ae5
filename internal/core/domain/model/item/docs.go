// Package item provides the Item aggregate: a printable plate and the unit that
// carries production status in printflow.
//
// The package includes:
//   - Status: the ranked production stages and their transition rules
//   - Item: the aggregate root with colors, parts and a pending audit log
//   - ReprintScope: the closed set of reprint variants (EntireItem, PartSet)
//
// Key business rules:
//   - Items start at InQueue and move forward one stage at a time up to Shipped
//   - A reprint sends an item at InPrintfarm, Printed, Assembled or Packed back to InQueue
//   - Every status change yields exactly one audit entry with the prior status
//   - Reprint flags are kept per part and cleared explicitly once reprinted
package item
