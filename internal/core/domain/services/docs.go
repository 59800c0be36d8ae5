// Package services provides domain services that span several aggregates of the
// print-production workflow.
//
// The package includes:
//   - Readiness: derives product and order readiness from item statuses
//   - OrderShipper: ships every item of an order and archives it in one step
//   - ItemComposer: builds new items from catalog references and templates
//
// Readiness is never stored. Products and orders are ready exactly when every one
// of their items sits at the required stage, and an empty set is never ready.
package services
