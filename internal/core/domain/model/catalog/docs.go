// Package catalog holds the reference data printable items are built from:
// filament colors with their material, printable parts and product templates.
//
// Catalog records are never physically deleted. Deactivated colors, parts and
// templates stay readable for existing items but cannot be attached to new ones.
package catalog
