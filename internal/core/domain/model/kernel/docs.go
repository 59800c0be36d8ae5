// Package kernel provides the value objects shared by every printflow domain package.
//
// The package includes:
//   - UUID: the identity type for orders, products, items and reference data
//
// Kernel values are immutable and safe for concurrent use.
package kernel
