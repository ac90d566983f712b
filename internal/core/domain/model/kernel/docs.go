// Package kernel provides the shared value objects of the restaurant domain.
//
// The package includes:
//   - UUID: identifier value object used by tables, menu items, orders and order items
//   - Money: a non-negative monetary amount with cent precision backed by exact decimals
//
// Both types are immutable; their zero values are invalid and are rejected by Validate,
// so every instance that crosses a package boundary was built through a constructor.
package kernel
