// Package order provides the Order aggregate root and its OrderItem entities.
//
// The package includes:
//   - Order: an order placed at a table, owning its items and its snapshotted total
//   - Item: one line of an order with the unit price captured at creation time
//   - Status: the state machine that governs kitchen progress and table release
//
// Key business rules:
//   - Orders are created in Pending status with at least one item
//   - Total always equals the sum of quantity × snapshotted price and never changes
//   - Status moves forward one step at a time: Pending -> Preparing -> Ready -> Served -> Completed
//   - Any active status (Pending, Preparing, Ready) may be Cancelled
//   - Served, Completed and Cancelled are released statuses: they free the table
//     once no other active order remains on it
package order
