// Package services holds the pure domain services of the order lifecycle that do not
// belong to a single aggregate.
//
// The package includes:
//   - PriceSnapshotResolver: resolves menu item references to their unit prices at order time
//   - OrderTotalCalculator: derives an order total from (quantity, unit price) lines
//   - TableOccupancyCoordinator: keeps a table's occupancy in line with its active orders
//
// None of the services touch storage directly. Handlers pass them the rows they locked
// inside the current unit of work.
package services
