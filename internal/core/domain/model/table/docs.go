// Package table provides the Table entity: a physical table in the dining room that
// hosts orders.
//
// Key business rules:
//   - A table is Occupied exactly when it hosts at least one active order
//   - Occupancy is changed only through Occupy and Release, which also move UpdatedAt
//   - Rows are created by the table registry; the order core only flips occupancy
package table
