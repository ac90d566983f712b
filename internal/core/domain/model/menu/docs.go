// Package menu holds the MenuItem entity: the read-only catalog reference data that
// orders point at. The order core never mutates menu items; it only reads their live
// unit price at order-creation time and snapshots it onto the order items.
package menu
