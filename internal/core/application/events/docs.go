// Package events defines the notifications published after a committed change to orders,
// tables or statistics, and the JSON views they carry.
//
// Event kinds:
//   - order.created        {order, items}
//   - order.statusUpdated  {order (with items), previousStatus}
//   - table.statusUpdated  {table}
//   - statistics.updated   {snapshot}
//
// Events are only built from committed aggregates. Publishers must never be handed an
// event before the owning transaction commits.
package events
