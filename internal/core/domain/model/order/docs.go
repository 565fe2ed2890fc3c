// Package order implements the Order aggregate root of the lifecycle and
// dispatch core.
//
// The package includes:
//   - Order: the aggregate managing identity, lines, totals, and lifecycle
//   - Status: a state machine over the order workflow
//   - Role: the actor roles whose authorization is an explicit
//     role-by-transition table, kept separate from the legal-transition graph
//     so each is testable on its own
//   - Line: an immutable snapshot of a menu item at checkout time
//
// Key business rules:
//   - PENDING and READY_FOR_PICKUP orders with no shipper may be claimed; a
//     claim atomically assigns the shipper and moves the order to DELIVERING
//   - DELIVERED and CANCELED are terminal
//   - canceling from PENDING or CONFIRMED releases the reserved stock exactly
//     once, and flips a PAID order to REFUNDED
//   - line snapshots never change after checkout, even if the referenced menu
//     item is edited or deleted later
package order
