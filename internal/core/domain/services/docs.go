// Package services provides domain services that orchestrate business rules
// across multiple aggregates.
//
// The package includes:
//   - OrderRanker: ranks unclaimed orders for a shipper's dispatch feed by
//     distance to the merchant and quotes the delivery fee for each entry.
package services
