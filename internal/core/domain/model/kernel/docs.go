// Package kernel contains shared value objects used across aggregates:
// validated identifiers (UUID) and geographic coordinates (GeoPoint) with
// great-circle distance computation.
package kernel
