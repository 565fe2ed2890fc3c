// Package catalog holds the merchant-side read models the ordering flow
// depends on: merchants with a pickup location and menu items with tracked
// stock. Stock mutation itself is performed atomically by the inventory
// repository; the aggregates here validate shape and expose the availability
// rule (available means active and stock above zero).
package catalog
