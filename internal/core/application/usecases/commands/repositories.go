// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mealdrop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the narrowest composition it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// MerchantRepoFactory provides access to the merchant repository within a transaction.
	MerchantRepoFactory interface {
		MerchantRepository() ports.MerchantRepository
	}

	// LocationRepoFactory provides access to the shipper location repository within a transaction.
	LocationRepoFactory interface {
		ShipperLocationRepository() ports.ShipperLocationRepository
	}

	// OrderUoW manages transactions for order-only operations:
	// status changes, claims, delivery completion, refunds.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions that move both an order and its stock:
	// cancellation with release and the reconciliation sweep.
	StockUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// CheckoutUoW manages the checkout transaction, which touches the
	// merchant, the stock, and the new order in one atomic scope.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		MerchantRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// LocationUoW manages transactions for shipper position reports.
	LocationUoW interface {
		TxManager
		LocationRepoFactory
	}

	// LocationUoWFactory creates new location unit of work instances.
	LocationUoWFactory interface {
		Create() LocationUoW
	}
)
