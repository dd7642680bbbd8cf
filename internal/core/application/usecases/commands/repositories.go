// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SerializableTxManager additionally starts transactions with
	// serializable isolation. Order placement needs it so concurrent orders
	// against the same product cannot both observe the same pre-decrement
	// stock.
	SerializableTxManager interface {
		TxManager
		BeginSerializable(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// TokenRepoFactory provides access to the refresh token repository within a transaction.
	TokenRepoFactory interface {
		TokenRepository() ports.TokenRepository
	}

	// PlacementUoW manages the order placement transaction. Placement touches
	// every write-side store at once: it inserts the order, debits the buyer,
	// decrements stock and clears purchased cart entries, all-or-nothing.
	PlacementUoW interface {
		SerializableTxManager
		OrderRepoFactory
		ProductRepoFactory
		UserRepoFactory
		CartRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// DeliveryUoW manages transactions for delivery state changes.
	// Completing a delivery credits the merchant, so the user repository
	// rides along with the order repository.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// ProductUoW manages transactions for catalog-only operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// CartUoW manages transactions for cart operations. The product
	// repository is included so cart writes can resolve the referenced
	// product.
	CartUoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// UserUoW manages transactions for account-only operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// AuthUoW manages transactions for credential and refresh token
	// operations.
	AuthUoW interface {
		TxManager
		UserRepoFactory
		TokenRepoFactory
	}

	// AuthUoWFactory creates new auth unit of work instances.
	AuthUoWFactory interface {
		Create() AuthUoW
	}

	// TokenUoW manages transactions for refresh-token-only maintenance.
	TokenUoW interface {
		TxManager
		TokenRepoFactory
	}

	// TokenUoWFactory creates new token unit of work instances.
	TokenUoWFactory interface {
		Create() TokenUoW
	}
)
