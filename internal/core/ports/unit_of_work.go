package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and repositories bound to the active transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction at the store's default
	// isolation level.
	Begin(ctx context.Context) error

	// BeginSerializable starts a new database transaction with serializable
	// isolation. Order placement uses it so concurrent orders against the
	// same product cannot both observe the same pre-decrement stock.
	BeginSerializable(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// ProductRepository returns a ProductRepository bound to the current
	// transaction.
	ProductRepository() ProductRepository

	// UserRepository returns a UserRepository bound to the current
	// transaction.
	UserRepository() UserRepository

	// CartRepository returns a CartRepository bound to the current
	// transaction.
	CartRepository() CartRepository

	// TokenRepository returns a TokenRepository bound to the current
	// transaction.
	TokenRepository() TokenRepository
}
