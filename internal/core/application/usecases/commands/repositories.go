// Package commands contains the operations that change cargo and user state.
// Every handler validates its command, opens a unit of work, applies the change
// through the aggregate and persists it with a status-conditional write.
package commands

import (
	"context"
	"time"

	"cargo/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CargoRepoFactory interface {
		CargoRepository() ports.CargoRepository
	}

	CompletionRepoFactory interface {
		CompletionRepository() ports.CompletionRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// CargoUoW manages transactions for cargo-only operations.
	CargoUoW interface {
		TxManager
		CargoRepoFactory
	}

	CargoUoWFactory interface {
		Create() CargoUoW
	}

	// DeliveryUoW spans the cargo update and the completion ledger append so
	// both commit or neither does.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CargoRepository().GetForUpdate(ctx, id)
	//   exists, err := uow.CompletionRepository().Exists(ctx, id)
	//   // ... deliver, update, append
	//
	//   err = uow.Commit(ctx)
	DeliveryUoW interface {
		TxManager
		CargoRepoFactory
		CompletionRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)

// Clock returns the current time. Handlers take it as a dependency so tests can
// pin timestamps.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}
