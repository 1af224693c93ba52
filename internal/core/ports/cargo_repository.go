// Package ports defines the contracts between the cargo core and its infrastructure:
// repositories bound to a unit of work and the outbound event publisher.
package ports

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
)

// CargoRepository defines the persistence contract for cargo aggregates.
//
// Every mutation is conditional on the stored status so that two concurrent
// writers cannot both win: the loser observes zero affected rows and gets an
// errs.InvalidStateError.
type CargoRepository interface {
	// Add persists a new cargo.
	Add(ctx context.Context, aggregate *cargo.Cargo) error

	// Get loads a cargo by id. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error)

	// GetForUpdate loads a cargo and locks its row until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error)

	// UpdateFromStatus writes the aggregate only if the stored status still equals
	// expected. Zero affected rows yields errs.InvalidStateError.
	UpdateFromStatus(ctx context.Context, aggregate *cargo.Cargo, expected cargo.Status) error

	// DeleteInStatus removes the cargo only if the stored status equals expected.
	DeleteInStatus(ctx context.Context, id kernel.UUID, expected cargo.Status) error

	// GetCreatedBefore returns up to limit CREATED cargo created before cutoff,
	// oldest first.
	GetCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*cargo.Cargo, error)
}
