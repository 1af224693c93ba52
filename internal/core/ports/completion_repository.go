package ports

import (
	"context"

	"cargo/internal/core/domain/model/completion"
	"cargo/internal/core/domain/model/kernel"
)

// CompletionRepository is the append-only shipment completion ledger.
type CompletionRepository interface {
	// Exists reports whether a completion record was already appended for cargoID.
	Exists(ctx context.Context, cargoID kernel.UUID) (bool, error)

	// Append stores a record. A second record for the same cargo fails with
	// errs.AlreadyDeliveredError.
	Append(ctx context.Context, record *completion.ShipmentCompletion) error
}
