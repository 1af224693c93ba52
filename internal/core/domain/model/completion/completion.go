// Package completion holds the shipment completion ledger record: proof that a
// cargo was delivered by a driver for a distributor. Records are append only and
// exist at most once per cargo, so their presence is the authoritative
// "already delivered" signal.
package completion

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrCompletionIsNotConstructed = errs.NewValueIsRequiredError("completion must be created via NewShipmentCompletion")

type ShipmentCompletion struct {
	id            kernel.UUID
	cargoID       kernel.UUID
	distributorID kernel.UUID
	driverID      kernel.UUID
	deliveredAt   time.Time

	guard guard.ConstructorGuard
}

// FromDeliveredCargo builds the ledger record for a cargo that has just been delivered.
func FromDeliveredCargo(id kernel.UUID, c *cargo.Cargo) (*ShipmentCompletion, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Status() != cargo.Delivered {
		return nil, errs.NewInvalidStateError("cargo", c.Status().String(), "record completion of")
	}

	driverID := c.DriverID()
	deliveredAt := c.DeliveredTime()
	if driverID == nil || deliveredAt == nil {
		return nil, errs.NewValueIsRequiredError("driver and delivered time")
	}

	return NewShipmentCompletion(id, c.ID(), c.DistributorID(), *driverID, *deliveredAt)
}

func NewShipmentCompletion(
	id, cargoID, distributorID, driverID kernel.UUID,
	deliveredAt time.Time,
) (*ShipmentCompletion, error) {
	var timeErr error
	if deliveredAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("delivered at")
	}

	if err := errors.Join(
		id.Validate(),
		requiredID("cargo", cargoID),
		requiredID("distributor", distributorID),
		requiredID("driver", driverID),
		timeErr,
	); err != nil {
		return nil, err
	}

	return &ShipmentCompletion{
		id:            id,
		cargoID:       cargoID,
		distributorID: distributorID,
		driverID:      driverID,
		deliveredAt:   deliveredAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func (s *ShipmentCompletion) Validate() error {
	if s == nil {
		return ErrCompletionIsNotConstructed
	}
	return s.guard.Validate(ErrCompletionIsNotConstructed)
}

func (s *ShipmentCompletion) ID() kernel.UUID            { return s.id }
func (s *ShipmentCompletion) CargoID() kernel.UUID       { return s.cargoID }
func (s *ShipmentCompletion) DistributorID() kernel.UUID { return s.distributorID }
func (s *ShipmentCompletion) DriverID() kernel.UUID      { return s.driverID }
func (s *ShipmentCompletion) DeliveredAt() time.Time     { return s.deliveredAt }
