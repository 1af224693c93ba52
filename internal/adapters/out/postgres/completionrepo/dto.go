// Package completionrepo stores the shipment completion ledger.
package completionrepo

import (
	"time"

	"cargo/internal/core/domain/model/completion"

	"github.com/google/uuid"
)

const cargoUniqueConstraint = "uq_shipment_completions_cargo_id"

type ShipmentCompletionDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CargoID       uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_shipment_completions_cargo_id"`
	DistributorID uuid.UUID `gorm:"type:uuid"`
	DriverID      uuid.UUID `gorm:"type:uuid"`
	DeliveredAt   time.Time `gorm:"type:timestamptz"`
}

func (ShipmentCompletionDTO) TableName() string {
	return "shipment_completions"
}

func fromDomain(record *completion.ShipmentCompletion) ShipmentCompletionDTO {
	return ShipmentCompletionDTO{
		ID:            record.ID().Bytes(),
		CargoID:       record.CargoID().Bytes(),
		DistributorID: record.DistributorID().Bytes(),
		DriverID:      record.DriverID().Bytes(),
		DeliveredAt:   record.DeliveredAt(),
	}
}
