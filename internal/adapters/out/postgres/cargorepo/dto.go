// Package cargorepo persists cargo aggregates in the cargoes table.
package cargorepo

import (
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CargoDTO is the row shape of the cargoes table.
type CargoDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	DistributorID    uuid.UUID   `gorm:"type:uuid;index"`
	DriverID         *uuid.UUID  `gorm:"type:uuid;index"`
	Description      string      `gorm:"type:text"`
	Pickup           LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff          LocationDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Weight           float64     `gorm:"type:double precision"`
	Height           float64     `gorm:"type:double precision"`
	Size             string      `gorm:"type:varchar(16)"`
	ContactPhone     string      `gorm:"type:varchar(32)"`
	Status           int         `gorm:"type:smallint"`
	VerificationCode *string     `gorm:"type:char(6)"`
	TakingTime       *time.Time  `gorm:"type:timestamptz"`
	DeliveredTime    *time.Time  `gorm:"type:timestamptz"`
	CreatedAt        time.Time   `gorm:"type:timestamptz;autoCreateTime:false"`
	UpdatedAt        time.Time   `gorm:"type:timestamptz;autoUpdateTime:false"`
}

func (CargoDTO) TableName() string {
	return "cargoes"
}

type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(c *cargo.Cargo) CargoDTO {
	var driverID *uuid.UUID
	if id := c.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var code *string
	if vc := c.VerificationCode(); vc != nil {
		s := vc.String()
		code = &s
	}

	details := c.Details()

	return CargoDTO{
		ID:            c.ID().Bytes(),
		DistributorID: c.DistributorID().Bytes(),
		DriverID:      driverID,
		Description:   details.Description,
		Pickup: LocationDTO{
			Latitude:  details.Pickup.Latitude(),
			Longitude: details.Pickup.Longitude(),
		},
		Dropoff: LocationDTO{
			Latitude:  details.Dropoff.Latitude(),
			Longitude: details.Dropoff.Longitude(),
		},
		Weight:           details.Measure.Weight(),
		Height:           details.Measure.Height(),
		Size:             string(details.Measure.Size()),
		ContactPhone:     details.ContactPhone,
		Status:           int(c.Status()),
		VerificationCode: code,
		TakingTime:       c.TakingTime(),
		DeliveredTime:    c.DeliveredTime(),
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}
}

func toDomain(dto CargoDTO) (*cargo.Cargo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	distributorID, err := kernel.UUIDFromBytes(dto.DistributorID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var code *cargo.VerificationCode
	if dto.VerificationCode != nil {
		vc, codeErr := cargo.NewVerificationCode(*dto.VerificationCode)
		if codeErr != nil {
			return nil, codeErr
		}
		code = &vc
	}

	pickup, err := kernel.NewLocation(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewLocation(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	measure, err := cargo.NewMeasure(dto.Weight, dto.Height, cargo.SizeClass(dto.Size))
	if err != nil {
		return nil, err
	}

	return cargo.RestoreCargo(cargo.Snapshot{
		ID:            id,
		DistributorID: distributorID,
		DriverID:      driverID,
		Details: cargo.Details{
			Description:  dto.Description,
			Pickup:       pickup,
			Dropoff:      dropoff,
			Measure:      measure,
			ContactPhone: dto.ContactPhone,
		},
		Status:        cargo.Status(dto.Status),
		Code:          code,
		TakingTime:    dto.TakingTime,
		DeliveredTime: dto.DeliveredTime,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
