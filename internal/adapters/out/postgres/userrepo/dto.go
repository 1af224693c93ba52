// Package userrepo persists drivers and distributors in a single users table.
// The role column selects which of the profile columns is filled.
package userrepo

import (
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"type:varchar(64);uniqueIndex:uq_users_username"`
	Phone       string    `gorm:"type:varchar(32);uniqueIndex:uq_users_phone"`
	Role        string    `gorm:"type:varchar(16)"`
	VehicleType *string   `gorm:"type:varchar(64)"`
	TaxID       *string   `gorm:"type:varchar(12)"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:        u.ID().Bytes(),
		Username:  u.Username(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}

	switch profile := u.Profile().(type) {
	case user.DriverProfile:
		vehicle := profile.VehicleType
		dto.VehicleType = &vehicle
	case user.DistributorProfile:
		taxID := profile.TaxID
		dto.TaxID = &taxID
	}

	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	var profile user.Profile
	switch role {
	case user.RoleDriver:
		profile = user.DriverProfile{VehicleType: deref(dto.VehicleType)}
	case user.RoleDistributor:
		profile = user.DistributorProfile{TaxID: deref(dto.TaxID)}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("no profile for role %q", dto.Role))
	}

	return user.RestoreUser(id, dto.Username, dto.Phone, role, profile, dto.CreatedAt)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
