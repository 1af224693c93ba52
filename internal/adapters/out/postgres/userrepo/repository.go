package userrepo

import (
	"context"
	"errors"
	"fmt"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/pgerr"

	"gorm.io/gorm"
)

const (
	usernameUniqueConstraint = "uq_users_username"
	phoneUniqueConstraint    = "uq_users_phone"
)

type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a new user. A taken username or phone is reported as an invalid value.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return classifyWrite("add user", aggregate, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the mutable columns of a stored user. Role and creation time
// never change.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("username", "phone", "vehicle_type", "tax_id").
		Updates(&dto)
	if result.Error != nil {
		return classifyWrite("update user", aggregate, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, pgerr.Classify("get user", err)
	}

	return toDomain(dto)
}

func classifyWrite(op string, aggregate *user.User, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err, usernameUniqueConstraint):
		return errs.NewValueIsInvalidErrorWithCause("username",
			fmt.Errorf("%q is already taken", aggregate.Username()))
	case pgerr.IsUniqueViolation(err, phoneUniqueConstraint):
		return errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q is already registered", aggregate.Phone()))
	default:
		return pgerr.Classify(op, err)
	}
}
