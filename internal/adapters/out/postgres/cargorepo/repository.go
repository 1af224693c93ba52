package cargorepo

import (
	"context"
	"errors"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/pgerr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCargoRepository implements ports.CargoRepository using GORM.
type GormCargoRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCargoRepository(db *gorm.DB, tracker aggregateTracker) *GormCargoRepository {
	return &GormCargoRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCargoRepository) Add(ctx context.Context, aggregate *cargo.Cargo) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add cargo", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCargoRepository) Get(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormCargoRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCargoRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*cargo.Cargo, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CargoDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cargo", id.String())
		}
		return nil, pgerr.Classify("get cargo", err)
	}

	return toDomain(dto)
}

// UpdateFromStatus writes every column of the aggregate in a single
// UPDATE ... WHERE id = ? AND status = ?. When another writer has already moved
// the cargo on, no row matches and the caller gets an InvalidStateError.
func (r *GormCargoRepository) UpdateFromStatus(
	ctx context.Context,
	aggregate *cargo.Cargo,
	expected cargo.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CargoDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").
		Omit("id", "distributor_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Classify("update cargo", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.lostRace(ctx, aggregate.ID(), "update")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCargoRepository) DeleteInStatus(ctx context.Context, id kernel.UUID, expected cargo.Status) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Delete(&CargoDTO{})
	if result.Error != nil {
		return pgerr.Classify("delete cargo", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.lostRace(ctx, id, "remove")
	}

	return nil
}

// lostRace explains a conditional write that matched no row: either the cargo
// is gone or its status is no longer the expected one.
func (r *GormCargoRepository) lostRace(ctx context.Context, id kernel.UUID, action string) error {
	var current CargoDTO
	err := r.db.WithContext(ctx).Select("status").First(&current, "id = ?", id.Bytes()).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError("cargo", id.String())
	case err != nil:
		return pgerr.Classify("get cargo status", err)
	}

	return errs.NewInvalidStateError("cargo", cargo.Status(current.Status).String(), action)
}

// GetCreatedBefore returns CREATED cargo older than cutoff, oldest first.
func (r *GormCargoRepository) GetCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*cargo.Cargo, error) {
	if limit <= 0 {
		return []*cargo.Cargo{}, nil
	}

	var dtos []CargoDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", int(cargo.Created), cutoff).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify("get stale cargo", err)
	}

	result := make([]*cargo.Cargo, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, nil
}
