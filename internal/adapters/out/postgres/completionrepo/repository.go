package completionrepo

import (
	"context"

	"cargo/internal/core/domain/model/completion"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/pgerr"

	"gorm.io/gorm"
)

// GormCompletionRepository is the append-only ledger of delivered cargo. The
// unique index on cargo_id is the last line of defence against a second
// completion for the same cargo.
type GormCompletionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCompletionRepository(db *gorm.DB, tracker aggregateTracker) *GormCompletionRepository {
	return &GormCompletionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCompletionRepository) Exists(ctx context.Context, cargoID kernel.UUID) (bool, error) {
	if err := cargoID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ShipmentCompletionDTO{}).
		Where("cargo_id = ?", cargoID.Bytes()).
		Count(&count).Error; err != nil {
		return false, pgerr.Classify("check completion", err)
	}

	return count > 0, nil
}

func (r *GormCompletionRepository) Append(ctx context.Context, record *completion.ShipmentCompletion) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, cargoUniqueConstraint) {
			return errs.NewAlreadyDeliveredError(record.CargoID().String())
		}
		return pgerr.Classify("append completion", err)
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}
