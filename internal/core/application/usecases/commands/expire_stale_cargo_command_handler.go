package commands

import (
	"context"
	"errors"
	"log/slog"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// ExpireStaleCargoCommandHandler moves one batch of stale CREATED cargo to EXPIRED.
// A cargo taken or removed between the read and the conditional write is skipped.
type ExpireStaleCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      Clock
}

func NewExpireStaleCargoCommandHandler(
	uowFactory CargoUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock Clock,
) ExpireStaleCargoCommandHandler {
	return ExpireStaleCargoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     orDefaultLogger(logger).With("component", "ExpireStaleCargoCommandHandler"),
		clock:      orSystemClock(clock),
	}
}

// Handle returns the number of cargo expired in this run.
func (h ExpireStaleCargoCommandHandler) Handle(ctx context.Context, cmd ExpireStaleCargoCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cargoRepo := uow.CargoRepository()
	now := h.clock()

	stale, err := cargoRepo.GetCreatedBefore(ctx, now.Add(-cmd.TTL()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := make([]*cargo.Cargo, 0, len(stale))
	for _, c := range stale {
		if err = c.Expire(now); err != nil {
			return 0, err
		}

		err = cargoRepo.UpdateFromStatus(ctx, c, cargo.Created)
		if errors.Is(err, errs.ErrInvalidState) {
			h.logger.DebugContext(ctx, "cargo left CREATED before expiring", "cargo_id", c.ID().String())
			continue
		}
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.DebugContext(ctx, "cargo removed before expiring", "cargo_id", c.ID().String())
			continue
		}
		if err != nil {
			return 0, err
		}

		expired = append(expired, c)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, c := range expired {
		publishAfterCommit(ctx, h.publisher, h.logger, ports.CargoExpired, c, "", now)
	}

	return len(expired), nil
}
