package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
)

// FailCargoCommandHandler lets the bound driver report a cargo as undeliverable.
type FailCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      Clock
}

func NewFailCargoCommandHandler(
	uowFactory CargoUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock Clock,
) FailCargoCommandHandler {
	return FailCargoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     orDefaultLogger(logger).With("component", "FailCargoCommandHandler"),
		clock:      orSystemClock(clock),
	}
}

func (h FailCargoCommandHandler) Handle(ctx context.Context, cmd FailCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.FailCargo); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cargoRepo := uow.CargoRepository()

	c, err := cargoRepo.Get(ctx, cmd.CargoID())
	if err != nil {
		return err
	}

	now := h.clock()
	if err = c.Fail(cmd.Principal().ID, now); err != nil {
		return err
	}

	if err = cargoRepo.UpdateFromStatus(ctx, c, cargo.PickedUp); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAfterCommit(ctx, h.publisher, h.logger, ports.CargoFailed, c, "", now)
	return nil
}
