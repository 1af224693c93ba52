package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
)

// CancelCargoCommandHandler withdraws a cargo. The write is conditional on the
// status the cargo had when it was read.
type CancelCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      Clock
}

func NewCancelCargoCommandHandler(
	uowFactory CargoUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock Clock,
) CancelCargoCommandHandler {
	return CancelCargoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     orDefaultLogger(logger).With("component", "CancelCargoCommandHandler"),
		clock:      orSystemClock(clock),
	}
}

func (h CancelCargoCommandHandler) Handle(ctx context.Context, cmd CancelCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.CancelCargo); err != nil {
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
	from := c.Status()
	if err = c.Cancel(cmd.Principal().ID, now); err != nil {
		return err
	}

	if err = cargoRepo.UpdateFromStatus(ctx, c, from); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAfterCommit(ctx, h.publisher, h.logger, ports.CargoCancelled, c, "", now)
	return nil
}
