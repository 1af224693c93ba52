package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
)

// TakeCargoCommandHandler claims a CREATED cargo for the calling driver.
//
// The claim is persisted with UPDATE ... WHERE status = CREATED. When several
// drivers race for the same cargo exactly one update affects a row; every other
// attempt fails with an InvalidStateError. The fresh verification code is never
// returned to the driver: it leaves the service in the cargo.taken event
// addressed to the distributor.
type TakeCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	codes      cargo.CodeGenerator
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      Clock
}

func NewTakeCargoCommandHandler(
	uowFactory CargoUoWFactory,
	codes cargo.CodeGenerator,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock Clock,
) TakeCargoCommandHandler {
	return TakeCargoCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		publisher:  publisher,
		logger:     orDefaultLogger(logger).With("component", "TakeCargoCommandHandler"),
		clock:      orSystemClock(clock),
	}
}

func (h TakeCargoCommandHandler) Handle(ctx context.Context, cmd TakeCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.TakeCargo); err != nil {
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

	if _, err = c.Status().Take(); err != nil {
		return err
	}

	code, err := h.codes.Generate()
	if err != nil {
		return err
	}

	now := h.clock()
	if err = c.Take(cmd.Principal().ID, code, now); err != nil {
		return err
	}

	if err = cargoRepo.UpdateFromStatus(ctx, c, cargo.Created); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "cargo taken",
		"cargo_id", c.ID().String(),
		"driver_id", cmd.Principal().ID.String(),
	)
	publishAfterCommit(ctx, h.publisher, h.logger, ports.CargoTaken, c, code.String(), now)
	return nil
}
