package commands

import (
	"context"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/user"
)

// EditCargoCommandHandler applies an edit only while the cargo is CREATED.
//
// The write is conditional on the CREATED status, so a take that commits between
// the read and the write turns the edit into an InvalidStateError instead of
// overwriting a claimed cargo.
type EditCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	clock      Clock
}

func NewEditCargoCommandHandler(uowFactory CargoUoWFactory, clock Clock) EditCargoCommandHandler {
	return EditCargoCommandHandler{
		uowFactory: uowFactory,
		clock:      orSystemClock(clock),
	}
}

func (h EditCargoCommandHandler) Handle(ctx context.Context, cmd EditCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.EditCargo); err != nil {
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

	if err = c.Edit(cmd.Principal().ID, cmd.Details(), h.clock()); err != nil {
		return err
	}

	if err = cargoRepo.UpdateFromStatus(ctx, c, cargo.Created); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
