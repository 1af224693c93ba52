package commands

import (
	"context"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/user"
)

// RemoveCargoCommandHandler hard-deletes a CREATED cargo on behalf of its owner.
// Claimed or finished cargo is history and stays.
type RemoveCargoCommandHandler struct {
	uowFactory CargoUoWFactory
}

func NewRemoveCargoCommandHandler(uowFactory CargoUoWFactory) RemoveCargoCommandHandler {
	return RemoveCargoCommandHandler{uowFactory: uowFactory}
}

func (h RemoveCargoCommandHandler) Handle(ctx context.Context, cmd RemoveCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.RemoveCargo); err != nil {
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

	if err = c.EnsureRemovableBy(cmd.Principal().ID); err != nil {
		return err
	}

	if err = cargoRepo.DeleteInStatus(ctx, c.ID(), cargo.Created); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
