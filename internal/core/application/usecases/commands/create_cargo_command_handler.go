package commands

import (
	"context"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/user"
)

// CreateCargoCommandHandler stores a new CREATED cargo owned by the calling distributor.
type CreateCargoCommandHandler struct {
	uowFactory CargoUoWFactory
	clock      Clock
}

func NewCreateCargoCommandHandler(uowFactory CargoUoWFactory, clock Clock) CreateCargoCommandHandler {
	return CreateCargoCommandHandler{
		uowFactory: uowFactory,
		clock:      orSystemClock(clock),
	}
}

func (h CreateCargoCommandHandler) Handle(ctx context.Context, cmd CreateCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.CreateCargo); err != nil {
		return err
	}

	newCargo, err := cargo.NewCargo(cmd.CargoID(), cmd.Principal().ID, cmd.Details(), h.clock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CargoRepository().Add(ctx, newCargo); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
