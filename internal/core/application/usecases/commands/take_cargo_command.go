package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrTakeCargoCommandIsNotConstructed = errors.New(
	"TakeCargoCommand must be created via NewTakeCargoCommand constructor",
)

// TakeCargoCommand asks to take a CREATED cargo for the calling driver.
type TakeCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewTakeCargoCommand(principal user.Principal, cargoID kernel.UUID) (TakeCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate()); err != nil {
		return TakeCargoCommand{}, err
	}

	return TakeCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TakeCargoCommand) Validate() error {
	return c.guard.Validate(ErrTakeCargoCommandIsNotConstructed)
}

func (c TakeCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c TakeCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}
