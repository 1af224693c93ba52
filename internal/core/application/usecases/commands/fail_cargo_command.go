package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrFailCargoCommandIsNotConstructed = errors.New(
	"FailCargoCommand must be created via NewFailCargoCommand constructor",
)

// FailCargoCommand asks to fail a PICKED_UP cargo the bound driver could not deliver.
type FailCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewFailCargoCommand(principal user.Principal, cargoID kernel.UUID) (FailCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate()); err != nil {
		return FailCargoCommand{}, err
	}

	return FailCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FailCargoCommand) Validate() error {
	return c.guard.Validate(ErrFailCargoCommandIsNotConstructed)
}

func (c FailCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c FailCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}
