package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrRemoveCargoCommandIsNotConstructed = errors.New(
	"RemoveCargoCommand must be created via NewRemoveCargoCommand constructor",
)

// RemoveCargoCommand deletes a cargo that was never claimed.
type RemoveCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCargoCommand(principal user.Principal, cargoID kernel.UUID) (RemoveCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate()); err != nil {
		return RemoveCargoCommand{}, err
	}

	return RemoveCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveCargoCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCargoCommandIsNotConstructed)
}

func (c RemoveCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c RemoveCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}
