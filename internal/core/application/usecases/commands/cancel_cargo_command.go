package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrCancelCargoCommandIsNotConstructed = errors.New(
	"CancelCargoCommand must be created via NewCancelCargoCommand constructor",
)

// CancelCargoCommand asks to cancel a CREATED or PICKED_UP cargo on behalf of its owner.
type CancelCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelCargoCommand(principal user.Principal, cargoID kernel.UUID) (CancelCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate()); err != nil {
		return CancelCargoCommand{}, err
	}

	return CancelCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelCargoCommand) Validate() error {
	return c.guard.Validate(ErrCancelCargoCommandIsNotConstructed)
}

func (c CancelCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c CancelCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}
