package commands

import (
	"errors"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrEditCargoCommandIsNotConstructed = errors.New(
	"EditCargoCommand must be created via NewEditCargoCommand constructor",
)

// EditCargoCommand replaces the details of a cargo that has not been taken yet.
type EditCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID
	details   cargo.Details

	guard guard.ConstructorGuard
}

func NewEditCargoCommand(principal user.Principal, cargoID kernel.UUID, details cargo.Details) (EditCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate(), details.Validate()); err != nil {
		return EditCargoCommand{}, err
	}

	return EditCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c EditCargoCommand) Validate() error {
	return c.guard.Validate(ErrEditCargoCommandIsNotConstructed)
}

func (c EditCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c EditCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}

func (c EditCargoCommand) Details() cargo.Details {
	return c.details
}
