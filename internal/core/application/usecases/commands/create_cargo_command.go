package commands

import (
	"errors"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrCreateCargoCommandIsNotConstructed = errors.New(
	"CreateCargoCommand must be created via NewCreateCargoCommand constructor",
)

// CreateCargoCommand posts a new shipment on behalf of a distributor.
//
// Example:
//
//	cmd, err := NewCreateCargoCommand(principal, kernel.NewUUID(), details)
//	if err != nil {
//	    return fmt.Errorf("invalid cargo data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID
	details   cargo.Details

	guard guard.ConstructorGuard
}

// NewCreateCargoCommand validates the caller, the new id and every detail field,
// reporting all problems at once.
func NewCreateCargoCommand(principal user.Principal, cargoID kernel.UUID, details cargo.Details) (CreateCargoCommand, error) {
	if err := errors.Join(principal.Validate(), cargoID.Validate(), details.Validate()); err != nil {
		return CreateCargoCommand{}, err
	}

	return CreateCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCargoCommand) Validate() error {
	return c.guard.Validate(ErrCreateCargoCommandIsNotConstructed)
}

func (c CreateCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c CreateCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}

func (c CreateCargoCommand) Details() cargo.Details {
	return c.details
}
