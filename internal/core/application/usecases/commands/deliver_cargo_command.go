package commands

import (
	"errors"
	"strings"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrDeliverCargoCommandIsNotConstructed = errors.New(
	"DeliverCargoCommand must be created via NewDeliverCargoCommand constructor",
)

// DeliverCargoCommand confirms delivery of a taken cargo with the code the
// recipient handed to the driver.
//
// The presented code is kept verbatim; only emptiness is rejected here so that a
// malformed code is reported as a verification failure, not as bad input.
type DeliverCargoCommand struct {
	principal user.Principal
	cargoID   kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

func NewDeliverCargoCommand(principal user.Principal, cargoID kernel.UUID, code string) (DeliverCargoCommand, error) {
	var codeErr error
	if strings.TrimSpace(code) == "" {
		codeErr = errs.NewValueIsRequiredError("verification code")
	}

	if err := errors.Join(principal.Validate(), cargoID.Validate(), codeErr); err != nil {
		return DeliverCargoCommand{}, err
	}

	return DeliverCargoCommand{
		principal: principal,
		cargoID:   cargoID,
		code:      code,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverCargoCommand) Validate() error {
	return c.guard.Validate(ErrDeliverCargoCommandIsNotConstructed)
}

func (c DeliverCargoCommand) Principal() user.Principal {
	return c.principal
}

func (c DeliverCargoCommand) CargoID() kernel.UUID {
	return c.cargoID
}

func (c DeliverCargoCommand) Code() string {
	return c.code
}
