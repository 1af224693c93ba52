package commands

import (
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrRefreshPrincipalCommandIsNotConstructed = errors.New(
	"RefreshPrincipalCommand must be created via NewRefreshPrincipalCommand constructor",
)

// RefreshPrincipalCommand re-reads the user behind a still valid principal so a
// new token can be issued for it.
type RefreshPrincipalCommand struct {
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewRefreshPrincipalCommand(principal user.Principal) (RefreshPrincipalCommand, error) {
	if err := principal.Validate(); err != nil {
		return RefreshPrincipalCommand{}, err
	}

	return RefreshPrincipalCommand{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshPrincipalCommand) Validate() error {
	return c.guard.Validate(ErrRefreshPrincipalCommandIsNotConstructed)
}

func (c RefreshPrincipalCommand) Principal() user.Principal {
	return c.principal
}
