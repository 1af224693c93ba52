package commands

import (
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// UpdateProfileCommand changes the caller's own username, phone and, when given,
// role specific profile.
type UpdateProfileCommand struct {
	principal user.Principal
	username  string
	phone     string
	profile   user.Profile

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(
	principal user.Principal,
	username, phone string,
	profile user.Profile,
) (UpdateProfileCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateProfileCommand{}, err
	}

	return UpdateProfileCommand{
		principal: principal,
		username:  username,
		phone:     phone,
		profile:   profile,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) Principal() user.Principal {
	return c.principal
}

func (c UpdateProfileCommand) Username() string {
	return c.username
}

func (c UpdateProfileCommand) Phone() string {
	return c.phone
}

// Profile is nil when the role specific profile stays as it is.
func (c UpdateProfileCommand) Profile() user.Profile {
	return c.profile
}
