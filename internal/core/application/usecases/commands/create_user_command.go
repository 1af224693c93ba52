package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers a driver or a distributor.
type CreateUserCommand struct {
	userID   kernel.UUID
	username string
	phone    string
	role     user.Role
	profile  user.Profile

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(
	userID kernel.UUID,
	username, phone string,
	role user.Role,
	profile user.Profile,
) (CreateUserCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return CreateUserCommand{}, err
	}

	return CreateUserCommand{
		userID:   userID,
		username: username,
		phone:    phone,
		role:     role,
		profile:  profile,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateUserCommand) Username() string {
	return c.username
}

func (c CreateUserCommand) Phone() string {
	return c.phone
}

func (c CreateUserCommand) Role() user.Role {
	return c.role
}

func (c CreateUserCommand) Profile() user.Profile {
	return c.profile
}
