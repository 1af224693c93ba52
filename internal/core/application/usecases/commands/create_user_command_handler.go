package commands

import (
	"context"

	"cargo/internal/core/domain/model/user"
)

// CreateUserCommandHandler stores a new user and returns the principal it will act as.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	clock      Clock
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory, clock Clock) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		clock:      orSystemClock(clock),
	}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (user.Principal, error) {
	if err := cmd.Validate(); err != nil {
		return user.Principal{}, err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Username(), cmd.Phone(), cmd.Role(), cmd.Profile(), h.clock())
	if err != nil {
		return user.Principal{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return user.Principal{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return user.Principal{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return user.Principal{}, err
	}

	return u.Principal(), nil
}
