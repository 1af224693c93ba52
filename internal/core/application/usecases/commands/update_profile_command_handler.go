package commands

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
)

// UpdateProfileCommandHandler rewrites the caller's profile and returns the
// principal a fresh token is issued for. A username or phone held by another
// user is rejected by the repository.
type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{uowFactory: uowFactory}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (user.Principal, error) {
	if err := cmd.Validate(); err != nil {
		return user.Principal{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return user.Principal{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	u, err := userRepo.Get(ctx, cmd.Principal().ID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return user.Principal{}, errs.NewUnauthenticatedErrorWithCause("user no longer exists", err)
		}
		return user.Principal{}, err
	}

	if u.Role() != cmd.Principal().Role {
		return user.Principal{}, errs.NewUnauthenticatedError("role has changed")
	}

	if err = u.ChangeProfile(cmd.Username(), cmd.Phone(), cmd.Profile()); err != nil {
		return user.Principal{}, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return user.Principal{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return user.Principal{}, err
	}

	return u.Principal(), nil
}
