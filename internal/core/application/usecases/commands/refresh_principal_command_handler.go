package commands

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
)

// RefreshPrincipalCommandHandler confirms that the user behind a principal still
// exists with the same role. A vanished user or a changed role makes the old
// principal unauthenticated.
type RefreshPrincipalCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRefreshPrincipalCommandHandler(uowFactory UserUoWFactory) RefreshPrincipalCommandHandler {
	return RefreshPrincipalCommandHandler{uowFactory: uowFactory}
}

func (h RefreshPrincipalCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshPrincipalCommand,
) (user.Principal, error) {
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

	u, err := uow.UserRepository().Get(ctx, cmd.Principal().ID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return user.Principal{}, errs.NewUnauthenticatedErrorWithCause("user no longer exists", err)
		}
		return user.Principal{}, err
	}

	if u.Role() != cmd.Principal().Role {
		return user.Principal{}, errs.NewUnauthenticatedError("role has changed")
	}

	if err = uow.Commit(ctx); err != nil {
		return user.Principal{}, err
	}

	return u.Principal(), nil
}
