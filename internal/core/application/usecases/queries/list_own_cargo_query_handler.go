package queries

import (
	"context"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOwnCargoQueryHandler reads the caller's cargo straight from the cargoes
// table. Distributors see verification codes so they can pass them on to the
// recipient; drivers never do.
type ListOwnCargoQueryHandler struct {
	db *gorm.DB
}

func NewListOwnCargoQueryHandler(db *gorm.DB) ListOwnCargoQueryHandler {
	return ListOwnCargoQueryHandler{db: db}
}

func (h ListOwnCargoQueryHandler) Handle(ctx context.Context, query ListOwnCargoQuery) (CargoPage, error) {
	if err := query.Validate(); err != nil {
		return CargoPage{}, err
	}

	principal := query.Principal()
	if err := principal.Authorize(user.ListOwnCargo); err != nil {
		return CargoPage{}, err
	}

	switch principal.Role {
	case user.RoleDistributor:
		return listCargo(ctx, h.db,
			"c.distributor_id = ?", []any{principal.ID.Bytes()},
			query.Pagination(), true)
	case user.RoleDriver:
		return listCargo(ctx, h.db,
			"c.driver_id = ?", []any{principal.ID.Bytes()},
			query.Pagination(), false)
	default:
		return CargoPage{}, errs.NewAccessDeniedError(principal.String(), string(user.ListOwnCargo))
	}
}
