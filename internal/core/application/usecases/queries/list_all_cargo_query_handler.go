package queries

import (
	"context"

	"cargo/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// ListAllCargoQueryHandler pages through the whole cargoes table with
// verification codes withheld.
type ListAllCargoQueryHandler struct {
	db *gorm.DB
}

func NewListAllCargoQueryHandler(db *gorm.DB) ListAllCargoQueryHandler {
	return ListAllCargoQueryHandler{db: db}
}

func (h ListAllCargoQueryHandler) Handle(ctx context.Context, query ListAllCargoQuery) (CargoPage, error) {
	if err := query.Validate(); err != nil {
		return CargoPage{}, err
	}
	if err := query.Principal().Authorize(user.ListAllCargo); err != nil {
		return CargoPage{}, err
	}

	return listCargo(ctx, h.db, "TRUE", nil, query.Pagination(), false)
}
