package queries

import (
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrListOwnCargoQueryIsNotConstructed = errors.New(
	"ListOwnCargoQuery must be created via NewListOwnCargoQuery constructor",
)

// ListOwnCargoQuery lists the cargo of the caller. For a distributor that is
// the cargo it created, for a driver the cargo it is bound to.
//
// Example:
//
//	pagination, err := NewPagination(0, 20, "created_at")
//	if err != nil {
//	    return err
//	}
//	query, err := NewListOwnCargoQuery(principal, pagination)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOwnCargoQuery struct {
	principal  user.Principal
	pagination Pagination

	guard guard.ConstructorGuard
}

// NewListOwnCargoQuery falls back to DefaultPagination for a zero Pagination.
func NewListOwnCargoQuery(principal user.Principal, pagination Pagination) (ListOwnCargoQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOwnCargoQuery{}, err
	}
	if pagination.isZero() {
		pagination = DefaultPagination()
	}

	return ListOwnCargoQuery{
		principal:  principal,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOwnCargoQuery) Validate() error {
	return q.guard.Validate(ErrListOwnCargoQueryIsNotConstructed)
}

func (q ListOwnCargoQuery) Principal() user.Principal {
	return q.principal
}

func (q ListOwnCargoQuery) Pagination() Pagination {
	return q.pagination
}
