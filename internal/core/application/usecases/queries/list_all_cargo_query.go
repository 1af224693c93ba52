package queries

import (
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrListAllCargoQueryIsNotConstructed = errors.New(
	"ListAllCargoQuery must be created via NewListAllCargoQuery constructor",
)

// ListAllCargoQuery lists every cargo in the store regardless of status. Only
// drivers may run it.
type ListAllCargoQuery struct {
	principal  user.Principal
	pagination Pagination

	guard guard.ConstructorGuard
}

func NewListAllCargoQuery(principal user.Principal, pagination Pagination) (ListAllCargoQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListAllCargoQuery{}, err
	}
	if pagination.isZero() {
		pagination = DefaultPagination()
	}

	return ListAllCargoQuery{
		principal:  principal,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListAllCargoQuery) Validate() error {
	return q.guard.Validate(ErrListAllCargoQueryIsNotConstructed)
}

func (q ListAllCargoQuery) Principal() user.Principal {
	return q.principal
}

func (q ListAllCargoQuery) Pagination() Pagination {
	return q.pagination
}
