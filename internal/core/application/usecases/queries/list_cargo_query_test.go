package queries_test

import (
	"testing"

	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOwnCargoQuery(t *testing.T) {
	principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleDistributor}

	t.Run("zero pagination becomes the default", func(t *testing.T) {
		query, err := queries.NewListOwnCargoQuery(principal, queries.Pagination{})

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, queries.DefaultPagination(), query.Pagination())
	})

	t.Run("invalid principal is rejected", func(t *testing.T) {
		_, err := queries.NewListOwnCargoQuery(user.Principal{}, queries.DefaultPagination())

		require.Error(t, err)
	})

	t.Run("not constructed", func(t *testing.T) {
		err := queries.ListOwnCargoQuery{}.Validate()

		require.ErrorIs(t, err, queries.ErrListOwnCargoQueryIsNotConstructed)
	})
}

func TestNewListAllCargoQuery(t *testing.T) {
	principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleDriver}

	query, err := queries.NewListAllCargoQuery(principal, queries.DefaultPagination())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, principal, query.Principal())

	require.ErrorIs(t, queries.ListAllCargoQuery{}.Validate(), queries.ErrListAllCargoQueryIsNotConstructed)
}
