package commands_test

import (
	"errors"
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCargoCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewCreateCargoCommand(distributorPrincipal(t), id, testDetails(t))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.CargoID().IsEqual(id))
	})

	t.Run("collects all problems", func(t *testing.T) {
		cmd, err := commands.NewCreateCargoCommand(distributorPrincipal(t), kernel.UUID{}, cargo.Details{})

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "pickup location")
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCargoCommandIsNotConstructed)
	})
}

func TestCreateCargoCommandHandler_Handle(t *testing.T) {
	t.Run("stores CREATED cargo owned by caller", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		principal := distributorPrincipal(t)
		cargoID := kernel.NewUUID()
		cmd, err := commands.NewCreateCargoCommand(principal, cargoID, testDetails(t))
		require.NoError(t, err)

		repo := new(MockCargoRepository)
		uow := new(MockUoW)
		factory := new(MockCargoUoWFactory)
		factory.On("Create").Return(uow).Once()

		isNewCargo := mock.MatchedBy(func(c *cargo.Cargo) bool {
			return c.ID().IsEqual(cargoID) &&
				c.DistributorID().IsEqual(principal.ID) &&
				c.Status() == cargo.Created &&
				c.CreatedAt().Equal(fixedNow)
		})

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CargoRepository").Return(repo).Once(),
			repo.On("Add", ctx, isNewCargo).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewCreateCargoCommandHandler(factory, fixedClock)

		// Act
		err = handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		factory.AssertExpectations(t)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("driver is not allowed to create", func(t *testing.T) {
		cmd, err := commands.NewCreateCargoCommand(driverPrincipal(t), kernel.NewUUID(), testDetails(t))
		require.NoError(t, err)
		factory := new(MockCargoUoWFactory)

		err = commands.NewCreateCargoCommandHandler(factory, fixedClock).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("repository failure is returned and rolled back", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateCargoCommand(distributorPrincipal(t), kernel.NewUUID(), testDetails(t))
		storeErr := errors.New("connection reset")

		repo := new(MockCargoRepository)
		uow := new(MockUoW)
		factory := new(MockCargoUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CargoRepository").Return(repo).Once()
		repo.On("Add", ctx, mock.Anything).Return(storeErr).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err := commands.NewCreateCargoCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		require.ErrorIs(t, err, storeErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		err := commands.NewCreateCargoCommandHandler(new(MockCargoUoWFactory), fixedClock).
			Handle(t.Context(), commands.CreateCargoCommand{})

		require.ErrorIs(t, err, commands.ErrCreateCargoCommandIsNotConstructed)
	})
}
