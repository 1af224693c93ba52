package commands_test

import (
	"errors"
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTakeCargoCommandHandler_Handle(t *testing.T) {
	t.Run("binds driver, persists conditionally, then publishes the code", func(t *testing.T) {
		// Given
		ctx := t.Context()
		driver := driverPrincipal(t)
		stored := createdCargo(t, kernel.NewUUID())
		code := mustCode(t, "483920")

		repo := new(MockCargoRepository)
		uow := new(MockUoW)
		factory := new(MockCargoUoWFactory)
		codes := new(MockCodeGenerator)
		publisher := new(MockEventPublisher)
		factory.On("Create").Return(uow).Once()

		isTakenEvent := mock.MatchedBy(func(e ports.CargoEvent) bool {
			return e.Type == ports.CargoTaken &&
				e.CargoID.IsEqual(stored.ID()) &&
				e.DistributorID.IsEqual(stored.DistributorID()) &&
				e.DriverID != nil && e.DriverID.IsEqual(driver.ID) &&
				e.Code == "483920" &&
				e.OccurredAt.Equal(fixedNow)
		})

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CargoRepository").Return(repo).Once(),
			repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
			codes.On("Generate").Return(code, nil).Once(),
			repo.On("UpdateFromStatus", ctx, stored, cargo.Created).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			publisher.On("Publish", mock.Anything, isTakenEvent).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewTakeCargoCommand(driver, stored.ID())
		require.NoError(t, err)

		// When
		err = commands.NewTakeCargoCommandHandler(factory, codes, publisher, nil, fixedClock).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, cargo.PickedUp, stored.Status())
		assert.True(t, stored.DriverID().IsEqual(driver.ID))
		assert.Equal(t, fixedNow, *stored.TakingTime())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("already taken cargo fails before a code is generated", func(t *testing.T) {
		stored := pickedUpCargo(t, kernel.NewUUID(), kernel.NewUUID(), "111111")
		factory, uow, _ := editSetup(t, stored)
		codes := new(MockCodeGenerator)
		publisher := new(MockEventPublisher)

		cmd, _ := commands.NewTakeCargoCommand(driverPrincipal(t), stored.ID())
		err := commands.NewTakeCargoCommandHandler(factory, codes, publisher, nil, fixedClock).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		codes.AssertNotCalled(t, "Generate")
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("losing the conditional write is InvalidState and nothing is published", func(t *testing.T) {
		stored := createdCargo(t, kernel.NewUUID())
		factory, uow, repo := editSetup(t, stored)
		codes := new(MockCodeGenerator)
		codes.On("Generate").Return(mustCode(t, "222222"), nil).Once()
		repo.On("UpdateFromStatus", mock.Anything, stored, cargo.Created).
			Return(errs.NewInvalidStateError("cargo", "PICKED_UP", "update")).Once()
		publisher := new(MockEventPublisher)

		cmd, _ := commands.NewTakeCargoCommand(driverPrincipal(t), stored.ID())
		err := commands.NewTakeCargoCommandHandler(factory, codes, publisher, nil, fixedClock).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the committed take", func(t *testing.T) {
		stored := createdCargo(t, kernel.NewUUID())
		factory, uow, repo := editSetup(t, stored)
		codes := new(MockCodeGenerator)
		codes.On("Generate").Return(mustCode(t, "333333"), nil).Once()
		repo.On("UpdateFromStatus", mock.Anything, stored, cargo.Created).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		cmd, _ := commands.NewTakeCargoCommand(driverPrincipal(t), stored.ID())
		err := commands.NewTakeCargoCommandHandler(factory, codes, publisher, nil, fixedClock).Handle(t.Context(), cmd)

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("missing cargo is NotFound", func(t *testing.T) {
		factory, _, repo := editSetup(t, nil)
		id := kernel.NewUUID()
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("cargo", id)).Once()

		cmd, _ := commands.NewTakeCargoCommand(driverPrincipal(t), id)
		err := commands.NewTakeCargoCommandHandler(factory, new(MockCodeGenerator), nil, nil, fixedClock).
			Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("distributor cannot take", func(t *testing.T) {
		factory := new(MockCargoUoWFactory)

		cmd, _ := commands.NewTakeCargoCommand(distributorPrincipal(t), kernel.NewUUID())
		err := commands.NewTakeCargoCommandHandler(factory, new(MockCodeGenerator), nil, nil, fixedClock).
			Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})
}
