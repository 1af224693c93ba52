package commands_test

import (
	"testing"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func distributorPrincipal(t *testing.T) user.Principal {
	t.Helper()

	p, err := user.NewPrincipal(kernel.NewUUID(), user.RoleDistributor)
	require.NoError(t, err)
	return p
}

func driverPrincipal(t *testing.T) user.Principal {
	t.Helper()

	p, err := user.NewPrincipal(kernel.NewUUID(), user.RoleDriver)
	require.NoError(t, err)
	return p
}

func testDetails(t *testing.T) cargo.Details {
	t.Helper()

	pickup, err := kernel.NewLocation(41.2995, 69.2401)
	require.NoError(t, err)
	dropoff, err := kernel.NewLocation(39.6270, 66.9750)
	require.NoError(t, err)
	measure, err := cargo.NewMeasure(80, 1.1, cargo.SizeMedium)
	require.NoError(t, err)

	return cargo.Details{
		Description:  "boxes of books",
		Pickup:       pickup,
		Dropoff:      dropoff,
		Measure:      measure,
		ContactPhone: "+998901234567",
	}
}

func createdCargo(t *testing.T, ownerID kernel.UUID) *cargo.Cargo {
	t.Helper()

	c, err := cargo.NewCargo(kernel.NewUUID(), ownerID, testDetails(t), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return c
}

func pickedUpCargo(t *testing.T, ownerID, driverID kernel.UUID, code string) *cargo.Cargo {
	t.Helper()

	c := createdCargo(t, ownerID)
	require.NoError(t, c.Take(driverID, mustCode(t, code), fixedNow.Add(-30*time.Minute)))
	return c
}

func mustCode(t *testing.T, value string) cargo.VerificationCode {
	t.Helper()

	code, err := cargo.NewVerificationCode(value)
	require.NoError(t, err)
	return code
}
