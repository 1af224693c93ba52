package user_test

import (
	"testing"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	t.Run("driver with profile", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, " alisher ", "+998901112233", user.RoleDriver,
			user.DriverProfile{VehicleType: "van"}, now)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "alisher", u.Username())
		assert.Equal(t, user.RoleDriver, u.Role())
		assert.Equal(t, user.DriverProfile{VehicleType: "van"}, u.Profile())
		assert.Equal(t, now, u.CreatedAt())
		assert.Equal(t, user.Principal{ID: id, Role: user.RoleDriver}, u.Principal())
	})

	t.Run("distributor without profile", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "acme", "+998901112233", user.RoleDistributor, nil, now)

		require.NoError(t, err)
		assert.Nil(t, u.Profile())
	})

	t.Run("profile must match role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "acme", "+998901112233", user.RoleDistributor,
			user.DriverProfile{VehicleType: "truck"}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "DRIVER profile does not fit role DISTRIBUTOR")
	})

	t.Run("profile content is validated", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "acme", "+998901112233", user.RoleDistributor,
			user.DistributorProfile{TaxID: "12ab"}, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = user.NewUser(kernel.NewUUID(), "bob", "+998901112233", user.RoleDriver,
			user.DriverProfile{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "x", "phone", "ADMIN", nil, now)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		for _, field := range []string{"UUID", "username", "phone", "role"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestUser_ChangeProfile(t *testing.T) {
	newDriver := func(t *testing.T) *user.User {
		t.Helper()
		u, err := user.NewUser(kernel.NewUUID(), "alisher", "+998901112233", user.RoleDriver,
			user.DriverProfile{VehicleType: "van"}, now)
		require.NoError(t, err)
		return u
	}

	t.Run("replaces contact details and profile", func(t *testing.T) {
		u := newDriver(t)

		err := u.ChangeProfile(" alisher2 ", "+998907776655", user.DriverProfile{VehicleType: "truck"})

		require.NoError(t, err)
		assert.Equal(t, "alisher2", u.Username())
		assert.Equal(t, "+998907776655", u.Phone())
		assert.Equal(t, user.DriverProfile{VehicleType: "truck"}, u.Profile())
		assert.Equal(t, user.RoleDriver, u.Role())
		assert.Equal(t, now, u.CreatedAt())
	})

	t.Run("nil profile keeps the current one", func(t *testing.T) {
		u := newDriver(t)

		require.NoError(t, u.ChangeProfile("alisher", "+998907776655", nil))

		assert.Equal(t, user.DriverProfile{VehicleType: "van"}, u.Profile())
	})

	t.Run("profile of another role is rejected", func(t *testing.T) {
		u := newDriver(t)

		err := u.ChangeProfile("alisher", "+998901112233", user.DistributorProfile{TaxID: "123456789"})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "DISTRIBUTOR profile does not fit role DRIVER")
		assert.Equal(t, user.DriverProfile{VehicleType: "van"}, u.Profile())
	})

	t.Run("invalid fields leave the user untouched", func(t *testing.T) {
		u := newDriver(t)

		err := u.ChangeProfile("x", "phone", user.DriverProfile{VehicleType: "truck"})

		require.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "username")
		assert.Contains(t, err.Error(), "phone")
		assert.Equal(t, "alisher", u.Username())
		assert.Equal(t, "+998901112233", u.Phone())
		assert.Equal(t, user.DriverProfile{VehicleType: "van"}, u.Profile())
	})

	t.Run("user not built by a constructor is rejected", func(t *testing.T) {
		var u user.User

		err := u.ChangeProfile("alisher", "+998901112233", nil)

		require.ErrorIs(t, err, user.ErrUserIsNotConstructed)
	})
}

func TestParseRole(t *testing.T) {
	role, err := user.ParseRole("driver")
	require.NoError(t, err)
	assert.Equal(t, user.RoleDriver, role)

	role, err = user.ParseRole(" Distributor")
	require.NoError(t, err)
	assert.Equal(t, user.RoleDistributor, role)

	_, err = user.ParseRole("admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPrincipal_Authorize(t *testing.T) {
	distributor, err := user.NewPrincipal(kernel.NewUUID(), user.RoleDistributor)
	require.NoError(t, err)
	driver, err := user.NewPrincipal(kernel.NewUUID(), user.RoleDriver)
	require.NoError(t, err)

	tests := []struct {
		capability  user.Capability
		distributor bool
		driver      bool
	}{
		{user.CreateCargo, true, false},
		{user.EditCargo, true, false},
		{user.RemoveCargo, true, false},
		{user.CancelCargo, true, false},
		{user.ListOwnCargo, true, true},
		{user.TakeCargo, false, true},
		{user.DeliverCargo, false, true},
		{user.FailCargo, false, true},
		{user.ListAllCargo, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			check := func(p user.Principal, allowed bool) {
				err := p.Authorize(tt.capability)
				if allowed {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, errs.ErrAccessDenied)
				assert.Contains(t, err.Error(), string(tt.capability))
			}

			check(distributor, tt.distributor)
			check(driver, tt.driver)
		})
	}
}

func TestNewPrincipal_Invalid(t *testing.T) {
	_, err := user.NewPrincipal(kernel.UUID{}, user.RoleDriver)
	require.Error(t, err)

	_, err = user.NewPrincipal(kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero user.Principal
	require.ErrorIs(t, zero.Authorize(user.TakeCargo), errs.ErrAccessDenied)
}
