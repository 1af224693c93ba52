package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{name: "valid location", latitude: 41.311081, longitude: 69.240562},
		{name: "min bounds", latitude: kernel.LatitudeMin, longitude: kernel.LongitudeMin},
		{name: "max bounds", latitude: kernel.LatitudeMax, longitude: kernel.LongitudeMax},
		{name: "latitude too small", latitude: -90.1, longitude: 0, wantErr: true},
		{name: "latitude too large", latitude: 90.1, longitude: 0, wantErr: true},
		{name: "longitude too small", latitude: 0, longitude: -180.5, wantErr: true},
		{name: "longitude too large", latitude: 0, longitude: 180.5, wantErr: true},
		{name: "NaN latitude", latitude: math.NaN(), longitude: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Equal(t, kernel.Location{}, loc)
				return
			}

			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.latitude, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 1e-9)
		})
	}
}

func TestNewLocation_ReportsBothCoordinates(t *testing.T) {
	_, err := kernel.NewLocation(100, 200)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestLocation_Validate(t *testing.T) {
	var zero kernel.Location

	require.ErrorIs(t, zero.Validate(), kernel.ErrLocationIsNotConstructed)
}

func TestLocation_DistanceKm(t *testing.T) {
	// Arrange
	tashkent, _ := kernel.NewLocation(41.2995, 69.2401)
	samarkand, _ := kernel.NewLocation(39.6270, 66.9750)

	// Act
	distance, err := tashkent.DistanceKm(samarkand)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 270, distance, 10)

	self, err := tashkent.DistanceKm(tashkent)
	require.NoError(t, err)
	assert.InDelta(t, 0, self, 1e-9)
}

func TestLocation_String(t *testing.T) {
	loc, _ := kernel.NewLocation(1.5, -2.25)

	assert.Equal(t, "Location(1.500000,-2.250000)", loc.String())
}
