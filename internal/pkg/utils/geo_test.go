package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trip-planner-service/internal/pkg/utils"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		d := utils.HaversineDistance(31.6295, -7.9811, 31.6295, -7.9811)
		assert.Equal(t, 0.0, d)
	})

	t.Run("marrakech to casablanca", func(t *testing.T) {
		// Примерно 240 км по прямой
		d := utils.HaversineDistance(31.6295, -7.9811, 33.5731, -7.5898)
		assert.InDelta(t, 219, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineDistance(31.6295, -7.9811, 35.7595, -5.8340)
		d2 := utils.HaversineDistance(35.7595, -5.8340, 31.6295, -7.9811)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("antipodal points near half circumference", func(t *testing.T) {
		d := utils.HaversineDistance(0, 0, 0, 180)
		assert.InDelta(t, 20015, d, 10)
	})
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lon   float64
		valid bool
	}{
		{"valid morocco", 31.63, -8.0, true},
		{"boundary north pole", 90, 0, true},
		{"boundary date line", 0, -180, true},
		{"latitude too high", 90.001, 0, false},
		{"latitude too low", -90.001, 0, false},
		{"longitude too high", 0, 180.001, false},
		{"longitude too low", 0, -180.001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, utils.ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}
