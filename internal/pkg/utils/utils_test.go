package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acme Co", "acme-co"},
		{"  Acme   Co  ", "acme-co"},
		{"Café Nero & Co.", "cafe-nero-and-co"},
		{"Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"Amazon.com, Inc.", "amazoncom-inc"},
		{"--Starbucks--", "starbucks"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}

func TestEarthRadius(t *testing.T) {
	r, ok := EarthRadius("")
	assert.True(t, ok)
	assert.Equal(t, EarthRadiusMiles, r)

	r, ok = EarthRadius("KM")
	assert.True(t, ok)
	assert.Equal(t, EarthRadiusKm, r)

	_, ok = EarthRadius("furlong")
	assert.False(t, ok)
}

func TestAngularRadius(t *testing.T) {
	assert.InDelta(t, 10.0/3963.0, AngularRadius(10, EarthRadiusMiles), 1e-12)
}

func TestCentralAngle(t *testing.T) {
	assert.Equal(t, 0.0, CentralAngle(51.5, -0.12, 51.5, -0.12))

	// One degree of latitude along a meridian.
	assert.InDelta(t, math.Pi/180, CentralAngle(10, 20, 11, 20), 1e-9)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(51.5, -0.12))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
}
