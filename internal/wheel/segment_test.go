package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSegment(t *testing.T) {
	tests := []struct {
		deg  float64
		want Operation
	}{
		{0, Addition},
		{89.9, Division},
		{90, Division},
		{180, Subtraction},
		{270, Multiplication},
		{359.9, Addition},
		{360, Addition},
		{450, Division},
		{-10, Addition},
		{-90, Multiplication},
		{765, Division},
		{45, Division},
		{135, Subtraction},
		{225, Multiplication},
		{315, Addition},
	}

	for _, tt := range tests {
		got := SelectSegment(tt.deg)
		assert.Equalf(t, tt.want, got, "SelectSegment(%v)", tt.deg)
		assert.True(t, got.Valid())
	}
}

func TestSelectSegment_BoundariesAreClosedOpen(t *testing.T) {
	// Adjusted angle n*90 belongs to segment n, just below belongs to n-1.
	for n := 0; n < 4; n++ {
		adjusted := float64(n) * SegmentDegrees
		deg := math.Mod(360-adjusted, 360)
		assert.Equalf(t, n, SegmentIndex(deg), "boundary %v", adjusted)
	}
}

func TestSelectSegment_Pure(t *testing.T) {
	for _, deg := range []float64{12.5, 765, -3600.25, 1e9} {
		first := SelectSegment(deg)
		for range 10 {
			assert.Equal(t, first, SelectSegment(deg))
		}
	}
}

func TestSelectSegment_NonFinite(t *testing.T) {
	assert.Equal(t, Addition, SelectSegment(math.NaN()))
	assert.Equal(t, Addition, SelectSegment(math.Inf(1)))
	assert.Equal(t, Addition, SelectSegment(math.Inf(-1)))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{725, 5},
		{-10, 350},
		{-720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize(tt.in), 1e-9, "Normalize(%v)", tt.in)
	}
}
