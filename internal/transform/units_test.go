package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetersToFeet(t *testing.T) {
	tests := []struct {
		m    float64
		want int
	}{
		{0, 0},
		{-3, 0},
		{1.5, 5},
		{9, 30},
		{18, 60},
		{24, 80},
		{36, 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MetersToFeet(tt.m), "%v m", tt.m)
	}
}

func TestMetersToFeet_MonotonicMultipleOfFive(t *testing.T) {
	prev := 0
	for i := 0; i <= 2000; i++ {
		ft := MetersToFeet(float64(i) / 10)
		assert.GreaterOrEqual(t, ft, prev, "%d decimeters", i)
		assert.Zero(t, ft%5, "%d decimeters", i)
		assert.GreaterOrEqual(t, ft, 0)
		prev = ft
	}
}

func TestMetersToFeet_LargeInput(t *testing.T) {
	for _, m := range []float64{1e9, 3e18, 1e20, math.MaxFloat64, math.Inf(1)} {
		ft := MetersToFeet(m)
		assert.Equal(t, maxFeet, ft, "%v m", m)
	}
	assert.Equal(t, maxFeet, RoundFeet(math.Inf(1)))
	assert.Zero(t, MetersToFeet(math.Inf(-1)))

	for _, in := range []string{"3000000000000000000 m", "99999999999999999999 m", "99999999999999999999 ft"} {
		ft, ok := ParseDistance(in)
		require.True(t, ok, in)
		assert.Equal(t, maxFeet, ft, in)
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"9 meters", 30},
		{"9 m", 30},
		{"9 metros", 30},
		{"9", 30},
		{"1,5 m", 5},
		{"30 ft", 30},
		{"30 ft.", 30},
		{"30 feet", 30},
		{"30 pies", 30},
		{"32 ft", 30},
		{"1,500 ft", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDistance(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ParseDistance("far away")
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"15", 15},
		{"1.5", 1.5},
		{"1,5", 1.5},
		{"1,500", 1500},
		{"1.500", 1500},
		{"0.125", 0.125},
		{"1.25", 1.25},
		{"1,234,567", 1234567},
		{"1.500.000", 1500000},
		{"1,234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"12,345.6", 12345.6},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		require.True(t, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	_, ok := ParseNumber("abc")
	assert.False(t, ok)
	_, ok = ParseNumber("")
	assert.False(t, ok)
}

func TestParseMovement(t *testing.T) {
	mv := ParseMovement("9 m, climb 6 m, fly 18 m (hover)")
	assert.Equal(t, Movement{Walk: 30, Climb: 20, Fly: 60, Units: "ft", Hover: true}, mv)

	mv = ParseMovement("6 m, nadar 12 m, excavar 3 m")
	assert.Equal(t, 20, mv.Walk)
	assert.Equal(t, 40, mv.Swim)
	assert.Equal(t, 10, mv.Burrow)
	assert.False(t, mv.Hover)
}

func TestMovementSetSpeed(t *testing.T) {
	var mv Movement
	assert.True(t, mv.SetSpeed("walk", "9 meters"))
	assert.True(t, mv.SetSpeed("volar", "18 m (levitar)"))
	assert.False(t, mv.SetSpeed("swim", "none"))

	assert.Equal(t, 30, mv.Walk)
	assert.Equal(t, 60, mv.Fly)
	assert.True(t, mv.Hover)
	assert.Zero(t, mv.Swim)
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2 kg", 4.41},
		{"1,5 kg", 3.31},
		{"3 lb", 3},
		{"3 libras", 3},
		{"1", 2.2},
	}
	for _, tt := range tests {
		got, ok := ParseWeight(tt.in)
		require.True(t, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}
