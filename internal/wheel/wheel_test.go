package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-720, 0},
		{359.5, 359.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Normalize(tc.in), 1e-12, "Normalize(%v)", tc.in)
	}
}

func TestSeparationAndSignedDelta(t *testing.T) {
	assert.InDelta(t, 20, Separation(350, 10), 1e-12)
	assert.InDelta(t, 180, Separation(0, 180), 1e-12)
	assert.InDelta(t, 90, Separation(-45, 45), 1e-12)

	assert.InDelta(t, 20, SignedDelta(350, 10), 1e-12)
	assert.InDelta(t, -20, SignedDelta(10, 350), 1e-12)
	assert.InDelta(t, -180, SignedDelta(0, 180), 1e-12)
}

func TestBuiltinWheelsValidate(t *testing.T) {
	for _, c := range []Config{Zodiac, Gates, Nakshatras} {
		require.NoError(t, c.Validate(), c.Name)
	}
}

func TestValidateRejectsDuplicateOrder(t *testing.T) {
	c := Config{Name: "bad", Units: 3, SubUnits: 1, Order: []int{1, 1, 2}}
	assert.Error(t, c.Validate())
}

func TestMapZodiac(t *testing.T) {
	a := Map(280.381, Zodiac)
	assert.Equal(t, 9, a.Index)
	assert.Equal(t, "Capricorn", Zodiac.Label(a.Index))
	assert.Equal(t, 11, a.SubUnit)
	assert.InDelta(t, 10.381, a.Degree, 1e-9)

	neg := Map(-10, Zodiac)
	assert.Equal(t, 11, neg.Index)
	assert.InDelta(t, 350, neg.Longitude, 1e-12)
}

func TestMapGates(t *testing.T) {
	cases := []struct {
		lon  float64
		gate int
		line int
	}{
		{0, 25, 2},       // 1.75° into gate 25
		{358.25, 25, 1},  // gate 25 opens at the wheel offset
		{19.272, 51, 5},  // 15.125–20.75 is gate 51
		{291.27, 61, 1},  // design Sun of the 1948 reference chart
		{280.381, 38, 1}, // Sun on 2000-01-01
		{302.0, 41, 1},   // 2° Aquarius opens gate 41
		{357.9, 36, 6},   // last gate before the seam
		{199.272, 57, 5}, // Earth of the 1948 reference chart
	}
	for _, tc := range cases {
		a := Map(tc.lon, Gates)
		assert.Equal(t, tc.gate, a.Unit, "gate at %v", tc.lon)
		assert.Equal(t, tc.line, a.SubUnit, "line at %v", tc.lon)
	}
}

func TestMapBoundariesResolveForward(t *testing.T) {
	for _, c := range []Config{Zodiac, Gates, Nakshatras} {
		w := c.Width()
		for k := 0; k < c.Units; k++ {
			lon := c.Offset + float64(k)*w
			a := Map(lon, c)
			assert.Equal(t, k, a.Index, "%s seam %d", c.Name, k)
			assert.Equal(t, 1, a.SubUnit, "%s seam %d", c.Name, k)
		}
	}
}

func TestMapRangesHold(t *testing.T) {
	for _, c := range []Config{Zodiac, Gates, Nakshatras} {
		for lon := -720.0; lon < 720; lon += 0.0371 {
			a := Map(lon, c)
			require.GreaterOrEqual(t, a.Index, 0)
			require.Less(t, a.Index, c.Units)
			require.GreaterOrEqual(t, a.SubUnit, 1)
			require.LessOrEqual(t, a.SubUnit, c.SubUnits)
			require.GreaterOrEqual(t, a.Degree, 0.0)
			require.Less(t, a.Degree, c.Width()+1e-9)
		}
	}
}

func TestMapTopOfUnitClampsSubUnit(t *testing.T) {
	lon := Gates.Offset + Gates.Width() - 1e-12
	a := Map(lon, Gates)
	assert.LessOrEqual(t, a.SubUnit, 6)
	assert.False(t, math.IsNaN(a.Degree))
}

func TestGateWheelHelpers(t *testing.T) {
	start, ok := Gates.Start(41)
	require.True(t, ok)
	assert.InDelta(t, 302.0, start, 1e-9)

	_, ok = Gates.Start(65)
	assert.False(t, ok)

	assert.Equal(t, 2, Gates.Opposite(1))
	assert.Equal(t, 46, Gates.Opposite(25))
	assert.Equal(t, 36, Gates.Opposite(6))
	assert.Equal(t, 6, Zodiac.Opposite(0))
}

func TestDMS(t *testing.T) {
	assert.Equal(t, "10°22'", DMS(10.381))
	assert.Equal(t, "0°00'", DMS(0))
}
