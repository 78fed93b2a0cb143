package geo

import (
	"math"
	"testing"

	"github.com/hupe1980/sonarscan/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateAndOffset_Identity(t *testing.T) {
	lats := []float64{59.9, -33.8, 0, 71.2}
	lons := []float64{10.7, 151.2, 0, -8.1}

	gotLat, gotLon, err := RotateAndOffset(lats, lons, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, lats, gotLat)
	assert.Equal(t, lons, gotLon)
}

func TestRotateAndOffset_Equator(t *testing.T) {
	gotLat, gotLon, err := RotateAndOffset([]float64{0}, []float64{0}, 0, 1113.2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, gotLat[0], 1e-12)
	assert.InDelta(t, 0.01, gotLon[0], 1e-12)
}

func TestRotateAndOffset_North(t *testing.T) {
	gotLat, gotLon, err := RotateAndOffset([]float64{10}, []float64{20}, 0, 0, 111.32)
	require.NoError(t, err)
	assert.InDelta(t, 10.001, gotLat[0], 1e-12)
	assert.InDelta(t, 20, gotLon[0], 1e-12)
}

func TestRotateAndOffset_QuarterTurn(t *testing.T) {
	// dx east rotated by +90 degrees points north.
	gotLat, gotLon, err := RotateAndOffset([]float64{0}, []float64{0}, math.Pi/2, 1113.2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, gotLat[0], 1e-12)
	assert.InDelta(t, 0, gotLon[0], 1e-12)
}

func TestRotateAndOffset_LongitudeScalesWithLatitude(t *testing.T) {
	_, gotLon, err := RotateAndOffset([]float64{60}, []float64{0}, 0, 1113.2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, gotLon[0], 1e-9)
}

func TestRotateAndOffset_LengthMismatch(t *testing.T) {
	_, _, err := RotateAndOffset([]float64{1, 2}, []float64{1}, 0, 0, 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRotateAndOffset_Empty(t *testing.T) {
	lat, lon, err := RotateAndOffset(nil, nil, 1, 2, 3)
	require.NoError(t, err)
	assert.Empty(t, lat)
	assert.Empty(t, lon)
}

func TestRotateAndOffset_ManyBlocksPreserveOrder(t *testing.T) {
	n := 3*blockSize + 17
	lats := make([]float64, n)
	lons := make([]float64, n)
	testutil.NewRNG(1).FillCoordinates(lats, lons)

	heading, dx, dy := 0.7, 12.5, -3.25
	gotLat, gotLon, err := RotateAndOffset(lats, lons, heading, dx, dy)
	require.NoError(t, err)
	require.Len(t, gotLat, n)

	xr, yr := Rotate(heading, dx, dy)
	for i := range lats {
		assert.InDelta(t, lats[i]+yr/MetersPerDegree, gotLat[i], 1e-12)
		assert.InDelta(t, lons[i]+xr/(MetersPerDegree*math.Cos(lats[i]*math.Pi/180)), gotLon[i], 1e-12)
	}
}
