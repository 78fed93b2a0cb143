package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sonarscan/record"
)

func TestRNG_Deterministic(t *testing.T) {
	a, b := NewRNG(4711), NewRNG(4711)

	bufA, bufB := make([]byte, 64), make([]byte, 64)
	a.FillBytes(bufA)
	b.FillBytes(bufB)
	assert.Equal(t, bufA, bufB)
	assert.Equal(t, a.Intn(1000), b.Intn(1000))

	c := NewRNG(4712)
	bufC := make([]byte, 64)
	c.FillBytes(bufC)
	assert.NotEqual(t, bufA, bufC)
}

func TestRNG_FillCoordinates(t *testing.T) {
	lats, lons := make([]float64, 100), make([]float64, 100)
	NewRNG(1).FillCoordinates(lats, lons)
	for i := range lats {
		assert.True(t, lats[i] >= -80 && lats[i] < 80)
		assert.True(t, lons[i] >= -180 && lons[i] < 180)
	}
}

func TestLayout(t *testing.T) {
	offsets := NewRNG(7).Layout(1<<14, 1000)
	require.NotEmpty(t, offsets)
	prevEnd := 64
	for _, ofs := range offsets {
		assert.Zero(t, ofs%4)
		assert.GreaterOrEqual(t, ofs-prevEnd, 4)
		assert.LessOrEqual(t, ofs+record.Size, 1<<14)
		prevEnd = ofs + record.Size
	}
}

func TestFixture(t *testing.T) {
	fx := NewFixture(512).
		Place(SampleRecord(100, 1)).
		PutBytes(300, []byte("PING"))

	assert.Equal(t, 512, fx.Len())
	assert.Len(t, fx.Records(), 1)
	assert.Equal(t, byte(Filler), fx.Bytes()[0])
	assert.Equal(t, "PING", string(fx.Bytes()[300:304]))

	r, ok := record.TryDecode(fx.Bytes()[100:], 100)
	require.True(t, ok)
	assert.Equal(t, fx.Records()[0], r)

	path := fx.WriteFile(t, "line.bin")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fx.Bytes(), got)
}
