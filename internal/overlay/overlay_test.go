package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaces_EverySurfaceBlocks(t *testing.T) {
	for sf := Surface(0); sf < surfaceCount; sf++ {
		t.Run(sf.String(), func(t *testing.T) {
			s := NewSurfaces()
			require.False(t, s.Blocked())
			s.Open(sf)
			assert.True(t, s.Blocked())
			assert.Equal(t, []Surface{sf}, s.OpenSurfaces())
			s.Close(sf)
			assert.False(t, s.Blocked())
		})
	}
}

func TestSurfaces_HiddenCrosshairBlocks(t *testing.T) {
	s := NewSurfaces()
	s.SetCrosshair(false)
	assert.True(t, s.Blocked())
	s.SetCrosshair(true)
	assert.False(t, s.Blocked())
}

func TestSurfaces_OneOfManyStillBlocks(t *testing.T) {
	s := NewSurfaces()
	s.Open(Cart)
	s.Open(Terms)
	s.Close(Cart)
	assert.True(t, s.Blocked())
	assert.True(t, s.IsOpen(Terms))
}

func TestSurfaces_OutOfRangeIgnored(t *testing.T) {
	s := NewSurfaces()
	s.Open(Surface(99))
	assert.False(t, s.Blocked())
	assert.False(t, s.IsOpen(Surface(-1)))
	assert.Equal(t, "surface(99)", Surface(99).String())
}

func TestParseSurface(t *testing.T) {
	sf, err := ParseSurface(" Cart ")
	require.NoError(t, err)
	assert.Equal(t, Cart, sf)

	sf, err = ParseSurface("search")
	require.NoError(t, err)
	assert.Equal(t, ProductSearcher, sf)

	_, err = ParseSurface("popup")
	assert.Error(t, err)
}

func TestTouchGate(t *testing.T) {
	var g TouchGate
	assert.False(t, g.Enabled())
	g.Enable()
	assert.True(t, g.Enabled())
}
