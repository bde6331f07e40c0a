package geospatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

func TestHaversine(t *testing.T) {
	// Two points in central Bilbao, roughly 430 m apart.
	d := geospatial.Haversine(43.2609, -2.9276, 43.2590, -2.9230)
	assert.InDelta(t, 425, d, 25)

	assert.Zero(t, geospatial.Haversine(43.26, -2.93, 43.26, -2.93))
}

func TestBoundingBox(t *testing.T) {
	b := geospatial.BoundingBox(43.26, -2.93, 1000)

	assert.Less(t, b.MinLat, 43.26)
	assert.Greater(t, b.MaxLat, 43.26)
	assert.Less(t, b.MinLon, -2.93)
	assert.Greater(t, b.MaxLon, -2.93)
	assert.True(t, b.Contains(43.26, -2.93))
	assert.False(t, b.Contains(43.30, -2.93))

	lat, lon := b.Center()
	assert.InDelta(t, 43.26, lat, 1e-9)
	assert.InDelta(t, -2.93, lon, 1e-9)

	assert.InDelta(t, 1000, geospatial.Haversine(43.26, -2.93, b.MaxLat, -2.93), 10)
}

func TestEnvelope(t *testing.T) {
	ls := geospatial.Must(geospatial.NewLineString(geospatial.XY,
		geospatial.Vec2(-3, 43), geospatial.Vec2(-2, 44), geospatial.Vec2(-2.5, 42.5)))

	b, ok := geospatial.Envelope(ls)
	require.True(t, ok)
	assert.Equal(t, geospatial.Bounds{MinLat: 42.5, MinLon: -3, MaxLat: 44, MaxLon: -2}, b)

	_, ok = geospatial.Envelope(geospatial.Must(geospatial.NewMultiPoint(geospatial.XY)))
	assert.False(t, ok)
}
