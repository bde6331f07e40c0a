package ewkb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

func TestValueRoundTrip(t *testing.T) {
	poly := geospatial.Must(geospatial.NewPolygon(geospatial.XY, []geospatial.Vector{
		geospatial.Vec2(0, 0), geospatial.Vec2(1, 0), geospatial.Vec2(1, 1), geospatial.Vec2(0, 0),
	})).WithSRID(3857)

	dv, err := ewkb.Value{Geometry: poly, Order: ewkb.LittleEndian}.Value()
	require.NoError(t, err)
	raw, ok := dv.([]byte)
	require.True(t, ok)
	assert.Equal(t, byte(ewkb.LittleEndian), raw[0])

	var v ewkb.Value
	require.NoError(t, v.Scan(raw))
	assert.True(t, geospatial.Equal(poly, v.Geometry))

	var h ewkb.Value
	require.NoError(t, h.Scan(ewkb.EncodeHex(poly, ewkb.BigEndian)))
	assert.True(t, geospatial.Equal(poly, h.Geometry))
}

func TestValueNull(t *testing.T) {
	dv, err := ewkb.Value{}.Value()
	require.NoError(t, err)
	assert.Nil(t, dv)

	v := ewkb.Value{Geometry: geospatial.NewPoint(geospatial.Vec2(1, 1))}
	require.NoError(t, v.Scan(nil))
	assert.Nil(t, v.Geometry)
}

func TestValueScanErrors(t *testing.T) {
	var v ewkb.Value
	assert.Error(t, v.Scan(42))
	assert.ErrorIs(t, v.Scan([]byte{0x01, 0x01}), ewkb.ErrUnexpectedEOF)
}
