package ewkb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

func TestEncodeHex(t *testing.T) {
	p := geospatial.NewPoint(geospatial.Vec2(1.5, -2.25))

	assert.Equal(t, "0101000000E6100000000000000000F83F00000000000002C0", ewkb.EncodeHex(p, ewkb.LittleEndian))
	assert.Equal(t, ewkb.EncodeHex(p, ewkb.BigEndian), ewkb.FormatHex(ewkb.EncodeWithByteOrder(p, ewkb.BigEndian)))
}

func TestDecodeHex(t *testing.T) {
	want := geospatial.Must(geospatial.NewLineString(geospatial.XYZ, geospatial.Vec3(1, 2, 3), geospatial.Vec3(4, 5, 6)))

	for _, s := range []string{
		ewkb.EncodeHex(want, ewkb.BigEndian),
		ewkb.EncodeHex(want, ewkb.LittleEndian),
		`\x` + ewkb.EncodeHex(want, ewkb.LittleEndian),
		"  " + ewkb.EncodeHex(want, ewkb.BigEndian) + "\n",
	} {
		got, err := ewkb.DecodeHex(s)
		require.NoError(t, err, s)
		assert.True(t, geospatial.Equal(want, got), s)
	}
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := ewkb.DecodeHex("zz")
	require.Error(t, err)
	assert.Zero(t, ewkb.ReasonOf(err))

	_, err = ewkb.DecodeHex("0101")
	assert.ErrorIs(t, err, ewkb.ErrUnexpectedEOF)
}
