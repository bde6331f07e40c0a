package ewkb_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

func TestEncodeTypeCode(t *testing.T) {
	tests := []struct {
		kind geospatial.Kind
		code uint32
	}{
		{geospatial.PointS, 1},
		{geospatial.LineStringS, 2},
		{geospatial.PolygonS, 3},
		{geospatial.MultiPointS, 4},
		{geospatial.MultiLineStringS, 5},
		{geospatial.MultiPolygonS, 6},
		{geospatial.GeometryCollectionS, 7},
		{geospatial.PointZ, 0x80000001},
		{geospatial.LineStringZ, 0x80000002},
		{geospatial.PolygonZ, 0x80000003},
		{geospatial.MultiPointZ, 0x80000004},
		{geospatial.MultiLineStringZ, 0x80000005},
		{geospatial.MultiPolygonZ, 0x80000006},
		{geospatial.GeometryCollectionZ, 0x80000007},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, ewkb.EncodeTypeCode(tt.kind))

			kind, err := ewkb.DecodeTypeCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestDecodeTypeCodeRejects(t *testing.T) {
	for _, code := range []uint32{0, 8, 15, 0x80000000, 0x80000008, 0x20000001, 0xFFFFFFFF} {
		_, err := ewkb.DecodeTypeCode(code)
		require.Error(t, err, "code 0x%08x", code)
		assert.True(t, errors.Is(err, ewkb.ErrUnknownTypeCode))

		var de *ewkb.DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, ewkb.UnknownTypeCode, de.Reason)
		assert.Equal(t, code, de.Code)
	}
}
