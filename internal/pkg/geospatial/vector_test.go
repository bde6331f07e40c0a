package geospatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

func TestNewVector(t *testing.T) {
	v, err := geospatial.NewVector(1, 2)
	require.NoError(t, err)
	assert.Equal(t, geospatial.XY, v.Layout())
	assert.Equal(t, 2, v.Dim())
	assert.Equal(t, []float64{1, 2}, v.Ordinates())
	assert.Zero(t, v.Z())

	v, err = geospatial.NewVector(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, geospatial.XYZ, v.Layout())
	assert.Equal(t, 3.0, v.Z())
	assert.Equal(t, geospatial.Vec3(1, 2, 3), v)

	for _, ords := range [][]float64{nil, {1}, {1, 2, 3, 4}} {
		_, err := geospatial.NewVector(ords...)
		assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)
	}
}

func TestVectorOrdinatesIsCopy(t *testing.T) {
	v := geospatial.Vec2(1, 2)
	ords := v.Ordinates()
	ords[0] = 99
	assert.Equal(t, 1.0, v.X())
}

func TestZeroVectorIsPlanar(t *testing.T) {
	var v geospatial.Vector
	assert.Equal(t, geospatial.XY, v.Layout())
	assert.Equal(t, 2, v.Dim())
}

func TestKinds(t *testing.T) {
	assert.Equal(t, geospatial.PolygonZ, geospatial.KindOf(geospatial.ShapePolygon, geospatial.XYZ))
	assert.Equal(t, geospatial.PolygonS, geospatial.KindOf(geospatial.ShapePolygon, geospatial.XY))
	assert.Equal(t, geospatial.ShapeMultiLineString, geospatial.MultiLineStringZ.Shape())
	assert.Equal(t, geospatial.XYZ, geospatial.GeometryCollectionZ.Layout())
	assert.Equal(t, "MultiPointZ", geospatial.MultiPointZ.String())
	assert.Equal(t, "PointS", geospatial.PointS.String())
	assert.Equal(t, "Unknown", geospatial.Kind(0).String())
	assert.False(t, geospatial.Kind(15).Valid())
}
