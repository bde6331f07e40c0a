package geospatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

func TestPointDefaults(t *testing.T) {
	p := geospatial.NewPoint(geospatial.Vec2(-2.93, 43.26))
	assert.Equal(t, geospatial.DefaultSRID, p.SRID())
	assert.Equal(t, geospatial.PointS, p.Kind())
	assert.False(t, p.Empty())

	q := p.WithSRID(3857)
	assert.Equal(t, uint32(3857), q.SRID())
	assert.Equal(t, geospatial.DefaultSRID, p.SRID())
}

func TestConstructorsRejectMixedLayouts(t *testing.T) {
	_, err := geospatial.NewLineString(geospatial.XY, geospatial.Vec2(0, 0), geospatial.Vec3(1, 1, 1))
	assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)

	_, err = geospatial.NewPolygon(geospatial.XYZ, []geospatial.Vector{geospatial.Vec2(0, 0)})
	assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)

	_, err = geospatial.NewMultiPoint(geospatial.Layout(4))
	assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)

	_, err = geospatial.NewMultiPolygon(geospatial.Layout(0))
	assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)

	_, err = geospatial.NewGeometryCollection(geospatial.XY, geospatial.NewPoint(geospatial.Vec3(1, 2, 3)))
	assert.ErrorIs(t, err, geospatial.ErrDimensionMismatch)

	_, err = geospatial.NewGeometryCollection(geospatial.XY, nil)
	assert.Error(t, err)
}

func TestConstructorsCopyInput(t *testing.T) {
	pts := []geospatial.Vector{geospatial.Vec2(0, 0), geospatial.Vec2(1, 1)}
	ls := geospatial.Must(geospatial.NewLineString(geospatial.XY, pts...))
	pts[0] = geospatial.Vec2(9, 9)
	assert.Equal(t, geospatial.Vec2(0, 0), ls.PointN(0))

	out := ls.Points()
	out[1] = geospatial.Vec2(5, 5)
	assert.Equal(t, geospatial.Vec2(1, 1), ls.PointN(1))

	ring := []geospatial.Vector{geospatial.Vec2(0, 0), geospatial.Vec2(1, 0), geospatial.Vec2(0, 0)}
	poly := geospatial.Must(geospatial.NewPolygon(geospatial.XY, ring))
	ring[1] = geospatial.Vec2(7, 7)
	assert.Equal(t, geospatial.Vec2(1, 0), poly.Ring(0)[1])
}

func TestEmptyGeometries(t *testing.T) {
	for _, g := range []geospatial.Geometry{
		geospatial.Must(geospatial.NewLineString(geospatial.XY)),
		geospatial.Must(geospatial.NewPolygon(geospatial.XYZ)),
		geospatial.Must(geospatial.NewMultiPoint(geospatial.XY)),
		geospatial.Must(geospatial.NewMultiLineString(geospatial.XY)),
		geospatial.Must(geospatial.NewMultiPolygon(geospatial.XYZ)),
		geospatial.Must(geospatial.NewGeometryCollection(geospatial.XY)),
	} {
		assert.True(t, g.Empty(), g.Kind().String())
	}
}

func TestEqual(t *testing.T) {
	a := geospatial.Must(geospatial.NewLineString(geospatial.XY, geospatial.Vec2(0, 0), geospatial.Vec2(1, 1)))
	b := geospatial.Must(geospatial.NewLineString(geospatial.XY, geospatial.Vec2(0, 0), geospatial.Vec2(1, 1)))
	mp := geospatial.Must(geospatial.NewMultiPoint(geospatial.XY, geospatial.Vec2(0, 0), geospatial.Vec2(1, 1)))

	assert.True(t, geospatial.Equal(a, b))
	assert.False(t, geospatial.Equal(a, b.WithSRID(0)))
	assert.False(t, geospatial.Equal(a, mp))
	assert.False(t, geospatial.Equal(a, nil))
	assert.True(t, geospatial.Equal(nil, nil))
}

func TestWithSRID(t *testing.T) {
	gc := geospatial.Must(geospatial.NewGeometryCollection(geospatial.XY, geospatial.NewPoint(geospatial.Vec2(1, 1))))

	g := geospatial.WithSRID(gc, 2154)
	require.IsType(t, &geospatial.GeometryCollection{}, g)
	assert.Equal(t, uint32(2154), g.SRID())
	assert.Equal(t, geospatial.DefaultSRID, g.(*geospatial.GeometryCollection).Geometry(0).SRID())
	assert.Equal(t, geospatial.DefaultSRID, gc.SRID())
}

func TestForEachVector(t *testing.T) {
	mpoly := geospatial.Must(geospatial.NewMultiPolygon(geospatial.XY,
		[][]geospatial.Vector{{geospatial.Vec2(0, 0), geospatial.Vec2(1, 0)}},
		[][]geospatial.Vector{{geospatial.Vec2(2, 0)}, {geospatial.Vec2(3, 0)}},
	))
	gc := geospatial.Must(geospatial.NewGeometryCollection(geospatial.XY, mpoly, geospatial.NewPoint(geospatial.Vec2(4, 0))))

	var xs []float64
	geospatial.ForEachVector(gc, func(v geospatial.Vector) { xs = append(xs, v.X()) })
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, xs)
}
