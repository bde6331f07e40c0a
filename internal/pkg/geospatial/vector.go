package geospatial

import "github.com/pkg/errors"

// ErrDimensionMismatch is returned when a coordinate does not carry the number of
// ordinates its layout requires.
var ErrDimensionMismatch = errors.New("geospatial: dimension mismatch")

// Layout is the dimensionality of a geometry: planar (XY) or Z-enabled (XYZ).
type Layout uint8

const (
	XY  Layout = 2
	XYZ Layout = 3
)

// Stride returns the number of ordinates per vector.
func (l Layout) Stride() int { return int(l) }

// Valid reports whether l is XY or XYZ.
func (l Layout) Valid() bool { return l == XY || l == XYZ }

func (l Layout) String() string {
	switch l {
	case XY:
		return "XY"
	case XYZ:
		return "XYZ"
	default:
		return "invalid"
	}
}

// Vector is an immutable tuple of 2 or 3 float64 ordinates.
type Vector struct {
	ords   [3]float64
	layout Layout
}

// Vec2 returns a planar vector.
func Vec2(x, y float64) Vector {
	return Vector{ords: [3]float64{x, y, 0}, layout: XY}
}

// Vec3 returns a Z-enabled vector.
func Vec3(x, y, z float64) Vector {
	return Vector{ords: [3]float64{x, y, z}, layout: XYZ}
}

// NewVector builds a vector from 2 or 3 ordinates.
func NewVector(ords ...float64) (Vector, error) {
	switch len(ords) {
	case 2:
		return Vec2(ords[0], ords[1]), nil
	case 3:
		return Vec3(ords[0], ords[1], ords[2]), nil
	default:
		return Vector{}, errors.Wrapf(ErrDimensionMismatch, "vector of %d ordinates", len(ords))
	}
}

// Layout returns XY or XYZ. The zero Vector is the planar origin.
func (v Vector) Layout() Layout {
	if v.layout == XYZ {
		return XYZ
	}
	return XY
}

// Dim returns the number of ordinates.
func (v Vector) Dim() int { return v.Layout().Stride() }

func (v Vector) X() float64 { return v.ords[0] }
func (v Vector) Y() float64 { return v.ords[1] }

// Z returns the third ordinate, or 0 for planar vectors.
func (v Vector) Z() float64 { return v.ords[2] }

// At returns the i-th ordinate.
func (v Vector) At(i int) float64 { return v.ords[i] }

// Ordinates returns a copy of the ordinates.
func (v Vector) Ordinates() []float64 {
	out := make([]float64, v.Dim())
	copy(out, v.ords[:v.Dim()])
	return out
}
