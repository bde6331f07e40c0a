package ewkb

import (
	"github.com/pkg/errors"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// MaxCollectionDepth is the deepest GeometryCollection nesting Decode accepts.
// Collections nested any deeper are rejected as an unknown type code.
const MaxCollectionDepth = 32

// Minimum encoded sizes used to bound untrusted counts.
const (
	minListSize     = 4          // an empty point list, ring list or polygon
	minGeometrySize = headerSize // a collection member header
)

// Decode parses b as exactly one geometry. Bytes left over after it are
// reported as UnexpectedEOF at the offset of the first extra byte.
func Decode(b []byte) (geospatial.Geometry, error) {
	g, n, err := DecodePrefix(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, &DecodeError{Reason: UnexpectedEOF, Offset: n}
	}
	return g, nil
}

// DecodePrefix parses the first geometry in b and returns the number of bytes
// it occupied. Anything after it is left to the caller. On failure no
// geometry is returned and err is a *DecodeError.
func DecodePrefix(b []byte) (geospatial.Geometry, int, error) {
	r := newReader(b)
	g, err := readGeometry(r, 0)
	if err != nil {
		return nil, 0, err
	}
	return g, r.off, nil
}

func readGeometry(r *reader, depth int) (geospatial.Geometry, error) {
	start := r.off
	if _, err := r.byteOrder(); err != nil {
		return nil, err
	}
	codeOff := r.off
	code, err := r.uint32()
	if err != nil {
		return nil, err
	}
	kind, err := DecodeTypeCode(code)
	if err != nil {
		return nil, &DecodeError{Reason: UnknownTypeCode, Code: code, Offset: codeOff}
	}
	if kind.Shape() == geospatial.ShapeGeometryCollection && depth >= MaxCollectionDepth {
		return nil, &DecodeError{Reason: UnknownTypeCode, Code: code, Offset: codeOff}
	}
	srid, err := r.uint32()
	if err != nil {
		return nil, err
	}

	layout := kind.Layout()
	var g geospatial.Geometry
	switch kind.Shape() {
	case geospatial.ShapePoint:
		var v geospatial.Vector
		if v, err = readVector(r, layout); err == nil {
			g = geospatial.NewPoint(v)
		}
	case geospatial.ShapeLineString:
		var vs []geospatial.Vector
		if vs, err = readVectors(r, layout); err == nil {
			g, err = geospatial.NewLineString(layout, vs...)
		}
	case geospatial.ShapePolygon:
		var rings [][]geospatial.Vector
		if rings, err = readRings(r, layout); err == nil {
			g, err = geospatial.NewPolygon(layout, rings...)
		}
	case geospatial.ShapeMultiPoint:
		var vs []geospatial.Vector
		if vs, err = readVectors(r, layout); err == nil {
			g, err = geospatial.NewMultiPoint(layout, vs...)
		}
	case geospatial.ShapeMultiLineString:
		var lines [][]geospatial.Vector
		if lines, err = readRings(r, layout); err == nil {
			g, err = geospatial.NewMultiLineString(layout, lines...)
		}
	case geospatial.ShapeMultiPolygon:
		var polys [][][]geospatial.Vector
		if polys, err = readPolygons(r, layout); err == nil {
			g, err = geospatial.NewMultiPolygon(layout, polys...)
		}
	case geospatial.ShapeGeometryCollection:
		var children []geospatial.Geometry
		if children, err = readMembers(r, layout, depth+1); err == nil {
			g, err = geospatial.NewGeometryCollection(layout, children...)
		}
	}
	if err != nil {
		return nil, asDecodeError(err, start)
	}
	return geospatial.WithSRID(g, srid), nil
}

func readVector(r *reader, layout geospatial.Layout) (geospatial.Vector, error) {
	ords, err := r.float64s(layout.Stride())
	if err != nil {
		return geospatial.Vector{}, err
	}
	return geospatial.NewVector(ords...)
}

func readVectors(r *reader, layout geospatial.Layout) ([]geospatial.Vector, error) {
	n, err := r.count(8 * layout.Stride())
	if err != nil {
		return nil, err
	}
	out := make([]geospatial.Vector, n)
	for i := range out {
		if out[i], err = readVector(r, layout); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readRings(r *reader, layout geospatial.Layout) ([][]geospatial.Vector, error) {
	n, err := r.count(minListSize)
	if err != nil {
		return nil, err
	}
	out := make([][]geospatial.Vector, n)
	for i := range out {
		if out[i], err = readVectors(r, layout); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readPolygons(r *reader, layout geospatial.Layout) ([][][]geospatial.Vector, error) {
	n, err := r.count(minListSize)
	if err != nil {
		return nil, err
	}
	out := make([][][]geospatial.Vector, n)
	for i := range out {
		if out[i], err = readRings(r, layout); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readMembers reads complete child geometries. Each child carries its own
// byte order flag, so the reader order is restored after every child.
func readMembers(r *reader, layout geospatial.Layout, depth int) ([]geospatial.Geometry, error) {
	n, err := r.count(minGeometrySize)
	if err != nil {
		return nil, err
	}
	order := r.order
	out := make([]geospatial.Geometry, 0, n)
	for i := 0; i < n; i++ {
		childOff := r.off
		child, err := readGeometry(r, depth)
		if err != nil {
			return nil, err
		}
		if child.Layout() != layout {
			return nil, &DecodeError{Reason: DimensionMismatch, Offset: childOff}
		}
		out = append(out, child)
		r.order = order
	}
	return out, nil
}

// asDecodeError passes a *DecodeError through and classifies anything else
// raised while building the geometry.
func asDecodeError(err error, off int) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, geospatial.ErrDimensionMismatch) {
		return &DecodeError{Reason: DimensionMismatch, Offset: off}
	}
	return &DecodeError{Reason: UnknownTypeCode, Offset: off}
}
