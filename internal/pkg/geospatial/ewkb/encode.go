package ewkb

import "github.com/samirrijal/signuis/internal/pkg/geospatial"

// headerSize is the flag byte, the type code and the SRID.
const headerSize = 1 + 4 + 4

// Encode returns g in the host byte order.
func Encode(g geospatial.Geometry) []byte {
	return EncodeWithByteOrder(g, NativeByteOrder())
}

// EncodeWithByteOrder returns g encoded with the given byte order.
func EncodeWithByteOrder(g geospatial.Geometry, order ByteOrder) []byte {
	if g == nil {
		return nil
	}
	return Append(make([]byte, 0, EncodedSize(g)), g, order)
}

// Append appends the encoding of g to dst and returns the extended buffer.
// A nil geometry leaves dst unchanged.
func Append(dst []byte, g geospatial.Geometry, order ByteOrder) []byte {
	if g == nil {
		return dst
	}
	if order != BigEndian {
		order = LittleEndian
	}
	w := newWriter(dst, order)
	writeGeometry(w, order, g)
	return w.buf
}

func writeGeometry(w *writer, order ByteOrder, g geospatial.Geometry) {
	w.byteOrder(order)
	w.uint32(EncodeTypeCode(g.Kind()))
	w.uint32(g.SRID())

	switch g := g.(type) {
	case *geospatial.Point:
		writeVector(w, g.Coords())
	case *geospatial.LineString:
		writeVectors(w, g.Points())
	case *geospatial.Polygon:
		writeRings(w, g.Rings())
	case *geospatial.MultiPoint:
		writeVectors(w, g.Points())
	case *geospatial.MultiLineString:
		writeRings(w, g.Lines())
	case *geospatial.MultiPolygon:
		polys := g.Polygons()
		w.count(len(polys))
		for _, rings := range polys {
			writeRings(w, rings)
		}
	case *geospatial.GeometryCollection:
		w.count(g.NumGeometries())
		for i := 0; i < g.NumGeometries(); i++ {
			writeGeometry(w, order, g.Geometry(i))
		}
	}
}

func writeVector(w *writer, v geospatial.Vector) {
	for i := 0; i < v.Dim(); i++ {
		w.float64(v.At(i))
	}
}

func writeVectors(w *writer, vs []geospatial.Vector) {
	w.count(len(vs))
	for _, v := range vs {
		writeVector(w, v)
	}
}

func writeRings(w *writer, rings [][]geospatial.Vector) {
	w.count(len(rings))
	for _, r := range rings {
		writeVectors(w, r)
	}
}

// EncodedSize returns the exact number of bytes Encode produces for g.
func EncodedSize(g geospatial.Geometry) int {
	if g == nil {
		return 0
	}
	stride := 8 * g.Layout().Stride()
	vectors := func(n int) int { return 4 + n*stride }
	rings := func(rs [][]geospatial.Vector) int {
		n := 4
		for _, r := range rs {
			n += vectors(len(r))
		}
		return n
	}

	switch g := g.(type) {
	case *geospatial.Point:
		return headerSize + stride
	case *geospatial.LineString:
		return headerSize + vectors(g.NumPoints())
	case *geospatial.Polygon:
		return headerSize + rings(g.Rings())
	case *geospatial.MultiPoint:
		return headerSize + vectors(g.NumPoints())
	case *geospatial.MultiLineString:
		return headerSize + rings(g.Lines())
	case *geospatial.MultiPolygon:
		n := headerSize + 4
		for _, p := range g.Polygons() {
			n += rings(p)
		}
		return n
	case *geospatial.GeometryCollection:
		n := headerSize + 4
		for _, child := range g.Geometries() {
			n += EncodedSize(child)
		}
		return n
	default:
		return headerSize
	}
}
