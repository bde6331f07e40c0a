// Package geospatial holds the in-memory geometry model shared by the EWKB codec,
// the PostGIS adapter and the HTTP layer.
//
// Geometries are immutable trees: constructors copy their input, accessors return
// copies, and WithSRID returns a new value.
package geospatial

import (
	"reflect"

	"github.com/pkg/errors"
)

// DefaultSRID is WGS 84, used when the caller does not set an SRID.
const DefaultSRID uint32 = 4326

// Geometry is the closed set of geometry variants. Only types from this
// package implement it.
type Geometry interface {
	Kind() Kind
	Layout() Layout
	SRID() uint32
	// Empty reports whether the geometry has no coordinates at all.
	Empty() bool

	sealed()
}

// Must panics if err is non-nil. It is meant for geometry literals.
func Must[G Geometry](g G, err error) G {
	if err != nil {
		panic(err)
	}
	return g
}

// Point is a single position.
type Point struct {
	v    Vector
	srid uint32
}

// NewPoint returns a point with the default SRID.
func NewPoint(v Vector) *Point {
	if !v.layout.Valid() {
		v.layout = XY
	}
	return &Point{v: v, srid: DefaultSRID}
}

func (p *Point) Kind() Kind { return KindOf(ShapePoint, p.v.Layout()) }
func (p *Point) Layout() Layout { return p.v.Layout() }
func (p *Point) SRID() uint32 { return p.srid }
func (p *Point) Empty() bool { return false }
func (p *Point) Coords() Vector { return p.v }
func (p *Point) sealed() {}
func (p *Point) X() float64 { return p.v.X() }
func (p *Point) Y() float64 { return p.v.Y() }
func (p *Point) Z() float64 { return p.v.Z() }

// WithSRID returns a copy of p carrying srid.
func (p *Point) WithSRID(srid uint32) *Point {
	return &Point{v: p.v, srid: srid}
}

// LineString is an ordered path of points. The model accepts fewer than two
// points; validating that is left to callers.
type LineString struct {
	layout Layout
	srid   uint32
	points []Vector
}

// NewLineString returns a line string with the default SRID.
func NewLineString(layout Layout, points ...Vector) (*LineString, error) {
	pts, err := copyVectors(layout, points)
	if err != nil {
		return nil, err
	}
	return &LineString{layout: layout, srid: DefaultSRID, points: pts}, nil
}

func (l *LineString) Kind() Kind { return KindOf(ShapeLineString, l.layout) }
func (l *LineString) Layout() Layout { return l.layout }
func (l *LineString) SRID() uint32 { return l.srid }
func (l *LineString) Empty() bool { return len(l.points) == 0 }
func (l *LineString) NumPoints() int { return len(l.points) }
func (l *LineString) PointN(i int) Vector { return l.points[i] }
func (l *LineString) Points() []Vector { return append([]Vector{}, l.points...) }
func (l *LineString) sealed() {}

// WithSRID returns a copy of l carrying srid.
func (l *LineString) WithSRID(srid uint32) *LineString {
	c := *l
	c.srid = srid
	return &c
}

// Polygon is an ordered list of rings. By convention the first ring is the
// exterior boundary and the others are holes. Ring closure is not checked.
type Polygon struct {
	layout Layout
	srid   uint32
	rings  [][]Vector
}

// NewPolygon returns a polygon with the default SRID.
func NewPolygon(layout Layout, rings ...[]Vector) (*Polygon, error) {
	rs, err := copyRings(layout, rings)
	if err != nil {
		return nil, err
	}
	return &Polygon{layout: layout, srid: DefaultSRID, rings: rs}, nil
}

func (p *Polygon) Kind() Kind { return KindOf(ShapePolygon, p.layout) }
func (p *Polygon) Layout() Layout { return p.layout }
func (p *Polygon) SRID() uint32 { return p.srid }
func (p *Polygon) Empty() bool { return len(p.rings) == 0 }
func (p *Polygon) NumRings() int { return len(p.rings) }
func (p *Polygon) Ring(i int) []Vector { return append([]Vector{}, p.rings[i]...) }
func (p *Polygon) Rings() [][]Vector { return cloneRings(p.rings) }
func (p *Polygon) sealed() {}

// WithSRID returns a copy of p carrying srid.
func (p *Polygon) WithSRID(srid uint32) *Polygon {
	c := *p
	c.srid = srid
	return &c
}

// MultiPoint is an unordered-by-meaning but order-preserving set of points.
type MultiPoint struct {
	layout Layout
	srid   uint32
	points []Vector
}

// NewMultiPoint returns a multi point with the default SRID.
func NewMultiPoint(layout Layout, points ...Vector) (*MultiPoint, error) {
	pts, err := copyVectors(layout, points)
	if err != nil {
		return nil, err
	}
	return &MultiPoint{layout: layout, srid: DefaultSRID, points: pts}, nil
}

func (m *MultiPoint) Kind() Kind { return KindOf(ShapeMultiPoint, m.layout) }
func (m *MultiPoint) Layout() Layout { return m.layout }
func (m *MultiPoint) SRID() uint32 { return m.srid }
func (m *MultiPoint) Empty() bool { return len(m.points) == 0 }
func (m *MultiPoint) NumPoints() int { return len(m.points) }
func (m *MultiPoint) PointN(i int) Vector { return m.points[i] }
func (m *MultiPoint) Points() []Vector { return append([]Vector{}, m.points...) }
func (m *MultiPoint) sealed() {}

// WithSRID returns a copy of m carrying srid.
func (m *MultiPoint) WithSRID(srid uint32) *MultiPoint {
	c := *m
	c.srid = srid
	return &c
}

// MultiLineString is a list of paths.
type MultiLineString struct {
	layout Layout
	srid   uint32
	lines  [][]Vector
}

// NewMultiLineString returns a multi line string with the default SRID.
func NewMultiLineString(layout Layout, lines ...[]Vector) (*MultiLineString, error) {
	ls, err := copyRings(layout, lines)
	if err != nil {
		return nil, err
	}
	return &MultiLineString{layout: layout, srid: DefaultSRID, lines: ls}, nil
}

func (m *MultiLineString) Kind() Kind { return KindOf(ShapeMultiLineString, m.layout) }
func (m *MultiLineString) Layout() Layout { return m.layout }
func (m *MultiLineString) SRID() uint32 { return m.srid }
func (m *MultiLineString) Empty() bool { return len(m.lines) == 0 }
func (m *MultiLineString) NumLines() int { return len(m.lines) }
func (m *MultiLineString) Line(i int) []Vector { return append([]Vector{}, m.lines[i]...) }
func (m *MultiLineString) Lines() [][]Vector { return cloneRings(m.lines) }
func (m *MultiLineString) sealed() {}

// WithSRID returns a copy of m carrying srid.
func (m *MultiLineString) WithSRID(srid uint32) *MultiLineString {
	c := *m
	c.srid = srid
	return &c
}

// MultiPolygon is a list of polygons, each given as its rings.
type MultiPolygon struct {
	layout   Layout
	srid     uint32
	polygons [][][]Vector
}

// NewMultiPolygon returns a multi polygon with the default SRID.
func NewMultiPolygon(layout Layout, polygons ...[][]Vector) (*MultiPolygon, error) {
	if !layout.Valid() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "layout %d", layout)
	}
	ps := make([][][]Vector, 0, len(polygons))
	for _, rings := range polygons {
		rs, err := copyRings(layout, rings)
		if err != nil {
			return nil, errors.WithMessagef(err, "polygon %d", len(ps))
		}
		ps = append(ps, rs)
	}
	return &MultiPolygon{layout: layout, srid: DefaultSRID, polygons: ps}, nil
}

func (m *MultiPolygon) Kind() Kind { return KindOf(ShapeMultiPolygon, m.layout) }
func (m *MultiPolygon) Layout() Layout { return m.layout }
func (m *MultiPolygon) SRID() uint32 { return m.srid }
func (m *MultiPolygon) Empty() bool { return len(m.polygons) == 0 }
func (m *MultiPolygon) NumPolygons() int { return len(m.polygons) }
func (m *MultiPolygon) Polygon(i int) [][]Vector { return cloneRings(m.polygons[i]) }
func (m *MultiPolygon) sealed() {}

// Polygons returns a copy of every polygon's rings.
func (m *MultiPolygon) Polygons() [][][]Vector {
	out := make([][][]Vector, len(m.polygons))
	for i, p := range m.polygons {
		out[i] = cloneRings(p)
	}
	return out
}

// WithSRID returns a copy of m carrying srid.
func (m *MultiPolygon) WithSRID(srid uint32) *MultiPolygon {
	c := *m
	c.srid = srid
	return &c
}

// GeometryCollection holds complete child geometries sharing one layout. Each
// child keeps its own SRID.
type GeometryCollection struct {
	layout Layout
	srid   uint32
	geoms  []Geometry
}

// NewGeometryCollection returns a collection with the default SRID.
func NewGeometryCollection(layout Layout, geoms ...Geometry) (*GeometryCollection, error) {
	if !layout.Valid() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "layout %d", layout)
	}
	gs := make([]Geometry, 0, len(geoms))
	for i, g := range geoms {
		if g == nil {
			return nil, errors.Errorf("geospatial: nil geometry at index %d", i)
		}
		if g.Layout() != layout {
			return nil, errors.Wrapf(ErrDimensionMismatch, "child %d is %s, collection is %s", i, g.Layout(), layout)
		}
		gs = append(gs, g)
	}
	return &GeometryCollection{layout: layout, srid: DefaultSRID, geoms: gs}, nil
}

func (c *GeometryCollection) Kind() Kind { return KindOf(ShapeGeometryCollection, c.layout) }
func (c *GeometryCollection) Layout() Layout { return c.layout }
func (c *GeometryCollection) SRID() uint32 { return c.srid }
func (c *GeometryCollection) Empty() bool { return len(c.geoms) == 0 }
func (c *GeometryCollection) NumGeometries() int { return len(c.geoms) }
func (c *GeometryCollection) Geometry(i int) Geometry { return c.geoms[i] }
func (c *GeometryCollection) Geometries() []Geometry { return append([]Geometry{}, c.geoms...) }
func (c *GeometryCollection) sealed() {}

// WithSRID returns a copy of c carrying srid. Children are left untouched.
func (c *GeometryCollection) WithSRID(srid uint32) *GeometryCollection {
	cp := *c
	cp.srid = srid
	return &cp
}

// WithSRID returns a copy of g carrying srid.
func WithSRID(g Geometry, srid uint32) Geometry {
	switch g := g.(type) {
	case *Point:
		return g.WithSRID(srid)
	case *LineString:
		return g.WithSRID(srid)
	case *Polygon:
		return g.WithSRID(srid)
	case *MultiPoint:
		return g.WithSRID(srid)
	case *MultiLineString:
		return g.WithSRID(srid)
	case *MultiPolygon:
		return g.WithSRID(srid)
	case *GeometryCollection:
		return g.WithSRID(srid)
	default:
		return g
	}
}

// Equal reports whether a and b are structurally identical, SRID and layout
// included.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.SRID() != b.SRID() {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// ForEachVector calls fn for every vector of g in encoding order.
func ForEachVector(g Geometry, fn func(Vector)) {
	switch g := g.(type) {
	case *Point:
		fn(g.v)
	case *LineString:
		eachVector(g.points, fn)
	case *MultiPoint:
		eachVector(g.points, fn)
	case *Polygon:
		eachRing(g.rings, fn)
	case *MultiLineString:
		eachRing(g.lines, fn)
	case *MultiPolygon:
		for _, p := range g.polygons {
			eachRing(p, fn)
		}
	case *GeometryCollection:
		for _, child := range g.geoms {
			ForEachVector(child, fn)
		}
	}
}

func eachVector(vs []Vector, fn func(Vector)) {
	for _, v := range vs {
		fn(v)
	}
}

func eachRing(rings [][]Vector, fn func(Vector)) {
	for _, r := range rings {
		eachVector(r, fn)
	}
}

func copyVectors(layout Layout, vs []Vector) ([]Vector, error) {
	if !layout.Valid() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "layout %d", layout)
	}
	out := make([]Vector, len(vs))
	for i, v := range vs {
		if v.Layout() != layout {
			return nil, errors.Wrapf(ErrDimensionMismatch, "vector %d has %d ordinates, want %d", i, v.Dim(), layout.Stride())
		}
		out[i] = v
		out[i].layout = layout
	}
	return out, nil
}

func copyRings(layout Layout, rings [][]Vector) ([][]Vector, error) {
	if !layout.Valid() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "layout %d", layout)
	}
	out := make([][]Vector, len(rings))
	for i, r := range rings {
		vs, err := copyVectors(layout, r)
		if err != nil {
			return nil, errors.WithMessagef(err, "ring %d", i)
		}
		out[i] = vs
	}
	return out, nil
}

func cloneRings(rings [][]Vector) [][]Vector {
	out := make([][]Vector, len(rings))
	for i, r := range rings {
		out[i] = append([]Vector{}, r...)
	}
	return out
}
