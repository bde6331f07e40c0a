package geospatial

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrUnsupportedGeoJSON is returned for GeoJSON this model cannot represent,
// such as measured (M) coordinates or empty points.
var ErrUnsupportedGeoJSON = errors.New("geospatial: unsupported geojson geometry")

// MarshalGeoJSON encodes g as a GeoJSON geometry object. A named CRS member is
// added when the SRID is not WGS 84.
func MarshalGeoJSON(g Geometry) ([]byte, error) {
	t, err := ToGeom(g)
	if err != nil {
		return nil, err
	}
	var opts []geojson.EncodeGeometryOption
	if g.SRID() != DefaultSRID && g.SRID() != 0 {
		opts = append(opts, geojson.EncodeGeometryWithCRS(&geojson.CRS{
			Type:       "name",
			Properties: map[string]interface{}{"name": fmt.Sprintf("EPSG:%d", g.SRID())},
		}))
	}
	return geojson.Marshal(t, opts...)
}

// UnmarshalGeoJSON decodes a GeoJSON geometry object. The SRID comes from a
// named CRS member when present, otherwise defaultSRID is used.
func UnmarshalGeoJSON(data []byte, defaultSRID uint32) (Geometry, error) {
	var gj geojson.Geometry
	if err := json.Unmarshal(data, &gj); err != nil {
		return nil, errors.Wrap(err, "geospatial: parse geojson")
	}
	t, err := gj.Decode()
	if err != nil {
		return nil, errors.Wrap(err, "geospatial: decode geojson")
	}
	srid := defaultSRID
	if gj.CRS != nil {
		if s, ok := sridFromCRS(gj.CRS); ok {
			srid = s
		}
	}
	return FromGeom(t, srid)
}

func sridFromCRS(crs *geojson.CRS) (uint32, bool) {
	name, _ := crs.Properties["name"].(string)
	i := strings.LastIndex(name, ":")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(name[i+1:], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// ToGeom converts g to its go-geom equivalent, SRID included.
func ToGeom(g Geometry) (geom.T, error) {
	l := geom.XY
	if g.Layout() == XYZ {
		l = geom.XYZ
	}
	srid := int(g.SRID())

	switch g := g.(type) {
	case *Point:
		p, err := geom.NewPoint(l).SetCoords(toCoord(g.v))
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: point")
		}
		return p.SetSRID(srid), nil
	case *LineString:
		ls, err := geom.NewLineString(l).SetCoords(toCoords(g.points))
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: line string")
		}
		return ls.SetSRID(srid), nil
	case *Polygon:
		p, err := geom.NewPolygon(l).SetCoords(toCoords2(g.rings))
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: polygon")
		}
		return p.SetSRID(srid), nil
	case *MultiPoint:
		mp, err := geom.NewMultiPoint(l).SetCoords(toCoords(g.points))
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: multi point")
		}
		return mp.SetSRID(srid), nil
	case *MultiLineString:
		ml, err := geom.NewMultiLineString(l).SetCoords(toCoords2(g.lines))
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: multi line string")
		}
		return ml.SetSRID(srid), nil
	case *MultiPolygon:
		coords := make([][][]geom.Coord, len(g.polygons))
		for i, p := range g.polygons {
			coords[i] = toCoords2(p)
		}
		mp, err := geom.NewMultiPolygon(l).SetCoords(coords)
		if err != nil {
			return nil, errors.Wrap(err, "geospatial: multi polygon")
		}
		return mp.SetSRID(srid), nil
	case *GeometryCollection:
		gc := geom.NewGeometryCollection()
		for i, child := range g.geoms {
			t, err := ToGeom(child)
			if err != nil {
				return nil, errors.WithMessagef(err, "collection member %d", i)
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrap(err, "geospatial: geometry collection")
			}
		}
		return gc.SetSRID(srid), nil
	default:
		return nil, errors.Errorf("geospatial: unknown geometry %T", g)
	}
}

// FromGeom converts a go-geom geometry. Only XY and XYZ layouts are supported.
func FromGeom(t geom.T, srid uint32) (Geometry, error) {
	var (
		g   Geometry
		err error
	)
	switch t := t.(type) {
	case *geom.Point:
		if t.Empty() {
			return nil, errors.Wrap(ErrUnsupportedGeoJSON, "empty point")
		}
		if _, err = fromLayout(t.Layout()); err == nil {
			var v Vector
			if v, err = fromCoord(t.Coords()); err == nil {
				g = NewPoint(v)
			}
		}
	case *geom.LineString:
		var l Layout
		if l, err = fromLayout(t.Layout()); err == nil {
			g, err = newFromCoords(t.Coords(), func(vs []Vector) (Geometry, error) {
				return NewLineString(l, vs...)
			})
		}
	case *geom.MultiPoint:
		var l Layout
		if l, err = fromLayout(t.Layout()); err == nil {
			g, err = newFromCoords(t.Coords(), func(vs []Vector) (Geometry, error) {
				return NewMultiPoint(l, vs...)
			})
		}
	case *geom.Polygon:
		var l Layout
		if l, err = fromLayout(t.Layout()); err == nil {
			var rings [][]Vector
			if rings, err = fromCoords2(t.Coords()); err == nil {
				g, err = NewPolygon(l, rings...)
			}
		}
	case *geom.MultiLineString:
		var l Layout
		if l, err = fromLayout(t.Layout()); err == nil {
			var lines [][]Vector
			if lines, err = fromCoords2(t.Coords()); err == nil {
				g, err = NewMultiLineString(l, lines...)
			}
		}
	case *geom.MultiPolygon:
		var l Layout
		if l, err = fromLayout(t.Layout()); err == nil {
			polys := make([][][]Vector, 0, t.NumPolygons())
			for _, p := range t.Coords() {
				var rings [][]Vector
				if rings, err = fromCoords2(p); err != nil {
					break
				}
				polys = append(polys, rings)
			}
			if err == nil {
				g, err = NewMultiPolygon(l, polys...)
			}
		}
	case *geom.GeometryCollection:
		var l Layout
		if l, err = fromLayout(t.Layout()); err != nil {
			return nil, err
		}
		children := make([]Geometry, 0, t.NumGeoms())
		for _, child := range t.Geoms() {
			c, err := FromGeom(child, srid)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		g, err = NewGeometryCollection(l, children...)
	default:
		return nil, errors.Wrapf(ErrUnsupportedGeoJSON, "%T", t)
	}
	if err != nil {
		return nil, err
	}
	return WithSRID(g, srid), nil
}

func fromLayout(l geom.Layout) (Layout, error) {
	switch l {
	case geom.NoLayout, geom.XY:
		return XY, nil
	case geom.XYZ:
		return XYZ, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedGeoJSON, "layout %s", l)
	}
}

func toCoord(v Vector) geom.Coord { return geom.Coord(v.Ordinates()) }

func toCoords(vs []Vector) []geom.Coord {
	out := make([]geom.Coord, len(vs))
	for i, v := range vs {
		out[i] = toCoord(v)
	}
	return out
}

func toCoords2(rings [][]Vector) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, r := range rings {
		out[i] = toCoords(r)
	}
	return out
}

func fromCoord(c geom.Coord) (Vector, error) {
	v, err := NewVector(c...)
	if err != nil {
		return Vector{}, errors.Wrap(ErrUnsupportedGeoJSON, err.Error())
	}
	return v, nil
}

func fromCoords(cs []geom.Coord) ([]Vector, error) {
	out := make([]Vector, len(cs))
	for i, c := range cs {
		v, err := fromCoord(c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func fromCoords2(css [][]geom.Coord) ([][]Vector, error) {
	out := make([][]Vector, len(css))
	for i, cs := range css {
		vs, err := fromCoords(cs)
		if err != nil {
			return nil, err
		}
		out[i] = vs
	}
	return out, nil
}

func newFromCoords(cs []geom.Coord, build func([]Vector) (Geometry, error)) (Geometry, error) {
	vs, err := fromCoords(cs)
	if err != nil {
		return nil, err
	}
	return build(vs)
}
