package geospatial

// Shape is the dimension-agnostic geometry type.
type Shape uint8

const (
	ShapePoint Shape = iota + 1
	ShapeLineString
	ShapePolygon
	ShapeMultiPoint
	ShapeMultiLineString
	ShapeMultiPolygon
	ShapeGeometryCollection
)

var shapeNames = [...]string{
	ShapePoint:              "Point",
	ShapeLineString:         "LineString",
	ShapePolygon:            "Polygon",
	ShapeMultiPoint:         "MultiPoint",
	ShapeMultiLineString:    "MultiLineString",
	ShapeMultiPolygon:       "MultiPolygon",
	ShapeGeometryCollection: "GeometryCollection",
}

func (s Shape) String() string {
	if s == 0 || int(s) >= len(shapeNames) {
		return "Unknown"
	}
	return shapeNames[s]
}

// Kind identifies a geometry variant together with its dimensionality. The
// planar kinds carry an S suffix and the Z-enabled kinds a Z suffix.
type Kind uint8

const (
	PointS Kind = iota + 1
	LineStringS
	PolygonS
	MultiPointS
	MultiLineStringS
	MultiPolygonS
	GeometryCollectionS
	PointZ
	LineStringZ
	PolygonZ
	MultiPointZ
	MultiLineStringZ
	MultiPolygonZ
	GeometryCollectionZ
)

const zKindOffset = GeometryCollectionS

// KindOf combines a shape and a layout. Any layout other than XYZ yields the
// planar kind.
func KindOf(s Shape, l Layout) Kind {
	k := Kind(s)
	if l == XYZ {
		k += zKindOffset
	}
	return k
}

// Shape strips the dimensionality from k.
func (k Kind) Shape() Shape {
	if k > zKindOffset {
		return Shape(k - zKindOffset)
	}
	return Shape(k)
}

// Layout returns XYZ for the Z kinds and XY otherwise.
func (k Kind) Layout() Layout {
	if k > zKindOffset {
		return XYZ
	}
	return XY
}

// Valid reports whether k is one of the 14 defined kinds.
func (k Kind) Valid() bool { return k >= PointS && k <= GeometryCollectionZ }

func (k Kind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	if k.Layout() == XYZ {
		return k.Shape().String() + "Z"
	}
	return k.Shape().String() + "S"
}
