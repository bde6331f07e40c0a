package ewkb

import "github.com/samirrijal/signuis/internal/pkg/geospatial"

// ZFlag marks a Z-enabled geometry in the type code.
const ZFlag uint32 = 0x80000000

// Base type codes, shared with WKB.
const (
	pointCode              uint32 = 1
	lineStringCode         uint32 = 2
	polygonCode            uint32 = 3
	multiPointCode         uint32 = 4
	multiLineStringCode    uint32 = 5
	multiPolygonCode       uint32 = 6
	geometryCollectionCode uint32 = 7
)

// EncodeTypeCode returns the wire type code of kind.
func EncodeTypeCode(kind geospatial.Kind) uint32 {
	code := uint32(kind.Shape())
	if kind.Layout() == geospatial.XYZ {
		code |= ZFlag
	}
	return code
}

// DecodeTypeCode maps a wire type code back to its kind. Any code whose low
// bits, once ZFlag is cleared, fall outside 1..7 is rejected.
func DecodeTypeCode(code uint32) (geospatial.Kind, error) {
	layout := geospatial.XY
	if code&ZFlag != 0 {
		layout = geospatial.XYZ
	}
	base := code &^ ZFlag
	if base < pointCode || base > geometryCollectionCode {
		return 0, &DecodeError{Reason: UnknownTypeCode, Code: code}
	}
	return geospatial.KindOf(geospatial.Shape(base), layout), nil
}
