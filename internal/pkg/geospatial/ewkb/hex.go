package ewkb

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// EncodeHex encodes g to the upper-case hex text PostGIS prints for geometry
// columns.
func EncodeHex(g geospatial.Geometry, order ByteOrder) string {
	return FormatHex(EncodeWithByteOrder(g, order))
}

// FormatHex renders already encoded EWKB as upper-case hex text.
func FormatHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex decodes a geometry from hex text. Surrounding whitespace and an
// optional "\x" bytea prefix are accepted.
func DecodeHex(s string) (geospatial.Geometry, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), `\x`)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "ewkb: invalid hex")
	}
	return Decode(data)
}
