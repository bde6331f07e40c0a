package ewkb

import (
	"database/sql/driver"

	"github.com/pkg/errors"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// Value binds a geometry to a bytea column. A nil Geometry maps to NULL.
type Value struct {
	Geometry geospatial.Geometry
	// Order is the byte order used by Value(). The zero value is big endian.
	Order ByteOrder
}

// Scan implements sql.Scanner. Raw bytes are decoded as EWKB and strings as
// EWKB hex.
func (v *Value) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		v.Geometry = nil
		return nil
	case []byte:
		if len(src) == 0 {
			v.Geometry = nil
			return nil
		}
		g, err := Decode(src)
		if err != nil {
			return err
		}
		v.Geometry = g
		return nil
	case string:
		g, err := DecodeHex(src)
		if err != nil {
			return err
		}
		v.Geometry = g
		return nil
	default:
		return errors.Errorf("ewkb: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	if v.Geometry == nil {
		return nil, nil
	}
	return EncodeWithByteOrder(v.Geometry, v.Order), nil
}
