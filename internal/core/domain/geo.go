package domain

import (
	"bytes"

	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// Location is a geometry that travels as GeoJSON in API payloads.
type Location struct {
	geospatial.Geometry
}

// NewLocation wraps g.
func NewLocation(g geospatial.Geometry) Location {
	return Location{Geometry: g}
}

// IsZero reports whether no geometry is set.
func (l Location) IsZero() bool { return l.Geometry == nil }

// MarshalJSON encodes the geometry as GeoJSON, or null when unset.
func (l Location) MarshalJSON() ([]byte, error) {
	if l.Geometry == nil {
		return []byte("null"), nil
	}
	return geospatial.MarshalGeoJSON(l.Geometry)
}

// UnmarshalJSON decodes a GeoJSON geometry. Without a CRS member the SRID is
// left at 0 for the caller to resolve.
func (l *Location) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.Geometry = nil
		return nil
	}
	g, err := geospatial.UnmarshalGeoJSON(data, 0)
	if err != nil {
		return err
	}
	l.Geometry = g
	return nil
}
