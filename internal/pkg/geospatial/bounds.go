package geospatial

import "math"

const earthRadiusKm = 6371.0

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Center returns the midpoint of b as (lat, lon).
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Contains reports whether the (lat, lon) position lies inside b.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Envelope returns the bounding box of g, reading X as longitude and Y as
// latitude. ok is false for empty geometries.
func Envelope(g Geometry) (b Bounds, ok bool) {
	ForEachVector(g, func(v Vector) {
		if !ok {
			b = Bounds{MinLat: v.Y(), MinLon: v.X(), MaxLat: v.Y(), MaxLon: v.X()}
			ok = true
			return
		}
		b.MinLat = math.Min(b.MinLat, v.Y())
		b.MaxLat = math.Max(b.MaxLat, v.Y())
		b.MinLon = math.Min(b.MinLon, v.X())
		b.MaxLon = math.Max(b.MaxLon, v.X())
	})
	return b, ok
}

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// BoundingBox returns a bounding box around a point with the given radius in meters.
func BoundingBox(lat, lon, radiusMeters float64) Bounds {
	latDelta := radiusMeters / 111320.0
	lonDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return Bounds{
		MinLat: lat - latDelta,
		MinLon: lon - lonDelta,
		MaxLat: lat + latDelta,
		MaxLon: lon + lonDelta,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
