package telemetry

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys shared by the services.
const (
	AttrReportID      = attribute.Key("signuis.report.id")
	AttrTypeID        = attribute.Key("signuis.type.id")
	AttrGeometryKind  = attribute.Key("signuis.geometry.kind")
	AttrGeometrySRID  = attribute.Key("signuis.geometry.srid")
	AttrGeometryBytes = attribute.Key("signuis.geometry.bytes")
	AttrCacheHit      = attribute.Key("signuis.cache.hit")
	AttrNearbyRadius  = attribute.Key("signuis.nearby.radius")
	AttrNearbyLimit   = attribute.Key("signuis.nearby.limit")
	AttrNearbyResults = attribute.Key("signuis.nearby.results")
)
