package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/signuis/internal/core/usecases"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GeometryOptions are the defaults applied by the geometry endpoints.
type GeometryOptions struct {
	DefaultSRID uint32
	ByteOrder   ewkb.ByteOrder
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog   *usecases.CatalogService
	Reporting *usecases.ReportingService
	Geometry  GeometryOptions
	NATS      *nats.Conn
	DB        Pinger
	Cache     Pinger
}

func (d *Dependencies) defaultSRID() uint32 {
	if d.Geometry.DefaultSRID == 0 {
		return geospatial.DefaultSRID
	}
	return d.Geometry.DefaultSRID
}
