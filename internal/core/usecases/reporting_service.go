package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/core/ports"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
	"github.com/samirrijal/signuis/internal/pkg/metrics"
	"github.com/samirrijal/signuis/internal/pkg/telemetry"
)

var tracer = otel.Tracer("github.com/samirrijal/signuis/internal/core/usecases")

const (
	reportCacheTTL     = 600 // seconds
	defaultRadius      = 500.0
	maxRadius          = 10000.0
	maxNearbyLimit     = 50
	nearbyCandidateCap = 500
)

// ReportingOptions configures geometry handling.
type ReportingOptions struct {
	// DefaultSRID is assigned to locations that arrive without one.
	DefaultSRID uint32
	// ByteOrder is used for stored, cached and published EWKB.
	ByteOrder ewkb.ByteOrder
}

// ReportingService handles nuisance reports.
type ReportingService struct {
	reports   ports.NuisanceReportRepository
	types     ports.NuisanceTypeRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	opts      ReportingOptions
}

// NewReportingService creates a new ReportingService. cache and publisher may be nil.
func NewReportingService(
	reports ports.NuisanceReportRepository,
	types ports.NuisanceTypeRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
	opts ReportingOptions,
) *ReportingService {
	if opts.DefaultSRID == 0 {
		opts.DefaultSRID = geospatial.DefaultSRID
	}
	return &ReportingService{reports: reports, types: types, cache: cache, publisher: publisher, opts: opts}
}

// cachedReport is the cache representation of a report. The location is
// kept as EWKB rather than GeoJSON.
type cachedReport struct {
	ID        string               `json:"id"`
	TypeID    string               `json:"type_id"`
	Type      *domain.NuisanceType `json:"type,omitempty"`
	UserID    *string              `json:"user_id,omitempty"`
	Intensity int                  `json:"intensity"`
	CreatedAt time.Time            `json:"created_at"`
	Location  []byte               `json:"location_ewkb"`
}

func reportCacheKey(id string) string { return "reports:id:" + id }

// ReportNuisance validates and stores a report, primes the cache and
// publishes a ReportCreated event. A failed publish is logged only.
func (s *ReportingService) ReportNuisance(ctx context.Context, in domain.CreateNuisanceReport) (*domain.NuisanceReport, error) {
	ctx, span := tracer.Start(ctx, "ReportingService.ReportNuisance",
		trace.WithAttributes(telemetry.AttrTypeID.String(in.TypeID)))
	defer span.End()

	if err := s.validateReport(ctx, in); err != nil {
		span.SetStatus(codes.Error, "invalid report")
		return nil, err
	}

	loc := in.Location.Geometry
	switch {
	case in.SRID != nil:
		loc = geospatial.WithSRID(loc, *in.SRID)
	case loc.SRID() == 0:
		loc = geospatial.WithSRID(loc, s.opts.DefaultSRID)
	}
	span.SetAttributes(
		telemetry.AttrGeometryKind.String(loc.Kind().String()),
		telemetry.AttrGeometrySRID.Int64(int64(loc.SRID())),
	)

	report := &domain.NuisanceReport{
		TypeID:    in.TypeID,
		UserID:    in.UserID,
		Location:  domain.NewLocation(loc),
		Intensity: in.Intensity,
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, fmt.Errorf("insert report: %w", err)
	}
	metrics.ReportsCreated.WithLabelValues(loc.Kind().String()).Inc()

	location := ewkb.EncodeWithByteOrder(loc, s.opts.ByteOrder)
	metrics.GeometryEncodedBytes.Observe(float64(len(location)))
	span.SetAttributes(telemetry.AttrGeometryBytes.Int(len(location)))
	s.storeCached(ctx, report, location)

	if s.publisher != nil {
		event := &domain.ReportCreatedEvent{
			ReportID:  report.ID,
			TypeID:    report.TypeID,
			Intensity: report.Intensity,
			Kind:      loc.Kind().String(),
			SRID:      loc.SRID(),
			Location:  ewkb.EncodeHex(loc, s.opts.ByteOrder),
			CreatedAt: report.CreatedAt,
		}
		if err := s.publisher.PublishReportCreated(ctx, event); err != nil {
			span.RecordError(err)
			metrics.EventPublishErrors.WithLabelValues("signuis.reports.created").Inc()
			slog.WarnContext(ctx, "publish report created", "report_id", report.ID, "error", err)
		}
	}

	return report, nil
}

func (s *ReportingService) validateReport(ctx context.Context, in domain.CreateNuisanceReport) error {
	var verr domain.ValidationError
	if in.Intensity < domain.MinIntensity || in.Intensity > domain.MaxIntensity {
		verr.Add("intensity", fmt.Sprintf("intensity must be between %d and %d", domain.MinIntensity, domain.MaxIntensity))
	}
	if in.SRID != nil && (*in.SRID == 0 || *in.SRID > domain.MaxSRID) {
		verr.Add("srid", fmt.Sprintf("srid must be between 1 and %d", domain.MaxSRID))
	}
	if in.Location.IsZero() {
		verr.Add("location", "location is required")
	} else if in.Location.Empty() {
		verr.Add("location", "location must not be empty")
	} else if in.SRID == nil && in.Location.SRID() > domain.MaxSRID {
		verr.Add("location", fmt.Sprintf("location srid must not exceed %d", domain.MaxSRID))
	}
	if strings.TrimSpace(in.TypeID) == "" {
		verr.Add("type_id", "type_id is required")
	} else {
		ok, err := s.types.Exists(ctx, in.TypeID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("type_id", "unknown nuisance type")
		}
	}
	return verr.Err()
}

// GetReport returns a report, reading through the cache.
func (s *ReportingService) GetReport(ctx context.Context, id string) (*domain.NuisanceReport, error) {
	ctx, span := tracer.Start(ctx, "ReportingService.GetReport",
		trace.WithAttributes(telemetry.AttrReportID.String(id)))
	defer span.End()

	if report, ok := s.loadCached(ctx, id); ok {
		span.SetAttributes(telemetry.AttrCacheHit.Bool(true))
		return report, nil
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if r := ewkb.ReasonOf(err); r != 0 {
			metrics.GeometryDecodeErrors.WithLabelValues(r.String()).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "stored location is corrupt")
		}
		return nil, err
	}
	s.storeCached(ctx, report, ewkb.EncodeWithByteOrder(report.Location.Geometry, s.opts.ByteOrder))
	return report, nil
}

// LocationEWKB returns the location of a report encoded in order.
func (s *ReportingService) LocationEWKB(ctx context.Context, id string, order ewkb.ByteOrder) ([]byte, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	b := ewkb.EncodeWithByteOrder(report.Location.Geometry, order)
	metrics.GeometryEncodedBytes.Observe(float64(len(b)))
	return b, nil
}

// FindNearby returns reports within radiusMeters of (lat, lon), closest
// first. Candidates come from a bounding-box query and are then filtered
// by great-circle distance to the centre of their envelope. Locations that
// are not in WGS 84 cannot be measured this way and follow the measured
// ones without a distance.
func (s *ReportingService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.NuisanceReport, error) {
	ctx, span := tracer.Start(ctx, "ReportingService.FindNearby")
	defer span.End()

	var verr domain.ValidationError
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		verr.Add("lat", "lat must be between -90 and 90")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		verr.Add("lon", "lon must be between -180 and 180")
	}
	if radiusMeters < 0 || radiusMeters > maxRadius {
		verr.Add("radius", fmt.Sprintf("radius must be between 0 and %.0f", maxRadius))
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	if radiusMeters == 0 {
		radiusMeters = defaultRadius
	}
	if limit <= 0 || limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}
	span.SetAttributes(telemetry.AttrNearbyRadius.Float64(radiusMeters), telemetry.AttrNearbyLimit.Int(limit))

	candidates, err := s.reports.FindInBounds(ctx, geospatial.BoundingBox(lat, lon, radiusMeters), nearbyCandidateCap)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var measured, unmeasured []domain.NuisanceReport
	for _, r := range candidates {
		g := r.Location.Geometry
		if g == nil {
			continue
		}
		if g.SRID() != geospatial.DefaultSRID {
			unmeasured = append(unmeasured, r)
			continue
		}
		env, ok := geospatial.Envelope(g)
		if !ok {
			continue
		}
		cLat, cLon := env.Center()
		d := geospatial.Haversine(lat, lon, cLat, cLon)
		if d > radiusMeters && !env.Contains(lat, lon) {
			continue
		}
		r.Distance = &d
		measured = append(measured, r)
	}
	sort.SliceStable(measured, func(i, j int) bool { return *measured[i].Distance < *measured[j].Distance })

	out := append(measured, unmeasured...)
	if len(out) > limit {
		out = out[:limit]
	}
	span.SetAttributes(telemetry.AttrNearbyResults.Int(len(out)))
	return out, nil
}

// IndexReport handles a ReportCreated event: it decodes the EWKB carried by
// the event and warms the report cache with it.
func (s *ReportingService) IndexReport(ctx context.Context, event *domain.ReportCreatedEvent) (*domain.NuisanceReport, error) {
	ctx, span := tracer.Start(ctx, "ReportingService.IndexReport",
		trace.WithAttributes(telemetry.AttrReportID.String(event.ReportID)))
	defer span.End()

	g, err := ewkb.DecodeHex(event.Location)
	if err != nil {
		if r := ewkb.ReasonOf(err); r != 0 {
			metrics.GeometryDecodeErrors.WithLabelValues(r.String()).Inc()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode location")
		return nil, fmt.Errorf("decode report %s location: %w", event.ReportID, err)
	}

	report := &domain.NuisanceReport{
		ID:        event.ReportID,
		TypeID:    event.TypeID,
		Location:  domain.NewLocation(g),
		Intensity: event.Intensity,
		CreatedAt: event.CreatedAt,
	}
	if s.types != nil {
		if t, err := s.types.GetByID(ctx, event.TypeID); err == nil {
			report.Type = t
		}
	}
	s.storeCached(ctx, report, ewkb.EncodeWithByteOrder(g, s.opts.ByteOrder))
	metrics.ReportsIndexed.WithLabelValues(g.Kind().String()).Inc()
	return report, nil
}

func (s *ReportingService) loadCached(ctx context.Context, id string) (*domain.NuisanceReport, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, reportCacheKey(id))
	if err != nil {
		metrics.CacheMisses.WithLabelValues("report").Inc()
		return nil, false
	}
	var cr cachedReport
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, false
	}
	g, err := ewkb.Decode(cr.Location)
	if err != nil {
		metrics.GeometryDecodeErrors.WithLabelValues(ewkb.ReasonOf(err).String()).Inc()
		slog.WarnContext(ctx, "dropping corrupt cached report", "report_id", id, "error", err)
		_ = s.cache.Delete(ctx, reportCacheKey(id))
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("report").Inc()
	return &domain.NuisanceReport{
		ID:        cr.ID,
		TypeID:    cr.TypeID,
		Type:      cr.Type,
		UserID:    cr.UserID,
		Location:  domain.NewLocation(g),
		Intensity: cr.Intensity,
		CreatedAt: cr.CreatedAt,
	}, true
}

func (s *ReportingService) storeCached(ctx context.Context, r *domain.NuisanceReport, location []byte) {
	if s.cache == nil || r.ID == "" {
		return
	}
	data, err := json.Marshal(cachedReport{
		ID:        r.ID,
		TypeID:    r.TypeID,
		Type:      r.Type,
		UserID:    r.UserID,
		Intensity: r.Intensity,
		CreatedAt: r.CreatedAt,
		Location:  location,
	})
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, reportCacheKey(r.ID), data, reportCacheTTL)
}
