package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
)

// ReportRepo implements ports.NuisanceReportRepository with pgx.
//
// Each report keeps its location twice: location is a PostGIS geometry in
// WGS 84 used for spatial predicates, and location_ewkb holds the original
// geometry (SRID and Z included) in this module's EWKB encoding. Reads
// always decode location_ewkb.
type ReportRepo struct {
	db    *DB
	order ewkb.ByteOrder
}

// NewReportRepo creates a new ReportRepo that stores EWKB in order.
func NewReportRepo(db *DB, order ewkb.ByteOrder) *ReportRepo {
	return &ReportRepo{db: db, order: order}
}

const reportColumns = `
	r.id, r.type_id, r.user_id, r.intensity, r.location_ewkb, r.created_at,
	t.id, t.family_id, t.label, COALESCE(t.description, ''), t.created_at,
	f.id, f.label, COALESCE(f.description, ''), f.created_at`

const reportJoins = `
	FROM nuisance_reports r
	JOIN nuisance_types t ON t.id = r.type_id
	JOIN nuisance_families f ON f.id = t.family_id`

// Insert stores a report and fills in its generated ID and timestamp.
func (r *ReportRepo) Insert(ctx context.Context, rep *domain.NuisanceReport) error {
	loc := rep.Location.Geometry
	gj, err := geospatial.MarshalGeoJSON(loc)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO nuisance_reports (type_id, user_id, intensity, location, location_ewkb)
		VALUES ($1, $2, $3,
		        ST_Transform(ST_Force2D(ST_SetSRID(ST_GeomFromGeoJSON($4), $5)), 4326),
		        $6)
		RETURNING id, created_at
	`, rep.TypeID, rep.UserID, rep.Intensity, string(gj), int32(loc.SRID()),
		ewkb.Value{Geometry: loc, Order: r.order},
	).Scan(&rep.ID, &rep.CreatedAt)
}

// GetByID returns a report with its type and family. A location that fails
// to decode is returned as the *ewkb.DecodeError it produced.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceReport, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	row := r.db.Pool.QueryRow(ctx, `SELECT `+reportColumns+reportJoins+` WHERE r.id = $1`, id)
	rep, err := scanReport(row)
	if err != nil {
		return nil, notFound(err)
	}
	return rep, nil
}

// FindInBounds returns reports whose location intersects b, newest first.
func (r *ReportRepo) FindInBounds(ctx context.Context, b geospatial.Bounds, limit int) ([]domain.NuisanceReport, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+reportColumns+reportJoins+`
		WHERE ST_Intersects(r.location, ST_MakeEnvelope($1, $2, $3, $4, 4326))
		ORDER BY r.created_at DESC
		LIMIT $5
	`, b.MinLon, b.MinLat, b.MaxLon, b.MaxLat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.NuisanceReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func scanReport(row pgx.Row) (*domain.NuisanceReport, error) {
	var (
		rep domain.NuisanceReport
		t   domain.NuisanceType
		f   domain.NuisanceFamily
		loc ewkb.Value
	)
	if err := row.Scan(
		&rep.ID, &rep.TypeID, &rep.UserID, &rep.Intensity, &loc, &rep.CreatedAt,
		&t.ID, &t.FamilyID, &t.Label, &t.Description, &t.CreatedAt,
		&f.ID, &f.Label, &f.Description, &f.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.Family = &f
	rep.Type = &t
	rep.Location = domain.NewLocation(loc.Geometry)
	return &rep, nil
}
