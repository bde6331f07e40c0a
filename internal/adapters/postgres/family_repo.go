package postgres

import (
	"context"

	"github.com/samirrijal/signuis/internal/core/domain"
)

// FamilyRepo implements ports.NuisanceFamilyRepository with pgx.
type FamilyRepo struct {
	db *DB
}

// NewFamilyRepo creates a new FamilyRepo.
func NewFamilyRepo(db *DB) *FamilyRepo {
	return &FamilyRepo{db: db}
}

// Create inserts a family and fills in its generated ID and timestamp.
func (r *FamilyRepo) Create(ctx context.Context, f *domain.NuisanceFamily) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO nuisance_families (label, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, created_at
	`, f.Label, f.Description).Scan(&f.ID, &f.CreatedAt)
}

// GetByID returns a family by UUID.
func (r *FamilyRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceFamily, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	var f domain.NuisanceFamily
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, label, COALESCE(description, ''), created_at
		FROM nuisance_families WHERE id = $1
	`, id).Scan(&f.ID, &f.Label, &f.Description, &f.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// Exists reports whether a family with the given UUID exists.
func (r *FamilyRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM nuisance_families WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// List returns all families ordered by label.
func (r *FamilyRepo) List(ctx context.Context) ([]domain.NuisanceFamily, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, label, COALESCE(description, ''), created_at
		FROM nuisance_families
		ORDER BY label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []domain.NuisanceFamily
	for rows.Next() {
		var f domain.NuisanceFamily
		if err := rows.Scan(&f.ID, &f.Label, &f.Description, &f.CreatedAt); err != nil {
			return nil, err
		}
		families = append(families, f)
	}
	return families, rows.Err()
}
