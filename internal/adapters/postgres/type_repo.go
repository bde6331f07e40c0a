package postgres

import (
	"context"

	"github.com/samirrijal/signuis/internal/core/domain"
)

// TypeRepo implements ports.NuisanceTypeRepository with pgx.
type TypeRepo struct {
	db *DB
}

// NewTypeRepo creates a new TypeRepo.
func NewTypeRepo(db *DB) *TypeRepo {
	return &TypeRepo{db: db}
}

// Create inserts a type and fills in its generated ID and timestamp.
func (r *TypeRepo) Create(ctx context.Context, t *domain.NuisanceType) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO nuisance_types (family_id, label, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, created_at
	`, t.FamilyID, t.Label, t.Description).Scan(&t.ID, &t.CreatedAt)
}

// GetByID returns a type together with its family.
func (r *TypeRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceType, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	var t domain.NuisanceType
	var f domain.NuisanceFamily
	err := r.db.Pool.QueryRow(ctx, `
		SELECT t.id, t.family_id, t.label, COALESCE(t.description, ''), t.created_at,
		       f.id, f.label, COALESCE(f.description, ''), f.created_at
		FROM nuisance_types t
		JOIN nuisance_families f ON f.id = t.family_id
		WHERE t.id = $1
	`, id).Scan(
		&t.ID, &t.FamilyID, &t.Label, &t.Description, &t.CreatedAt,
		&f.ID, &f.Label, &f.Description, &f.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	t.Family = &f
	return &t, nil
}

// Exists reports whether a type with the given UUID exists.
func (r *TypeRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM nuisance_types WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// ListByFamily returns the types of a family ordered by label.
func (r *TypeRepo) ListByFamily(ctx context.Context, familyID string) ([]domain.NuisanceType, error) {
	if !validID(familyID) {
		return nil, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, family_id, label, COALESCE(description, ''), created_at
		FROM nuisance_types
		WHERE family_id = $1
		ORDER BY label
	`, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.NuisanceType
	for rows.Next() {
		var t domain.NuisanceType
		if err := rows.Scan(&t.ID, &t.FamilyID, &t.Label, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
