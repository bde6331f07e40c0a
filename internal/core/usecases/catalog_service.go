package usecases

import (
	"context"
	"strings"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/core/ports"
)

// CatalogService handles nuisance families and types.
type CatalogService struct {
	families ports.NuisanceFamilyRepository
	types    ports.NuisanceTypeRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(families ports.NuisanceFamilyRepository, types ports.NuisanceTypeRepository) *CatalogService {
	return &CatalogService{families: families, types: types}
}

// CreateFamily validates and stores a new family.
func (s *CatalogService) CreateFamily(ctx context.Context, in domain.CreateNuisanceFamily) (*domain.NuisanceFamily, error) {
	var verr domain.ValidationError
	label := strings.TrimSpace(in.Label)
	if label == "" {
		verr.Add("label", "label is required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	family := &domain.NuisanceFamily{Label: label, Description: strings.TrimSpace(in.Description)}
	if err := s.families.Create(ctx, family); err != nil {
		return nil, err
	}
	return family, nil
}

// ListFamilies returns all families.
func (s *CatalogService) ListFamilies(ctx context.Context) ([]domain.NuisanceFamily, error) {
	return s.families.List(ctx)
}

// GetFamily returns a family by ID.
func (s *CatalogService) GetFamily(ctx context.Context, id string) (*domain.NuisanceFamily, error) {
	return s.families.GetByID(ctx, id)
}

// CreateType validates and stores a new type under an existing family.
func (s *CatalogService) CreateType(ctx context.Context, in domain.CreateNuisanceType) (*domain.NuisanceType, error) {
	var verr domain.ValidationError
	label := strings.TrimSpace(in.Label)
	if label == "" {
		verr.Add("label", "label is required")
	}
	if in.FamilyID == "" {
		verr.Add("family_id", "family_id is required")
	} else {
		ok, err := s.families.Exists(ctx, in.FamilyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			verr.Add("family_id", "unknown nuisance family")
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	t := &domain.NuisanceType{
		FamilyID:    in.FamilyID,
		Label:       label,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTypes returns the types of a family. An unknown family is ErrNotFound.
func (s *CatalogService) ListTypes(ctx context.Context, familyID string) ([]domain.NuisanceType, error) {
	ok, err := s.families.Exists(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.types.ListByFamily(ctx, familyID)
}

// GetType returns a type by ID.
func (s *CatalogService) GetType(ctx context.Context, id string) (*domain.NuisanceType, error) {
	return s.types.GetByID(ctx, id)
}
