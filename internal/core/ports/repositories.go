package ports

import (
	"context"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// NuisanceFamilyRepository persists nuisance families.
type NuisanceFamilyRepository interface {
	Create(ctx context.Context, family *domain.NuisanceFamily) error
	GetByID(ctx context.Context, id string) (*domain.NuisanceFamily, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.NuisanceFamily, error)
}

// NuisanceTypeRepository persists nuisance types.
type NuisanceTypeRepository interface {
	Create(ctx context.Context, t *domain.NuisanceType) error
	GetByID(ctx context.Context, id string) (*domain.NuisanceType, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByFamily(ctx context.Context, familyID string) ([]domain.NuisanceType, error)
}

// NuisanceReportRepository persists nuisance reports.
type NuisanceReportRepository interface {
	Insert(ctx context.Context, report *domain.NuisanceReport) error
	GetByID(ctx context.Context, id string) (*domain.NuisanceReport, error)
	// FindInBounds returns reports whose location intersects b, newest first.
	FindInBounds(ctx context.Context, b geospatial.Bounds, limit int) ([]domain.NuisanceReport, error)
}
