package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/core/usecases"
)

func TestCatalogService_CreateFamily(t *testing.T) {
	families := &mockFamilyRepo{
		createFn: func(ctx context.Context, f *domain.NuisanceFamily) error {
			f.ID = "fam-1"
			return nil
		},
	}
	svc := usecases.NewCatalogService(families, &mockTypeRepo{})

	f, err := svc.CreateFamily(context.Background(), domain.CreateNuisanceFamily{Label: "  Noise  ", Description: "loud things"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != "fam-1" {
		t.Errorf("expected id fam-1, got %s", f.ID)
	}
	if f.Label != "Noise" {
		t.Errorf("expected trimmed label, got %q", f.Label)
	}
}

func TestCatalogService_CreateFamily_EmptyLabel(t *testing.T) {
	called := false
	families := &mockFamilyRepo{
		createFn: func(ctx context.Context, f *domain.NuisanceFamily) error {
			called = true
			return nil
		},
	}
	svc := usecases.NewCatalogService(families, &mockTypeRepo{})

	_, err := svc.CreateFamily(context.Background(), domain.CreateNuisanceFamily{Label: "   "})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Path[0] != "label" {
		t.Errorf("unexpected issues: %+v", verr.Issues)
	}
	if called {
		t.Error("repo should not be called for invalid input")
	}
}

func TestCatalogService_CreateType_UnknownFamily(t *testing.T) {
	families := &mockFamilyRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := usecases.NewCatalogService(families, &mockTypeRepo{})

	_, err := svc.CreateType(context.Background(), domain.CreateNuisanceType{FamilyID: "nope", Label: "Traffic"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Issues[0].Path[0] != "family_id" {
		t.Errorf("expected family_id issue, got %+v", verr.Issues)
	}
}

func TestCatalogService_CreateType_CollectsAllIssues(t *testing.T) {
	svc := usecases.NewCatalogService(&mockFamilyRepo{}, &mockTypeRepo{})

	_, err := svc.CreateType(context.Background(), domain.CreateNuisanceType{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("expected 2 issues, got %d", len(verr.Issues))
	}
}

func TestCatalogService_CreateType(t *testing.T) {
	families := &mockFamilyRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return id == "fam-1", nil },
	}
	types := &mockTypeRepo{
		createFn: func(ctx context.Context, nt *domain.NuisanceType) error {
			nt.ID = "type-1"
			return nil
		},
	}
	svc := usecases.NewCatalogService(families, types)

	nt, err := svc.CreateType(context.Background(), domain.CreateNuisanceType{FamilyID: "fam-1", Label: "Traffic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nt.ID != "type-1" || nt.FamilyID != "fam-1" {
		t.Errorf("unexpected type: %+v", nt)
	}
}

func TestCatalogService_ListTypes_UnknownFamily(t *testing.T) {
	svc := usecases.NewCatalogService(&mockFamilyRepo{}, &mockTypeRepo{})

	_, err := svc.ListTypes(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_ListTypes(t *testing.T) {
	families := &mockFamilyRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	types := &mockTypeRepo{
		listByFamilyFn: func(ctx context.Context, familyID string) ([]domain.NuisanceType, error) {
			return []domain.NuisanceType{{ID: "t1", FamilyID: familyID, Label: "Traffic"}}, nil
		},
	}
	svc := usecases.NewCatalogService(families, types)

	list, err := svc.ListTypes(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].FamilyID != "fam-1" {
		t.Errorf("unexpected types: %+v", list)
	}
}
