package usecases_test

import (
	"context"
	"errors"
	"sync"

	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/pkg/geospatial"
)

// --- Mock NuisanceFamilyRepository ---

type mockFamilyRepo struct {
	createFn  func(ctx context.Context, f *domain.NuisanceFamily) error
	getByIDFn func(ctx context.Context, id string) (*domain.NuisanceFamily, error)
	existsFn  func(ctx context.Context, id string) (bool, error)
	listFn    func(ctx context.Context) ([]domain.NuisanceFamily, error)
}

func (m *mockFamilyRepo) Create(ctx context.Context, f *domain.NuisanceFamily) error {
	if m.createFn != nil {
		return m.createFn(ctx, f)
	}
	return nil
}

func (m *mockFamilyRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceFamily, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockFamilyRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func (m *mockFamilyRepo) List(ctx context.Context) ([]domain.NuisanceFamily, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// --- Mock NuisanceTypeRepository ---

type mockTypeRepo struct {
	createFn       func(ctx context.Context, t *domain.NuisanceType) error
	getByIDFn      func(ctx context.Context, id string) (*domain.NuisanceType, error)
	existsFn       func(ctx context.Context, id string) (bool, error)
	listByFamilyFn func(ctx context.Context, familyID string) ([]domain.NuisanceType, error)
}

func (m *mockTypeRepo) Create(ctx context.Context, t *domain.NuisanceType) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockTypeRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceType, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTypeRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func (m *mockTypeRepo) ListByFamily(ctx context.Context, familyID string) ([]domain.NuisanceType, error) {
	if m.listByFamilyFn != nil {
		return m.listByFamilyFn(ctx, familyID)
	}
	return nil, nil
}

// --- Mock NuisanceReportRepository ---

type mockReportRepo struct {
	insertFn       func(ctx context.Context, r *domain.NuisanceReport) error
	getByIDFn      func(ctx context.Context, id string) (*domain.NuisanceReport, error)
	findInBoundsFn func(ctx context.Context, b geospatial.Bounds, limit int) ([]domain.NuisanceReport, error)
}

func (m *mockReportRepo) Insert(ctx context.Context, r *domain.NuisanceReport) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, r)
	}
	return nil
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*domain.NuisanceReport, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockReportRepo) FindInBounds(ctx context.Context, b geospatial.Bounds, limit int) ([]domain.NuisanceReport, error) {
	if m.findInBoundsFn != nil {
		return m.findInBoundsFn(ctx, b, limit)
	}
	return nil, nil
}

// --- In-memory CacheService ---

var errCacheMiss = errors.New("cache miss")

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  map[string]int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttl: map[string]int{}}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttl[key] = ttlSeconds
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	reportCreatedFn func(ctx context.Context, e *domain.ReportCreatedEvent) error
	published       []*domain.ReportCreatedEvent
}

func (m *mockPublisher) PublishReportCreated(ctx context.Context, e *domain.ReportCreatedEvent) error {
	m.published = append(m.published, e)
	if m.reportCreatedFn != nil {
		return m.reportCreatedFn(ctx, e)
	}
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }
