package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomart/backend/internal/domain"
)

// stubCatalog is an in-memory CatalogProvider for tests
type stubCatalog struct {
	products []domain.Product
}

func (c *stubCatalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *stubCatalog) ByID(id string) (domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

// stubMaterials is a map-backed MaterialKnowledgeBase
type stubMaterials map[string]domain.MaterialInfo

func (m stubMaterials) Lookup(name string) (domain.MaterialInfo, bool) {
	info, ok := m[name]
	return info, ok
}

// failingStore fails every operation
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, domain.ErrStoreUnavailable
}
func (failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return domain.ErrStoreUnavailable
}
func (failingStore) Delete(ctx context.Context, key string) error { return domain.ErrStoreUnavailable }
func (failingStore) Exists(ctx context.Context, key string) (bool, error) {
	return false, domain.ErrStoreUnavailable
}

func testProduct(id, name, description string, category domain.Category, score int, materials ...string) domain.Product {
	return domain.Product{
		ID:                  id,
		Name:                name,
		Description:         description,
		Price:               20,
		Category:            category,
		SustainabilityScore: score,
		CarbonSaved:         1,
		Rating:              4,
		EcoFeatures:         []string{},
		Materials:           materials,
		Certifications:      []string{},
	}
}

func testMaterials() stubMaterials {
	return stubMaterials{
		"Recycled PET": {Name: "Recycled PET", SustainabilityScore: 6, Category: domain.MaterialRecycled,
			Alternatives: []string{"Glass", "Stainless Steel", "Bamboo"}},
		"Stainless Steel": {Name: "Stainless Steel", SustainabilityScore: 7, Category: domain.MaterialSynthetic,
			Alternatives: []string{"Glass", "Bamboo", "Ceramic"}},
		"Glass": {Name: "Glass", SustainabilityScore: 8, Category: domain.MaterialSynthetic,
			Alternatives: []string{"Bamboo", "Stainless Steel", "Ceramic"}},
		"Bamboo": {Name: "Bamboo", SustainabilityScore: 9, Category: domain.MaterialRenewable,
			Alternatives: []string{"Recycled Wood", "Hemp", "Cork"}},
		"Recycled Rubber": {Name: "Recycled Rubber", SustainabilityScore: 6, Category: domain.MaterialRecycled,
			Alternatives: []string{"Natural Rubber", "Cork", "Bamboo"}},
		"Cork": {Name: "Cork", SustainabilityScore: 9, Category: domain.MaterialRenewable,
			Alternatives: []string{"Bamboo", "Recycled Rubber", "Natural Rubber"}},
		"Organic Cotton": {Name: "Organic Cotton", SustainabilityScore: 7, Category: domain.MaterialNatural,
			Alternatives: []string{"Hemp", "Bamboo Fiber", "Recycled Cotton"}},
		"Corn Starch": {Name: "Corn Starch", SustainabilityScore: 7, Category: domain.MaterialBiodegradable,
			Alternatives: []string{"Bamboo", "Hemp", "Coconut Fiber"}},
		"Clay": {Name: "Clay", SustainabilityScore: 3, Category: domain.MaterialNatural,
			Alternatives: []string{}},
	}
}

// keyFailingStore wraps a store and fails Set for a single key
type keyFailingStore struct {
	domain.CacheRepository
	failKey string
}

func (s keyFailingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == s.failKey {
		return domain.ErrStoreUnavailable
	}
	return s.CacheRepository.Set(ctx, key, value, ttl)
}
