package domain

import (
	"context"
	"time"
)

// CacheRepository is the key-value persistence used for the biometric
// profile, receipts, tracker totals and cached search results.
// A ttl of zero means the entry never expires.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogProvider supplies the immutable product catalog
type CatalogProvider interface {
	All() []Product
	ByID(id string) (Product, error)
}

// MaterialKnowledgeBase supplies material fact sheets. Unknown names return false.
type MaterialKnowledgeBase interface {
	Lookup(name string) (MaterialInfo, bool)
}
