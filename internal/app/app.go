// Package app wires configuration into the infrastructure and use case layers.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ecomart/backend/config"
	httpDelivery "github.com/ecomart/backend/internal/delivery/http"
	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/infrastructure/cache"
	"github.com/ecomart/backend/internal/infrastructure/catalog"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/metrics"
	"github.com/ecomart/backend/internal/usecase"
)

// Store is the key-value store the services share
type Store interface {
	domain.CacheRepository
	io.Closer
}

// App holds the fully wired services
type App struct {
	Services httpDelivery.Services
	Store    Store
	Products *catalog.Catalog
	Log      *zap.Logger
}

// Build loads the catalog, opens the configured store and constructs every service
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)

	products, err := catalog.Load(cfg.Catalog.ProductsFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	kb, err := catalog.LoadMaterials(cfg.Catalog.MaterialsFile)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	metrics.SetCatalogProducts(products.Len())
	log.Info("catalog loaded", zap.Int("products", products.Len()), zap.Int("materials", kb.Len()))

	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	log.Info("store ready", zap.String("type", cfg.Store.Type))

	matcher := usecase.NewFuzzyMatcher(usecase.MatchConfig{MaxDistance: cfg.Search.FuzzyMaxDistance})
	minter := usecase.NewReceiptMinter(store, usecase.ReceiptConfig{
		StageDelayScale: cfg.Receipt.StageDelayScale,
		TTL:             cfg.Receipt.TTL,
	}, log.Named("receipt"))
	tracker := usecase.NewSustainabilityTracker(store, usecase.TrackerConfig{
		DefaultEcoScore: cfg.Tracker.DefaultEcoScore,
		MonthlyGoal:     cfg.Tracker.MonthlyGoal,
	}, log.Named("tracker"))

	verifier := usecase.NewBiometricVerifier(store, usecase.BiometricConfig{
		MinIntervals:      cfg.Biometric.MinIntervals,
		EnrollmentSamples: cfg.Biometric.EnrollmentSamples,
		Tolerance:         cfg.Biometric.Tolerance,
		MaxFailures:       cfg.Biometric.MaxFailures,
	}, log.Named("biometric"))
	if err := verifier.Restore(ctx); err != nil {
		// Enrollment starts over; the store may come back later
		log.Warn("could not restore typing profile", zap.Error(err))
	}

	return &App{
		Services: httpDelivery.Services{
			Catalog: products,
			Search: usecase.NewSearchService(products, store, matcher, usecase.SearchConfig{
				RecommendationLimit: cfg.Search.RecommendationLimit,
				SuggestionLimit:     cfg.Search.SuggestionLimit,
				ShortQueryLength:    cfg.Search.ShortQueryLength,
				CacheTTL:            cfg.Store.TTL,
			}, log.Named("search")),
			Recommend: usecase.NewRecommender(products, kb, usecase.RecommenderConfig{
				Limit:             cfg.Recommender.Limit,
				MinKeywordMatches: cfg.Recommender.MinKeywordMatches,
			}, log.Named("recommender")),
			Materials: usecase.NewMaterialAnalyzer(products, kb),
			Biometric: verifier,
			Checkout:  usecase.NewCheckoutService(products, minter, tracker, log.Named("checkout")),
			Tracker:   tracker,
		},
		Store:    store,
		Products: products,
		Log:      log,
	}, nil
}

// OpenStore returns the store selected by cfg.Type. Redis is pinged before use.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		prefix := cfg.KeyPrefix
		if prefix != "" {
			prefix += ":"
		}
		store, err := cache.NewRedisCache(cfg.RedisURL, prefix)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
