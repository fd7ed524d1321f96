package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/metrics"
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	RecommendationLimit int
	SuggestionLimit     int
	ShortQueryLength    int // queries up to this many runes use plain substring suggestions
	CacheTTL            time.Duration
}

// SearchService answers catalog searches and type-ahead suggestions
type SearchService struct {
	catalog domain.CatalogProvider
	cache   domain.CacheRepository
	matcher *FuzzyMatcher
	config  SearchConfig
	log     *zap.Logger
}

// NewSearchService creates a new search service. cache may be nil to disable result caching.
func NewSearchService(
	catalog domain.CatalogProvider,
	cache domain.CacheRepository,
	matcher *FuzzyMatcher,
	config SearchConfig,
	log *zap.Logger,
) *SearchService {
	if config.RecommendationLimit <= 0 {
		config.RecommendationLimit = 3
	}
	if config.SuggestionLimit <= 0 {
		config.SuggestionLimit = 7
	}
	if config.ShortQueryLength <= 0 {
		config.ShortQueryLength = 2
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = time.Hour
	}
	if matcher == nil {
		matcher = NewFuzzyMatcher(MatchConfig{})
	}

	return &SearchService{
		catalog: catalog,
		cache:   cache,
		matcher: matcher,
		config:  config,
		log:     logger.OrNop(log),
	}
}

// Search returns the products matching query plus the highest-scoring
// products that did not match. A blank query yields empty lists.
// Flow: check cache -> match catalog -> cache -> return
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return emptySearchResult(query), nil
	}

	cacheKey := searchCacheKey(q)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		metrics.IncSearch("hit")
		// The key is case-folded; echo the caller's query.
		cached.Query = q
		return cached, nil
	}
	metrics.IncSearch("miss")

	result := s.search(q)
	s.setInCache(ctx, cacheKey, result)

	s.log.Debug("search completed",
		zap.String("query", q),
		zap.Int("matches", len(result.Matches)),
		zap.Int("recommendations", len(result.Recommendations)))

	return result, nil
}

func (s *SearchService) search(q string) *domain.SearchResult {
	result := emptySearchResult(q)

	var rest []domain.Product
	for _, p := range s.catalog.All() {
		if s.matcher.Matches(p.Name, q) ||
			s.matcher.Matches(p.Description, q) ||
			s.matcher.Matches(string(p.Category), q) {
			result.Matches = append(result.Matches, p)
		} else {
			rest = append(rest, p)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].SustainabilityScore > rest[j].SustainabilityScore
	})
	if len(rest) > s.config.RecommendationLimit {
		rest = rest[:s.config.RecommendationLimit]
	}
	result.Recommendations = append(result.Recommendations, rest...)

	return result
}

// Suggest returns up to SuggestionLimit distinct product names, categories
// and eco features matching query, in that source order.
func (s *SearchService) Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}

	short := utf8.RuneCountInString(q) <= s.config.ShortQueryLength
	suggestions := make([]string, 0, s.config.SuggestionLimit)
	for _, item := range s.suggestionSource() {
		if len(suggestions) == s.config.SuggestionLimit {
			break
		}
		var ok bool
		if short {
			ok = strings.Contains(strings.ToLower(item), q)
		} else {
			ok = s.matcher.Matches(item, q)
		}
		if ok {
			suggestions = append(suggestions, item)
		}
	}
	return suggestions
}

// suggestionSource lists names, then categories, then eco features, without duplicates
func (s *SearchService) suggestionSource() []string {
	products := s.catalog.All()
	seen := make(map[string]bool)
	var out []string
	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	for _, p := range products {
		add(p.Name)
	}
	for _, p := range products {
		add(string(p.Category))
	}
	for _, p := range products {
		for _, f := range p.EcoFeatures {
			add(f)
		}
	}
	return out
}

// searchCacheKey creates a cache key from a trimmed query.
// Format: "search:{lowercased query}"
func searchCacheKey(q string) string {
	return "search:" + strings.ToLower(q)
}

func (s *SearchService) getFromCache(ctx context.Context, key string) (*domain.SearchResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.log.Warn("discarding corrupt cached search", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *SearchService) setInCache(ctx context.Context, key string, result *domain.SearchResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Caching failures never fail the search
	if err := s.cache.Set(ctx, key, data, s.config.CacheTTL); err != nil {
		s.log.Warn("failed to cache search result", zap.String("key", key), zap.Error(err))
	}
}

func emptySearchResult(query string) *domain.SearchResult {
	return &domain.SearchResult{
		Query:           query,
		Matches:         []domain.Product{},
		Recommendations: []domain.Product{},
	}
}
