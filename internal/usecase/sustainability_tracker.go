package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
)

// KeySustainabilityData is the store key of the tracker totals
const KeySustainabilityData = "sustainability_data"

// Products scoring below this get an "alternative" tip
const tipScoreThreshold = 60

// TrackerConfig holds configuration for the sustainability tracker
type TrackerConfig struct {
	DefaultEcoScore int
	MonthlyGoal     float64 // kg CO2 saved per month
}

// persistedStats is the stored subset of SustainabilityStats
type persistedStats struct {
	CarbonFootprint float64 `json:"userCarbonFootprint"`
	EcoScore        int     `json:"ecoScore"`
}

// SustainabilityTracker keeps the running carbon savings and eco score
type SustainabilityTracker struct {
	store  domain.CacheRepository
	config TrackerConfig
	log    *zap.Logger
	mu     sync.Mutex
}

// NewSustainabilityTracker creates a new tracker
func NewSustainabilityTracker(store domain.CacheRepository, config TrackerConfig, log *zap.Logger) *SustainabilityTracker {
	if config.DefaultEcoScore <= 0 {
		config.DefaultEcoScore = 75
	}
	if config.MonthlyGoal <= 0 {
		config.MonthlyGoal = 50
	}
	return &SustainabilityTracker{store: store, config: config, log: logger.OrNop(log)}
}

// Stats returns the current totals, or the defaults when nothing is stored
func (t *SustainabilityTracker) Stats(ctx context.Context) (domain.SustainabilityStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// RecordImpact adds impact kg of saved CO2. The eco score moves +2 for a
// positive impact and -1 otherwise, within 0-100.
func (t *SustainabilityTracker) RecordImpact(ctx context.Context, impact float64) (domain.SustainabilityStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, err := t.load(ctx)
	if err != nil {
		return stats, err
	}

	stats.CarbonFootprint += impact
	if impact > 0 {
		stats.EcoScore += 2
	} else {
		stats.EcoScore--
	}
	stats.EcoScore = clamp(stats.EcoScore, 0, 100)

	data, err := json.Marshal(persistedStats{CarbonFootprint: stats.CarbonFootprint, EcoScore: stats.EcoScore})
	if err != nil {
		return stats, fmt.Errorf("encode sustainability data: %w", err)
	}
	if err := t.store.Set(ctx, KeySustainabilityData, data, 0); err != nil {
		return stats, fmt.Errorf("persist sustainability data: %w", err)
	}

	t.log.Debug("impact recorded", zap.Float64("impact", impact), zap.Int("eco_score", stats.EcoScore))
	return stats, nil
}

// Tips suggests an alternative for every low-scoring product plus general tips
func (t *SustainabilityTracker) Tips(products []domain.Product) []domain.SustainabilityTip {
	tips := []domain.SustainabilityTip{}
	for _, p := range products {
		if p.SustainabilityScore >= tipScoreThreshold {
			continue
		}
		saved := p.CarbonSaved + 2
		tips = append(tips, domain.SustainabilityTip{
			ID:              "alt-" + p.ID,
			Type:            domain.TipTypeAlternative,
			Title:           "Eco-friendly alternative to " + p.Name,
			Description:     fmt.Sprintf("Switch to a more sustainable version and save %gkg CO₂", saved),
			TargetProductID: p.ID,
			ExpectedImpact:  domain.Impact{CarbonSaved: saved, WasteReduced: 0.5},
			Urgency:         "medium",
		})
	}

	tips = append(tips, domain.SustainabilityTip{
		ID:             "tip-bulk-buying",
		Type:           domain.TipTypeTip,
		Title:          "Buy in bulk to reduce packaging waste",
		Description:    "Purchasing larger quantities reduces packaging per unit and saves money",
		ExpectedImpact: domain.Impact{CarbonSaved: 2, CostSaved: 15, WasteReduced: 1},
		Urgency:        "low",
	})
	return tips
}

func (t *SustainabilityTracker) load(ctx context.Context) (domain.SustainabilityStats, error) {
	stats := domain.SustainabilityStats{
		EcoScore:    t.config.DefaultEcoScore,
		MonthlyGoal: t.config.MonthlyGoal,
	}

	data, err := t.store.Get(ctx, KeySustainabilityData)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return stats, nil
		}
		return stats, err
	}

	var saved persistedStats
	if err := json.Unmarshal(data, &saved); err != nil {
		t.log.Warn("ignoring unreadable sustainability data", zap.Error(err))
		return stats, nil
	}
	stats.CarbonFootprint = saved.CarbonFootprint
	stats.EcoScore = clamp(saved.EcoScore, 0, 100)
	return stats, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
