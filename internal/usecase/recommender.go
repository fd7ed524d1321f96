package usecase

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/metrics"
)

// Weights of the overall alternative score
const (
	weightScoreDelta    = 0.4  // product sustainability score improvement
	weightCompatibility = 0.3  // accumulated material score improvement
	weightUseCase       = 0.2  // shared use-case tags
	weightPrice         = 0.05 // relative saving against the current price
	weightRating        = 0.05 // rating normalised to 0-1
)

// Benefit tags
const (
	benefitNaturalOverSynthetic = "Natural material instead of synthetic"
	benefitRenewable            = "Renewable resource"
	benefitBiodegradable        = "Biodegradable material"
	benefitUsesNatural          = "Uses natural materials"
	benefitUsesRenewable        = "Uses renewable resources"
	benefitBiodegradableParts   = "Biodegradable components"
)

// RecommenderConfig holds configuration for the alternative recommender
type RecommenderConfig struct {
	Limit             int
	MinKeywordMatches int
}

// Recommender ranks more sustainable substitutes for a product.
// It holds only static lookup tables and is safe for concurrent use.
type Recommender struct {
	catalog   domain.CatalogProvider
	materials domain.MaterialKnowledgeBase
	config    RecommenderConfig
	log       *zap.Logger
}

// NewRecommender creates a recommender over the given catalog and knowledge base
func NewRecommender(
	catalog domain.CatalogProvider,
	materials domain.MaterialKnowledgeBase,
	config RecommenderConfig,
	log *zap.Logger,
) *Recommender {
	if config.Limit <= 0 {
		config.Limit = 3
	}
	if config.MinKeywordMatches <= 0 {
		config.MinKeywordMatches = 2
	}
	return &Recommender{
		catalog:   catalog,
		materials: materials,
		config:    config,
		log:       logger.OrNop(log),
	}
}

// AlternativesFor looks up a product by id and recommends substitutes for it
func (r *Recommender) AlternativesFor(productID string) (*domain.AlternativesResult, error) {
	current, err := r.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}
	alts := r.Recommend(current)
	return &domain.AlternativesResult{
		ProductID:    current.ID,
		Alternatives: alts,
		MaxImpact:    MaxImpact(current, alts),
	}, nil
}

// Recommend returns up to Limit catalog products that are more sustainable
// substitutes for current, best first. Ties keep catalog order.
func (r *Recommender) Recommend(current domain.Product) []domain.AlternativeCandidate {
	currentUses := DetectUseCases(current, r.config.MinKeywordMatches)
	currentMaterials := r.resolve(current.Materials)

	alternatives := []domain.AlternativeCandidate{}
	for _, candidate := range r.catalog.All() {
		if candidate.ID == current.ID {
			continue
		}

		useCaseMatch := sharedUseCases(currentUses, DetectUseCases(candidate, r.config.MinKeywordMatches))
		if useCaseMatch == 0 && candidate.Category != current.Category {
			continue
		}

		compat := compareMaterials(currentMaterials, r.resolve(candidate.Materials))
		if compat.score <= 0 && candidate.SustainabilityScore <= current.SustainabilityScore {
			continue
		}

		overall := overallScore(current, candidate, compat.score, useCaseMatch)
		if overall <= 0 {
			continue
		}

		alternatives = append(alternatives, domain.AlternativeCandidate{
			Product:              candidate,
			SustainabilityReason: sustainabilityReason(current, candidate, compat.improvements),
			MaterialImprovements: compat.improvements,
			CompatibilityScore:   compat.score,
			UseCaseMatch:         useCaseMatch,
			OverallScore:         overall,
			KeyBenefits:          dedupe(compat.benefits),
		})

		r.log.Debug("alternative admitted",
			zap.String("product", current.ID),
			zap.String("candidate", candidate.ID),
			zap.Int("compatibility", compat.score),
			zap.Int("use_case_match", useCaseMatch),
			zap.Float64("overall", overall))
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].OverallScore > alternatives[j].OverallScore
	})
	if len(alternatives) > r.config.Limit {
		alternatives = alternatives[:r.config.Limit]
	}

	metrics.AddAlternativesServed(len(alternatives))
	return alternatives
}

// resolve maps material names to fact sheets, skipping unknown names
func (r *Recommender) resolve(names []string) []domain.MaterialInfo {
	out := make([]domain.MaterialInfo, 0, len(names))
	for _, name := range names {
		if info, ok := r.materials.Lookup(name); ok {
			out = append(out, info)
		}
	}
	return out
}

type compatibility struct {
	score        int
	improvements []string
	benefits     []string
}

// compareMaterials scores every candidate material that is listed as an
// alternative to one of the current materials and scores higher than it
func compareMaterials(current, candidate []domain.MaterialInfo) compatibility {
	c := compatibility{improvements: []string{}, benefits: []string{}}

	for _, alt := range candidate {
		for _, cur := range current {
			if !contains(cur.Alternatives, alt.Name) {
				continue
			}
			diff := alt.SustainabilityScore - cur.SustainabilityScore
			if diff <= 0 {
				continue
			}

			c.score += diff
			c.improvements = append(c.improvements, fmt.Sprintf("%s (%d/10) vs %s (%d/10)",
				alt.Name, alt.SustainabilityScore, cur.Name, cur.SustainabilityScore))

			if alt.Category == domain.MaterialNatural && cur.Category == domain.MaterialSynthetic {
				c.benefits = append(c.benefits, benefitNaturalOverSynthetic)
			}
			if alt.Category == domain.MaterialRenewable && cur.Category != domain.MaterialRenewable {
				c.benefits = append(c.benefits, benefitRenewable)
			}
			if alt.Category == domain.MaterialBiodegradable && cur.Category != domain.MaterialBiodegradable {
				c.benefits = append(c.benefits, benefitBiodegradable)
			}
		}
	}

	// Category sets, independent of pairwise matches
	currentCats := categorySet(current)
	candidateCats := categorySet(candidate)
	if candidateCats[domain.MaterialNatural] && !currentCats[domain.MaterialNatural] {
		c.benefits = append(c.benefits, benefitUsesNatural)
	}
	if candidateCats[domain.MaterialRenewable] && !currentCats[domain.MaterialRenewable] {
		c.benefits = append(c.benefits, benefitUsesRenewable)
	}
	if candidateCats[domain.MaterialBiodegradable] && !currentCats[domain.MaterialBiodegradable] {
		c.benefits = append(c.benefits, benefitBiodegradableParts)
	}

	return c
}

// overallScore weighs the improvement of candidate over current, floored at zero
func overallScore(current, candidate domain.Product, compat, useCaseMatch int) float64 {
	priceFactor := 0.0
	if current.Price > 0 {
		priceFactor = (current.Price - candidate.Price) / current.Price
	}

	score := weightScoreDelta*float64(candidate.SustainabilityScore-current.SustainabilityScore) +
		weightCompatibility*float64(compat) +
		weightUseCase*float64(useCaseMatch) +
		weightPrice*priceFactor +
		weightRating*(candidate.Rating/5)

	if score < 0 {
		return 0
	}
	return score
}

// MaxImpact returns the largest sustainabilityScore gain of any alternative
// over current, or 0 when there are none.
func MaxImpact(current domain.Product, alts []domain.AlternativeCandidate) int {
	if len(alts) == 0 {
		return 0
	}
	best := alts[0].SustainabilityScore - current.SustainabilityScore
	for _, alt := range alts[1:] {
		if diff := alt.SustainabilityScore - current.SustainabilityScore; diff > best {
			best = diff
		}
	}
	return best
}

func sustainabilityReason(current, candidate domain.Product, improvements []string) string {
	if n := len(improvements); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		return fmt.Sprintf("Uses %d more sustainable material%s: %s", n, plural, strings.Join(improvements, ", "))
	}
	return fmt.Sprintf("Higher overall sustainability score (%d vs %d)",
		candidate.SustainabilityScore, current.SustainabilityScore)
}

func categorySet(infos []domain.MaterialInfo) map[domain.MaterialCategory]bool {
	set := make(map[domain.MaterialCategory]bool, len(infos))
	for _, info := range infos {
		set[info.Category] = true
	}
	return set
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// dedupe keeps the first occurrence of each value
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
