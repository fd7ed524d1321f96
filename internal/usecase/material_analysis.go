package usecase

import (
	"github.com/ecomart/backend/internal/domain"
)

const (
	maxListedAlternatives = 3
	materialUnavailable   = "Information not available for this material."
)

// MaterialAnalyzer explains the materials of catalog products
type MaterialAnalyzer struct {
	catalog   domain.CatalogProvider
	materials domain.MaterialKnowledgeBase
}

// NewMaterialAnalyzer creates a new material analyzer
func NewMaterialAnalyzer(catalog domain.CatalogProvider, materials domain.MaterialKnowledgeBase) *MaterialAnalyzer {
	return &MaterialAnalyzer{catalog: catalog, materials: materials}
}

// AnalyzeByID looks up a product and analyzes its materials
func (a *MaterialAnalyzer) AnalyzeByID(productID string) (*domain.MaterialAnalysis, error) {
	p, err := a.catalog.ByID(productID)
	if err != nil {
		return nil, err
	}
	return a.Analyze(p), nil
}

// Analyze reports each material of p in listed order. Unknown materials are
// reported as unavailable rather than failing the analysis.
func (a *MaterialAnalyzer) Analyze(p domain.Product) *domain.MaterialAnalysis {
	analysis := &domain.MaterialAnalysis{
		ProductID:        p.ID,
		ProductScore:     p.SustainabilityScore,
		ProductScoreBand: ProductScoreBand(p.SustainabilityScore),
		Materials:        make([]domain.MaterialReport, 0, len(p.Materials)),
	}

	for _, name := range p.Materials {
		info, ok := a.materials.Lookup(name)
		if !ok {
			analysis.Materials = append(analysis.Materials, domain.MaterialReport{
				Name:    name,
				Message: materialUnavailable,
			})
			continue
		}

		alternatives := info.Alternatives
		if len(alternatives) > maxListedAlternatives {
			alternatives = alternatives[:maxListedAlternatives]
		}
		infoCopy := info
		analysis.Materials = append(analysis.Materials, domain.MaterialReport{
			Name:         name,
			Available:    true,
			Info:         &infoCopy,
			Alternatives: alternatives,
			ScoreBand:    ScoreBand(info.SustainabilityScore),
		})
	}

	return analysis
}

// ScoreBand classifies a 1-10 score
func ScoreBand(score int) string {
	switch {
	case score >= 7:
		return domain.ScoreBandHigh
	case score <= 4:
		return domain.ScoreBandLow
	default:
		return domain.ScoreBandMedium
	}
}

// ProductScoreBand classifies a 0-100 product score on the same bands as
// ScoreBand, without truncating to the material scale (45 is medium).
func ProductScoreBand(score int) string {
	switch {
	case score >= 70:
		return domain.ScoreBandHigh
	case score <= 40:
		return domain.ScoreBandLow
	default:
		return domain.ScoreBandMedium
	}
}
