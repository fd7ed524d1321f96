package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomart/backend/internal/domain"
)

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{10, domain.ScoreBandHigh},
		{7, domain.ScoreBandHigh},
		{6, domain.ScoreBandMedium},
		{5, domain.ScoreBandMedium},
		{4, domain.ScoreBandLow},
		{1, domain.ScoreBandLow},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.score); got != tt.want {
			t.Errorf("ScoreBand(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestProductScoreBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, domain.ScoreBandHigh},
		{70, domain.ScoreBandHigh},
		{69, domain.ScoreBandMedium},
		{49, domain.ScoreBandMedium},
		{45, domain.ScoreBandMedium},
		{41, domain.ScoreBandMedium},
		{40, domain.ScoreBandLow},
		{0, domain.ScoreBandLow},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductScoreBand(tt.score), "score %d", tt.score)

			p := testProduct("p", "Flask", "", domain.CategoryKitchen, tt.score)
			a := NewMaterialAnalyzer(&stubCatalog{products: []domain.Product{p}}, testMaterials())
			assert.Equal(t, tt.want, a.Analyze(p).ProductScoreBand, "score %d", tt.score)
		})
	}
}

func TestMaterialAnalyzer_Analyze(t *testing.T) {
	kb := testMaterials()
	kb["Mixed"] = domain.MaterialInfo{Name: "Mixed", SustainabilityScore: 5, Category: domain.MaterialRecycled,
		Alternatives: []string{"A", "B", "C", "D"}}
	p := testProduct("p", "Flask", "", domain.CategoryKitchen, 85, "Clay", "Unobtainium", "Mixed", "Bamboo")
	a := NewMaterialAnalyzer(&stubCatalog{products: []domain.Product{p}}, kb)

	got := a.Analyze(p)
	assert.Equal(t, "p", got.ProductID)
	assert.Equal(t, domain.ScoreBandHigh, got.ProductScoreBand)
	require.Len(t, got.Materials, 4)

	clay := got.Materials[0]
	assert.True(t, clay.Available)
	assert.Equal(t, domain.ScoreBandLow, clay.ScoreBand)
	require.NotNil(t, clay.Info)
	assert.Equal(t, 3, clay.Info.SustainabilityScore)

	unknown := got.Materials[1]
	assert.Equal(t, "Unobtainium", unknown.Name)
	assert.False(t, unknown.Available)
	assert.Nil(t, unknown.Info)
	assert.Equal(t, "Information not available for this material.", unknown.Message)

	mixed := got.Materials[2]
	assert.Equal(t, domain.ScoreBandMedium, mixed.ScoreBand)
	assert.Equal(t, []string{"A", "B", "C"}, mixed.Alternatives)

	assert.Equal(t, domain.ScoreBandHigh, got.Materials[3].ScoreBand)
}

func TestMaterialAnalyzer_AnalyzeByID(t *testing.T) {
	p := testProduct("p", "Flask", "", domain.CategoryKitchen, 45, "Recycled PET")
	a := NewMaterialAnalyzer(&stubCatalog{products: []domain.Product{p}}, testMaterials())

	got, err := a.AnalyzeByID("p")
	require.NoError(t, err)
	assert.Equal(t, domain.ScoreBandMedium, got.ProductScoreBand)
	assert.Equal(t, []string{"Glass", "Stainless Steel", "Bamboo"}, got.Materials[0].Alternatives)

	_, err = a.AnalyzeByID("nope")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}
