package domain

// MaterialCategory classifies a raw material
type MaterialCategory string

const (
	MaterialNatural       MaterialCategory = "natural"
	MaterialSynthetic     MaterialCategory = "synthetic"
	MaterialRecycled      MaterialCategory = "recycled"
	MaterialBiodegradable MaterialCategory = "biodegradable"
	MaterialRenewable     MaterialCategory = "renewable"
)

// MaterialInfo is the fact sheet for a single raw material
type MaterialInfo struct {
	Name                string           `json:"name" yaml:"name"`
	Description         string           `json:"description" yaml:"description"`
	Usefulness          string           `json:"usefulness" yaml:"usefulness"`
	HarmfulEffects      string           `json:"harmfulEffects" yaml:"harmfulEffects"`
	SustainabilityScore int              `json:"sustainabilityScore" yaml:"sustainabilityScore"` // 1-10, not the product scale
	Alternatives        []string         `json:"alternatives" yaml:"alternatives"`
	Category            MaterialCategory `json:"category" yaml:"category"`
}

// Score bands used when presenting a material score
const (
	ScoreBandHigh   = "high"
	ScoreBandMedium = "medium"
	ScoreBandLow    = "low"
)

// MaterialReport describes one material of a product. Info is nil when the
// knowledge base has no entry for the name.
type MaterialReport struct {
	Name         string        `json:"name"`
	Available    bool          `json:"available"`
	Info         *MaterialInfo `json:"info,omitempty"`
	Alternatives []string      `json:"alternatives,omitempty"`
	ScoreBand    string        `json:"scoreBand,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// MaterialAnalysis is the per-material breakdown of a product
type MaterialAnalysis struct {
	ProductID        string           `json:"productId"`
	ProductScore     int              `json:"productScore"`
	ProductScoreBand string           `json:"productScoreBand"`
	Materials        []MaterialReport `json:"materials"`
}
