package domain

import "time"

// Receipt is a simulated blockchain receipt for a checkout. Every identifier
// on it is randomly generated; Synthetic is always true.
type Receipt struct {
	ID              string      `json:"id"`
	TokenID         string      `json:"tokenId"`
	TransactionHash string      `json:"transactionHash"`
	MetadataHash    string      `json:"metadataHash"`
	BlockNumber     int64       `json:"blockNumber"`
	GasUsed         string      `json:"gasUsed"`
	Network         string      `json:"network"`
	Customer        string      `json:"customer"`
	Summary         CartSummary `json:"summary"`
	Warranty        string      `json:"warranty"`
	ReturnPolicy    string      `json:"returnPolicy"`
	MintedAt        time.Time   `json:"mintedAt"`
	Synthetic       bool        `json:"synthetic"`
}

// SustainabilityStats are the per-user totals kept by the tracker
type SustainabilityStats struct {
	CarbonFootprint float64 `json:"userCarbonFootprint"`
	EcoScore        int     `json:"ecoScore"`
	MonthlyGoal     float64 `json:"monthlyGoal"`
}

// Tip types
const (
	TipTypeAlternative = "alternative"
	TipTypeTip         = "tip"
)

// Impact is the expected effect of acting on a tip
type Impact struct {
	CarbonSaved  float64 `json:"carbonSaved"`
	CostSaved    float64 `json:"costSaved"`
	WasteReduced float64 `json:"wasteReduced"`
}

// SustainabilityTip is a suggestion generated from a set of products
type SustainabilityTip struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TargetProductID string `json:"targetProductId,omitempty"`
	ExpectedImpact  Impact `json:"expectedImpact"`
	Urgency         string `json:"urgency"`
}
