package domain

// Category is the catalog tag a product is filed under
type Category string

const (
	CategoryElectronics  Category = "electronics"
	CategoryClothing     Category = "clothing"
	CategoryHome         Category = "home"
	CategoryKitchen      Category = "kitchen"
	CategoryPersonalCare Category = "personal-care"
	CategoryFitness      Category = "fitness"
	CategoryCleaning     Category = "cleaning"
)

// Product is a catalog entry. Products are immutable once loaded.
type Product struct {
	ID                  string   `json:"id" yaml:"id"`
	Name                string   `json:"name" yaml:"name"`
	Description         string   `json:"description" yaml:"description"`
	Price               float64  `json:"price" yaml:"price"`
	OriginalPrice       *float64 `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Category            Category `json:"category" yaml:"category"`
	SustainabilityScore int      `json:"sustainabilityScore" yaml:"sustainabilityScore"` // 0-100
	CarbonSaved         float64  `json:"carbonSaved" yaml:"carbonSaved"`                 // kg
	Rating              float64  `json:"rating" yaml:"rating"`                           // 0-5
	Reviews             int      `json:"reviews" yaml:"reviews"`
	EcoFeatures         []string `json:"ecoFeatures" yaml:"ecoFeatures"`
	Materials           []string `json:"materials" yaml:"materials"`
	Certifications      []string `json:"certifications" yaml:"certifications"`
}

// SearchResult holds the products matching a query plus the "sustainable picks"
// that were not matched
type SearchResult struct {
	Query           string    `json:"query"`
	Matches         []Product `json:"matches"`
	Recommendations []Product `json:"recommendations"`
}

// AlternativeCandidate is a product proposed as a more sustainable substitute
// for the product being viewed
type AlternativeCandidate struct {
	Product
	SustainabilityReason string   `json:"sustainabilityReason"`
	MaterialImprovements []string `json:"materialImprovements"`
	CompatibilityScore   int      `json:"compatibilityScore"`
	UseCaseMatch         int      `json:"useCaseMatch"`
	OverallScore         float64  `json:"overallScore"`
	KeyBenefits          []string `json:"keyBenefits"`
}

// AlternativesResult is the recommendation answer for one product. MaxImpact
// is the largest sustainabilityScore gain offered by any alternative.
type AlternativesResult struct {
	ProductID    string                 `json:"productId"`
	Alternatives []AlternativeCandidate `json:"alternatives"`
	MaxImpact    int                    `json:"maxImpact"`
}

// CartItem is a single cart line
type CartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout request body
type CheckoutRequest struct {
	Customer string     `json:"customer,omitempty"`
	Items    []CartItem `json:"items" binding:"required,dive"`
}

// CartLine is a resolved cart line used for totals and receipts
type CartLine struct {
	ProductID           string  `json:"productId"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SustainabilityScore int     `json:"sustainabilityScore"`
	CarbonSaved         float64 `json:"carbonSaved"`
}

// CartSummary contains the totals of a resolved cart
type CartSummary struct {
	Lines            []CartLine `json:"lines"`
	TotalAmount      float64    `json:"totalAmount"`
	TotalCarbonSaved float64    `json:"totalCarbonSaved"`
	EcoScore         float64    `json:"ecoScore"`
	EcoPoints        int        `json:"ecoPoints"`
}
