package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/ecomart/backend/internal/domain"
)

//go:embed data/products.yaml
var embeddedProducts []byte

// productSchema guards the catalog against malformed seed files
const productSchema = `{
  "type": "object",
  "required": ["id", "name", "description", "price", "category", "sustainabilityScore",
               "carbonSaved", "rating", "reviews", "ecoFeatures", "materials", "certifications"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "price": {"type": "number", "minimum": 0},
    "originalPrice": {"type": "number", "minimum": 0},
    "category": {"enum": ["electronics", "clothing", "home", "kitchen", "personal-care", "fitness", "cleaning"]},
    "sustainabilityScore": {"type": "integer", "minimum": 0, "maximum": 100},
    "carbonSaved": {"type": "number", "minimum": 0},
    "rating": {"type": "number", "minimum": 0, "maximum": 5},
    "reviews": {"type": "integer", "minimum": 0},
    "ecoFeatures": {"type": ["array", "null"], "items": {"type": "string"}},
    "materials": {"type": ["array", "null"], "items": {"type": "string"}},
    "certifications": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

// Catalog is an immutable, validated product list with an id index
type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// Load reads the catalog from path, or from the embedded seed data when path is empty
func Load(path string) (*Catalog, error) {
	data := embeddedProducts
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes and validates a YAML product list
func Parse(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(productSchema))
	if err != nil {
		return nil, fmt.Errorf("compile product schema: %w", err)
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		result, err := schema.Validate(gojsonschema.NewGoLoader(p))
		if err != nil {
			return nil, fmt.Errorf("validate product %d: %w", i, err)
		}
		if !result.Valid() {
			return nil, fmt.Errorf("product %q is invalid: %s", p.ID, result.Errors()[0].String())
		}
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		index[p.ID] = i
	}

	return &Catalog{products: products, index: index}, nil
}

// All returns the products in catalog order. The returned slice is a copy.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given id
func (c *Catalog) ByID(id string) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Len reports the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
