package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/ecomart/backend/internal/domain"
)

//go:embed data/materials.yaml
var embeddedMaterials []byte

// materialSchema guards the knowledge base against malformed fact sheets
const materialSchema = `{
  "type": "object",
  "required": ["sustainabilityScore", "category"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "usefulness": {"type": "string"},
    "harmfulEffects": {"type": "string"},
    "sustainabilityScore": {"type": "integer", "minimum": 1, "maximum": 10},
    "alternatives": {"type": ["array", "null"], "items": {"type": "string"}},
    "category": {"enum": ["natural", "synthetic", "recycled", "biodegradable", "renewable"]}
  }
}`

// KnowledgeBase maps material names to their fact sheets. Lookups are exact.
type KnowledgeBase struct {
	entries map[string]domain.MaterialInfo
}

// LoadMaterials reads the knowledge base from path, or from the embedded data when path is empty
func LoadMaterials(path string) (*KnowledgeBase, error) {
	data := embeddedMaterials
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read materials %s: %w", path, err)
		}
		data = raw
	}
	return ParseMaterials(data)
}

// ParseMaterials decodes a YAML mapping of material name to fact sheet
func ParseMaterials(data []byte) (*KnowledgeBase, error) {
	entries := make(map[string]domain.MaterialInfo)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(materialSchema))
	if err != nil {
		return nil, fmt.Errorf("compile material schema: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		info := entries[key]
		result, err := schema.Validate(gojsonschema.NewGoLoader(info))
		if err != nil {
			return nil, fmt.Errorf("validate material %q: %w", key, err)
		}
		if !result.Valid() {
			return nil, fmt.Errorf("material %q is invalid: %s", key, result.Errors()[0].String())
		}
		if info.Name == "" {
			info.Name = key
			entries[key] = info
		}
	}

	return &KnowledgeBase{entries: entries}, nil
}

// Lookup returns the fact sheet stored under name
func (kb *KnowledgeBase) Lookup(name string) (domain.MaterialInfo, bool) {
	info, ok := kb.entries[name]
	return info, ok
}

// Len reports the number of known materials
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}
