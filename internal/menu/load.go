package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// FromSpec validates a Spec and builds a Catalog from it. Any invalid
// category or item fails the whole build; no partial catalog is returned.
func FromSpec(spec Spec) (*Catalog, error) {
	categories := make([]*types.MenuCategory, 0, len(spec.Categories))
	for _, cs := range spec.Categories {
		cat, err := types.NewMenuCategory(cs.Name)
		if err != nil {
			return nil, err
		}
		for _, is := range cs.Items {
			price, err := types.ParsePrice(is.Price)
			if err != nil {
				return nil, fmt.Errorf("category %q item %q: %w", cat.Name(), is.Name, err)
			}
			item, err := types.NewMenuItem(is.Name, is.Description, price, cat.Name())
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", cat.Name(), err)
			}
			if err := cat.AddItem(item); err != nil {
				return nil, err
			}
		}
		categories = append(categories, cat)
	}
	return NewCatalog(categories...)
}

// Parse decodes a YAML menu document and builds a Catalog.
func Parse(data []byte) (*Catalog, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return FromSpec(spec)
}

// Load reads a YAML menu file. An empty path selects the house menu.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	return Parse(data)
}
