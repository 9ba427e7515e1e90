// Package menu provides the read-only menu catalog.
//
// A Catalog is built once from a set of categories and never changes
// afterwards. Lookups by category name are exact; item names are compared
// with full Unicode case folding.
package menu

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// foldName normalizes an item name to NFC and applies full case folding, so
// composed and decomposed spellings of the same name match.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// itemKey indexes items by category and case-folded item name.
type itemKey struct {
	category string
	folded   string
}

// Catalog is an immutable mapping from category name to category.
// It is safe for concurrent use because nothing mutates it after NewCatalog.
type Catalog struct {
	order      []string
	categories map[string]*types.MenuCategory
	items      map[itemKey]*types.MenuItem
}

// NewCatalog takes ownership of the given categories, seals them, and builds
// the lookup indexes. Duplicate category names are rejected, as are item
// names in one category that differ only by case or normalization.
func NewCatalog(categories ...*types.MenuCategory) (*Catalog, error) {
	c := &Catalog{
		categories: make(map[string]*types.MenuCategory, len(categories)),
		items:      make(map[itemKey]*types.MenuItem),
	}
	for _, cat := range categories {
		if cat == nil {
			return nil, fmt.Errorf("%w: nil category", types.ErrInvalidArgument)
		}
		if _, dup := c.categories[cat.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", types.ErrInvalidArgument, cat.Name())
		}
		cat.Seal()
		c.categories[cat.Name()] = cat
		c.order = append(c.order, cat.Name())
		for _, item := range cat.Items() {
			key := itemKey{category: cat.Name(), folded: foldName(item.Name())}
			if prev, ok := c.items[key]; ok {
				return nil, fmt.Errorf("%w: items %q and %q in %q differ only by case",
					types.ErrInvalidArgument, prev.Name(), item.Name(), cat.Name())
			}
			c.items[key] = item
		}
	}
	return c, nil
}

// Categories returns the categories in the order they were given.
func (c *Catalog) Categories() []*types.MenuCategory {
	out := make([]*types.MenuCategory, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.categories[name])
	}
	return out
}

// CategoryNames returns the category names sorted alphabetically.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names
}

// Category looks up a category by exact name.
func (c *Catalog) Category(name string) (*types.MenuCategory, bool) {
	cat, ok := c.categories[name]
	return cat, ok
}

// Item looks up an item by category name and case-insensitive item name.
func (c *Catalog) Item(categoryName, itemName string) (*types.MenuItem, bool) {
	item, ok := c.items[itemKey{category: categoryName, folded: foldName(itemName)}]
	return item, ok
}

// Len returns the number of items across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, cat := range c.categories {
		n += cat.Len()
	}
	return n
}
