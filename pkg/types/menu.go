package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MenuItemKey is the identity of a menu item. Two items with the same name in
// different categories are distinct; two items with the same name and
// category are interchangeable.
type MenuItemKey struct {
	Name     string
	Category string
}

// MenuItem is an immutable priced entry of the menu.
type MenuItem struct {
	name         string
	description  string
	price        decimal.Decimal
	categoryName string
}

// NewMenuItem validates and constructs a menu item. Name and category are
// trimmed and must not be empty; price must not be negative.
func NewMenuItem(name, description string, price decimal.Decimal, categoryName string) (*MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, wrapf(ErrInvalidName, "menu item")
	}
	if price.IsNegative() {
		return nil, wrapf(ErrInvalidPrice, "menu item %q: %s", name, price)
	}
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, wrapf(ErrInvalidName, "category of menu item %q", name)
	}
	return &MenuItem{
		name:         name,
		description:  description,
		price:        price,
		categoryName: categoryName,
	}, nil
}

// ParsePrice parses an exact decimal price such as "2.50".
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, wrapf(ErrInvalidPrice, "parse %q: %v", s, err)
	}
	return d, nil
}

func (m *MenuItem) Name() string           { return m.name }
func (m *MenuItem) Description() string    { return m.description }
func (m *MenuItem) Price() decimal.Decimal { return m.price }
func (m *MenuItem) CategoryName() string   { return m.categoryName }
func (m *MenuItem) Key() MenuItemKey       { return MenuItemKey{Name: m.name, Category: m.categoryName} }
func (m *MenuItem) Equal(o *MenuItem) bool { return o != nil && m.Key() == o.Key() }
func (m *MenuItem) String() string         { return fmt.Sprintf("%s (%s) %s", m.name, m.categoryName, m.price.StringFixed(2)) }

// MenuCategory is a named, ordered grouping of menu items. Every item must
// declare the category's name. Category identity is the name alone.
type MenuCategory struct {
	name   string
	items  []*MenuItem
	index  map[MenuItemKey]struct{}
	sealed bool
}

// NewMenuCategory creates an empty category. The name is trimmed and must not
// be empty.
func NewMenuCategory(name string) (*MenuCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, wrapf(ErrInvalidName, "menu category")
	}
	return &MenuCategory{
		name:  name,
		index: make(map[MenuItemKey]struct{}),
	}, nil
}

// Name returns the category name.
func (c *MenuCategory) Name() string { return c.name }

// AddItem appends item to the category. It returns ErrCategoryMismatch when
// the item declares another category and ErrCategorySealed once a catalog
// owns the category. Adding an item that is already present is a no-op.
func (c *MenuCategory) AddItem(item *MenuItem) error {
	if item == nil {
		return ErrNilMenuItem
	}
	if c.sealed {
		return wrapf(ErrCategorySealed, "%q", c.name)
	}
	if item.CategoryName() != c.name {
		return wrapf(ErrCategoryMismatch, "item %q belongs to %q, not %q",
			item.Name(), item.CategoryName(), c.name)
	}
	key := item.Key()
	if _, ok := c.index[key]; ok {
		return nil
	}
	c.index[key] = struct{}{}
	c.items = append(c.items, item)
	return nil
}

// Items returns the category's items in insertion order. The slice is a copy;
// the items themselves are shared and immutable.
func (c *MenuCategory) Items() []*MenuItem {
	out := make([]*MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the category.
func (c *MenuCategory) Len() int { return len(c.items) }

// Contains reports whether an item with the same identity is in the category.
func (c *MenuCategory) Contains(item *MenuItem) bool {
	if item == nil {
		return false
	}
	_, ok := c.index[item.Key()]
	return ok
}

// Seal freezes the category. A catalog seals every category it takes.
func (c *MenuCategory) Seal() { c.sealed = true }

// Sealed reports whether the category has been frozen.
func (c *MenuCategory) Sealed() bool { return c.sealed }

func (c *MenuCategory) String() string {
	return fmt.Sprintf("%s (%d items)", c.name, len(c.items))
}
