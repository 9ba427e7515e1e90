package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Categories(), 5)
	assert.Equal(t, 21, c.Len())
	assert.Equal(t,
		[]string{"Appetizers", "Beverages", "Desserts", "Main Courses", "Soups"},
		c.CategoryNames())

	cola, ok := c.Item("Beverages", "Cola")
	require.True(t, ok)
	assert.Equal(t, "2.50", cola.Price().StringFixed(2))
	assert.Equal(t, "Beverages", cola.CategoryName())
}

func TestCatalogItemLookupIgnoresCase(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, name := range []string{"steak frites", "STEAK FRITES", "Steak Frites", "sTeAk FrItEs"} {
		item, ok := c.Item("Main Courses", name)
		require.True(t, ok, name)
		assert.Equal(t, "Steak Frites", item.Name())
	}

	_, ok := c.Item("main courses", "Steak Frites")
	assert.False(t, ok, "category names are exact")
	_, ok = c.Item("Beverages", "Steak Frites")
	assert.False(t, ok)
	_, ok = c.Item("Brunch", "Cola")
	assert.False(t, ok)
}

func TestCatalogItemLookupUnicodeFolding(t *testing.T) {
	cat, err := types.NewMenuCategory("Desserts")
	require.NoError(t, err)
	price, err := types.ParsePrice("8.00")
	require.NoError(t, err)
	item, err := types.NewMenuItem("Crème Brûlée", "", price, "Desserts")
	require.NoError(t, err)
	require.NoError(t, cat.AddItem(item))

	c, err := NewCatalog(cat)
	require.NoError(t, err)

	got, ok := c.Item("Desserts", "CRÈME BRÛLÉE")
	require.True(t, ok)
	assert.Same(t, item, got)

	// Decomposed accents match the composed catalog name.
	got, ok = c.Item("Desserts", "cre\u0300me bru\u0302le\u0301e")
	require.True(t, ok)
	assert.Same(t, item, got)
}

func TestCatalogCategoryLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	soups, ok := c.Category("Soups")
	require.True(t, ok)
	assert.Equal(t, 4, soups.Len())

	_, ok = c.Category("Brunch")
	assert.False(t, ok)
}

func TestCatalogIsImmutable(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	soups, ok := c.Category("Soups")
	require.True(t, ok)

	price, err := types.ParsePrice("4.00")
	require.NoError(t, err)
	extra, err := types.NewMenuItem("Miso Soup", "", price, "Soups")
	require.NoError(t, err)

	assert.ErrorIs(t, soups.AddItem(extra), types.ErrCategorySealed)
	_, ok = c.Item("Soups", "Miso Soup")
	assert.False(t, ok)
	assert.Equal(t, 21, c.Len())
}

func TestNewCatalogRejectsCaseOnlyItemNames(t *testing.T) {
	cat, err := types.NewMenuCategory("Beverages")
	require.NoError(t, err)
	price, err := types.ParsePrice("2.50")
	require.NoError(t, err)
	for _, name := range []string{"Cola", "COLA"} {
		item, err := types.NewMenuItem(name, "", price, "Beverages")
		require.NoError(t, err)
		require.NoError(t, cat.AddItem(item))
	}

	_, err = NewCatalog(cat)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Contains(t, err.Error(), `"Cola" and "COLA"`)
}

func TestNewCatalogRejectsDuplicateCategory(t *testing.T) {
	a, err := types.NewMenuCategory("Soups")
	require.NoError(t, err)
	b, err := types.NewMenuCategory("Soups")
	require.NoError(t, err)

	_, err = NewCatalog(a, b)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = NewCatalog(nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestFromSpecRejectsBadItems(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr error
	}{
		{
			name:    "negative price",
			spec:    Spec{Categories: []CategorySpec{{Name: "Soups", Items: []ItemSpec{{Name: "Soup", Price: "-1"}}}}},
			wantErr: types.ErrInvalidPrice,
		},
		{
			name:    "unparseable price",
			spec:    Spec{Categories: []CategorySpec{{Name: "Soups", Items: []ItemSpec{{Name: "Soup", Price: "cheap"}}}}},
			wantErr: types.ErrInvalidPrice,
		},
		{
			name:    "empty category name",
			spec:    Spec{Categories: []CategorySpec{{Name: " "}}},
			wantErr: types.ErrInvalidName,
		},
		{
			name:    "empty item name",
			spec:    Spec{Categories: []CategorySpec{{Name: "Soups", Items: []ItemSpec{{Name: "", Price: "1"}}}}},
			wantErr: types.ErrInvalidName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromSpec(tt.spec)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Nil(t, c)
		})
	}
}

const testMenuYAML = `
categories:
  - name: Beverages
    items:
      - name: Cola
        description: Standard cola soft drink
        price: 2.50
      - name: Espresso
        price: "3.10"
  - name: Snacks
    items:
      - name: Fries
        price: 4
`

func TestParseYAML(t *testing.T) {
	c, err := Parse([]byte(testMenuYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	cola, ok := c.Item("Beverages", "cola")
	require.True(t, ok)
	assert.Equal(t, "2.50", cola.Price().StringFixed(2))
	assert.Equal(t, "Standard cola soft drink", cola.Description())

	espresso, ok := c.Item("Beverages", "Espresso")
	require.True(t, ok)
	assert.Equal(t, "3.10", espresso.Price().StringFixed(2))

	fries, ok := c.Item("Snacks", "FRIES")
	require.True(t, ok)
	assert.Equal(t, "4.00", fries.Price().StringFixed(2))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testMenuYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 21, c.Len(), "empty path selects the house menu")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("categories: [unclosed"))
	assert.Error(t, err)
}
