package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogMembership(t *testing.T) {
	t.Parallel()

	c := Default()
	require.Equal(t, 14, c.Len())

	assert.True(t, c.Has("hirely-ai"))
	assert.False(t, c.Has("HIRELY-AI"), "lookup must be case-sensitive")
	assert.False(t, c.Has(" hirely-ai"), "lookup must not trim")
	assert.False(t, c.Has("products"), "static page ids are not catalog keys")

	p, ok := c.Get("nonexistent-id")
	assert.False(t, ok)
	assert.Equal(t, Product{}, p)
}

func TestDefaultCatalogHirelyRecord(t *testing.T) {
	t.Parallel()

	p, ok := Default().Get("hirely-ai")
	require.True(t, ok)
	assert.Equal(t, "HirelyAI", p.Name)
	assert.Equal(t, "Talent Acquisition", p.Category)
	assert.Equal(t, VariantHirelyAI, p.VisualVariant)
	require.NotEmpty(t, p.Workflow)
	assert.Equal(t, 1, p.Workflow[0].Step)
}

func TestGetReturnsCopies(t *testing.T) {
	t.Parallel()

	c := Default()
	p, ok := c.Get("shortage-assistant")
	require.True(t, ok)
	p.KeyCapabilities[0] = "mutated"
	p.Name = "mutated"

	again, _ := c.Get("shortage-assistant")
	assert.NotEqual(t, "mutated", again.KeyCapabilities[0])
	assert.Equal(t, "Shortage Assistant", again.Name)
}

func TestIDsKeepConfigurationOrder(t *testing.T) {
	t.Parallel()

	ids := Default().IDs()
	require.NotEmpty(t, ids)
	assert.Equal(t, "shortage-assistant", ids[0])
	assert.Equal(t, "people-intelligence-cloud", ids[len(ids)-1])
}

func TestMenuAliasesProductsPage(t *testing.T) {
	t.Parallel()

	var aliases int
	for _, g := range Default().Menu() {
		for _, it := range g.Items {
			if it.Target == "products" {
				aliases++
			}
		}
	}
	assert.Equal(t, 2, aliases)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := New([]Product{
		{ID: "a", VisualVariant: VariantPayCore},
		{ID: "b", VisualVariant: VariantPayCore},
		{ID: "a", VisualVariant: VariantTimeTrack},
	}, nil)

	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup), "expected DuplicateIDError, got %v", err)
	assert.Equal(t, []string{"a"}, dup.IDs)
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	t.Parallel()

	_, err := New([]Product{{ID: "a", VisualVariant: "sparkles"}}, nil)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "sparkles")
}

func TestCategoriesFallbackMenu(t *testing.T) {
	t.Parallel()

	c, err := New([]Product{
		{ID: "a", Name: "A", Category: "One", VisualVariant: VariantPayCore},
		{ID: "b", Name: "B", Category: "Two", VisualVariant: VariantPayCore},
		{ID: "c", Name: "C", Category: "One", VisualVariant: VariantPayCore},
	}, nil)
	require.NoError(t, err)

	menu := c.Menu()
	require.Len(t, menu, 2)
	assert.Equal(t, "One", menu[0].Category)
	assert.Equal(t, []MenuItem{{Name: "A", Target: "a"}, {Name: "C", Target: "c"}}, menu[0].Items)
}

func TestLoadFileDuplicate(t *testing.T) {
	t.Parallel()

	doc := `products:
  - id: pay-core-uk
    name: PayCore UK
    visual_variant: pay_core
  - id: pay-core-uk
    name: PayCore UK v2
    visual_variant: pay_core
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := LoadFile(path)
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("products: ["))
	require.Error(t, err)
}

func TestNilCatalogIsEmpty(t *testing.T) {
	t.Parallel()

	var c *Catalog
	assert.False(t, c.Has("hirely-ai"))
	_, ok := c.Get("hirely-ai")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}
