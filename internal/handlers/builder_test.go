package handlers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creotizant/HCM-Landing/internal/catalog"
	"github.com/creotizant/HCM-Landing/internal/cms"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/pricing"
	"github.com/creotizant/HCM-Landing/internal/seo"
)

func newBuilder() *Builder {
	return &Builder{
		Site:    seo.Site{Name: "Creotizant", BaseURL: "https://creotizant.example"},
		Catalog: catalog.Default(),
		CMS:     cms.NewClient(filepath.Join("..", "..", "content")),
		Now:     func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func request(b *Builder, id string) Request {
	return Request{PageID: id, Selection: nav.ResolveView(b.Catalog, id), CSRFToken: "tok"}
}

func TestBuildHome(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.Build(request(b, "home"))
	assert.Equal(t, "home", vm.View)
	assert.Equal(t, "/", vm.Path)
	assert.Equal(t, 2026, vm.Year)
	assert.Equal(t, "Creotizant", vm.SEO.Title)
	assert.Equal(t, "https://creotizant.example/", vm.SEO.Canonical)
	assert.NotEmpty(t, vm.Categories)
	// Organization, WebSite, BreadcrumbList
	assert.Len(t, vm.SEO.JSONLD, 3)
	assert.Equal(t, "tok", vm.CSRFToken)
}

func TestBuildUnknownIDLooksLikeHome(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.Build(request(b, "no-such-page"))
	assert.Equal(t, "home", vm.View)
	assert.Equal(t, "/", vm.Path)
	assert.Equal(t, "no-such-page", vm.PageID)
}

func TestBuildProduct(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.Build(request(b, "hirely-ai"))
	require.NotNil(t, vm.Product)
	assert.False(t, vm.Product.NotFound)
	assert.Equal(t, "HirelyAI", vm.Product.Product.Name)
	assert.Equal(t, nav.ViewProductDetail, vm.View)
	assert.Equal(t, "HirelyAI | Creotizant", vm.SEO.Title)
	assert.Equal(t, "product", vm.SEO.OG.Type)
	assert.True(t, vm.Chrome.Products.Active)
	assert.Contains(t, string(vm.SEO.JSONLD[0]), `"SoftwareApplication"`)
}

func TestBuildProductDetailNotFound(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.BuildProductDetail("nope", Request{})
	require.NotNil(t, vm.Product)
	assert.True(t, vm.Product.NotFound)
	assert.Equal(t, "Product not found", vm.Title)
	assert.Equal(t, "noindex,follow", vm.SEO.Robots)

	vm = b.BuildProductDetail("pay-core-uk", Request{})
	assert.False(t, vm.Product.NotFound)
	assert.Equal(t, "/pay-core-uk", vm.Path)
}

func TestBuildPricingBilling(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	req := request(b, "pricing")
	req.Billing = pricing.Annual
	vm := b.Build(req)
	require.NotNil(t, vm.Pricing)
	assert.Equal(t, pricing.Annual, vm.Pricing.Billing)
	assert.Equal(t, "£5", vm.Pricing.Plans[0].Price)
}

func TestBuildResourcesFilters(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	req := request(b, "resources")
	req.ResourceType = "Webinar"
	vm := b.Build(req)
	require.NotNil(t, vm.Resources)
	assert.Equal(t, "Webinar", vm.Resources.Type)
	require.NotEmpty(t, vm.Resources.Items)
	for _, r := range vm.Resources.Items {
		assert.Equal(t, "Webinar", r.Type)
	}
	require.NotNil(t, vm.Resources.Featured)
	assert.Equal(t, "All", vm.Resources.Types[0])
	assert.NotNil(t, vm.Content)
}

func TestBuildWhyWithoutCMS(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.CMS = nil
	vm := b.Build(request(b, "why"))
	assert.Nil(t, vm.Content)
	assert.Equal(t, "Why Creotizant | Creotizant", vm.SEO.Title)
}

func TestBuildDemoOptions(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.Build(request(b, "demo"))
	require.NotNil(t, vm.Demo)
	assert.NotEmpty(t, vm.Demo.Countries)
	assert.Nil(t, vm.Contact)
}

func TestNavbarCarriesOverlays(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	vm := b.Navbar("pricing", nav.Overlays{Dropdown: "products"}, "tok")
	assert.Equal(t, "products", vm.Chrome.Overlays.Dropdown)
	assert.Equal(t, "tok", vm.CSRFToken)
	assert.NotEmpty(t, vm.Chrome.ProductMenu)
}

func TestResourcesSearch(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	rd := b.Resources("", "payroll")
	assert.Equal(t, "All", rd.Type)
	require.NotEmpty(t, rd.Items)
	assert.Equal(t, "payroll-index", rd.Items[0].Slug)
}
