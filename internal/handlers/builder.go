package handlers

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/creotizant/HCM-Landing/internal/catalog"
	"github.com/creotizant/HCM-Landing/internal/cms"
	"github.com/creotizant/HCM-Landing/internal/mailer"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/pricing"
	"github.com/creotizant/HCM-Landing/internal/seo"
)

// Request describes the page being rendered.
type Request struct {
	PageID     string
	Selection  nav.Selection
	Generation uint64
	Overlays   nav.Overlays
	CSRFToken  string

	Billing      pricing.Billing
	ResourceType string
	Search       string
}

// Builder assembles PageData for views.
type Builder struct {
	Site    seo.Site
	Catalog *catalog.Catalog
	CMS     *cms.Client
	Logger  *zap.Logger
	Now     func() time.Time
}

type pageCopy struct {
	Title       string
	Description string
}

var pageCopies = map[nav.Page]pageCopy{
	nav.PageHome:       {"", "Creotizant is the AI-powered HCM platform for UK businesses: workforce planning, recruiting, core HR, payroll and people analytics in one place."},
	nav.PageProducts:   {"Products", "Explore the Creotizant product suite, from AI workforce planning to payroll and compliance."},
	nav.PageSolutions:  {"Solutions", "HCM solutions for HR leaders, finance teams and line managers."},
	nav.PageIndustries: {"Industries", "Workforce software tuned for healthcare, retail, manufacturing, financial services and more."},
	nav.PagePlatform:   {"Platform", "One secure, UK-hosted platform with open APIs, unified data and built-in AI."},
	nav.PageWhy:        {"Why Creotizant", "See how Creotizant compares with legacy HCM suites."},
	nav.PageResources:  {"Resources", "Whitepapers, case studies, webinars and guides for modern HR teams."},
	nav.PagePricing:    {"Pricing", "Simple per employee pricing. Save 15% with annual billing."},
	nav.PageDemo:       {"Request a Demo", "See Creotizant in action with a personalised demo."},
	nav.PageContact:    {"Contact Sales", "Talk to the Creotizant sales team."},
}

// Build returns the view model for req. Content failures degrade the view
// rather than failing the page.
func (b *Builder) Build(req Request) PageData {
	sel := req.Selection
	path := nav.Href(req.PageID)
	if sel.View == string(nav.DefaultPage) && !sel.IsProduct() {
		path = "/"
	}

	vm := PageData{
		Path:       path,
		View:       sel.View,
		PageID:     req.PageID,
		Generation: req.Generation,
		CSRFToken:  req.CSRFToken,
		Year:       b.now().Year(),
		Chrome:     nav.BuildChrome(req.PageID, b.Catalog, b.Catalog.Menu(), req.Overlays),
	}

	if sel.IsProduct() {
		p := *sel.Product
		vm.Product = &ProductDetail{ID: p.ID, Product: p}
		vm.Title = p.Name
		vm.SEO = b.Site.Meta(p.Name, p.Hero.Subtitle, path)
		vm.SEO.OG.Type = "product"
		vm.SEO.AddJSONLD(seo.SoftwareProduct(p.Name, p.Hero.Subtitle, p.Category, b.Site.Absolute(path), b.Site.Name))
	} else {
		page := sel.Section()
		pc := pageCopies[page]
		vm.Title = pc.Title
		vm.SEO = b.Site.Meta(pc.Title, pc.Description, path)
		b.fill(&vm, page, req)
	}
	vm.SEO.AddJSONLD(seo.BreadcrumbList(b.breadcrumbItems(vm.Chrome.Breadcrumbs)))
	return vm
}

// BuildProductDetail renders the product detail view for id directly,
// bypassing navigation. Unknown ids produce the not found state.
func (b *Builder) BuildProductDetail(id string, req Request) PageData {
	if p, ok := b.Catalog.Get(id); ok {
		req.PageID = id
		req.Selection = nav.Selection{View: nav.ViewProductDetail, Product: &p}
		return b.Build(req)
	}
	vm := PageData{
		Title:     "Product not found",
		Path:      "/products/" + id,
		View:      nav.ViewProductDetail,
		PageID:    id,
		CSRFToken: req.CSRFToken,
		Year:      b.now().Year(),
		Chrome:    nav.BuildChrome(string(nav.PageProducts), b.Catalog, b.Catalog.Menu(), req.Overlays),
		Product:   &ProductDetail{ID: id, NotFound: true},
	}
	vm.SEO = b.Site.Meta(vm.Title, "", vm.Path)
	vm.SEO.Robots = "noindex,follow"
	return vm
}

func (b *Builder) fill(vm *PageData, page nav.Page, req Request) {
	switch page {
	case nav.PageHome:
		vm.Categories = b.Catalog.Categories()
		vm.SEO.AddJSONLD(
			seo.Organization(b.Site.Name, b.Site.Absolute("/"), b.Site.LogoURL),
			seo.WebSite(b.Site.Name, b.Site.Absolute("/")),
		)
	case nav.PageProducts:
		vm.Categories = b.Catalog.Categories()
		entries := make([]seo.ItemListEntry, 0, b.Catalog.Len())
		for _, p := range b.Catalog.Products() {
			entries = append(entries, seo.ItemListEntry{Name: p.Name, URL: b.Site.Absolute(nav.Href(p.ID))})
		}
		vm.SEO.AddJSONLD(seo.ItemList("Creotizant products", entries))
	case nav.PagePricing:
		pv := pricing.Build(req.Billing)
		vm.Pricing = &pv
		faqs := make([]seo.FAQEntry, 0, len(pv.FAQs))
		for _, f := range pv.FAQs {
			faqs = append(faqs, seo.FAQEntry{Question: f.Q, Answer: f.A})
		}
		vm.SEO.AddJSONLD(seo.FAQPage(faqs))
	case nav.PageWhy, nav.PagePlatform:
		vm.Content = b.content(string(page))
	case nav.PageResources:
		vm.Content = b.content(string(page))
		vm.Resources = b.Resources(req.ResourceType, req.Search)
	case nav.PageContact:
		vm.Contact = &ContactData{}
	case nav.PageDemo:
		vm.Demo = NewDemoData(mailer.DemoForm{})
	}
}

func (b *Builder) content(slug string) *cms.ContentPage {
	if b.CMS == nil {
		return nil
	}
	page, err := b.CMS.GetPage(slug)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			b.logger().Warn("content page unavailable", zap.String("slug", slug), zap.Error(err))
		}
		return nil
	}
	return &page
}

// Resources lists the library for a type filter and search term.
func (b *Builder) Resources(typ, search string) *ResourcesData {
	rd := &ResourcesData{
		Types:  append([]string{"All"}, cms.ResourceTypes...),
		Type:   typ,
		Search: search,
	}
	if rd.Type == "" {
		rd.Type = "All"
	}
	if b.CMS == nil {
		return rd
	}
	items, err := b.CMS.ListResources(cms.ListResourcesOptions{Type: rd.Type, Search: rd.Search})
	if err != nil {
		b.logger().Warn("resources unavailable", zap.Error(err))
		return rd
	}
	rd.Items = items
	if featured, ok, err := b.CMS.FeaturedResource(); err == nil && ok {
		rd.Featured = &featured
	}
	return rd
}

// Navbar returns the model the navbar partial needs for an overlay change.
func (b *Builder) Navbar(current string, overlays nav.Overlays, csrf string) PageData {
	return PageData{
		PageID:    current,
		CSRFToken: csrf,
		Chrome:    nav.BuildChrome(current, b.Catalog, b.Catalog.Menu(), overlays),
	}
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) breadcrumbItems(crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: b.Site.Absolute(c.Href)})
	}
	return items
}
