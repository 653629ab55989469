// Package nav resolves navigation requests to views and owns the per-session
// navigation state.
package nav

import "github.com/creotizant/HCM-Landing/internal/catalog"

// Page is one of the fixed top-level sections of the site.
type Page string

const (
	PageHome       Page = "home"
	PageProducts   Page = "products"
	PageSolutions  Page = "solutions"
	PageIndustries Page = "industries"
	PagePlatform   Page = "platform"
	PageWhy        Page = "why"
	PageResources  Page = "resources"
	PagePricing    Page = "pricing"
	PageDemo       Page = "demo"
	PageContact    Page = "contact"
)

// DefaultPage is shown at session start and for unknown requests.
const DefaultPage = PageHome

// ViewProductDetail is the view key of the product detail template.
const ViewProductDetail = "product-detail"

// StaticPages lists every static page in chrome order.
var StaticPages = []Page{
	PageHome,
	PageProducts,
	PageSolutions,
	PageIndustries,
	PagePlatform,
	PageWhy,
	PageResources,
	PagePricing,
	PageDemo,
	PageContact,
}

// Valid reports whether p is one of the enumerated static pages.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageProducts, PageSolutions, PageIndustries, PagePlatform,
		PageWhy, PageResources, PagePricing, PageDemo, PageContact:
		return true
	}
	return false
}

// Lookup is the read-only catalog surface the resolver needs.
type Lookup interface {
	Has(id string) bool
	Get(id string) (catalog.Product, bool)
}

// Kind tags a classified navigation request.
type Kind int

const (
	KindUnknown Kind = iota
	KindProduct
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Request is a navigation request classified once: a product page, a static
// page or an unknown id.
type Request struct {
	Kind    Kind
	ID      string
	Page    Page
	Product catalog.Product
}

// Classify sorts id into a Request. The catalog is consulted before the static
// page enumeration, so a product id equal to a page name resolves as a product.
func Classify(lookup Lookup, id string) Request {
	if lookup != nil && lookup.Has(id) {
		if p, ok := lookup.Get(id); ok {
			return Request{Kind: KindProduct, ID: id, Product: p}
		}
	}
	if page := Page(id); page.Valid() {
		return Request{Kind: KindStatic, ID: id, Page: page}
	}
	return Request{Kind: KindUnknown, ID: id}
}

// Selection is the view picked for a navigation request.
type Selection struct {
	// View is a static page name or ViewProductDetail.
	View string
	// Product is set only for the product detail view.
	Product *catalog.Product
}

// IsProduct reports whether the selection is a product detail page.
func (s Selection) IsProduct() bool { return s.View == ViewProductDetail && s.Product != nil }

// Section is the top-level page that owns the selection in the chrome.
// Product pages belong to the products section.
func (s Selection) Section() Page {
	if s.IsProduct() {
		return PageProducts
	}
	if p := Page(s.View); p.Valid() {
		return p
	}
	return DefaultPage
}

// ResolveView is a pure function of id and the catalog contents. It never
// fails: unknown ids select the home view exactly like an explicit "home".
func ResolveView(lookup Lookup, id string) Selection {
	return selectionFor(Classify(lookup, id))
}

func selectionFor(req Request) Selection {
	switch req.Kind {
	case KindProduct:
		p := req.Product
		return Selection{View: ViewProductDetail, Product: &p}
	case KindStatic:
		return Selection{View: string(req.Page)}
	default:
		return Selection{View: string(DefaultPage)}
	}
}
