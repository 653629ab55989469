package nav

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/creotizant/HCM-Landing/internal/catalog"
)

// Item is a top-level navigation entry.
type Item struct {
	Page  Page
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	ID     string
	Href   string
	Label  string
	Active bool
}

// RenderedGroup is one column of the products mega menu.
type RenderedGroup struct {
	Category string
	Items    []RenderedItem
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Chrome is everything the navbar and footer need to render.
type Chrome struct {
	Current     string
	Products    RenderedItem
	ProductMenu []RenderedGroup
	Items       []RenderedItem
	CTAs        []RenderedItem
	Footer      []RenderedItem
	Overlays    Overlays
	Breadcrumbs []Crumb
}

// Main lists the desktop items shown after the products trigger.
var Main = []Item{
	{Page: PageSolutions},
	{Page: PageIndustries},
	{Page: PagePlatform},
	{Page: PageWhy},
	{Page: PagePricing},
}

// CTAs are the call-to-action buttons on the right of the navbar.
var CTAs = []Item{
	{Page: PageContact, Label: "Contact Sales"},
	{Page: PageDemo, Label: "Request Demo"},
}

var titleCaser = cases.Title(language.English)

// Label returns the display label of a page.
func Label(p Page) string {
	return titleCaser.String(string(p))
}

// Href returns the URL path that navigates to id.
func Href(id string) string {
	if id == "" || id == string(PageHome) {
		return "/"
	}
	return "/" + url.PathEscape(id)
}

// BuildChrome renders navigation items with active state for the current id.
// The products trigger is active on the products page and on every catalog id.
func BuildChrome(current string, lookup Lookup, menu []catalog.MenuGroup, overlays Overlays) Chrome {
	c := Chrome{
		Current:  current,
		Overlays: overlays,
		Products: RenderedItem{
			ID:     string(PageProducts),
			Href:   Href(string(PageProducts)),
			Label:  Label(PageProducts),
			Active: current == string(PageProducts) || (lookup != nil && lookup.Has(current)),
		},
		Breadcrumbs: Breadcrumbs(current, lookup),
	}
	for _, g := range menu {
		rg := RenderedGroup{Category: g.Category}
		for _, it := range g.Items {
			rg.Items = append(rg.Items, RenderedItem{
				ID:     it.Target,
				Href:   Href(it.Target),
				Label:  it.Name,
				Active: it.Target == current && current != string(PageProducts),
			})
		}
		c.ProductMenu = append(c.ProductMenu, rg)
	}
	c.Items = renderItems(Main, current)
	c.CTAs = renderItems(CTAs, current)
	footer := make([]Item, 0, len(StaticPages))
	for _, p := range StaticPages {
		footer = append(footer, Item{Page: p})
	}
	c.Footer = renderItems(footer, current)
	return c
}

func renderItems(items []Item, current string) []RenderedItem {
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		label := it.Label
		if label == "" {
			label = Label(it.Page)
		}
		out = append(out, RenderedItem{
			ID:     string(it.Page),
			Href:   Href(string(it.Page)),
			Label:  label,
			Active: string(it.Page) == current,
		})
	}
	return out
}

// Breadcrumbs builds breadcrumb entries for a navigation id.
// Rules:
// - Always start with Home
// - Product pages sit under Products and use the product name
// - Unknown ids render as Home only
func Breadcrumbs(current string, lookup Lookup) []Crumb {
	req := Classify(lookup, current)
	home := Crumb{Href: "/", Label: Label(PageHome)}
	switch req.Kind {
	case KindProduct:
		name := strings.TrimSpace(req.Product.Name)
		if name == "" {
			name = titleFromSegment(req.ID)
		}
		return []Crumb{
			home,
			{Href: Href(string(PageProducts)), Label: Label(PageProducts)},
			{Href: Href(req.ID), Label: name, Active: true},
		}
	case KindStatic:
		if req.Page == PageHome {
			home.Active = true
			return []Crumb{home}
		}
		return []Crumb{home, {Href: Href(req.ID), Label: Label(req.Page), Active: true}}
	default:
		home.Active = true
		return []Crumb{home}
	}
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return titleCaser.String(s)
}
