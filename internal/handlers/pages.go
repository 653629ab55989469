// Package handlers builds the view models rendered by the page templates.
package handlers

import (
	"github.com/creotizant/HCM-Landing/internal/catalog"
	"github.com/creotizant/HCM-Landing/internal/cms"
	"github.com/creotizant/HCM-Landing/internal/mailer"
	"github.com/creotizant/HCM-Landing/internal/nav"
	"github.com/creotizant/HCM-Landing/internal/pricing"
	"github.com/creotizant/HCM-Landing/internal/seo"
)

// PageData is the view model every view template receives.
type PageData struct {
	Title     string
	Path      string
	SEO       seo.Meta
	Chrome    nav.Chrome
	CSRFToken string
	Year      int

	// View is the template key; PageID is the id that was requested.
	View       string
	PageID     string
	Generation uint64

	// Optional per-view payloads
	Product    *ProductDetail
	Categories []catalog.MenuGroup
	Pricing    *pricing.View
	Content    *cms.ContentPage
	Resources  *ResourcesData
	Contact    *ContactData
	Demo       *DemoData
}

// ProductDetail is the product detail view model. NotFound is set when the
// requested id is absent from the catalog.
type ProductDetail struct {
	ID       string
	NotFound bool
	Product  catalog.Product
}

// ResourcesData backs the resources library.
type ResourcesData struct {
	Types    []string
	Type     string
	Search   string
	Featured *cms.Resource
	Items    []cms.Resource
}

// FormStatus is the inline outcome shown under a submitted form.
type FormStatus struct {
	Tone    string // success or error
	Message string
}

// ContactData backs the contact sales page.
type ContactData struct {
	Form   mailer.ContactForm
	Status *FormStatus
}

// DemoData backs the demo request page.
type DemoData struct {
	Form         mailer.DemoForm
	CompanySizes []string
	Countries    []string
	Interests    []string
	Status       *FormStatus
}

// NewDemoData returns the demo page model with its select options.
func NewDemoData(form mailer.DemoForm) *DemoData {
	return &DemoData{
		Form:         form,
		CompanySizes: mailer.CompanySizes,
		Countries:    mailer.Countries,
		Interests:    mailer.Interests,
	}
}
