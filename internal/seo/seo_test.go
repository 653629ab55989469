package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteAbsolute(t *testing.T) {
	s := Site{BaseURL: "https://creotizant.com/"}
	assert.Equal(t, "https://creotizant.com/", s.Absolute("/"))
	assert.Equal(t, "https://creotizant.com/pricing", s.Absolute("/pricing"))
	assert.Equal(t, "https://creotizant.com/why", s.Absolute("why"))
	assert.Equal(t, "/why", Site{}.Absolute("/why"))
}

func TestSiteMeta(t *testing.T) {
	s := Site{Name: "Creotizant", BaseURL: "https://creotizant.com", Twitter: "@creotizant"}
	m := s.Meta("Pricing", "Plans", "/pricing")
	assert.Equal(t, "Pricing | Creotizant", m.Title)
	assert.Equal(t, "https://creotizant.com/pricing", m.Canonical)
	assert.Equal(t, m.Canonical, m.OG.URL)
	assert.Equal(t, "@creotizant", m.Twitter.Site)

	home := s.Meta("", "", "/")
	assert.Equal(t, "Creotizant", home.Title)
}

func TestAddJSONLD(t *testing.T) {
	var m Meta
	m.AddJSONLD(
		Organization("Creotizant", "https://creotizant.com", ""),
		map[string]any{"bad": make(chan int)},
		BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://creotizant.com/"}}),
	)
	require.Len(t, m.JSONLD, 2)

	var crumbs map[string]any
	require.NoError(t, json.Unmarshal([]byte(m.JSONLD[1]), &crumbs))
	assert.Equal(t, "BreadcrumbList", crumbs["@type"])
	items := crumbs["itemListElement"].([]any)
	assert.Equal(t, float64(1), items[0].(map[string]any)["position"])
}

func TestSoftwareProduct(t *testing.T) {
	p := SoftwareProduct("HirelyAI", "Hire faster", "Talent Acquisition", "https://x/hirely-ai", "Creotizant")
	assert.Equal(t, "SoftwareApplication", p["@type"])
	assert.Equal(t, "Talent Acquisition", p["applicationSubCategory"])
	assert.Equal(t, map[string]any{"@type": "Brand", "name": "Creotizant"}, p["brand"])

	bare := SoftwareProduct("X", "", "", "", "")
	assert.NotContains(t, bare, "url")
}

func TestFAQPageAndItemList(t *testing.T) {
	faq := FAQPage([]FAQEntry{{Question: "Q?", Answer: "A."}})
	assert.Len(t, faq["mainEntity"], 1)

	list := ItemList("Products", []ItemListEntry{{Name: "A", URL: "/a"}, {Name: "B", URL: "/b"}})
	el := list["itemListElement"].([]map[string]any)
	assert.Equal(t, 2, el[1]["position"])
}
