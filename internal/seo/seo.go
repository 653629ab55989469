// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []template.JS
}

// Site carries the values shared by every page's metadata.
type Site struct {
	Name    string
	BaseURL string
	LogoURL string
	Twitter string
	Image   string
}

// Absolute joins path onto the site base URL. Without a base URL the path is
// returned unchanged.
func (s Site) Absolute(path string) string {
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		return path
	}
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Meta returns page metadata with OpenGraph and Twitter defaults filled from
// the site.
func (s Site) Meta(title, description, path string) Meta {
	full := s.Name
	if title != "" && title != s.Name {
		full = title + " | " + s.Name
	}
	canonical := s.Absolute(path)
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Image:       s.Image,
			Type:        "website",
			URL:         canonical,
			SiteName:    s.Name,
		},
		Twitter: Twitter{
			Card:  "summary_large_image",
			Site:  s.Twitter,
			Image: s.Image,
		},
	}
}

// AddJSONLD appends schema payloads, skipping any that fail to encode.
func (m *Meta) AddJSONLD(payloads ...map[string]any) {
	for _, p := range payloads {
		if js := JSON(p); js != "" {
			m.JSONLD = append(m.JSONLD, template.JS(js))
		}
	}
}
