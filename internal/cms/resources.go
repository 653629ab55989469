package cms

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ResourceTypes lists the library filters in display order.
var ResourceTypes = []string{"Whitepaper", "Case Study", "Webinar", "Guide", "Report"}

// Resource is an entry of the resources library.
type Resource struct {
	Slug        string
	Type        string
	Title       string
	Description string
	ReadTime    string
	Level       string
	Topic       string
	CTA         string
	// Route is the navigation id the call to action leads to.
	Route     string
	Featured  bool
	Order     int
	Body      template.HTML
	UpdatedAt time.Time
}

type resourceFrontMatter struct {
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ReadTime    string `yaml:"read_time"`
	Level       string `yaml:"level"`
	Topic       string `yaml:"topic"`
	CTA         string `yaml:"cta"`
	Route       string `yaml:"route"`
	Featured    bool   `yaml:"featured"`
	Order       int    `yaml:"order"`
	UpdatedAt   string `yaml:"updated_at"`
}

// ListResourcesOptions controls resource listing.
type ListResourcesOptions struct {
	// Type filters by resource type; empty or "All" keeps everything.
	Type   string
	Search string
	Limit  int
}

// ListResources returns library entries matching opts in display order.
func (c *Client) ListResources(opts ListResourcesOptions) ([]Resource, error) {
	all, err := c.allResources()
	if err != nil {
		return nil, err
	}
	return filterResources(all, opts), nil
}

// FeaturedResource returns the first featured entry.
func (c *Client) FeaturedResource() (Resource, bool, error) {
	all, err := c.allResources()
	if err != nil {
		return Resource{}, false, err
	}
	for _, r := range all {
		if r.Featured {
			return r, true, nil
		}
	}
	return Resource{}, false, nil
}

func (c *Client) allResources() ([]Resource, error) {
	if v, ok := c.cached(kindResources); ok {
		return v.([]Resource), nil
	}
	dir := filepath.Join(c.dir, kindResources)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Resource{}, nil
		}
		return nil, fmt.Errorf("cms: list resources: %w", err)
	}
	items := make([]Resource, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		front := resourceFrontMatter{}
		body, modTime, err := c.readMarkdown(filepath.Join(dir, e.Name()), &front)
		if err != nil {
			return nil, err
		}
		r := Resource{
			Slug:        slug,
			Type:        strings.TrimSpace(front.Type),
			Title:       strings.TrimSpace(front.Title),
			Description: strings.TrimSpace(front.Description),
			ReadTime:    strings.TrimSpace(front.ReadTime),
			Level:       strings.TrimSpace(front.Level),
			Topic:       strings.TrimSpace(front.Topic),
			CTA:         strings.TrimSpace(front.CTA),
			Route:       strings.TrimSpace(front.Route),
			Featured:    front.Featured,
			Order:       front.Order,
			Body:        body,
			UpdatedAt:   parseContentDate(front.UpdatedAt),
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = modTime
		}
		if r.Title == "" {
			r.Title = prettifySlug(slug)
		}
		items = append(items, r)
	}
	sortResources(items)
	c.store(kindResources, items)
	return items, nil
}

func filterResources(items []Resource, opts ListResourcesOptions) []Resource {
	typ := strings.ToLower(strings.TrimSpace(opts.Type))
	if typ == "all" {
		typ = ""
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	filtered := make([]Resource, 0, len(items))
	for _, r := range items {
		if typ != "" && strings.ToLower(r.Type) != typ {
			continue
		}
		if search != "" {
			hay := strings.ToLower(r.Title + " " + r.Description + " " + r.Topic + " " + r.Type)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, r)
		if opts.Limit > 0 && len(filtered) >= opts.Limit {
			break
		}
	}
	return filtered
}

func sortResources(items []Resource) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return strings.Compare(items[i].Slug, items[j].Slug) < 0
	})
}
