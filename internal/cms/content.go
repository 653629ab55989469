// Package cms reads the site's markdown content: long-form page sections and
// the resources library.
package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content file cannot be located.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultContentDir = "content"
	defaultCacheTTL   = 5 * time.Minute

	kindPages     = "pages"
	kindResources = "resources"
)

// ContentPage is a markdown section rendered into a static page.
type ContentPage struct {
	Slug      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
	SEO       ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
}

type contentFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
}

// Client reads and renders content from a directory laid out as
// <dir>/pages/<slug>.md and <dir>/resources/<slug>.md.
type Client struct {
	dir    string
	ttl    time.Duration
	now    func() time.Time
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithCacheTTL overrides the in-memory cache duration.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// NewClient constructs a Client reading from dir.
func NewClient(dir string, opts ...Option) *Client {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c := &Client{
		dir:    dir,
		ttl:    defaultCacheTTL,
		now:    time.Now,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: newContentPolicy(),
		items:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the content root.
func (c *Client) Dir() string { return c.dir }

// GetPage returns the rendered page section for slug.
func (c *Client) GetPage(slug string) (ContentPage, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	key := kindPages + "|" + slug
	if v, ok := c.cached(key); ok {
		return v.(ContentPage), nil
	}
	page, err := c.readPage(slug)
	if err != nil {
		return ContentPage{}, err
	}
	c.store(key, page)
	return page, nil
}

func (c *Client) readPage(slug string) (ContentPage, error) {
	file := filepath.Join(c.dir, kindPages, slug+".md")
	front := contentFrontMatter{}
	body, modTime, err := c.readMarkdown(file, &front)
	if err != nil {
		return ContentPage{}, err
	}
	page := ContentPage{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      body,
		UpdatedAt: parseContentDate(front.UpdatedAt),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = modTime
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// readMarkdown decodes the front matter of file into front and returns the
// sanitised HTML body.
func (c *Client) readMarkdown(file string, front any) (template.HTML, time.Time, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", time.Time{}, ErrNotFound
		}
		return "", time.Time{}, err
	}
	var modTime time.Time
	if info, statErr := os.Stat(file); statErr == nil {
		modTime = info.ModTime()
	}
	fm, body := splitFrontMatter(string(data))
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), front); err != nil {
			return "", time.Time{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := c.render(body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	return html, modTime, nil
}

// render converts markdown to HTML and strips anything outside the content
// policy.
func (c *Client) render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func (c *Client) cached(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *Client) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{value: v, expires: c.now().Add(c.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
