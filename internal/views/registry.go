// Package views parses html/template views on demand and serves them to the
// navigation shell as nav.View implementations.
package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/creotizant/HCM-Landing/internal/format"
	"github.com/creotizant/HCM-Landing/internal/nav"
)

// ErrUnknownView is returned when no template exists for a view key.
var ErrUnknownView = errors.New("views: unknown view")

var viewKey = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

const (
	layoutTemplate   = "layout"
	fragmentTemplate = "fragment"
	pagesDir         = "pages"
)

// Page is a parsed view. It renders the full layout or only the swapped
// fragment for htmx navigations.
type Page struct {
	name string
	tmpl *template.Template
}

// Name returns the view key.
func (p *Page) Name() string { return p.name }

// Render executes the page into w.
func (p *Page) Render(w io.Writer, data any, fragment bool) error {
	entry := layoutTemplate
	if fragment {
		entry = fragmentTemplate
	}
	if err := p.tmpl.ExecuteTemplate(w, entry, data); err != nil {
		return fmt.Errorf("render %s: %w", p.name, err)
	}
	return nil
}

// Registry loads views from a templates directory laid out as:
//
//	layout.tmpl, partials/*.tmpl   shared base, parsed at startup
//	pages/<view>.tmpl              one file per view, parsed on first use
type Registry struct {
	dir    string
	funcs  template.FuncMap
	logger *zap.Logger
	eager  []string

	mu       sync.RWMutex
	base     *template.Template
	partials *template.Template
	cache    map[string]*Page
	group    singleflight.Group

	parses int64
}

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) RegistryOption {
	return func(r *Registry) {
		for k, v := range funcs {
			r.funcs[k] = v
		}
	}
}

// WithEager lists views parsed at startup next to the base templates.
func WithEager(views ...string) RegistryOption {
	return func(r *Registry) { r.eager = append(r.eager[:0], views...) }
}

// NewRegistry parses the base templates and the eager views. The default
// page is eager unless WithEager says otherwise.
func NewRegistry(dir string, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		dir:    dir,
		funcs:  DefaultFuncs(),
		logger: zap.NewNop(),
		eager:  []string{string(nav.DefaultPage)},
		cache:  map[string]*Page{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Invalidate(""); err != nil {
		return nil, err
	}
	for _, v := range r.eager {
		if _, err := r.Load(context.Background(), v); err != nil {
			return nil, fmt.Errorf("eager view %s: %w", v, err)
		}
	}
	return r, nil
}

// DefaultFuncs returns the template helpers every view can use.
func DefaultFuncs() template.FuncMap {
	return template.FuncMap{
		"now":  time.Now,
		"href": nav.Href,
		"year": func() int { return time.Now().Year() },
		"add":  func(a, b int) int { return a + b },
		"join": strings.Join,
		"date": format.Date,
	}
}

// Load returns the view for key, parsing its template the first time. It
// satisfies nav.Loader. Concurrent first loads of the same key parse once.
func (r *Registry) Load(ctx context.Context, key string) (nav.View, error) {
	if !viewKey.MatchString(key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, key)
	}
	r.mu.RLock()
	if p, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	ch := r.group.DoChan(key, func() (any, error) {
		return r.parsePage(key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Page), nil
	}
}

// Cached reports whether key has already been parsed.
func (r *Registry) Cached(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cache[key]
	return ok
}

// Parses returns how many page templates were parsed so far.
func (r *Registry) Parses() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parses
}

// Invalidate drops a cached view. An empty key reparses the base templates
// and drops every view.
func (r *Registry) Invalidate(key string) error {
	if key != "" {
		r.mu.Lock()
		delete(r.cache, key)
		r.mu.Unlock()
		return nil
	}
	base, err := r.parseBase()
	if err != nil {
		return err
	}
	// Executed templates cannot be cloned, so partials render from their own
	// copy and base stays pristine for pages.
	partials, err := base.Clone()
	if err != nil {
		return fmt.Errorf("clone partials: %w", err)
	}
	r.mu.Lock()
	r.base = base
	r.partials = partials
	r.cache = map[string]*Page{}
	r.mu.Unlock()
	return nil
}

// RenderPartial executes a shared template such as the navbar on its own.
func (r *Registry) RenderPartial(w io.Writer, name string, data any) error {
	r.mu.RLock()
	t := r.partials
	r.mu.RUnlock()
	if t == nil || t.Lookup(name) == nil {
		return fmt.Errorf("%w: partial %q", ErrUnknownView, name)
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render partial %s: %w", name, err)
	}
	return nil
}

func (r *Registry) parsePage(key string) (*Page, error) {
	r.mu.RLock()
	if p, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	base := r.base
	r.mu.RUnlock()

	p, err := r.buildPage(base, key)
	if err != nil {
		return nil, err
	}
	if r.cachePage(base, p) {
		r.logger.Debug("view parsed", zap.String("view", key))
	}
	return p, nil
}

func (r *Registry) buildPage(base *template.Template, key string) (*Page, error) {
	path := filepath.Join(r.dir, pagesDir, key+".tmpl")
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownView, key)
		}
		return nil, fmt.Errorf("read view %s: %w", key, err)
	}
	// Clone keeps the shared base untouched; each page defines its own "main".
	t, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone base for %s: %w", key, err)
	}
	if _, err := t.New(filepath.Base(path)).Parse(string(src)); err != nil {
		return nil, fmt.Errorf("parse view %s: %w", key, err)
	}
	return &Page{name: key, tmpl: t}, nil
}

// cachePage stores p unless the base it was cloned from has been reparsed
// in the meantime; such a page is still served once but never cached.
func (r *Registry) cachePage(base *template.Template, p *Page) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parses++
	if r.base != base {
		return false
	}
	r.cache[p.name] = p
	return true
}

// parseBase recursively discovers layout and partial templates, skipping the
// per-view pages directory.
func (r *Registry) parseBase() (*template.Template, error) {
	var files []string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != r.dir && d.Name() == pagesDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", r.dir)
	}
	t, err := template.New("_root").Funcs(r.funcs).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}
	if t.Lookup(layoutTemplate) == nil || t.Lookup(fragmentTemplate) == nil {
		return nil, fmt.Errorf("templates under %s must define %q and %q", r.dir, layoutTemplate, fragmentTemplate)
	}
	return t, nil
}
