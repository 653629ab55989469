// Package catalog holds the static product catalog shared by the navigation
// resolver and the product menu.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Product is a single catalog entry rendered by the product detail view.
type Product struct {
	ID              string
	Name            string
	Category        string
	Hero            Hero
	KeyCapabilities []string
	Workflow        []Step
	Outcomes        []Outcome
	VisualVariant   VisualVariant
}

// Hero is the headline block at the top of a product page.
type Hero struct {
	Title    string
	Subtitle string
}

// Step is one entry of a product workflow. Steps are expected to count up
// from 1 but nothing enforces it.
type Step struct {
	Step  int
	Title string
	Desc  string
}

// Outcome is a headline metric shown under the workflow.
type Outcome struct {
	Value string
	Label string
}

// MenuGroup is a category column of the products mega menu.
type MenuGroup struct {
	Category string
	Items    []MenuItem
}

// MenuItem links a menu label to a navigation id. Targets are usually catalog
// ids but may alias a static page such as "products".
type MenuItem struct {
	Name   string
	Target string
}

// Catalog is an immutable id -> Product mapping. It is safe for concurrent
// readers and exposes no mutation methods.
type Catalog struct {
	byID  map[string]Product
	order []string
	menu  []MenuGroup
}

// DuplicateIDError reports catalog ids defined more than once.
type DuplicateIDError struct {
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("catalog: duplicate product ids [%s]", strings.Join(e.IDs, ", "))
}

// ValidationError lists records that failed structural validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog: invalid records: %s", strings.Join(e.Problems, "; "))
}

// New builds a catalog from records in configuration order. Duplicate ids are
// rejected instead of letting the last definition win.
func New(products []Product, menu []MenuGroup) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[string]Product, len(products)),
		order: make([]string, 0, len(products)),
	}
	seen := map[string]int{}
	var problems []string
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			problems = append(problems, fmt.Sprintf("record %d: empty id", i))
			continue
		}
		if !p.VisualVariant.Valid() {
			problems = append(problems, fmt.Sprintf("%s: unknown visual variant %q", p.ID, p.VisualVariant))
		}
		seen[p.ID]++
		if seen[p.ID] > 1 {
			continue
		}
		c.byID[p.ID] = cloneProduct(p)
		c.order = append(c.order, p.ID)
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return nil, &DuplicateIDError{IDs: dups}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	for _, g := range menu {
		items := make([]MenuItem, len(g.Items))
		copy(items, g.Items)
		c.menu = append(c.menu, MenuGroup{Category: g.Category, Items: items})
	}
	return c, nil
}

// Has reports whether id is exactly a catalog key. Matching is case-sensitive
// with no trimming.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// Get returns the record for id. Unknown ids yield the zero Product and false.
func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	p, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return cloneProduct(p), true
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// IDs returns product ids in configuration order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Products returns every record in configuration order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneProduct(c.byID[id]))
	}
	return out
}

// Categories groups products by category, keeping first-seen category order.
func (c *Catalog) Categories() []MenuGroup {
	if c == nil {
		return nil
	}
	var groups []MenuGroup
	index := map[string]int{}
	for _, id := range c.order {
		p := c.byID[id]
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, MenuGroup{Category: p.Category})
		}
		groups[i].Items = append(groups[i].Items, MenuItem{Name: p.Name, Target: p.ID})
	}
	return groups
}

// Menu returns the configured products mega menu. When none was configured
// the menu is derived from product categories.
func (c *Catalog) Menu() []MenuGroup {
	if c == nil {
		return nil
	}
	if len(c.menu) == 0 {
		return c.Categories()
	}
	out := make([]MenuGroup, 0, len(c.menu))
	for _, g := range c.menu {
		items := make([]MenuItem, len(g.Items))
		copy(items, g.Items)
		out = append(out, MenuGroup{Category: g.Category, Items: items})
	}
	return out
}

func cloneProduct(p Product) Product {
	cp := p
	cp.KeyCapabilities = append([]string(nil), p.KeyCapabilities...)
	cp.Workflow = append([]Step(nil), p.Workflow...)
	cp.Outcomes = append([]Outcome(nil), p.Outcomes...)
	return cp
}
