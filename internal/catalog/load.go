package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var embeddedCatalog []byte

type document struct {
	Products []productRecord `yaml:"products"`
	Menu     []menuRecord    `yaml:"menu"`
}

type productRecord struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Hero     struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
	} `yaml:"hero"`
	KeyCapabilities []string `yaml:"key_capabilities"`
	Workflow        []struct {
		Step  int    `yaml:"step"`
		Title string `yaml:"title"`
		Desc  string `yaml:"desc"`
	} `yaml:"workflow"`
	Outcomes []struct {
		Value string `yaml:"value"`
		Label string `yaml:"label"`
	} `yaml:"outcomes"`
	VisualVariant string `yaml:"visual_variant"`
}

type menuRecord struct {
	Category string `yaml:"category"`
	Items    []struct {
		Name   string `yaml:"name"`
		Target string `yaml:"target"`
	} `yaml:"items"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary. It is parsed once; an
// invalid embedded document is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded products.yaml: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile parses a catalog YAML document from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog YAML document.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	products := make([]Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		p := Product{
			ID:              strings.TrimSpace(rec.ID),
			Name:            strings.TrimSpace(rec.Name),
			Category:        strings.TrimSpace(rec.Category),
			Hero:            Hero{Title: rec.Hero.Title, Subtitle: rec.Hero.Subtitle},
			KeyCapabilities: rec.KeyCapabilities,
			VisualVariant:   VisualVariant(strings.TrimSpace(rec.VisualVariant)),
		}
		for _, w := range rec.Workflow {
			p.Workflow = append(p.Workflow, Step{Step: w.Step, Title: w.Title, Desc: w.Desc})
		}
		for _, o := range rec.Outcomes {
			p.Outcomes = append(p.Outcomes, Outcome{Value: o.Value, Label: o.Label})
		}
		products = append(products, p)
	}
	menu := make([]MenuGroup, 0, len(doc.Menu))
	for _, m := range doc.Menu {
		g := MenuGroup{Category: m.Category}
		for _, it := range m.Items {
			g.Items = append(g.Items, MenuItem{Name: it.Name, Target: strings.TrimSpace(it.Target)})
		}
		menu = append(menu, g)
	}
	return New(products, menu)
}
