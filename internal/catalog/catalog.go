// Package catalog holds the static model catalog: one entry per selectable
// model, loaded once at startup and read-only afterwards.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Entry struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	ImageCapable bool   `yaml:"image_capable"`
}

type Catalog struct {
	entries []Entry
	byName  map[string]Entry
}

func newCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		c.byName[e.Name] = e
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return newCatalog(defaultEntries())
}

// Load reads a catalog override from a YAML file. An empty path returns the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog %s contains no models", path)
	}

	return newCatalog(entries), nil
}

// Lookup returns the entry for a model name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// IsImageCapable reports whether the named model generates images rather than
// text. Unknown models are treated as text models.
func (c *Catalog) IsImageCapable(name string) bool {
	return c.byName[name].ImageCapable
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns all model names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}
