// Package stylelevel provides the read-only catalog of style levels and the
// curated Tailwind class vocabulary allowed at each level.
package stylelevel

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Level is a named styling density tier.
type Level string

const (
	Full Level = "full"
	Mid  Level = "mid"
	Low  Level = "low"
)

// DefaultLevel is used when no level is configured or requested.
const DefaultLevel = Full

var rank = map[Level]int{Low: 1, Mid: 2, Full: 3}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := rank[l]
	return ok
}

// Info describes a style level.
type Info struct {
	Key          Level    `yaml:"key" json:"key"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	ClassDensity string   `yaml:"class_density" json:"class_density"`
	Features     []string `yaml:"features" json:"features"`
}

type category struct {
	Name    string             `yaml:"name"`
	Classes map[Level][]string `yaml:"classes"`
}

type catalogFile struct {
	Levels     []Info     `yaml:"levels"`
	Categories []category `yaml:"categories"`
}

// Catalog is an immutable lookup of levels and their class vocabulary.
// It is safe for concurrent use.
type Catalog struct {
	levels     []Info
	byKey      map[Level]Info
	categories []category
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary, parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("stylelevel: embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse style level catalog: %w", err)
	}
	c := &Catalog{
		levels:     f.Levels,
		byKey:      make(map[Level]Info, len(f.Levels)),
		categories: f.Categories,
	}
	for _, info := range f.Levels {
		if !info.Key.Valid() {
			return nil, fmt.Errorf("unknown style level %q in catalog", info.Key)
		}
		c.byKey[info.Key] = info
	}
	return c, nil
}

// Get returns the metadata for key.
func (c *Catalog) Get(key Level) (Info, bool) {
	info, ok := c.byKey[key]
	return info, ok
}

// Exists reports whether key is in the catalog.
func (c *Catalog) Exists(key Level) bool {
	_, ok := c.byKey[key]
	return ok
}

// All returns every level in catalog order.
func (c *Catalog) All() []Info {
	out := make([]Info, len(c.levels))
	copy(out, c.levels)
	return out
}

// Categories returns category names in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Name)
	}
	return out
}

// CategoryClasses is one category's classes at a level.
type CategoryClasses struct {
	Category string   `json:"category"`
	Classes  []string `json:"classes"`
}

// ClassesByCategory returns the classes of level grouped by category, in
// catalog order. Unknown levels yield nil.
func (c *Catalog) ClassesByCategory(level Level) []CategoryClasses {
	if !c.Exists(level) {
		return nil
	}
	var out []CategoryClasses
	for _, cat := range c.categories {
		classes, ok := cat.Classes[level]
		if !ok {
			continue
		}
		out = append(out, CategoryClasses{Category: cat.Name, Classes: append([]string(nil), classes...)})
	}
	return out
}

// ClassesFor returns the classes of one category at level. An unknown
// level or category yields an empty slice.
func (c *Catalog) ClassesFor(level Level, categoryName string) []string {
	for _, cat := range c.categories {
		if cat.Name == categoryName {
			return append([]string{}, cat.Classes[level]...)
		}
	}
	return []string{}
}

// FlattenedClasses returns the union of all categories at level with
// duplicates removed, keeping first-occurrence order.
func (c *Catalog) FlattenedClasses(level Level) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range c.ClassesByCategory(level) {
		for _, cls := range group.Classes {
			if _, dup := seen[cls]; dup {
				continue
			}
			seen[cls] = struct{}{}
			out = append(out, cls)
		}
	}
	return out
}

// Compare orders levels low < mid < full and returns -1, 0 or 1.
// Unknown levels rank below low.
func Compare(a, b Level) int {
	ra, rb := rank[a], rank[b]
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}
