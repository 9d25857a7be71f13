// Package catalog holds the static choice lists, the spreadsheet header
// dictionary and the default training-module catalog. The data is embedded
// at build time and parsed once.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Kind names a choice list.
type Kind string

const (
	Gender       Kind = "gender"
	Plant        Kind = "plant"
	AreaOfWork   Kind = "area_of_work"
	Category     Kind = "category"
	SkillLevel   Kind = "skill_level"
	SLStatus     Kind = "sl_status"
	ModuleStatus Kind = "module_status"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Choice is a stored value with its display label.
type Choice struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ModuleSeed is a training module entry of the default catalog.
type ModuleSeed struct {
	SNo    int    `yaml:"s_no"`
	Title  string `yaml:"title"`
	Expert string `yaml:"expert"`
}

// Catalog is immutable after Parse.
type Catalog struct {
	Choices         map[Kind][]Choice `yaml:"choices"`
	ImportHeaders   map[string]string `yaml:"import_headers"`
	TrainingModules []ModuleSeed      `yaml:"training_modules"`

	index map[Kind]map[string]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(rawCatalog)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c.index = make(map[Kind]map[string]string, len(c.Choices))
	for kind, list := range c.Choices {
		m := make(map[string]string, len(list))
		for _, ch := range list {
			if ch.Value == "" {
				return nil, fmt.Errorf("catalog %s: empty choice value", kind)
			}
			m[ch.Value] = ch.Label
		}
		c.index[kind] = m
	}

	headers := make(map[string]string, len(c.ImportHeaders))
	for h, field := range c.ImportHeaders {
		headers[NormalizeHeader(h)] = field
	}
	c.ImportHeaders = headers
	return &c, nil
}

// Has reports whether value is a valid choice of kind.
func (c *Catalog) Has(kind Kind, value string) bool {
	_, ok := c.index[kind][value]
	return ok
}

// Label returns the display label of value, or value itself when unknown.
func (c *Catalog) Label(kind Kind, value string) string {
	if l, ok := c.index[kind][value]; ok {
		return l
	}
	return value
}

// Values lists the stored values of kind in catalog order.
func (c *Catalog) Values(kind Kind) []string {
	list := c.Choices[kind]
	out := make([]string, len(list))
	for i, ch := range list {
		out[i] = ch.Value
	}
	return out
}

// HeaderField maps a spreadsheet header cell to an employee field name.
func (c *Catalog) HeaderField(header string) (string, bool) {
	f, ok := c.ImportHeaders[NormalizeHeader(header)]
	return f, ok
}

// NormalizeHeader trims, upper-cases and collapses inner whitespace.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToUpper(h)), " ")
}
