// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dimension is one classification axis of a food record. Its value is the
// name of the food-record field that carries the classification.
type Dimension string

const (
	Group          Dimension = "grupoExportable"
	Subgroup       Dimension = "subGrupoExportable"
	UltraProcessed Dimension = "clasificacionExportable"
	Adequacy       Dimension = "subGrupoAdecuada"
)

// Dimensions lists every export dimension in display order.
var Dimensions = []Dimension{Group, Subgroup, UltraProcessed, Adequacy}

var aliases = map[string]Dimension{
	"group":          Group,
	"groups":         Group,
	"subgroup":       Subgroup,
	"subgroups":      Subgroup,
	"ultraprocessed": UltraProcessed,
	"ultra":          UltraProcessed,
	"adequacy":       Adequacy,
}

var ErrUnknownDimension = errors.New("unknown export dimension")

// ParseDimension accepts a canonical field name or one of the short aliases.
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	if d, ok := aliases[strings.ToLower(s)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Catalog holds the ordered group names of every dimension. It is never
// mutated after construction.
type Catalog struct {
	groups map[Dimension][]string
	index  map[Dimension]map[string]int
}

// New builds a catalog from the given lists. The lists are copied.
func New(lists map[Dimension][]string) (*Catalog, error) {
	c := &Catalog{
		groups: make(map[Dimension][]string, len(lists)),
		index:  make(map[Dimension]map[string]int, len(lists)),
	}
	for key, names := range lists {
		dim, err := ParseDimension(string(key))
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("dimension %s has no groups", dim)
		}
		idx := make(map[string]int, len(names))
		for i, name := range names {
			if _, dup := idx[name]; dup {
				return nil, fmt.Errorf("dimension %s lists %q twice", dim, name)
			}
			idx[name] = i
		}
		c.groups[dim] = append([]string(nil), names...)
		c.index[dim] = idx
	}
	return c, nil
}

// Groups returns a copy of the ordered group names for d.
func (c *Catalog) Groups(d Dimension) []string {
	return append([]string(nil), c.groups[d]...)
}

// Has reports whether d is configured in this catalog.
func (c *Catalog) Has(d Dimension) bool {
	_, ok := c.groups[d]
	return ok
}

// Index returns the catalog position of group within d, or -1.
func (c *Catalog) Index(d Dimension, group string) int {
	if i, ok := c.index[d][group]; ok {
		return i
	}
	return -1
}

func (c *Catalog) Contains(d Dimension, group string) bool {
	return c.Index(d, group) >= 0
}

type fileFormat struct {
	Dimensions map[string][]string `yaml:"dimensions"`
}

// LoadFile reads a YAML catalog:
//
//	dimensions:
//	  grupoExportable: [Leches, Quesos]
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Dimensions) == 0 {
		return nil, fmt.Errorf("catalog %s defines no dimensions", path)
	}
	lists := make(map[Dimension][]string, len(doc.Dimensions))
	for name, groups := range doc.Dimensions {
		d, err := ParseDimension(name)
		if err != nil {
			return nil, err
		}
		lists[d] = groups
	}
	return New(lists)
}
