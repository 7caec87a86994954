package paper

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed subjects.yaml
var subjectsYAML []byte

// Subject is a catalog entry for a subject code
type Subject struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

type catalogFile struct {
	Subjects []Subject `yaml:"subjects"`
}

// Catalog indexes subjects by code
type Catalog struct {
	byCode map[string]Subject
	sorted []Subject
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(subjectsYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// ParseCatalog builds a catalog from YAML. Duplicate codes are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse subject catalog: %w", err)
	}

	c := &Catalog{byCode: make(map[string]Subject, len(file.Subjects))}
	for _, s := range file.Subjects {
		s.Code = strings.TrimSpace(s.Code)
		if s.Code == "" {
			return nil, fmt.Errorf("subject %q has no code", s.Name)
		}
		if _, dup := c.byCode[s.Code]; dup {
			return nil, fmt.Errorf("duplicate subject code %s", s.Code)
		}
		c.byCode[s.Code] = s
		c.sorted = append(c.sorted, s)
	}
	sort.Slice(c.sorted, func(i, j int) bool { return c.sorted[i].Code < c.sorted[j].Code })
	return c, nil
}

// Lookup returns the subject for code
func (c *Catalog) Lookup(code string) (Subject, bool) {
	if c == nil {
		return Subject{}, false
	}
	s, ok := c.byCode[strings.TrimSpace(code)]
	return s, ok
}

// Subjects returns all subjects sorted by code
func (c *Catalog) Subjects() []Subject {
	if c == nil {
		return nil
	}
	out := make([]Subject, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Codes returns all subject codes sorted
func (c *Catalog) Codes() []string {
	subjects := c.Subjects()
	codes := make([]string, 0, len(subjects))
	for _, s := range subjects {
		codes = append(codes, s.Code)
	}
	return codes
}
