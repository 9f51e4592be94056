package content

import (
	"fmt"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"
)

var sectionIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Item is one dish. Name and Description are translation keys.
type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Price       int    `yaml:"price"`
	Spicy       bool   `yaml:"spicy"`
}

// Section is a menu tab addressed by #<ID>. Title is a translation key.
type Section struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Items []Item `yaml:"items"`
}

// Catalog is the ordered list of menu sections. The first section is
// the default.
type Catalog struct {
	byID     map[string]int
	sections []Section
}

// NewCatalog validates sections and builds a Catalog.
func NewCatalog(sections []Section) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: menu has no sections", ErrInvalidContent)
	}

	c := &Catalog{sections: sections, byID: make(map[string]int, len(sections))}
	for i, s := range sections {
		if !sectionIDPattern.MatchString(s.ID) {
			return nil, fmt.Errorf("%w: invalid menu section id %q", ErrInvalidContent, s.ID)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("%w: menu section %q has no title", ErrInvalidContent, s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate menu section %q", ErrInvalidContent, s.ID)
		}
		for _, item := range s.Items {
			if item.Name == "" || item.Price < 0 {
				return nil, fmt.Errorf("%w: invalid item in menu section %q", ErrInvalidContent, s.ID)
			}
		}
		c.byID[s.ID] = i
	}
	return c, nil
}

// LoadCatalog parses a menu YAML file.
func LoadCatalog(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("content: read menu: %w", err)
	}

	var doc struct {
		Sections []Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse menu: %v", ErrInvalidContent, err)
	}
	return NewCatalog(doc.Sections)
}

// Sections returns the sections in display order.
func (c *Catalog) Sections() []Section {
	return c.sections
}

// Default returns the first section.
func (c *Catalog) Default() Section {
	return c.sections[0]
}

// Resolve returns the section for id. Unknown or empty ids resolve to
// the default section with found=false.
func (c *Catalog) Resolve(id string) (Section, bool) {
	if i, ok := c.byID[id]; ok {
		return c.sections[i], true
	}
	return c.Default(), false
}

// Keys returns every translation key the menu references.
func (c *Catalog) Keys() []string {
	var keys []string
	for _, s := range c.sections {
		keys = append(keys, s.Title)
		for _, item := range s.Items {
			keys = append(keys, item.Name)
			if item.Description != "" {
				keys = append(keys, item.Description)
			}
		}
	}
	return keys
}
