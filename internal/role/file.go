package role

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Spec is the on-disk form of a role configuration.
type Spec struct {
	CheckIn   string `json:"check_in" yaml:"check_in" toml:"check_in"`
	CheckOut  string `json:"check_out" yaml:"check_out" toml:"check_out"`
	Overnight bool   `json:"overnight,omitempty" yaml:"overnight,omitempty" toml:"overnight,omitempty"`
	// Shift names the variant ("daytime" or "overnight") and takes
	// precedence over Overnight when set.
	Shift string `json:"shift,omitempty" yaml:"shift,omitempty" toml:"shift,omitempty"`
}

// Document is the on-disk form of a role table. Roles missing from a
// document keep the values of the table it is applied to.
type Document struct {
	Default string          `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Roles   map[string]Spec `json:"roles,omitempty" yaml:"roles,omitempty" toml:"roles,omitempty"`
}

// Config converts s into a Config named name.
func (s Spec) Config(name string) (Config, error) {
	c := Config{Name: NormalizeName(name), CheckIn: strings.TrimSpace(s.CheckIn), CheckOut: strings.TrimSpace(s.CheckOut)}
	if s.Shift == "" {
		if s.Overnight {
			c.Shift = OvernightShift
		}
		return c, nil
	}
	shift, err := ParseShift(s.Shift)
	if err != nil {
		return Config{}, fmt.Errorf("role %s: %w", c.Name, err)
	}
	c.Shift = shift
	return c, nil
}

// SpecOf converts c into its on-disk form.
func SpecOf(c Config) Spec {
	return Spec{CheckIn: c.CheckIn, CheckOut: c.CheckOut, Overnight: c.Shift == OvernightShift}
}

// Apply layers doc on top of base and returns the resulting table.
func (doc Document) Apply(base *Table) (*Table, error) {
	names := make([]string, 0, len(doc.Roles))
	for name := range doc.Roles {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make([]Config, 0, len(names))
	for _, name := range names {
		if NormalizeName(name) == "" {
			return nil, fmt.Errorf("role name is required")
		}
		c, err := doc.Roles[name].Config(name)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}

	t := base.With(configs...)
	if doc.Default == "" {
		return t, nil
	}
	return t.WithDefault(doc.Default)
}

// DocumentOf converts a table into its on-disk form.
func DocumentOf(t *Table) Document {
	doc := Document{Default: t.DefaultName(), Roles: make(map[string]Spec)}
	for _, c := range t.Configs() {
		doc.Roles[c.Name] = SpecOf(c)
	}
	return doc
}

// Decode parses a role document in the given format ("json", "yaml" or
// "toml").
func Decode(data []byte, format string) (Document, error) {
	var doc Document
	var err error
	switch strings.ToLower(format) {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("unsupported role file format %q (supported: json, yaml, toml)", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decoding %s role file: %w", format, err)
	}
	return doc, nil
}

// LoadFile reads a role document from path, picking the format from the
// file extension, and applies it on top of base.
func LoadFile(path string, base *Table) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	t, err := doc.Apply(base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
