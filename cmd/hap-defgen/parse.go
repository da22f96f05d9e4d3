package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// RawCharacteristicDef represents a characteristic definition loaded from YAML.
type RawCharacteristicDef struct {
	Tag         string    `yaml:"tag"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Format      string    `yaml:"format"`
	Unit        string    `yaml:"unit"`
	Perms       []string  `yaml:"perms"`
	Min         *float64  `yaml:"min"`
	Max         *float64  `yaml:"max"`
	Step        *float64  `yaml:"step"`
	ValidValues []float64 `yaml:"valid-values"`
}

// RawServiceDef represents a service definition loaded from YAML.
type RawServiceDef struct {
	Tag      string   `yaml:"tag"`
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
}

// RawCatalog represents a full type catalog loaded from YAML.
type RawCatalog struct {
	Characteristics []RawCharacteristicDef `yaml:"characteristics"`
	Services        []RawServiceDef        `yaml:"services"`
}

// ParseCatalog parses a type catalog from YAML bytes.
func ParseCatalog(data []byte) (*RawCatalog, error) {
	var cat RawCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(cat.Characteristics) == 0 {
		return nil, fmt.Errorf("catalog defines no characteristics")
	}
	return &cat, nil
}

// LoadCatalog loads and parses a type catalog from a file.
func LoadCatalog(path string) (*RawCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ValidateCatalog checks the catalog for problems that would produce a
// broken registry: duplicate or empty tags, invalid type UUIDs, unknown
// formats, and service rows referencing undefined characteristic tags.
func ValidateCatalog(cat *RawCatalog) error {
	charTags := make(map[string]bool, len(cat.Characteristics))
	for _, def := range cat.Characteristics {
		if def.Tag == "" || def.Name == "" {
			return fmt.Errorf("characteristic %q: missing tag or name", def.Tag)
		}
		if charTags[def.Tag] {
			return fmt.Errorf("duplicate characteristic tag %q", def.Tag)
		}
		charTags[def.Tag] = true

		if _, err := model.NormalizeUUID(def.Type); err != nil {
			return fmt.Errorf("characteristic %q: %w", def.Tag, err)
		}
		if !model.Format(def.Format).IsValid() {
			return fmt.Errorf("characteristic %q: invalid format %q", def.Tag, def.Format)
		}
	}

	svcTags := make(map[string]bool, len(cat.Services))
	for _, def := range cat.Services {
		if def.Tag == "" || def.Name == "" {
			return fmt.Errorf("service %q: missing tag or name", def.Tag)
		}
		if svcTags[def.Tag] {
			return fmt.Errorf("duplicate service tag %q", def.Tag)
		}
		svcTags[def.Tag] = true

		if _, err := model.NormalizeUUID(def.Type); err != nil {
			return fmt.Errorf("service %q: %w", def.Tag, err)
		}
		for _, tag := range def.Required {
			if !charTags[tag] {
				return fmt.Errorf("service %q: unresolved required characteristic %q", def.Tag, tag)
			}
		}
		for _, tag := range def.Optional {
			if !charTags[tag] {
				return fmt.Errorf("service %q: unresolved optional characteristic %q", def.Tag, tag)
			}
		}
	}

	return nil
}
