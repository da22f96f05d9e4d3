package main

import (
	"path/filepath"
	"runtime"
	"testing"
)

// catalogPath returns the absolute path to the registry catalog relative to
// this test file.
func catalogPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "pkg", "registry", "types.yaml")
}

func TestParseCatalogMinimal(t *testing.T) {
	yaml := `
characteristics:
  - tag: "On"
    name: "On"
    type: "25"
    format: bool
    perms: [pr, pw, ev]
  - tag: Brightness
    name: Brightness
    type: "8"
    format: int
    unit: percentage
    perms: [pr, pw, ev]
    min: 0
    max: 100
    step: 1
services:
  - tag: Lightbulb
    name: Lightbulb
    type: "43"
    required: ["On"]
    optional: [Brightness]
`
	cat, err := ParseCatalog([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}

	if len(cat.Characteristics) != 2 {
		t.Fatalf("len(characteristics) = %d, want 2", len(cat.Characteristics))
	}

	on := cat.Characteristics[0]
	if on.Tag != "On" {
		t.Errorf("tag = %q, want On", on.Tag)
	}
	if on.Type != "25" {
		t.Errorf("type = %q, want 25", on.Type)
	}
	if on.Format != "bool" {
		t.Errorf("format = %q, want bool", on.Format)
	}
	if len(on.Perms) != 3 || on.Perms[0] != "pr" {
		t.Errorf("perms = %v, want [pr pw ev]", on.Perms)
	}

	brightness := cat.Characteristics[1]
	if brightness.Unit != "percentage" {
		t.Errorf("unit = %q, want percentage", brightness.Unit)
	}
	if brightness.Min == nil || *brightness.Min != 0 {
		t.Error("min not parsed")
	}
	if brightness.Max == nil || *brightness.Max != 100 {
		t.Error("max not parsed")
	}
	if brightness.Step == nil || *brightness.Step != 1 {
		t.Error("step not parsed")
	}

	if len(cat.Services) != 1 {
		t.Fatalf("len(services) = %d, want 1", len(cat.Services))
	}
	svc := cat.Services[0]
	if svc.Tag != "Lightbulb" || svc.Type != "43" {
		t.Errorf("service = %+v, want Lightbulb/43", svc)
	}
	if len(svc.Required) != 1 || svc.Required[0] != "On" {
		t.Errorf("required = %v, want [On]", svc.Required)
	}
	if len(svc.Optional) != 1 || svc.Optional[0] != "Brightness" {
		t.Errorf("optional = %v, want [Brightness]", svc.Optional)
	}
}

func TestParseCatalogRejectsEmpty(t *testing.T) {
	if _, err := ParseCatalog([]byte("services: []")); err == nil {
		t.Error("expected an error for a catalog without characteristics")
	}
}

func TestParseCatalogInvalidYAML(t *testing.T) {
	if _, err := ParseCatalog([]byte("characteristics: [a, {")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadCatalogRealDefinitions(t *testing.T) {
	cat, err := LoadCatalog(catalogPath(t))
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if len(cat.Characteristics) == 0 {
		t.Fatal("shipped catalog has no characteristics")
	}
	if len(cat.Services) == 0 {
		t.Fatal("shipped catalog has no services")
	}

	if err := ValidateCatalog(cat); err != nil {
		t.Errorf("shipped catalog does not validate: %v", err)
	}

	found := false
	for _, def := range cat.Characteristics {
		if def.Tag == "On" {
			found = true
			if def.Format != "bool" {
				t.Errorf("On format = %q, want bool", def.Format)
			}
		}
	}
	if !found {
		t.Error("shipped catalog missing the On characteristic")
	}
}

func TestValidateCatalog(t *testing.T) {
	valid := func() *RawCatalog {
		return &RawCatalog{
			Characteristics: []RawCharacteristicDef{
				{Tag: "On", Name: "On", Type: "25", Format: "bool", Perms: []string{"pr", "pw"}},
			},
			Services: []RawServiceDef{
				{Tag: "Switch", Name: "Switch", Type: "49", Required: []string{"On"}},
			},
		}
	}

	if err := ValidateCatalog(valid()); err != nil {
		t.Fatalf("valid catalog rejected: %v", err)
	}

	tests := []struct {
		name  string
		corrupt func(*RawCatalog)
	}{
		{"MissingCharacteristicName", func(c *RawCatalog) { c.Characteristics[0].Name = "" }},
		{"DuplicateCharacteristicTag", func(c *RawCatalog) {
			c.Characteristics = append(c.Characteristics, c.Characteristics[0])
		}},
		{"InvalidCharacteristicType", func(c *RawCatalog) { c.Characteristics[0].Type = "not hex" }},
		{"InvalidFormat", func(c *RawCatalog) { c.Characteristics[0].Format = "decimal" }},
		{"MissingServiceName", func(c *RawCatalog) { c.Services[0].Name = "" }},
		{"DuplicateServiceTag", func(c *RawCatalog) {
			c.Services = append(c.Services, c.Services[0])
		}},
		{"InvalidServiceType", func(c *RawCatalog) { c.Services[0].Type = "xyz!" }},
		{"UnresolvedRequired", func(c *RawCatalog) { c.Services[0].Required = []string{"Sparkle"} }},
		{"UnresolvedOptional", func(c *RawCatalog) { c.Services[0].Optional = []string{"Sparkle"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := valid()
			tt.corrupt(cat)
			if err := ValidateCatalog(cat); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
