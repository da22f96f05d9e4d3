package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"concat": func(a, b string) string { return a + b },
	"quote":  func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(constantsTmpl))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// constantsData holds data for the constants template.
type constantsData struct {
	Package         string
	Source          string
	Characteristics []RawCharacteristicDef
	Services        []RawServiceDef
}

const constantsTmpl = `{{define "constants"}}
// Code generated by hap-defgen. DO NOT EDIT.

package {{.Package}}

// Characteristic tags defined in {{.Source}}.
const (
{{- range .Characteristics}}
{{concat "Char" .Tag}} = {{quote .Tag}}
{{- end}}
)

// Service tags defined in {{.Source}}.
const (
{{- range .Services}}
{{concat "Svc" .Tag}} = {{quote .Tag}}
{{- end}}
)
{{end}}`

// GenerateConstants renders tag constants for every characteristic and
// service in the catalog. Catalog order is preserved so the generated
// file diffs cleanly against catalog edits.
func GenerateConstants(cat *RawCatalog, pkgName, source string) (string, error) {
	if pkgName == "" {
		return "", fmt.Errorf("package name is required")
	}

	var b strings.Builder
	renderTemplate(&b, "constants", constantsData{
		Package:         pkgName,
		Source:          source,
		Characteristics: cat.Characteristics,
		Services:        cat.Services,
	})

	return strings.TrimLeft(b.String(), "\n"), nil
}
