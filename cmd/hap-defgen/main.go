// Command hap-defgen generates Go constants from a type catalog YAML.
//
// The registry package embeds a catalog of characteristic and service
// definitions. This tool turns the catalog's tags into typed constants so
// application code gets compile-time checking instead of string literals:
//
//	hap-defgen -defs pkg/registry/types.yaml -output pkg/registry/types_gen.go
//
// The output is formatted with goimports before writing. Rerun after
// editing the catalog.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	defsPath := flag.String("defs", "", "Path to the type catalog YAML")
	outputPath := flag.String("output", "", "Output path for the generated Go file")
	pkgName := flag.String("package", "registry", "Package name for the generated file")
	flag.Parse()

	if *defsPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: hap-defgen -defs <path> -output <path> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*defsPath, *outputPath, *pkgName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(defsPath, outputPath, pkgName string) error {
	cat, err := LoadCatalog(defsPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	if err := ValidateCatalog(cat); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	code, err := GenerateConstants(cat, pkgName, filepath.Base(defsPath))
	if err != nil {
		return fmt.Errorf("generating constants: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(outputPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(outputPath), err)
	}
	fmt.Printf("  generated %s\n", outputPath)

	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
