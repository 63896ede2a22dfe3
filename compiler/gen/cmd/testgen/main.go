// testgen is a simple test program to demonstrate the generator on an
// in-memory document.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/syssam/flatgen/compiler/gen"
	"github.com/syssam/flatgen/compiler/load"
)

func main() {
	// Create a temp directory for output
	outDir, err := os.MkdirTemp("", "flatgen-test-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	doc := &load.Document{
		Namespaces: []string{"Demo"},
		Enums: []*load.Enum{
			{
				Name:       "Kind",
				Namespace:  "Demo",
				Underlying: "ubyte",
				Values: []*load.EnumValue{
					{Name: "Circle", Value: 0},
					{Name: "Square", Value: 1},
				},
			},
		},
		Structs: []*load.Struct{
			{
				Name:      "Point",
				Namespace: "Demo",
				Fixed:     true,
				MinAlign:  4,
				ByteSize:  8,
				Fields: []*load.Field{
					{Name: "x", Type: load.TypeRef{Base: "float"}},
					{Name: "y", Type: load.TypeRef{Base: "float"}, Offset: 4},
				},
			},
			{
				Name:      "Shape",
				Namespace: "Demo",
				Fields: []*load.Field{
					{Name: "kind", Type: load.TypeRef{Base: "ubyte", Ref: "Kind"}, Offset: 4},
					{Name: "center", Type: load.TypeRef{Base: "struct", Ref: "Point"}, Offset: 6},
					{Name: "label", Type: load.TypeRef{Base: "string"}, Offset: 8, Required: true},
				},
			},
		},
		Root:             "Shape",
		FileIdentifier:   "SHPE",
		CurrentNamespace: "Demo",
	}
	s, err := load.Resolve(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve document: %v\n", err)
		os.Exit(1)
	}

	g, err := gen.New(
		gen.WithFeatures(gen.FeatureNameStrings, gen.FeatureMutableBuffer),
		gen.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create generator: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Generating code...")
	res, err := g.Generate(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	path := filepath.Join(outDir, g.Target().FileName("shape"))
	if err := os.WriteFile(path, []byte(res.Code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("\nGenerated %s (%d bytes, %d warnings)\n", path, len(res.Code), len(res.Warnings))

	// Show first 80 lines
	fmt.Println("\n--- Sample ---")
	lines := strings.SplitAfter(res.Code, "\n")
	if len(lines) > 80 {
		lines = append(lines[:80], "... (truncated)\n")
	}
	fmt.Print(strings.Join(lines, ""))

	fmt.Println("Done!")
}
