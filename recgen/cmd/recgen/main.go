// recgen generates Go record mappings from record layout files.
//
// Usage:
//
//	recgen -layout records.rdl [-out records_gen.go] [-pkg records] [-acronyms]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/netlark/go-recdal/recgen"
)

const version = "0.2.0"

func main() {
	layoutFile := flag.String("layout", "", "Path to record layout file (required)")
	outFile := flag.String("out", "", "Output Go file (default: stdout)")
	pkg := flag.String("pkg", "records", "Package name for generated code")
	acronyms := flag.Bool("acronyms", true, "Apply Go naming conventions for acronyms (ID, URL, etc.)")
	register := flag.Bool("register", true, "Emit a RegisterAll function for the generated types")
	versionStr := flag.String("layout-version", "", "Layout version string (included in generated header)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("recgen %s\n", version)
		os.Exit(0)
	}

	if *layoutFile == "" {
		fmt.Fprintln(os.Stderr, "error: -layout flag is required")
		flag.Usage()
		os.Exit(1)
	}

	layout, err := recgen.ParseLayoutFile(*layoutFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var w *os.File
	if *outFile != "" {
		w, err = os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = w.Close() }()
	} else {
		w = os.Stdout
	}

	cfg := recgen.RenderConfig{
		PackageName:   *pkg,
		UseAcronyms:   *acronyms,
		Register:      *register,
		LayoutVersion: *versionStr,
	}
	if err := recgen.Render(w, layout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error rendering: %v\n", err)
		os.Exit(1)
	}
}
