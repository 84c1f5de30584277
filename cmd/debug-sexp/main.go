// debug-sexp cross-checks our streaming S-expression scanner against the
// general-purpose chewxy/sexp parser on the same schematic file.
package main

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-sexp <schematic.kicad_sch>")
		os.Exit(1)
	}

	filename := os.Args[1]

	file, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Println("chewxy/sexp parse:")
	sexps, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Parsed %d top-level s-expressions\n", len(sexps))
		if len(sexps) > 0 && !sexps[0].IsLeaf() {
			fmt.Printf("  Root leaf count: %d\n", sexps[0].LeafCount())
		}
	}

	fmt.Println("\nstreaming importer parse:")
	doc, err := kicad.ParseFile(filename)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		os.Exit(1)
	}
	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		fmt.Printf("  sheet %q: %d components, %d wires, %d labels, %d power ports, %d junctions\n",
			sheet.Name, len(sheet.Components), len(sheet.Wires),
			len(sheet.Labels), len(sheet.PowerPorts), len(sheet.Junctions))
	}
}
