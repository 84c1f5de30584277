// debug-connectivity dumps the raw connectivity groups of a schematic sheet
// before net naming, for diagnosing tolerance-join issues.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/connectivity"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-connectivity <schematic.kicad_sch>")
		os.Exit(1)
	}

	doc, err := kicad.ParseFile(os.Args[1])
	if err != nil {
		log.Fatalf("Error parsing schematic: %v", err)
	}

	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		r := connectivity.BuildSheet(sheet)
		names := connectivity.ResolveNames(r)
		groups := r.Groups()

		fmt.Printf("Sheet %q: %d nodes, %d groups\n", sheet.Name, r.Len(), len(groups))
		for gi, group := range groups {
			name := names[r.Find(group[0])]
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("  group %d %s (%d nodes)\n", gi, name, len(group))
			for _, h := range group {
				ref := r.Ref(h)
				switch ref.Kind {
				case connectivity.NodePin:
					fmt.Printf("    pin %s.%s at (%.2f, %.2f)\n",
						ref.Reference, ref.PinNumber, ref.Position.X, ref.Position.Y)
				case connectivity.NodeWirePoint:
					fmt.Printf("    wire %s point %d at (%.2f, %.2f)\n",
						ref.Wire, ref.PointIndex, ref.Position.X, ref.Position.Y)
				case connectivity.NodeLabel:
					fmt.Printf("    label %q at (%.2f, %.2f)\n",
						ref.Name, ref.Position.X, ref.Position.Y)
				case connectivity.NodePowerPort:
					fmt.Printf("    power port %q at (%.2f, %.2f)\n",
						ref.Name, ref.Position.X, ref.Position.Y)
				case connectivity.NodeJunction:
					fmt.Printf("    junction at (%.2f, %.2f)\n",
						ref.Position.X, ref.Position.Y)
				}
			}
		}
	}
}
