package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <schematic_file>",
	Short: "Show schematic summary",
	Long:  `Display a summary of a KiCad schematic file: components, wires, labels and power ports.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := kicad.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	fmt.Printf("Schematic: %s\n", args[0])
	if doc.Name != "" {
		fmt.Printf("Title: %s\n", doc.Name)
	}
	fmt.Printf("Sheets: %d\n", len(doc.Sheets))
	fmt.Println()

	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		fmt.Printf("Sheet %q:\n", sheet.Name)
		fmt.Printf("  Components: %d\n", len(sheet.Components))
		fmt.Printf("  Wires: %d\n", len(sheet.Wires))
		fmt.Printf("  Net labels: %d\n", len(sheet.Labels))
		fmt.Printf("  Power ports: %d\n", len(sheet.PowerPorts))
		fmt.Printf("  Junctions: %d\n", len(sheet.Junctions))
		fmt.Println()

		if len(sheet.Components) > 0 {
			printComponentsByPrefix(sheet)
		}
	}
	return nil
}

func printComponentsByPrefix(sheet *schematic.Sheet) {
	byPrefix := make(map[string][]string)
	for ci := range sheet.Components {
		ref := sheet.Components[ci].Reference
		if ref != "" {
			prefix := refPrefix(ref)
			byPrefix[prefix] = append(byPrefix[prefix], ref)
		}
	}

	var prefixes []string
	for p := range byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	fmt.Println("  Components by prefix:")
	for _, prefix := range prefixes {
		refs := byPrefix[prefix]
		sort.Strings(refs)
		fmt.Printf("    %s: %s\n", prefix, strings.Join(refs, ", "))
	}
	fmt.Println()
}

func refPrefix(ref string) string {
	for i, c := range ref {
		if c >= '0' && c <= '9' {
			return ref[:i]
		}
	}
	return ref
}
