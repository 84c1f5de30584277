package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/bom"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/netlist"
	"github.com/spf13/cobra"
)

var bomOut string

var bomCmd = &cobra.Command{
	Use:   "bom <schematic_file>",
	Short: "Export a bill of materials",
	Long: `Group components by value and footprint into BOM lines.

The output format follows the -o extension: .csv or .xlsx.
Without -o, a table is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runBOM,
}

func init() {
	rootCmd.AddCommand(bomCmd)
	bomCmd.Flags().StringVarP(&bomOut, "out", "o", "", "output file (.csv or .xlsx)")
}

func runBOM(cmd *cobra.Command, args []string) error {
	doc, err := kicad.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	nl, err := netlist.Extract(doc)
	if err != nil {
		return err
	}
	lines := bom.Build(nl)

	switch {
	case bomOut == "":
		fmt.Printf("%-30s %-15s %-30s %s\n", "References", "Value", "Footprint", "Qty")
		for _, line := range lines {
			fmt.Printf("%-30s %-15s %-30s %d\n",
				strings.Join(line.References, ", "), line.Value, line.Footprint, line.Quantity)
		}
		return nil

	case strings.HasSuffix(bomOut, ".csv"):
		var buf bytes.Buffer
		if err := bom.WriteCSV(lines, &buf); err != nil {
			return err
		}
		return os.WriteFile(bomOut, buf.Bytes(), 0o644)

	case strings.HasSuffix(bomOut, ".xlsx"):
		data, err := bom.BuildXLSX(doc.Name, lines)
		if err != nil {
			return err
		}
		return os.WriteFile(bomOut, data, 0o644)

	default:
		return fmt.Errorf("unsupported output extension for %q (want .csv or .xlsx)", bomOut)
	}
}
