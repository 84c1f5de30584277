package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/netlist"
	"github.com/spf13/cobra"
)

var (
	netlistFormat string
	netlistOut    string
)

var netlistCmd = &cobra.Command{
	Use:   "netlist <schematic_file>",
	Short: "Extract the netlist from a schematic",
	Long: `Resolve schematic connectivity into named nets and print or export
the result.

Formats:
  table   human-readable listing (default)
  json    JSON for downstream tooling
  kicad   KiCad netlist export format`,
	Args: cobra.ExactArgs(1),
	RunE: runNetlist,
}

func init() {
	rootCmd.AddCommand(netlistCmd)
	netlistCmd.Flags().StringVarP(&netlistFormat, "format", "f", "table", "output format (table, json, kicad)")
	netlistCmd.Flags().StringVarP(&netlistOut, "out", "o", "", "write output to file instead of stdout")
}

func runNetlist(cmd *cobra.Command, args []string) error {
	doc, err := kicad.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	nl, err := netlist.Extract(doc)
	if err != nil {
		return err
	}

	var output []byte
	switch netlistFormat {
	case "table":
		printNetlistTable(nl)
		return nil
	case "json":
		output, err = nl.ExportJSON()
		if err != nil {
			return err
		}
	case "kicad":
		text, err := nl.ExportKiCad()
		if err != nil {
			return err
		}
		output = []byte(text)
	default:
		return fmt.Errorf("unknown format %q", netlistFormat)
	}

	if netlistOut == "" {
		fmt.Print(string(output))
		return nil
	}
	return os.WriteFile(netlistOut, output, 0o644)
}

func printNetlistTable(nl *netlist.Netlist) {
	fmt.Printf("%d components, %d nets\n\n", len(nl.Components), len(nl.Nets))
	for _, net := range nl.Nets {
		fmt.Printf("%s (%d connections)\n", net.Name, len(net.Connections))
		for _, conn := range net.Connections {
			if conn.PinName != "" && conn.PinName != "~" {
				fmt.Printf("  %s pin %s (%s)\n", conn.ComponentRef, conn.PinNumber, conn.PinName)
			} else {
				fmt.Printf("  %s pin %s\n", conn.ComponentRef, conn.PinNumber)
			}
		}
	}
}
