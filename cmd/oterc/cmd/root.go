package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "oterc",
	Short: "OpenTraceERC - Schematic connectivity and electrical rule checking",
	Long: `OpenTraceERC (oterc) extracts netlists from schematic documents and
validates them against electrical design rules.

Examples:
  oterc info design.kicad_sch          # Show schematic summary
  oterc netlist design.kicad_sch       # Extract and print the netlist
  oterc erc design.kicad_sch           # Run electrical rule checks
  oterc bom design.kicad_sch -o bom.csv  # Export a bill of materials`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
