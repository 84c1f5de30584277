package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/erc"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/kicad"
	"github.com/spf13/cobra"
)

var (
	ercConfigPath string
	ercPDFPath    string
)

var ercCmd = &cobra.Command{
	Use:   "erc <schematic_file>",
	Short: "Run electrical rule checks",
	Long: `Validate a schematic against electrical design rules: unconnected
pins, conflicting drivers, missing power sources, duplicate references,
dangling wires and unlabeled nets.

Exits with status 1 when any error-severity violation is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runERC,
}

func init() {
	rootCmd.AddCommand(ercCmd)
	ercCmd.Flags().StringVarP(&ercConfigPath, "config", "c", "", "YAML severity-override file")
	ercCmd.Flags().StringVar(&ercPDFPath, "pdf", "", "also write a PDF report to this path")
}

func runERC(cmd *cobra.Command, args []string) error {
	doc, err := kicad.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	var cfg *erc.Config
	if ercConfigPath != "" {
		cfg, err = erc.LoadConfig(ercConfigPath)
		if err != nil {
			return err
		}
	}

	violations, err := erc.CheckWithConfig(doc, cfg)
	if err != nil {
		return err
	}

	if err := erc.WriteReport(os.Stdout, doc.Name, violations); err != nil {
		return err
	}

	if ercPDFPath != "" {
		if err := erc.WritePDF(ercPDFPath, doc.Name, violations); err != nil {
			return err
		}
		fmt.Printf("\nPDF report written to %s\n", ercPDFPath)
	}

	if erc.Summarize(violations).Errors > 0 {
		os.Exit(1)
	}
	return nil
}
