package erc

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WriteReport writes a plain-text violation report
func WriteReport(w io.Writer, docName string, violations []Violation) error {
	if _, err := fmt.Fprintf(w, "ERC report: %s\n", docName); err != nil {
		return err
	}
	summary := Summarize(violations)
	fmt.Fprintf(w, "%d errors, %d warnings\n\n", summary.Errors, summary.Warnings)

	for _, v := range violations {
		fmt.Fprintf(w, "[%s] %s at (%.2f, %.2f): %s\n",
			v.Severity, v.Type, v.Location.X, v.Location.Y, v.Message)
	}
	return nil
}

// WritePDF writes a printable violation report to a PDF file
func WritePDF(path, docName string, violations []Violation) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("ERC report: %s", docName))
	pdf.Ln(10)

	summary := Summarize(violations)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d errors, %d warnings", summary.Errors, summary.Warnings))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(22, 7, "Severity", "1", 0, "", false, 0, "")
	pdf.CellFormat(42, 7, "Rule", "1", 0, "", false, 0, "")
	pdf.CellFormat(34, 7, "Location", "1", 0, "", false, 0, "")
	pdf.CellFormat(92, 7, "Message", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, v := range violations {
		pdf.CellFormat(22, 6, string(v.Severity), "1", 0, "", false, 0, "")
		pdf.CellFormat(42, 6, string(v.Type), "1", 0, "", false, 0, "")
		pdf.CellFormat(34, 6, fmt.Sprintf("(%.1f, %.1f)", v.Location.X, v.Location.Y), "1", 0, "", false, 0, "")
		pdf.CellFormat(92, 6, v.Message, "1", 1, "", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("erc: failed to write PDF report: %w", err)
	}
	return nil
}
