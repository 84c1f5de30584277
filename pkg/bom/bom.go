// Package bom derives a bill of materials from an extracted netlist:
// components are grouped by value and footprint into line items suitable for
// ordering and pick-and-place handoff.
package bom

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/netlist"
)

// Line is one BOM row: all components sharing a value and footprint
type Line struct {
	References []string // Sorted reference designators
	Value      string
	Footprint  string
	Quantity   int
}

// Build groups the netlist's components into BOM lines, sorted by the first
// reference designator of each line.
func Build(nl *netlist.Netlist) []Line {
	type key struct {
		value, footprint string
	}
	byKey := make(map[key]*Line)

	for _, comp := range nl.Components {
		k := key{comp.Value, comp.Footprint}
		line := byKey[k]
		if line == nil {
			line = &Line{Value: comp.Value, Footprint: comp.Footprint}
			byKey[k] = line
		}
		line.References = append(line.References, comp.Reference)
		line.Quantity++
	}

	lines := make([]Line, 0, len(byKey))
	for _, line := range byKey {
		sort.Strings(line.References)
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].References[0] < lines[j].References[0]
	})
	return lines
}

// WriteCSV writes BOM lines as CSV with a header row
func WriteCSV(lines []Line, buf *bytes.Buffer) error {
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"References", "Value", "Footprint", "Quantity"}); err != nil {
		return err
	}
	for _, line := range lines {
		record := []string{
			strings.Join(line.References, ", "),
			line.Value,
			line.Footprint,
			strconv.Itoa(line.Quantity),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// BuildXLSX renders BOM lines as an XLSX workbook
func BuildXLSX(docName string, lines []Line) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "BOM"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Bill of Materials: %s", docName))
	_ = f.SetCellValue(sheet, "A3", "References")
	_ = f.SetCellValue(sheet, "B3", "Value")
	_ = f.SetCellValue(sheet, "C3", "Footprint")
	_ = f.SetCellValue(sheet, "D3", "Quantity")

	for i, line := range lines {
		row := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), strings.Join(line.References, ", "))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Value)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.Footprint)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.Quantity)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("bom: failed to render XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
