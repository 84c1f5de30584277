package kicad

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

const sampleSchematic = `(kicad_sch (version 20231120) (generator "eeschema")
  (uuid "doc-uuid")
  (title_block (title "Test Board"))
  (lib_symbols
    (symbol "Device:R"
      (symbol "R_0_1")
      (symbol "R_1_1"
        (pin passive line (at 0 3.81 270)
          (name "~" (effects (font (size 1.27 1.27))))
          (number "1" (effects (font (size 1.27 1.27)))))
        (pin passive line (at 0 -3.81 90)
          (name "~" (effects (font (size 1.27 1.27))))
          (number "2" (effects (font (size 1.27 1.27))))))))
  (junction (at 100 50) (uuid "junc-1"))
  (wire (pts (xy 50 50) (xy 100 50)) (uuid "wire-1"))
  (label "SIG_A" (at 50 50 0) (uuid "label-1"))
  (global_label "SIG_B" (at 100 50 0) (uuid "glabel-1"))
  (symbol (lib_id "Device:R") (at 75 25 90) (mirror y) (uuid "sym-1")
    (property "Reference" "R1" (at 0 0 0))
    (property "Value" "10k" (at 0 0 0))
    (property "Footprint" "Resistor_SMD:R_0603" (at 0 0 0)))
  (symbol (lib_id "power:GND") (at 100 75 0) (uuid "pwr-1")
    (property "Reference" "#PWR01" (at 0 0 0))
    (property "Value" "GND" (at 0 0 0))))
`

func parseSample(t *testing.T) *schematic.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleSchematic))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseRejectsNonSchematic(t *testing.T) {
	if _, err := Parse(strings.NewReader("(kicad_pcb (version 1))")); err == nil {
		t.Errorf("non-schematic root should be rejected")
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Errorf("empty input should be rejected")
	}
}

func TestParseDocumentHeader(t *testing.T) {
	doc := parseSample(t)
	if doc.ID != "doc-uuid" {
		t.Errorf("document ID = %q, want doc-uuid", doc.ID)
	}
	if doc.Name != "Test Board" {
		t.Errorf("document name = %q, want title block title", doc.Name)
	}
	if len(doc.Sheets) != 1 {
		t.Fatalf("expected a single root sheet, got %d", len(doc.Sheets))
	}
}

func TestParseComponent(t *testing.T) {
	sheet := parseSample(t).Sheets[0]
	if len(sheet.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(sheet.Components))
	}

	comp := sheet.Components[0]
	if comp.Reference != "R1" || comp.Value != "10k" {
		t.Errorf("component = %s %s, want R1 10k", comp.Reference, comp.Value)
	}
	if comp.Footprint != "Resistor_SMD:R_0603" {
		t.Errorf("footprint = %q", comp.Footprint)
	}
	if comp.Position.X != 75 || comp.Position.Y != 25 {
		t.Errorf("position = (%v, %v), want (75, 25)", comp.Position.X, comp.Position.Y)
	}
	if comp.Rotation != 90 {
		t.Errorf("rotation = %v, want 90", comp.Rotation)
	}
	if comp.Mirror != schematic.MirrorY {
		t.Errorf("mirror = %v, want MirrorY", comp.Mirror)
	}
}

func TestParseLibraryPins(t *testing.T) {
	comp := parseSample(t).Sheets[0].Components[0]
	if len(comp.Symbol.Pins) != 2 {
		t.Fatalf("expected 2 pins from the library symbol, got %d", len(comp.Symbol.Pins))
	}

	pin := comp.Symbol.Pins[0]
	if pin.Number != "1" || pin.Type != schematic.PinPassive {
		t.Errorf("pin = %+v, want passive pin 1", pin)
	}
	if pin.Position.X != 0 || pin.Position.Y != 3.81 {
		t.Errorf("pin position = (%v, %v), want (0, 3.81)", pin.Position.X, pin.Position.Y)
	}
	if pin.Orientation != 270 {
		t.Errorf("pin orientation = %v, want 270", pin.Orientation)
	}
}

func TestParsePowerSymbolBecomesPort(t *testing.T) {
	sheet := parseSample(t).Sheets[0]
	if len(sheet.PowerPorts) != 1 {
		t.Fatalf("expected 1 power port, got %d", len(sheet.PowerPorts))
	}

	port := sheet.PowerPorts[0]
	if port.Name != "GND" {
		t.Errorf("port name = %q, want the symbol's value GND", port.Name)
	}
	if port.Style != "GND" {
		t.Errorf("port style = %q, want GND from the lib_id", port.Style)
	}
	if port.Position.X != 100 || port.Position.Y != 75 {
		t.Errorf("port position = (%v, %v), want (100, 75)", port.Position.X, port.Position.Y)
	}

	// The power symbol must not also appear as a component
	for _, comp := range sheet.Components {
		if comp.Reference == "#PWR01" {
			t.Errorf("power symbol leaked into the component list")
		}
	}
}

func TestParseWiresLabelsJunctions(t *testing.T) {
	sheet := parseSample(t).Sheets[0]

	if len(sheet.Wires) != 1 {
		t.Fatalf("expected 1 wire, got %d", len(sheet.Wires))
	}
	w := sheet.Wires[0]
	if len(w.Points) != 2 || w.Points[0].X != 50 || w.Points[1].X != 100 {
		t.Errorf("wire points = %+v", w.Points)
	}

	if len(sheet.Labels) != 2 {
		t.Fatalf("expected local plus global label, got %d", len(sheet.Labels))
	}
	if sheet.Labels[0].Text != "SIG_A" || sheet.Labels[1].Text != "SIG_B" {
		t.Errorf("label texts = %q, %q", sheet.Labels[0].Text, sheet.Labels[1].Text)
	}

	if len(sheet.Junctions) != 1 || sheet.Junctions[0].Position.X != 100 {
		t.Errorf("junctions = %+v", sheet.Junctions)
	}
}

func TestPinTypeMapping(t *testing.T) {
	tests := []struct {
		kicad string
		want  schematic.PinType
	}{
		{"input", schematic.PinInput},
		{"output", schematic.PinOutput},
		{"bidirectional", schematic.PinBidirectional},
		{"tri_state", schematic.PinBidirectional},
		{"passive", schematic.PinPassive},
		{"free", schematic.PinPassive},
		{"power_in", schematic.PinPowerIn},
		{"power_out", schematic.PinPowerOut},
		{"open_collector", schematic.PinOpenCollector},
		{"open_emitter", schematic.PinOpenEmitter},
		{"no_connect", schematic.PinNoConnect},
		{"unspecified", schematic.PinUnspecified},
		{"garbage", schematic.PinUnspecified},
	}
	for _, tt := range tests {
		if got := pinType(tt.kicad); got != tt.want {
			t.Errorf("pinType(%q) = %v, want %v", tt.kicad, got, tt.want)
		}
	}
}

func TestScannerHandlesEscapes(t *testing.T) {
	doc, err := Parse(strings.NewReader(
		"(kicad_sch (label \"A \\\"quoted\\\" name\" (at 0 0 0) (uuid \"l1\")))"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := doc.Sheets[0].Labels[0].Text; got != `A "quoted" name` {
		t.Errorf("escaped string = %q", got)
	}
}

func TestParseUnbalancedInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("(kicad_sch (wire (pts (xy 0 0)")); err == nil {
		t.Errorf("unterminated list should be rejected")
	}
}
