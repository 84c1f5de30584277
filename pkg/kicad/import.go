package kicad

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// ParseFile reads a KiCad schematic file into a single-sheet document
func ParseFile(filename string) (*schematic.Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("kicad: failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(filename), ".kicad_sch")
	}
	return doc, nil
}

// Parse reads a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*schematic.Document, error) {
	exprs, err := parseSexp(r)
	if err != nil {
		return nil, fmt.Errorf("kicad: failed to parse s-expression: %w", err)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("kicad: empty file")
	}

	root := &exprs[0]
	if root.name() != "kicad_sch" {
		return nil, fmt.Errorf("kicad: not a schematic file: expected 'kicad_sch', got %q", root.name())
	}

	sheet := schematic.Sheet{Name: "root"}

	libPins := parseLibSymbols(root)
	for _, symNode := range root.children("symbol") {
		parsePlacedSymbol(symNode, libPins, &sheet)
	}
	for _, wireNode := range root.children("wire") {
		sheet.Wires = append(sheet.Wires, parseWire(wireNode))
	}
	for _, labelNode := range root.children("label") {
		sheet.Labels = append(sheet.Labels, parseLabel(labelNode))
	}
	for _, labelNode := range root.children("global_label") {
		sheet.Labels = append(sheet.Labels, parseLabel(labelNode))
	}
	for _, juncNode := range root.children("junction") {
		sheet.Junctions = append(sheet.Junctions, schematic.Junction{
			ID:       uuidOf(juncNode),
			Position: positionOf(juncNode),
		})
	}

	doc := &schematic.Document{
		ID:     uuidOf(root),
		Name:   titleOf(root),
		Sheets: []schematic.Sheet{sheet},
	}
	return doc, nil
}

// parseLibSymbols maps each embedded library symbol name to its pin
// definitions, collected across all symbol units.
func parseLibSymbols(root *node) map[string][]schematic.Pin {
	pins := make(map[string][]schematic.Pin)
	libs := root.child("lib_symbols")
	if libs == nil {
		return pins
	}

	for _, symNode := range libs.children("symbol") {
		name := symNode.str(1)
		for _, unit := range symNode.children("symbol") {
			for _, pinNode := range unit.children("pin") {
				pins[name] = append(pins[name], parsePin(pinNode))
			}
		}
	}
	return pins
}

func parsePin(n *node) schematic.Pin {
	pin := schematic.Pin{Type: pinType(n.str(1))}
	if at := n.child("at"); at != nil {
		pin.Position = schematic.Point{X: at.float(1), Y: at.float(2)}
		pin.Orientation = at.float(3)
	}
	if name := n.child("name"); name != nil {
		pin.Name = name.str(1)
	}
	if num := n.child("number"); num != nil {
		pin.Number = num.str(1)
		pin.ID = schematic.EntityID("pin-" + num.str(1))
	}
	return pin
}

// pinType maps KiCad electrical type symbols to the document model
func pinType(s string) schematic.PinType {
	switch s {
	case "input":
		return schematic.PinInput
	case "output":
		return schematic.PinOutput
	case "bidirectional", "tri_state":
		return schematic.PinBidirectional
	case "passive", "free":
		return schematic.PinPassive
	case "power_in":
		return schematic.PinPowerIn
	case "power_out":
		return schematic.PinPowerOut
	case "open_collector":
		return schematic.PinOpenCollector
	case "open_emitter":
		return schematic.PinOpenEmitter
	case "no_connect":
		return schematic.PinNoConnect
	default:
		return schematic.PinUnspecified
	}
}

// parsePlacedSymbol maps a placed symbol either to a component or, for
// power-library symbols, to a power port named by the symbol's value.
func parsePlacedSymbol(n *node, libPins map[string][]schematic.Pin, sheet *schematic.Sheet) {
	libID := ""
	if lib := n.child("lib_id"); lib != nil {
		libID = lib.str(1)
	}
	pos := positionOf(n)
	props := propertiesOf(n)

	if strings.HasPrefix(libID, "power:") {
		sheet.PowerPorts = append(sheet.PowerPorts, schematic.PowerPort{
			ID:       uuidOf(n),
			Position: pos,
			Name:     props["Value"],
			Style:    strings.TrimPrefix(libID, "power:"),
		})
		return
	}

	comp := schematic.Component{
		ID:        uuidOf(n),
		Reference: props["Reference"],
		Value:     props["Value"],
		Footprint: props["Footprint"],
		Position:  pos,
		Symbol: schematic.Symbol{
			Name: libID,
			Pins: libPins[libID],
		},
		Properties: props,
	}
	if at := n.child("at"); at != nil {
		comp.Rotation = at.float(3)
	}
	if mirror := n.child("mirror"); mirror != nil {
		switch mirror.str(1) {
		case "x":
			comp.Mirror = schematic.MirrorX
		case "y":
			comp.Mirror = schematic.MirrorY
		}
	}
	sheet.Components = append(sheet.Components, comp)
}

func parseWire(n *node) schematic.Wire {
	wire := schematic.Wire{ID: uuidOf(n)}
	if pts := n.child("pts"); pts != nil {
		for _, xy := range pts.children("xy") {
			wire.Points = append(wire.Points, schematic.Point{
				X: xy.float(1),
				Y: xy.float(2),
			})
		}
	}
	return wire
}

func parseLabel(n *node) schematic.NetLabel {
	return schematic.NetLabel{
		ID:       uuidOf(n),
		Position: positionOf(n),
		Text:     n.str(1),
	}
}

func positionOf(n *node) schematic.Point {
	if at := n.child("at"); at != nil {
		return schematic.Point{X: at.float(1), Y: at.float(2)}
	}
	return schematic.Point{}
}

func uuidOf(n *node) schematic.EntityID {
	if u := n.child("uuid"); u != nil {
		return schematic.EntityID(u.str(1))
	}
	return ""
}

func propertiesOf(n *node) map[string]string {
	props := make(map[string]string)
	for _, p := range n.children("property") {
		key := p.str(1)
		if key != "" {
			props[key] = p.str(2)
		}
	}
	return props
}

func titleOf(root *node) string {
	if tb := root.child("title_block"); tb != nil {
		if title := tb.child("title"); title != nil {
			return title.str(1)
		}
	}
	return ""
}
