package erc

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/connectivity"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// Check runs all rule checks against a document with the default severities.
// The document is read-only; each check is independent and violations from
// different checks are never deduplicated against each other.
func Check(doc *schematic.Document) ([]Violation, error) {
	return CheckWithConfig(doc, nil)
}

// CheckWithConfig runs all rule checks, applying severity overrides from cfg
// when non-nil.
func CheckWithConfig(doc *schematic.Document, cfg *Config) ([]Violation, error) {
	if doc == nil {
		return nil, fmt.Errorf("erc: invalid document")
	}

	var out []Violation
	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		out = append(out, checkUnconnectedPins(sheet)...)
		out = append(out, checkConflictingPinTypes(sheet)...)
		out = append(out, checkMissingPowerFlags(sheet)...)
		out = append(out, checkUnconnectedWires(sheet)...)
		out = append(out, checkMissingNetLabels(sheet)...)
	}
	out = append(out, checkDuplicateReferences(doc)...)

	if cfg != nil {
		for i := range out {
			out[i].Severity = cfg.severityFor(out[i].Type, out[i].Severity)
		}
	}
	return out, nil
}

// worldPin pairs a pin with its owning component and world position
type worldPin struct {
	comp *schematic.Component
	pin  schematic.Pin
	pos  schematic.Point
}

func sheetPins(sheet *schematic.Sheet) []worldPin {
	var pins []worldPin
	for ci := range sheet.Components {
		comp := &sheet.Components[ci]
		for _, pin := range comp.Symbol.Pins {
			pins = append(pins, worldPin{
				comp: comp,
				pin:  pin,
				pos:  comp.PinWorldPosition(pin),
			})
		}
	}
	return pins
}

// checkUnconnectedPins flags pins that touch neither a wire point, a
// junction, nor another component's pin. Passive pins downgrade to a warning
// (a spare resistor leg is common); every other type is an error.
func checkUnconnectedPins(sheet *schematic.Sheet) []Violation {
	var attach []schematic.Point
	for wi := range sheet.Wires {
		attach = append(attach, sheet.Wires[wi].Points...)
	}
	for _, junc := range sheet.Junctions {
		attach = append(attach, junc.Position)
	}

	pins := sheetPins(sheet)
	var out []Violation

	for i, wp := range pins {
		connected := false
		for _, pt := range attach {
			if schematic.WithinTolerance(wp.pos, pt) {
				connected = true
				break
			}
		}
		if !connected {
			for j, other := range pins {
				if i == j || other.comp == wp.comp {
					continue
				}
				if schematic.WithinTolerance(wp.pos, other.pos) {
					connected = true
					break
				}
			}
		}
		if connected {
			continue
		}

		severity := SeverityError
		if wp.pin.Type == schematic.PinPassive {
			severity = SeverityWarning
		}
		out = append(out, Violation{
			Type:     UnconnectedPin,
			Severity: severity,
			Message: fmt.Sprintf("pin %s (%s) of %s is not connected",
				wp.pin.Number, wp.pin.Name, wp.comp.Reference),
			Location:  wp.pos,
			ObjectIDs: []schematic.EntityID{wp.comp.ID, wp.pin.ID},
		})
	}
	return out
}

// checkConflictingPinTypes flags pairs of driver pins (output or power
// output) sharing a connection point, directly or through wires. Passive and
// input combinations never conflict.
func checkConflictingPinTypes(sheet *schematic.Sheet) []Violation {
	r := connectivity.BuildSheet(sheet)

	var out []Violation
	for _, group := range r.Groups() {
		var drivers []connectivity.NodeRef
		for _, h := range group {
			ref := r.Ref(h)
			if ref.Kind == connectivity.NodePin && ref.PinType.IsDriver() {
				drivers = append(drivers, ref)
			}
		}
		for i := 0; i < len(drivers); i++ {
			for j := i + 1; j < len(drivers); j++ {
				a, b := drivers[i], drivers[j]
				out = append(out, Violation{
					Type:     ConflictingPinTypes,
					Severity: SeverityError,
					Message: fmt.Sprintf("conflicting drivers: pin %s of %s and pin %s of %s share a net",
						a.PinNumber, a.Reference, b.PinNumber, b.Reference),
					Location:  a.Position,
					ObjectIDs: []schematic.EntityID{a.Component, b.Component},
				})
			}
		}
	}
	return out
}

// checkMissingPowerFlags flags power-input pins with no power source: no
// power port or power-output pin at the pin's point, and no power port
// reachable through the transitive closure of wires sharing endpoints.
func checkMissingPowerFlags(sheet *schematic.Sheet) []Violation {
	pins := sheetPins(sheet)
	var out []Violation

	for i, wp := range pins {
		if wp.pin.Type != schematic.PinPowerIn {
			continue
		}
		if powerAt(sheet, wp.pos) {
			continue
		}

		satisfied := false
		for j, other := range pins {
			if i != j && other.pin.Type == schematic.PinPowerOut &&
				schematic.WithinTolerance(wp.pos, other.pos) {
				satisfied = true
				break
			}
		}
		if !satisfied && powerReachableByWire(sheet, wp.pos) {
			satisfied = true
		}
		if satisfied {
			continue
		}

		out = append(out, Violation{
			Type:     MissingPowerFlag,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("power input pin %s (%s) of %s is not driven by any power source",
				wp.pin.Number, wp.pin.Name, wp.comp.Reference),
			Location:  wp.pos,
			ObjectIDs: []schematic.EntityID{wp.comp.ID, wp.pin.ID},
		})
	}
	return out
}

func powerAt(sheet *schematic.Sheet, pos schematic.Point) bool {
	for _, port := range sheet.PowerPorts {
		if schematic.WithinTolerance(pos, port.Position) {
			return true
		}
	}
	return false
}

// powerReachableByWire expands a worklist of wires touching pos until a
// fixed point, then checks whether any reached wire touches a power port.
func powerReachableByWire(sheet *schematic.Sheet, pos schematic.Point) bool {
	reached := make([]bool, len(sheet.Wires))
	queue := []int{}
	for wi := range sheet.Wires {
		if wireTouches(&sheet.Wires[wi], pos) {
			reached[wi] = true
			queue = append(queue, wi)
		}
	}

	for len(queue) > 0 {
		wi := queue[0]
		queue = queue[1:]
		for wj := range sheet.Wires {
			if reached[wj] {
				continue
			}
			if wiresShareAPoint(&sheet.Wires[wi], &sheet.Wires[wj]) {
				reached[wj] = true
				queue = append(queue, wj)
			}
		}
	}

	for wi, ok := range reached {
		if !ok {
			continue
		}
		for _, pt := range sheet.Wires[wi].Points {
			if powerAt(sheet, pt) {
				return true
			}
		}
	}
	return false
}

func wireTouches(wire *schematic.Wire, pos schematic.Point) bool {
	for _, pt := range wire.Points {
		if schematic.WithinTolerance(pt, pos) {
			return true
		}
	}
	return false
}

func wiresShareAPoint(a, b *schematic.Wire) bool {
	for _, pa := range a.Points {
		for _, pb := range b.Points {
			if schematic.WithinTolerance(pa, pb) {
				return true
			}
		}
	}
	return false
}

// checkDuplicateReferences flags reference designators used by more than one
// component anywhere in the document, once per duplicated reference.
func checkDuplicateReferences(doc *schematic.Document) []Violation {
	type refUse struct {
		ids []schematic.EntityID
		pos schematic.Point
	}
	uses := make(map[string]*refUse)
	var order []string

	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		for ci := range sheet.Components {
			comp := &sheet.Components[ci]
			if comp.Reference == "" {
				continue
			}
			use := uses[comp.Reference]
			if use == nil {
				use = &refUse{pos: comp.Position}
				uses[comp.Reference] = use
				order = append(order, comp.Reference)
			}
			use.ids = append(use.ids, comp.ID)
		}
	}

	var out []Violation
	for _, ref := range order {
		use := uses[ref]
		if len(use.ids) < 2 {
			continue
		}
		out = append(out, Violation{
			Type:     DuplicateReference,
			Severity: SeverityError,
			Message: fmt.Sprintf("reference %s is used by %d components",
				ref, len(use.ids)),
			Location:  use.pos,
			ObjectIDs: use.ids,
		})
	}
	return out
}

// checkUnconnectedWires flags wire terminal points (not interior bends) that
// coincide with no other entity's connection point.
func checkUnconnectedWires(sheet *schematic.Sheet) []Violation {
	pins := sheetPins(sheet)
	var out []Violation

	for wi := range sheet.Wires {
		wire := &sheet.Wires[wi]
		if len(wire.Points) < 2 {
			continue
		}
		for _, end := range []schematic.Point{wire.Points[0], wire.Points[len(wire.Points)-1]} {
			if wireEndConnected(sheet, pins, wi, end) {
				continue
			}
			out = append(out, Violation{
				Type:      UnconnectedWire,
				Severity:  SeverityWarning,
				Message:   "wire end is not connected to anything",
				Location:  end,
				ObjectIDs: []schematic.EntityID{wire.ID},
			})
		}
	}
	return out
}

func wireEndConnected(sheet *schematic.Sheet, pins []worldPin, self int, end schematic.Point) bool {
	for _, wp := range pins {
		if schematic.WithinTolerance(end, wp.pos) {
			return true
		}
	}
	for _, label := range sheet.Labels {
		if schematic.WithinTolerance(end, label.Position) {
			return true
		}
	}
	for _, port := range sheet.PowerPorts {
		if schematic.WithinTolerance(end, port.Position) {
			return true
		}
	}
	for _, junc := range sheet.Junctions {
		if schematic.WithinTolerance(end, junc.Position) {
			return true
		}
	}
	for wj := range sheet.Wires {
		if wj == self {
			continue
		}
		if wireTouches(&sheet.Wires[wj], end) {
			return true
		}
	}
	return false
}

// checkMissingNetLabels groups wires into connected components and flags
// groups that join two or more pins without a net label anywhere along their
// points. An unlabeled multi-pin net still works but is hard to probe and
// review, so this is a warning.
func checkMissingNetLabels(sheet *schematic.Sheet) []Violation {
	if len(sheet.Wires) == 0 {
		return nil
	}

	// Independent union-find over wires, one node per wire
	r := connectivity.NewResolver()
	for wi := range sheet.Wires {
		r.Add(connectivity.NodeRef{
			Kind: connectivity.NodeWirePoint,
			Wire: sheet.Wires[wi].ID,
		})
	}
	for i := 0; i < len(sheet.Wires); i++ {
		for j := i + 1; j < len(sheet.Wires); j++ {
			if wiresShareAPoint(&sheet.Wires[i], &sheet.Wires[j]) {
				r.Union(i, j)
			}
		}
	}

	pins := sheetPins(sheet)
	var out []Violation

	for _, group := range r.Groups() {
		type pinID struct {
			comp schematic.EntityID
			num  string
		}
		touched := make(map[pinID]bool)
		labeled := false

		for _, wi := range group {
			wire := &sheet.Wires[wi]
			for _, wp := range pins {
				if wireTouches(wire, wp.pos) {
					touched[pinID{wp.comp.ID, wp.pin.Number}] = true
				}
			}
			if !labeled {
				for _, label := range sheet.Labels {
					if wireTouches(wire, label.Position) {
						labeled = true
						break
					}
				}
			}
		}

		if len(touched) < 2 || labeled {
			continue
		}

		ids := make([]schematic.EntityID, 0, len(group))
		for _, wi := range group {
			ids = append(ids, sheet.Wires[wi].ID)
		}
		first := &sheet.Wires[group[0]]
		loc := schematic.Point{}
		if len(first.Points) > 0 {
			loc = first.Points[0]
		}
		out = append(out, Violation{
			Type:     MissingNetLabel,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("net connecting %d pins has no net label",
				len(touched)),
			Location:  loc,
			ObjectIDs: ids,
		})
	}
	return out
}
