package netlist

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// onePinComp places a component whose single pin sits exactly at (x, y)
func onePinComp(ref, value string, x, y float64) schematic.Component {
	return schematic.Component{
		ID:        schematic.EntityID("comp-" + ref),
		Reference: ref,
		Value:     value,
		Position:  schematic.Point{X: x, Y: y},
		Symbol: schematic.Symbol{
			Pins: []schematic.Pin{
				{ID: "pin-1", Number: "1", Name: "~", Type: schematic.PinPassive},
			},
		},
	}
}

func wire(id string, pts ...schematic.Point) schematic.Wire {
	return schematic.Wire{ID: schematic.EntityID(id), Points: pts}
}

func TestExtractNilDocument(t *testing.T) {
	if _, err := Extract(nil); err == nil {
		t.Fatalf("Extract(nil) should fail with an invalid document error")
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	nl, err := Extract(&schematic.Document{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 0 {
		t.Errorf("empty document should produce no nets, got %d", len(nl.Nets))
	}
}

func TestExtractSimpleWireNet(t *testing.T) {
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{{
			Components: []schematic.Component{
				onePinComp("R1", "10k", 0, 0),
				onePinComp("R2", "10k", 100, 0),
			},
			Wires: []schematic.Wire{
				wire("w1", schematic.Point{X: 0, Y: 0}, schematic.Point{X: 100, Y: 0}),
			},
		}},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nl.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(nl.Components))
	}
	if len(nl.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nl.Nets))
	}

	net := nl.Nets[0]
	if net.Name != "Net1" {
		t.Errorf("net name = %q, want synthesized %q", net.Name, "Net1")
	}
	if len(net.Connections) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(net.Connections))
	}
	if net.Connections[0].ComponentRef != "R1" || net.Connections[1].ComponentRef != "R2" {
		t.Errorf("connections not sorted by reference: %+v", net.Connections)
	}
}

func TestNamingPriorityLabelWins(t *testing.T) {
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{{
			Components: []schematic.Component{
				onePinComp("C1", "100n", 0, 0),
			},
			Wires: []schematic.Wire{
				wire("w1", schematic.Point{X: 0, Y: 0}, schematic.Point{X: 50, Y: 0}),
			},
			Labels: []schematic.NetLabel{
				{ID: "l1", Position: schematic.Point{X: 50, Y: 0}, Text: "VCC"},
			},
			PowerPorts: []schematic.PowerPort{
				{ID: "p1", Position: schematic.Point{X: 50, Y: 0}, Name: "+5V"},
			},
		}},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nl.Nets))
	}
	if nl.Nets[0].Name != "VCC" {
		t.Errorf("net name = %q, want %q (label beats power port)", nl.Nets[0].Name, "VCC")
	}
}

func TestGroupsWithoutPinsProduceNoNet(t *testing.T) {
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{{
			Wires: []schematic.Wire{
				wire("w1", schematic.Point{X: 0, Y: 0}, schematic.Point{X: 100, Y: 0}),
			},
			Labels: []schematic.NetLabel{
				{ID: "l1", Position: schematic.Point{X: 0, Y: 0}, Text: "FLOATING"},
			},
		}},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 0 {
		t.Errorf("labeled wire with no pins should produce no net, got %d", len(nl.Nets))
	}
}

func TestSynthesizedNamesSpanSheets(t *testing.T) {
	makeSheet := func(suffix string) schematic.Sheet {
		return schematic.Sheet{
			Components: []schematic.Component{
				onePinComp("R"+suffix+"a", "1k", 0, 0),
				onePinComp("R"+suffix+"b", "1k", 100, 0),
			},
			Wires: []schematic.Wire{
				wire("w"+suffix, schematic.Point{X: 0, Y: 0}, schematic.Point{X: 100, Y: 0}),
			},
		}
	}
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{makeSheet("1"), makeSheet("2")},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 2 {
		t.Fatalf("expected 2 nets, got %d", len(nl.Nets))
	}
	if nl.Nets[0].Name == nl.Nets[1].Name {
		t.Errorf("synthesized names must not collide across sheets: both %q", nl.Nets[0].Name)
	}
	if nl.Nets[0].Name != "Net1" || nl.Nets[1].Name != "Net2" {
		t.Errorf("got names %q, %q, want Net1, Net2", nl.Nets[0].Name, nl.Nets[1].Name)
	}
}

func TestCrossSheetMergeByName(t *testing.T) {
	makeSheet := func(ref string) schematic.Sheet {
		return schematic.Sheet{
			Components: []schematic.Component{
				onePinComp(ref, "100n", 0, 0),
			},
			PowerPorts: []schematic.PowerPort{
				{ID: schematic.EntityID("p-" + ref), Position: schematic.Point{X: 0, Y: 0}, Name: "GND"},
			},
		}
	}
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{makeSheet("C1"), makeSheet("C2")},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 1 {
		t.Fatalf("expected a single merged net, got %d", len(nl.Nets))
	}
	net := nl.Nets[0]
	if net.Name != "GND" {
		t.Errorf("merged net name = %q, want GND", net.Name)
	}
	if len(net.Connections) != 2 {
		t.Fatalf("merged net should carry both sheets' pins, got %d connections", len(net.Connections))
	}
}

func TestComponentDedupFirstWins(t *testing.T) {
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{
			{Components: []schematic.Component{onePinComp("R1", "first", 0, 0)}},
			{Components: []schematic.Component{onePinComp("R1", "second", 500, 500)}},
		},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Components) != 1 {
		t.Fatalf("expected 1 de-duplicated component, got %d", len(nl.Components))
	}
	if nl.Components[0].Value != "first" {
		t.Errorf("first occurrence should win, got value %q", nl.Components[0].Value)
	}
}

func TestDuplicateConnectionsSuppressed(t *testing.T) {
	// The same (component, pin) pair arriving from two sheets of a merged
	// net appears once.
	makeSheet := func() schematic.Sheet {
		return schematic.Sheet{
			Components: []schematic.Component{
				onePinComp("U1", "mcu", 0, 0),
			},
			PowerPorts: []schematic.PowerPort{
				{ID: "p1", Position: schematic.Point{X: 0, Y: 0}, Name: "VCC"},
			},
		}
	}
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{makeSheet(), makeSheet()},
	}

	nl, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nl.Nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nl.Nets))
	}
	if got := len(nl.Nets[0].Connections); got != 1 {
		t.Errorf("duplicate (component, pin) pairs should be suppressed, got %d connections", got)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	doc := &schematic.Document{
		Sheets: []schematic.Sheet{{
			Components: []schematic.Component{
				onePinComp("R1", "1k", 0, 0),
				onePinComp("R2", "1k", 100, 0),
				onePinComp("R3", "1k", 0, 100),
				onePinComp("R4", "1k", 100, 100),
			},
			Wires: []schematic.Wire{
				wire("w1", schematic.Point{X: 0, Y: 0}, schematic.Point{X: 100, Y: 0}),
				wire("w2", schematic.Point{X: 0, Y: 100}, schematic.Point{X: 100, Y: 100}),
			},
		}},
	}

	first, err := Extract(doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for trial := 0; trial < 10; trial++ {
		again, err := Extract(doc)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if len(again.Nets) != len(first.Nets) {
			t.Fatalf("net count changed between runs")
		}
		for ni := range first.Nets {
			if again.Nets[ni].Name != first.Nets[ni].Name {
				t.Fatalf("net order changed between runs: %q vs %q",
					again.Nets[ni].Name, first.Nets[ni].Name)
			}
			for ci := range first.Nets[ni].Connections {
				if again.Nets[ni].Connections[ci] != first.Nets[ni].Connections[ci] {
					t.Fatalf("connection order changed between runs")
				}
			}
		}
	}
}
