package netlist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportJSON exports the netlist as indented JSON for downstream tooling
func (nl *Netlist) ExportJSON() ([]byte, error) {
	if nl.Nets == nil {
		return nil, fmt.Errorf("netlist: nothing extracted")
	}

	output := struct {
		Version    string      `json:"version"`
		NetCount   int         `json:"net_count"`
		Components []Component `json:"components"`
		Nets       []*Net      `json:"nets"`
	}{
		Version:    "1.0",
		NetCount:   len(nl.Nets),
		Components: nl.Components,
		Nets:       nl.Nets,
	}

	return json.MarshalIndent(output, "", "  ")
}

// ExportKiCad exports the netlist in KiCad's legacy netlist export format.
// This is a simplified format for basic connectivity exchange.
func (nl *Netlist) ExportKiCad() (string, error) {
	if nl.Nets == nil {
		return "", fmt.Errorf("netlist: nothing extracted")
	}

	var b strings.Builder
	b.WriteString("(export (version D)\n")
	b.WriteString("  (design\n")
	b.WriteString("    (source \"schematic connectivity extraction\")\n")
	b.WriteString("  )\n")

	b.WriteString("  (components\n")
	for _, comp := range nl.Components {
		fmt.Fprintf(&b, "    (comp (ref %s) (value %q)", comp.Reference, comp.Value)
		if comp.Footprint != "" {
			fmt.Fprintf(&b, " (footprint %q)", comp.Footprint)
		}
		b.WriteString(")\n")
	}
	b.WriteString("  )\n")

	b.WriteString("  (nets\n")
	for i, net := range nl.Nets {
		fmt.Fprintf(&b, "    (net (code %d) (name %q)\n", i+1, net.Name)
		for _, conn := range net.Connections {
			fmt.Fprintf(&b, "      (node (ref %s) (pin %s))\n", conn.ComponentRef, conn.PinNumber)
		}
		b.WriteString("    )\n")
	}
	b.WriteString("  )\n")
	b.WriteString(")\n")

	return b.String(), nil
}
