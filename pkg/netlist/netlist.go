// Package netlist extracts a named netlist from a schematic document: it
// groups coincident geometry into nets per sheet, names each net by the
// priority rule (label > power port > inline wire name > synthesized), and
// merges nets across sheets that resolve to the same name.
package netlist

// Connection identifies one component pin belonging to a net
type Connection struct {
	ComponentRef string `json:"ref"`
	PinNumber    string `json:"pin"`
	PinName      string `json:"pin_name,omitempty"`
}

// Net is a named set of electrically common component pins
type Net struct {
	Name        string       `json:"name"`
	Connections []Connection `json:"connections"`
}

// Component is the netlist's view of a placed component, de-duplicated by
// reference designator across sheets.
type Component struct {
	Reference  string            `json:"reference"`
	Value      string            `json:"value"`
	Footprint  string            `json:"footprint,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Netlist is the extraction result: a component cross-reference plus nets.
// Both slices are freshly allocated per extraction and independent of the
// source document.
type Netlist struct {
	Components []Component `json:"components"`
	Nets       []*Net      `json:"nets"`
}

// FindNet returns the net with the given name, or nil
func (nl *Netlist) FindNet(name string) *Net {
	for _, net := range nl.Nets {
		if net.Name == name {
			return net
		}
	}
	return nil
}

// has reports whether the net already lists this (component, pin) pair
func (n *Net) has(conn Connection) bool {
	for _, c := range n.Connections {
		if c.ComponentRef == conn.ComponentRef && c.PinNumber == conn.PinNumber {
			return true
		}
	}
	return false
}
