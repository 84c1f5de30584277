// Package schematic defines the document model consumed by the connectivity
// and ERC engines: component instances with positioned pins, polyline wires,
// net labels, power ports and junctions. The model is pure geometry,
// produced by an editor or file loader and never mutated by this module.
package schematic

// EntityID is an opaque, stable identifier for a schematic entity
// (typically a UUID assigned by the editor or file loader).
type EntityID string

// Point represents a 2D coordinate in schematic units
type Point struct {
	X float64
	Y float64
}

// PinType is the electrical class of a pin
type PinType string

const (
	PinInput         PinType = "input"
	PinOutput        PinType = "output"
	PinBidirectional PinType = "bidirectional"
	PinPassive       PinType = "passive"
	PinPowerIn       PinType = "power_in"
	PinPowerOut      PinType = "power_out"
	PinOpenCollector PinType = "open_collector"
	PinOpenEmitter   PinType = "open_emitter"
	PinNoConnect     PinType = "no_connect"
	PinUnspecified   PinType = "unspecified"
)

// IsDriver reports whether two pins of this type at the same point would
// fight each other (outputs and power outputs drive their net).
func (t PinType) IsDriver() bool {
	return t == PinOutput || t == PinPowerOut
}

// Pin represents a symbol pin, positioned relative to the symbol origin
type Pin struct {
	ID          EntityID
	Name        string
	Number      string
	Type        PinType
	Position    Point   // Offset from the symbol origin
	Orientation float64 // Direction the pin points: 0, 90, 180, 270
}

// Symbol is the pin/graphic definition embedded in a component instance
type Symbol struct {
	Name string
	Pins []Pin
}

// Component represents a placed component instance
type Component struct {
	ID         EntityID
	Reference  string  // Reference designator (e.g. "R1", "U3")
	Value      string  // Component value (e.g. "10k", "STM32F103")
	Footprint  string  // Footprint reference for the PCB side
	Position   Point   // World position of the symbol origin
	Rotation   float64 // Rotation in degrees
	Mirror     MirrorAxis
	Symbol     Symbol
	Properties map[string]string
}

// MirrorAxis selects the axis a component is mirrored about, if any
type MirrorAxis string

const (
	MirrorNone MirrorAxis = ""
	MirrorX    MirrorAxis = "x" // Flip across the X axis (negates local Y)
	MirrorY    MirrorAxis = "y" // Flip across the Y axis (negates local X)
)

// Wire represents a polyline wire segment chain. All points of one wire are
// electrically common along its full length, like a bus bar.
type Wire struct {
	ID      EntityID
	Points  []Point
	NetName string // Optional inline net name
}

// NetLabel attaches a name to whatever coincides with its position
type NetLabel struct {
	ID       EntityID
	Position Point
	Text     string
}

// PowerPort represents a power rail symbol (VCC, GND, ...). It is both a
// connection point and a net-naming source.
type PowerPort struct {
	ID       EntityID
	Position Point
	Name     string
	Style    string // Visual style (bar, arrow, circle, ...)
}

// Junction marks an explicit wire coincidence point
type Junction struct {
	ID       EntityID
	Position Point
}

// Sheet is one page of a schematic document
type Sheet struct {
	ID         EntityID
	Name       string
	Components []Component
	Wires      []Wire
	Labels     []NetLabel
	PowerPorts []PowerPort
	Junctions  []Junction
}

// Document is the root unit of work: an ordered list of sheets.
// Connectivity is computed per sheet; nets merge across sheets by name.
type Document struct {
	ID     EntityID
	Name   string
	Sheets []Sheet
}

// Property returns a component property value, or "" if absent
func (c *Component) Property(key string) string {
	if c.Properties == nil {
		return ""
	}
	return c.Properties[key]
}

// FindComponent returns the first component with the given reference
// designator, searching sheets in order, or nil if not found.
func (d *Document) FindComponent(ref string) *Component {
	for si := range d.Sheets {
		comps := d.Sheets[si].Components
		for ci := range comps {
			if comps[ci].Reference == ref {
				return &comps[ci]
			}
		}
	}
	return nil
}

// ComponentCount returns the total number of components across all sheets
func (d *Document) ComponentCount() int {
	n := 0
	for i := range d.Sheets {
		n += len(d.Sheets[i].Components)
	}
	return n
}
