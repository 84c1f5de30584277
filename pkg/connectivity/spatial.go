package connectivity

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// BuildSheet registers every connectable entity on a sheet (component pins at
// their world positions, wire points, net labels, power ports, junctions) and
// unions everything that coincides within tolerance. All points of one wire
// are unioned regardless of pairwise distance: a wire is electrically common
// along its full length.
func BuildSheet(sheet *schematic.Sheet) *Resolver {
	r := NewResolver()
	if sheet == nil {
		return r
	}

	for ci := range sheet.Components {
		comp := &sheet.Components[ci]
		for _, pin := range comp.Symbol.Pins {
			r.Add(NodeRef{
				Kind:      NodePin,
				Position:  comp.PinWorldPosition(pin),
				Component: comp.ID,
				Reference: comp.Reference,
				PinNumber: pin.Number,
				PinName:   pin.Name,
				PinType:   pin.Type,
			})
		}
	}

	for wi := range sheet.Wires {
		wire := &sheet.Wires[wi]
		first := -1
		for pi, pt := range wire.Points {
			h := r.Add(NodeRef{
				Kind:       NodeWirePoint,
				Position:   pt,
				Wire:       wire.ID,
				PointIndex: pi,
				Name:       wire.NetName,
			})
			if first < 0 {
				first = h
			} else {
				r.Union(first, h)
			}
		}
	}

	for _, label := range sheet.Labels {
		r.Add(NodeRef{
			Kind:     NodeLabel,
			Position: label.Position,
			Entity:   label.ID,
			Name:     label.Text,
		})
	}

	for _, port := range sheet.PowerPorts {
		r.Add(NodeRef{
			Kind:     NodePowerPort,
			Position: port.Position,
			Entity:   port.ID,
			Name:     port.Name,
		})
	}

	for _, junc := range sheet.Junctions {
		r.Add(NodeRef{
			Kind:     NodeJunction,
			Position: junc.Position,
			Entity:   junc.ID,
		})
	}

	joinCoincident(r)
	return r
}

type gridCell struct {
	x, y int
}

func cellOf(p schematic.Point) gridCell {
	return gridCell{
		x: int(math.Floor(p.X / schematic.Tolerance)),
		y: int(math.Floor(p.Y / schematic.Tolerance)),
	}
}

// joinCoincident unions every pair of nodes whose positions match within
// tolerance. Nodes are hashed into a grid with cell size equal to the
// tolerance, so any qualifying pair lands in the same or an adjacent cell;
// scanning the 3x3 neighborhood of each node therefore finds every pair.
func joinCoincident(r *Resolver) {
	grid := make(map[gridCell][]int)
	for h := 0; h < r.Len(); h++ {
		c := cellOf(r.Ref(h).Position)
		grid[c] = append(grid[c], h)
	}

	for h := 0; h < r.Len(); h++ {
		p := r.Ref(h).Position
		c := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, other := range grid[gridCell{c.x + dx, c.y + dy}] {
					if other <= h {
						continue
					}
					if schematic.Coincident(p, r.Ref(other).Position) {
						r.Union(h, other)
					}
				}
			}
		}
	}
}
