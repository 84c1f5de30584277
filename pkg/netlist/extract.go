package netlist

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceERC/pkg/connectivity"
	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// Extract computes the netlist for a document. The document is read-only;
// repeated calls on the same document produce identical results.
func Extract(doc *schematic.Document) (*Netlist, error) {
	if doc == nil {
		return nil, fmt.Errorf("netlist: invalid document")
	}

	nl := &Netlist{
		Components: collectComponents(doc),
		Nets:       []*Net{},
	}

	// The synthesized-name counter spans the whole extraction so unnamed
	// groups on different sheets never collide.
	counter := 0
	byName := make(map[string]*Net)

	for si := range doc.Sheets {
		r := connectivity.BuildSheet(&doc.Sheets[si])
		names := connectivity.ResolveNames(r)

		for _, group := range r.Groups() {
			conns := pinConnections(r, group)
			if len(conns) == 0 {
				// Wire points, labels, ports and junctions only
				// establish connectivity; a group touching no
				// component pin produces no net.
				continue
			}

			name, named := names[r.Find(group[0])]
			if !named {
				name = nextNetName(&counter)
			}

			net := byName[name]
			if net == nil {
				net = &Net{Name: name}
				byName[name] = net
				nl.Nets = append(nl.Nets, net)
			}
			for _, conn := range conns {
				if !net.has(conn) {
					net.Connections = append(net.Connections, conn)
				}
			}
		}
	}

	for _, net := range nl.Nets {
		sortConnections(net.Connections)
	}

	return nl, nil
}

// collectComponents gathers components across all sheets, de-duplicated by
// reference designator (first occurrence wins). Properties are shallow-copied
// so the netlist stays independent of the document.
func collectComponents(doc *schematic.Document) []Component {
	var comps []Component
	seen := make(map[string]bool)

	for si := range doc.Sheets {
		sheet := &doc.Sheets[si]
		for ci := range sheet.Components {
			c := &sheet.Components[ci]
			if c.Reference == "" || seen[c.Reference] {
				continue
			}
			seen[c.Reference] = true

			var props map[string]string
			if len(c.Properties) > 0 {
				props = make(map[string]string, len(c.Properties))
				for k, v := range c.Properties {
					props[k] = v
				}
			}

			comps = append(comps, Component{
				Reference:  c.Reference,
				Value:      c.Value,
				Footprint:  c.Footprint,
				Properties: props,
			})
		}
	}

	return comps
}

// pinConnections extracts the component-pin members of a connectivity group,
// de-duplicated by (reference, pin number).
func pinConnections(r *connectivity.Resolver, group []int) []Connection {
	var conns []Connection
	for _, h := range group {
		ref := r.Ref(h)
		if ref.Kind != connectivity.NodePin {
			continue
		}
		conn := Connection{
			ComponentRef: ref.Reference,
			PinNumber:    ref.PinNumber,
			PinName:      ref.PinName,
		}
		dup := false
		for _, existing := range conns {
			if existing.ComponentRef == conn.ComponentRef && existing.PinNumber == conn.PinNumber {
				dup = true
				break
			}
		}
		if !dup {
			conns = append(conns, conn)
		}
	}
	return conns
}

func nextNetName(counter *int) string {
	*counter++
	return fmt.Sprintf("Net%d", *counter)
}

func sortConnections(conns []Connection) {
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].ComponentRef != conns[j].ComponentRef {
			return conns[i].ComponentRef < conns[j].ComponentRef
		}
		return conns[i].PinNumber < conns[j].PinNumber
	})
}
