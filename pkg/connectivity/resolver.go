// Package connectivity groups coincident schematic geometry into electrical
// nets. A Resolver is a union-find (disjoint-set) structure over integer
// handles; each handle is described by a tagged NodeRef so that group members
// can be interpreted later without re-parsing any encoded keys.
//
// A Resolver is a throwaway working structure: callers build one per sheet,
// query it and discard it. It is not safe for concurrent use (Find performs
// path compression), but independent Resolvers never share state.
package connectivity

import (
	"github.com/OpenTraceLab/OpenTraceERC/pkg/schematic"
)

// NodeKind tags the entity a connectivity node was created from
type NodeKind int

const (
	NodePin NodeKind = iota
	NodeWirePoint
	NodeLabel
	NodePowerPort
	NodeJunction
)

// NodeRef describes one connectivity node. Only the fields relevant to the
// node's Kind are populated.
type NodeRef struct {
	Kind     NodeKind
	Position schematic.Point

	// Pin nodes
	Component schematic.EntityID
	Reference string
	PinNumber string
	PinName   string
	PinType   schematic.PinType

	// Wire point nodes
	Wire       schematic.EntityID
	PointIndex int

	// Label and power port nodes
	Entity schematic.EntityID

	// Name carries the label text, power port name, or a wire's inline
	// net name, depending on Kind.
	Name string
}

// Resolver is a union-find structure over node handles with path compression
// and union-by-rank.
type Resolver struct {
	parent []int
	rank   []int
	refs   []NodeRef
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Add registers a node and returns its handle. Handles are assigned in
// registration order starting at zero.
func (r *Resolver) Add(ref NodeRef) int {
	h := len(r.refs)
	r.refs = append(r.refs, ref)
	r.parent = append(r.parent, h)
	r.rank = append(r.rank, 0)
	return h
}

// Len returns the number of registered nodes
func (r *Resolver) Len() int {
	return len(r.refs)
}

// Ref returns the NodeRef for a handle
func (r *Resolver) Ref(h int) NodeRef {
	return r.refs[h]
}

// Find returns the canonical representative of the group containing h,
// compressing the path along the way.
func (r *Resolver) Find(h int) int {
	root := h
	for r.parent[root] != root {
		root = r.parent[root]
	}
	for h != root {
		next := r.parent[h]
		r.parent[h] = root
		h = next
	}
	return root
}

// Union merges the groups containing a and b
func (r *Resolver) Union(a, b int) {
	ra := r.Find(a)
	rb := r.Find(b)
	if ra == rb {
		return
	}

	switch {
	case r.rank[ra] < r.rank[rb]:
		r.parent[ra] = rb
	case r.rank[ra] > r.rank[rb]:
		r.parent[rb] = ra
	default:
		r.parent[rb] = ra
		r.rank[ra]++
	}
}

// Groups enumerates the final partition. Every registered handle appears in
// exactly one group; groups are ordered by their smallest member handle and
// members are in ascending handle order, so the result is deterministic for
// a fixed registration sequence.
func (r *Resolver) Groups() [][]int {
	byRoot := make(map[int][]int)
	var order []int
	for h := 0; h < len(r.refs); h++ {
		root := r.Find(h)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], h)
	}

	groups := make([][]int, 0, len(order))
	for _, root := range order {
		groups = append(groups, byRoot[root])
	}
	return groups
}
