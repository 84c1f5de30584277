package connectivity

// ResolveNames assigns a human-readable name to each connectivity group,
// keyed by group root. Naming sources are applied in priority order:
//
//  1. net labels
//  2. power port names
//  3. inline wire net names
//
// A lower-priority source never overwrites a name, and within one priority
// class the first registered writer wins.
func ResolveNames(r *Resolver) map[int]string {
	names := make(map[int]string)

	assign := func(kind NodeKind) {
		for h := 0; h < r.Len(); h++ {
			ref := r.Ref(h)
			if ref.Kind != kind || ref.Name == "" {
				continue
			}
			root := r.Find(h)
			if _, taken := names[root]; !taken {
				names[root] = ref.Name
			}
		}
	}

	assign(NodeLabel)
	assign(NodePowerPort)
	assign(NodeWirePoint)

	return names
}
