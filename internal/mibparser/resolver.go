package mibparser

import "github.com/dshills/mibcontext-mcp/pkg/types"

// resolver completes dotted OIDs for definitions whose assignment referenced
// a symbolic parent. Successful resolutions are memoized into the symbol
// table, so a chain is walked at most once per parse.
type resolver struct {
	symbols map[string]types.OID
	defs    map[string]*types.Definition
}

// resolve returns the three-way resolution for a name. The visited set guards
// against reference cycles: if a name reappears while its own chain is being
// walked, the whole chain fails as a cycle rather than recursing unboundedly.
func (r *resolver) resolve(name string, visited map[string]bool) types.Resolution {
	// Memo hit: the name resolved earlier (directly or via another chain).
	if oid, ok := r.symbols[name]; ok {
		return types.Resolution{State: types.StateResolved, OID: oid}
	}

	def, ok := r.defs[name]
	if !ok || def.Parent == "" {
		return types.Resolution{State: types.StateUnresolved}
	}

	if visited[name] {
		return types.Resolution{State: types.StateCycle}
	}
	visited[name] = true

	// Base case: the parent is a known symbol.
	if parent, ok := r.symbols[def.Parent]; ok {
		return r.complete(name, parent, def.Index)
	}

	// The parent is itself an unresolved definition: recurse with the same
	// visited set.
	if _, ok := r.defs[def.Parent]; ok {
		res := r.resolve(def.Parent, visited)
		if res.State != types.StateResolved {
			return res
		}
		return r.complete(name, res.OID, def.Index)
	}

	return types.Resolution{State: types.StateUnresolved}
}

// complete concatenates the parent path with the local index and memoizes
// the result. An earlier-established entry is never overwritten.
func (r *resolver) complete(name string, parent types.OID, index []uint32) types.Resolution {
	oid := parent.Append(index...)
	if existing, ok := r.symbols[name]; ok {
		oid = existing
	} else {
		r.symbols[name] = oid
	}
	return types.Resolution{State: types.StateResolved, OID: oid}
}
