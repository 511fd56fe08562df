package mibparser

import (
	"strconv"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// buildTree projects the resolved symbol table as a parent/child node
// hierarchy rooted above iso. Each variable's path is walked arc by arc,
// creating intermediate placeholder nodes as needed: named after the symbol
// resolving to that prefix when one exists, otherwise after the numeric
// component. Placeholders carry no attributes.
func buildTree(r *Result) *types.MibModule {
	nameByOID := make(map[string]string, len(r.symbols))
	for name, oid := range r.symbols {
		key := oid.String()
		if _, ok := nameByOID[key]; !ok {
			nameByOID[key] = name
		}
	}

	root := &types.MibNode{
		Children: make(map[string]*types.MibNode),
	}

	for i := range r.Variables {
		v := &r.Variables[i]
		node := root
		for depth, arc := range v.OID {
			prefix := v.OID[:depth+1]
			child := childByArc(node, arc)
			if child == nil {
				name := nameByOID[prefix.String()]
				if name == "" {
					name = strconv.FormatUint(uint64(arc), 10)
				}
				child = &types.MibNode{
					Name:     name,
					Arc:      arc,
					OID:      prefix.Clone(),
					Parent:   node,
					Children: make(map[string]*types.MibNode),
				}
				node.Children[name] = child
			}
			node = child
		}
		if node.Variable == nil {
			node.Variable = v
		}
	}

	return &types.MibModule{
		Name:    r.ModuleName,
		Imports: r.Imports,
		Root:    root,
	}
}

// childByArc finds the child carrying the given arc, regardless of whether
// it was created under a symbolic or numeric name.
func childByArc(node *types.MibNode, arc uint32) *types.MibNode {
	for _, child := range node.Children {
		if child.Arc == arc {
			return child
		}
	}
	return nil
}
