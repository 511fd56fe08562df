package mibparser

import (
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// Result is the outcome of one parse: the module identity, its ordered
// import list, the flat variable list sorted by OID, and any non-fatal
// resolution warnings. Immutable once returned.
type Result struct {
	ModuleName string
	Imports    []string
	Variables  []types.MibVariable
	Warnings   []types.Warning

	symbols map[string]types.OID
	byOID   map[string]*types.MibVariable
}

// Parse parses a complete MIB module source. It returns an error only for
// structural failures (types.ErrMissingModuleHeader,
// types.ErrUnterminatedQuote); definitions that cannot be resolved degrade
// to warnings and a reduced variable list.
//
// All mutable parse state is local to the call, so concurrent parses are
// independently safe.
func Parse(source string) (*Result, error) {
	lines, err := preprocess(source)
	if err != nil {
		return nil, err
	}

	c := newCollector()
	if err := c.collect(lines); err != nil {
		return nil, err
	}

	variables, warnings := buildVariables(c)

	result := &Result{
		ModuleName: c.moduleName,
		Imports:    c.imports,
		Variables:  variables,
		Warnings:   warnings,
		symbols:    c.symbols,
		byOID:      make(map[string]*types.MibVariable, len(variables)),
	}
	for i := range result.Variables {
		v := &result.Variables[i]
		if _, ok := result.byOID[v.OID.String()]; !ok {
			result.byOID[v.OID.String()] = v
		}
	}
	return result, nil
}

// OIDForName returns the resolved path for a symbolic name, covering both
// declared definitions and the seeded well-known roots.
func (r *Result) OIDForName(name string) (types.OID, bool) {
	oid, ok := r.symbols[name]
	if !ok {
		return nil, false
	}
	return oid.Clone(), true
}

// VariableForOID returns the variable resolved to exactly the given path.
func (r *Result) VariableForOID(oid types.OID) (*types.MibVariable, bool) {
	v, ok := r.byOID[oid.String()]
	return v, ok
}

// Tree builds the tree projection of the parse: the same resolved symbol
// table viewed as a parent/child node hierarchy.
func (r *Result) Tree() *types.MibModule {
	return buildTree(r)
}
