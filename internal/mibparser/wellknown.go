package mibparser

import "github.com/dshills/mibcontext-mcp/pkg/types"

// wellKnownRoots maps the canonical SMI root names to their OID prefixes.
// It is process-wide and immutable; every parse clones it into a fresh
// symbol table so no parse can contaminate another.
var wellKnownRoots = map[string]types.OID{
	"ccitt":           {0},
	"iso":             {1},
	"joint-iso-ccitt": {2},
	"org":             {1, 3},
	"dod":             {1, 3, 6},
	"internet":        {1, 3, 6, 1},
	"directory":       {1, 3, 6, 1, 1},
	"mgmt":            {1, 3, 6, 1, 2},
	"mib-2":           {1, 3, 6, 1, 2, 1},
	"transmission":    {1, 3, 6, 1, 2, 1, 10},
	"experimental":    {1, 3, 6, 1, 3},
	"private":         {1, 3, 6, 1, 4},
	"enterprises":     {1, 3, 6, 1, 4, 1},
	"security":        {1, 3, 6, 1, 5},
	"snmpV2":          {1, 3, 6, 1, 6},
	"snmpDomains":     {1, 3, 6, 1, 6, 1},
	"snmpProxys":      {1, 3, 6, 1, 6, 2},
	"snmpModules":     {1, 3, 6, 1, 6, 3},
}

// WellKnownOID returns the canonical path for a well-known root name.
func WellKnownOID(name string) (types.OID, bool) {
	oid, ok := wellKnownRoots[name]
	return oid, ok
}

// newSymbolTable returns a fresh mutable symbol table seeded with the
// well-known roots.
func newSymbolTable() map[string]types.OID {
	table := make(map[string]types.OID, len(wellKnownRoots)*4)
	for name, oid := range wellKnownRoots {
		table[name] = oid
	}
	return table
}
