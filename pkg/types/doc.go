// Package types provides shared type definitions for the MibContext MCP server.
//
// This package defines the domain types used across the parsing, indexing, and
// translation components: object identifiers, unresolved definitions, resolved
// MIB variables, and the module tree.
//
// # Core Types
//
// OID is an ordered sequence of non-negative integer arcs. Its canonical textual
// form is dot-joined decimal:
//
//	oid, err := types.ParseOID("1.3.6.1.2.1")
//	oid.String() // "1.3.6.1.2.1"
//
// Two OIDs are equal iff their arc sequences are equal element-wise; Compare
// orders them component-wise numerically, so "1.9" sorts before "1.10".
//
// MibVariable is the flat output record of a parse: one resolved OBJECT-TYPE or
// OBJECT IDENTIFIER assignment with its type, access, status, description, units,
// and decoded enumeration labels:
//
//	v := types.MibVariable{
//	    Name: "ifAdminStatus",
//	    OID:  types.OID{1, 3, 6, 1, 2, 1, 2, 2, 1, 7},
//	    Type: "INTEGER { up(1), down(2), testing(3) }",
//	    EnumValues: map[int64]string{1: "up", 2: "down", 3: "testing"},
//	}
//
// MibModule and MibNode form the tree output: an owned child map keyed by child
// name, with a non-owning parent back-reference used for lookup only.
//
// # Definitions and Resolution
//
// Definition is the intermediate, unresolved declaration collected while
// scanning module text. Optional clauses use pointer fields so that a missing
// clause is distinguishable from an empty one. Resolution is the three-way
// outcome of resolving a definition's parent chain: resolved to a path,
// unresolved, or provably circular.
//
// # Errors
//
// Structural parse failures are sentinel errors (ErrMissingModuleHeader,
// ErrUnterminatedQuote) that abort the whole parse. Per-definition resolution
// failures are never errors; they surface as Warning values alongside a
// usable, possibly reduced result.
package types
