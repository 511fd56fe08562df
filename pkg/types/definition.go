package types

import "errors"

// DefinitionKind distinguishes the declaration shape a Definition came from.
type DefinitionKind string

const (
	KindObjectIdentifier DefinitionKind = "object-identifier"
	KindObjectType       DefinitionKind = "object-type"
	KindModuleIdentity   DefinitionKind = "module-identity"
)

// Definition is an unresolved declaration collected from module text.
// It records the parent reference and local index to resolve later, plus
// whatever attribute clauses the declaration carried. Optional clauses are
// pointers so a missing clause is distinguishable from an empty one.
//
// Definitions are mutated only by the collector while their block is open;
// after collection they are read-only input to the resolver.
type Definition struct {
	Name   string
	Kind   DefinitionKind
	Parent string   // Symbolic parent name; empty if the OID was given directly
	Index  []uint32 // Local arcs appended below the parent

	Syntax      *string
	Access      *string
	Status      *string
	Description *string
	Units       *string
}

// ValidateKind checks if the definition kind is valid.
func (d *Definition) ValidateKind() error {
	switch d.Kind {
	case KindObjectIdentifier, KindObjectType, KindModuleIdentity:
		return nil
	default:
		return errors.New("invalid definition kind")
	}
}

// Validate checks the invariants every definition satisfies regardless of
// assignment shape. Parent and Index are both optional: a direct numeric
// assignment carries neither, an alias carries only Parent.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("definition name is required")
	}
	return d.ValidateKind()
}

// ResolutionState classifies the outcome of resolving a definition's
// parent chain.
type ResolutionState uint8

const (
	// StateResolved means the full OID path is known.
	StateResolved ResolutionState = iota
	// StateUnresolved means a parent in the chain is not defined anywhere
	// in the parsed input.
	StateUnresolved
	// StateCycle means the parent chain references itself.
	StateCycle
)

// String returns a human-readable resolution state.
func (s ResolutionState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateUnresolved:
		return "unresolved"
	case StateCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Resolution is the three-way result of resolving one definition. Callers can
// distinguish "not yet known" from "provably circular" for diagnostics.
type Resolution struct {
	State ResolutionState
	OID   OID // Valid only when State == StateResolved
}

// Warning is a non-fatal diagnostic produced during a parse. Unresolved
// definitions shrink the output set; warnings record which symbols were
// dropped and why.
type Warning struct {
	Symbol string
	Parent string
	State  ResolutionState
}

// Message returns a display string for the warning.
func (w Warning) Message() string {
	switch w.State {
	case StateCycle:
		return w.Symbol + ": parent chain through " + w.Parent + " is circular"
	default:
		return w.Symbol + ": parent " + w.Parent + " is not defined"
	}
}
