package types

import "errors"

// MibVariable is one resolved managed object: the flat output record of a
// parse. Immutable once built.
type MibVariable struct {
	// Identification
	Name string
	OID  OID

	// Attributes. Type holds the raw SYNTAX text; the remaining clauses are
	// empty when absent from the source.
	Type        string
	Access      string
	Status      string
	Description string
	Units       string

	// EnumValues maps integer values to their labels, decoded from a
	// bracketed enumeration in the SYNTAX clause. Nil when the syntax
	// carries no enumeration.
	EnumValues map[int64]string
}

// Validate performs comprehensive validation of the variable.
func (v *MibVariable) Validate() error {
	if v.Name == "" {
		return errors.New("variable name is required")
	}
	if len(v.OID) == 0 {
		return errors.New("variable OID is required")
	}
	return nil
}

// EnumLabel returns the label for an enumerated value, or "" if the variable
// has no enumeration or the value is unknown.
func (v *MibVariable) EnumLabel(value int64) string {
	if v.EnumValues == nil {
		return ""
	}
	return v.EnumValues[value]
}

// MibNode is one node of the tree output. Children are owned by their parent;
// the Parent pointer is a non-owning back-reference for lookup only and is
// excluded from serialization to avoid cycles.
type MibNode struct {
	Name     string              `json:"name"`
	Arc      uint32              `json:"arc"`
	OID      OID                 `json:"-"`
	Variable *MibVariable        `json:"variable,omitempty"`
	Parent   *MibNode            `json:"-"`
	Children map[string]*MibNode `json:"children,omitempty"`
}

// Child returns the named child, or nil.
func (n *MibNode) Child(name string) *MibNode {
	if n == nil || n.Children == nil {
		return nil
	}
	return n.Children[name]
}

// Walk visits the node and every descendant in depth-first order.
func (n *MibNode) Walk(fn func(*MibNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// MibModule is the tree output for one parsed module: its ordered import
// list and the root-reachable node tree.
type MibModule struct {
	Name    string   `json:"name"`
	Imports []string `json:"imports,omitempty"`
	Root    *MibNode `json:"root"`
}

// FindNode walks the tree to the node at the given OID, or nil if no node
// on that path exists.
func (m *MibModule) FindNode(oid OID) *MibNode {
	if m == nil || m.Root == nil {
		return nil
	}
	node := m.Root
	for _, arc := range oid {
		var next *MibNode
		for _, child := range node.Children {
			if child.Arc == arc {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}
