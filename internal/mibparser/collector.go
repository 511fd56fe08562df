package mibparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// collectorState tracks where the line state machine is within the module.
type collectorState uint8

const (
	stateNeutral collectorState = iota
	stateImports
	stateBlock
)

// Line-shape patterns for the declaration forms the collector recognizes.
var (
	moduleHeaderRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*)\s+DEFINITIONS\s*::=\s*BEGIN`)
	oidAssignRe    = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*)\s+OBJECT\s+IDENTIFIER\s*::=\s*(.+)$`)
	numericOIDRe   = regexp.MustCompile(`^\d+(\.\d+)*$`)
	nameSuffixRe   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*)\.(\d+(\.\d+)*)$`)
	identRe        = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	namedNumberRe  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*)\((\d+)\)$`)
)

// collector is the line-oriented state machine that extracts declarations.
// It owns all per-parse mutable state: the symbol table (seeded from the
// well-known roots), the definition table, and the currently-open block.
type collector struct {
	symbols map[string]types.OID
	defs    map[string]*types.Definition
	order   []string // definition names in encounter order

	moduleName string
	imports    []string
	headerSeen bool

	state     collectorState
	open      *types.Definition
	pending   string // quoted clause keyword awaiting its value on a later line
	importBuf []string
}

func newCollector() *collector {
	return &collector{
		symbols: newSymbolTable(),
		defs:    make(map[string]*types.Definition),
	}
}

// collect runs the state machine over the logical line stream.
func (c *collector) collect(lines []string) error {
	for _, line := range lines {
		var err error
		switch c.state {
		case stateImports:
			c.collectImports(line)
		case stateBlock:
			err = c.collectBlock(line)
		default:
			err = c.collectNeutral(line)
		}
		if err != nil {
			return err
		}
	}

	// A block left open at end of input never reached its assignment; keep
	// the definition so it surfaces as an unresolved warning.
	c.flushOpen()

	if !c.headerSeen {
		return types.ErrMissingModuleHeader
	}
	return nil
}

// collectNeutral handles lines outside any IMPORTS or attribute block.
func (c *collector) collectNeutral(line string) error {
	if m := moduleHeaderRe.FindStringSubmatch(line); m != nil {
		c.moduleName = m[1]
		c.headerSeen = true
		return nil
	}

	if strings.HasPrefix(line, "IMPORTS") {
		c.state = stateImports
		c.collectImports(strings.TrimSpace(strings.TrimPrefix(line, "IMPORTS")))
		return nil
	}

	fields := strings.Fields(line)

	// A module-identity declaration doubles as the module header.
	if len(fields) == 2 && fields[1] == "MODULE-IDENTITY" {
		if c.moduleName == "" {
			c.moduleName = fields[0]
		}
		c.headerSeen = true
		c.openBlock(fields[0], types.KindModuleIdentity)
		return nil
	}

	if m := oidAssignRe.FindStringSubmatch(line); m != nil {
		if !c.headerSeen {
			return types.ErrMissingModuleHeader
		}
		c.classifyAssignment(&types.Definition{Name: m[1], Kind: types.KindObjectIdentifier}, m[2])
		return nil
	}

	if len(fields) == 2 && fields[1] == "OBJECT-TYPE" {
		if !c.headerSeen {
			return types.ErrMissingModuleHeader
		}
		c.openBlock(fields[0], types.KindObjectType)
		return nil
	}

	// The assignment of a split OBJECT IDENTIFIER declaration lands on the
	// following line; open a block that only waits for "::=".
	if len(fields) == 3 && fields[1] == "OBJECT" && fields[2] == "IDENTIFIER" {
		if !c.headerSeen {
			return types.ErrMissingModuleHeader
		}
		c.openBlock(fields[0], types.KindObjectIdentifier)
		return nil
	}

	// Anything else (END, macro bodies, type assignments) is ignored.
	return nil
}

// collectImports accumulates IMPORTS lines until the terminating semicolon,
// then records every imported symbol name.
func (c *collector) collectImports(line string) {
	terminated := strings.HasSuffix(line, ";")
	line = strings.TrimSuffix(line, ";")
	if line != "" {
		c.importBuf = append(c.importBuf, line)
	}
	if !terminated {
		return
	}

	// Symbols are comma-separated; "FROM <Module>" pairs name the source
	// module and are not symbols themselves.
	fields := strings.Fields(strings.Join(c.importBuf, " "))
	skipNext := false
	for _, field := range fields {
		if skipNext {
			skipNext = false
			continue
		}
		if field == "FROM" {
			skipNext = true
			continue
		}
		for _, name := range strings.Split(field, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			c.imports = append(c.imports, name)
			// Imported well-known roots are already seeded in the cloned
			// symbol table; nothing further to record.
		}
	}

	c.importBuf = nil
	c.state = stateNeutral
}

// collectBlock handles lines inside an open OBJECT-TYPE or MODULE-IDENTITY
// block, populating attributes until the closing "::=" assignment.
func (c *collector) collectBlock(line string) error {
	if strings.HasPrefix(line, "::=") {
		rhs := strings.TrimSpace(strings.TrimPrefix(line, "::="))
		def := c.open
		c.open = nil
		c.pending = ""
		c.state = stateNeutral
		c.classifyAssignment(def, rhs)
		return nil
	}

	// A quoted clause keyword may stand alone with its value on the next
	// logical line.
	if c.pending != "" && strings.HasPrefix(line, `"`) {
		c.assignQuoted(c.pending, stripQuotes(line))
		c.pending = ""
		return nil
	}
	c.pending = ""

	switch {
	case strings.HasPrefix(line, "SYNTAX"):
		c.open.Syntax = clauseValue(line, "SYNTAX")
	case strings.HasPrefix(line, "MAX-ACCESS"):
		c.open.Access = clauseValue(line, "MAX-ACCESS")
	case strings.HasPrefix(line, "ACCESS"):
		c.open.Access = clauseValue(line, "ACCESS")
	case strings.HasPrefix(line, "STATUS"):
		c.open.Status = clauseValue(line, "STATUS")
	case strings.HasPrefix(line, "DESCRIPTION"):
		c.quotedClause(line, "DESCRIPTION")
	case strings.HasPrefix(line, "UNITS"):
		c.quotedClause(line, "UNITS")
	}
	// Clauses outside the attribute set (INDEX, REFERENCE, DEFVAL,
	// LAST-UPDATED, ...) pass through untouched.
	return nil
}

// quotedClause records a quoted attribute. A keyword with nothing after it
// defers to the next line for its value.
func (c *collector) quotedClause(line, keyword string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, keyword))
	if rest == "" {
		c.pending = keyword
		return
	}
	c.assignQuoted(keyword, stripQuotes(rest))
}

// assignQuoted stores a quoted clause value on the open definition.
func (c *collector) assignQuoted(keyword string, value string) {
	switch keyword {
	case "DESCRIPTION":
		c.open.Description = &value
	case "UNITS":
		c.open.Units = &value
	}
}

// openBlock flushes any previously open definition and starts a new one.
func (c *collector) openBlock(name string, kind types.DefinitionKind) {
	c.flushOpen()
	c.open = &types.Definition{Name: name, Kind: kind}
	c.state = stateBlock
}

// flushOpen moves an open definition into the definition table without an
// assignment. It stays unresolvable and is reported as a warning.
func (c *collector) flushOpen() {
	if c.open == nil {
		return
	}
	c.record(c.open)
	c.open = nil
	c.state = stateNeutral
}

// classifyAssignment interprets the right-hand side of "::=" for the given
// definition. Four shapes are recognized:
//
//	(a) 1.3.6.1.2.1.99      direct numeric OID
//	(b) parentName.99       known base name plus numeric suffix
//	(c) parentName          alias of another symbol
//	(d) { parent 99 }       brace form, deferred to the resolver
//
// Direct resolutions are entered into the symbol table immediately; the
// earliest-established value always wins.
func (c *collector) classifyAssignment(def *types.Definition, rhs string) {
	rhs = strings.TrimSpace(rhs)

	switch {
	case numericOIDRe.MatchString(rhs):
		if oid, err := types.ParseOID(rhs); err == nil {
			c.bind(def.Name, oid)
		}

	case nameSuffixRe.MatchString(rhs):
		m := nameSuffixRe.FindStringSubmatch(rhs)
		def.Parent = m[1]
		if suffix, err := types.ParseOID(m[2]); err == nil {
			def.Index = suffix
		}
		if base, ok := c.symbols[def.Parent]; ok {
			c.bind(def.Name, base.Append(def.Index...))
		}

	case identRe.MatchString(rhs):
		def.Parent = rhs
		if oid, ok := c.symbols[rhs]; ok {
			c.bind(def.Name, oid)
		}

	case strings.HasPrefix(rhs, "{") && strings.HasSuffix(rhs, "}"):
		c.classifyBraceForm(def, rhs)
	}

	c.record(def)
}

// classifyBraceForm parses "{ parent idx ... }". The first component may be
// a symbolic parent (optionally in name(number) form) or a numeric arc; the
// remaining components must reduce to numeric arcs.
func (c *collector) classifyBraceForm(def *types.Definition, rhs string) {
	inner := strings.TrimSpace(rhs[1 : len(rhs)-1])
	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return
	}

	start := 0
	if !isNumericComponent(fields[0]) {
		parent := fields[0]
		if m := namedNumberRe.FindStringSubmatch(parent); m != nil {
			parent = m[1]
		}
		def.Parent = parent
		start = 1
	}

	arcs := make([]uint32, 0, len(fields)-start)
	for _, field := range fields[start:] {
		arc, ok := componentArc(field)
		if !ok {
			// A symbolic component below the parent cannot be resolved
			// numerically; leave the definition unresolvable.
			def.Index = nil
			return
		}
		arcs = append(arcs, arc)
	}
	def.Index = arcs

	if def.Parent == "" {
		// All components numeric: a direct OID in brace form.
		c.bind(def.Name, types.OID(arcs))
	}
}

// bind enters a resolved OID into the symbol table unless the name already
// resolved earlier. First successful resolution wins; entries are never
// overwritten.
func (c *collector) bind(name string, oid types.OID) {
	if _, ok := c.symbols[name]; ok {
		return
	}
	c.symbols[name] = oid
}

// record stores a definition in encounter order. The first declaration of a
// name wins; duplicates and malformed definitions are dropped.
func (c *collector) record(def *types.Definition) {
	if def.Validate() != nil {
		return
	}
	if _, ok := c.defs[def.Name]; ok {
		return
	}
	c.defs[def.Name] = def
	c.order = append(c.order, def.Name)
}

// clauseValue extracts the remainder of an attribute line after its keyword.
func clauseValue(line, keyword string) *string {
	v := strings.TrimSpace(strings.TrimPrefix(line, keyword))
	return &v
}

// stripQuotes removes the surrounding quote characters from a clause value.
func stripQuotes(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

// isNumericComponent reports whether an OID component is a plain number.
func isNumericComponent(s string) bool {
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}

// componentArc reduces one OID component, "99" or "name(99)", to its arc.
func componentArc(s string) (uint32, bool) {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(n), true
	}
	if m := namedNumberRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.ParseUint(m[2], 10, 32); err == nil {
			return uint32(n), true
		}
	}
	return 0, false
}
