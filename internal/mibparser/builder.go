package mibparser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// enumPairRe matches one "label(value)" pair inside a bracketed enumeration.
var enumPairRe = regexp.MustCompile(`([A-Za-z][A-Za-z0-9-]*)\s*\(\s*(-?\d+)\s*\)`)

// buildVariables resolves every collected definition and converts the
// resolved ones into MibVariable records sorted by OID. Definitions that
// fail to resolve are omitted and reported as warnings.
func buildVariables(c *collector) ([]types.MibVariable, []types.Warning) {
	r := &resolver{symbols: c.symbols, defs: c.defs}

	variables := make([]types.MibVariable, 0, len(c.order))
	var warnings []types.Warning

	for _, name := range c.order {
		def := c.defs[name]
		res := r.resolve(name, make(map[string]bool))
		if res.State != types.StateResolved {
			warnings = append(warnings, types.Warning{
				Symbol: name,
				Parent: def.Parent,
				State:  res.State,
			})
			continue
		}
		variables = append(variables, buildVariable(def, res.OID))
	}

	// Dotted-numeric order, not lexicographic: ...1.9 sorts before ...1.10.
	sort.Slice(variables, func(i, j int) bool {
		return variables[i].OID.Compare(variables[j].OID) < 0
	})

	return variables, warnings
}

// buildVariable converts one resolved definition into its output record.
func buildVariable(def *types.Definition, oid types.OID) types.MibVariable {
	v := types.MibVariable{
		Name: def.Name,
		OID:  oid,
	}
	if def.Syntax != nil {
		v.Type = *def.Syntax
		v.EnumValues = decodeEnum(*def.Syntax)
	}
	if def.Access != nil {
		v.Access = *def.Access
	}
	if def.Status != nil {
		v.Status = *def.Status
	}
	if def.Description != nil {
		v.Description = *def.Description
	}
	if def.Units != nil {
		v.Units = *def.Units
	}
	return v
}

// decodeEnum extracts "label(value)" pairs from a brace-delimited enumeration
// in SYNTAX text, e.g. "INTEGER { up(1), down(2) }". Returns nil when the
// syntax carries no enumeration. Malformed pairs are skipped; duplicate
// values keep the first label seen.
func decodeEnum(syntax string) map[int64]string {
	open := strings.Index(syntax, "{")
	if open < 0 {
		return nil
	}
	end := strings.LastIndex(syntax, "}")
	if end <= open {
		return nil
	}

	body := syntax[open+1 : end]
	matches := enumPairRe.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	values := make(map[int64]string, len(matches))
	for _, m := range matches {
		value, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}
		if _, ok := values[value]; ok {
			continue
		}
		values[value] = m[1]
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
