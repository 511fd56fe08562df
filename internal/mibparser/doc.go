// Package mibparser turns MIB module text into resolved MIB variables.
//
// The engine is a multi-pass pipeline over a line-oriented view of the source:
//
//  1. Preprocess: strip comments, skip blanks, and reassemble quoted values
//     (DESCRIPTION, UNITS) that span multiple source lines into single
//     logical lines.
//  2. Collect: a state machine walks the logical lines, recording the module
//     header, the imported symbol list, plain OBJECT IDENTIFIER assignments,
//     and OBJECT-TYPE attribute blocks as unresolved definitions.
//  3. Resolve: each definition's parent chain is resolved against a symbol
//     table seeded from the well-known SMI roots, memoizing results and
//     guarding against cycles with an explicit visited set.
//  4. Build: resolved definitions become MibVariable records (with bracketed
//     enumerations decoded), sorted by component-wise numeric OID order.
//
// # Basic Usage
//
//	result, err := mibparser.Parse(source)
//	if err != nil {
//	    log.Fatal(err) // structural failure: no module header, unterminated quote
//	}
//
//	for _, v := range result.Variables {
//	    fmt.Printf("%s = %s\n", v.Name, v.OID)
//	}
//
// The flat variable list and the module tree (Result.Tree) are two read-only
// projections of the same resolved symbol table, so they can never disagree
// about an OID.
//
// # Error Handling
//
// Only structural failures abort a parse. Definitions whose parent chain
// cannot be resolved, whether through an unknown symbol or a reference cycle,
// are omitted from the output and reported in Result.Warnings:
//
//	for _, w := range result.Warnings {
//	    fmt.Println(w.Message())
//	}
//
// # Concurrency
//
// Parse builds all per-parse state (symbol table, definition table, collector
// state machine) locally, so concurrent calls are independently safe. The
// well-known root table is an immutable process-wide constant cloned into
// each parse.
package mibparser
