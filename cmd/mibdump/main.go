package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dshills/mibcontext-mcp/internal/mibparser"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

func main() {
	asTree := flag.Bool("tree", false, "print the module as a node tree instead of a flat list")
	asJSON := flag.Bool("json", false, "emit JSON instead of text")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mibdump [-tree] [-json] <file.mib>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mibdump: %v\n", err)
		os.Exit(1)
	}

	result, err := mibparser.Parse(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mibdump: parse failed: %v\n", err)
		os.Exit(1)
	}

	if *asTree {
		dumpTree(result, *asJSON)
	} else {
		dumpFlat(result, *asJSON)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message())
	}
}

func dumpFlat(result *mibparser.Result, asJSON bool) {
	if asJSON {
		writeJSON(struct {
			Module    string              `json:"module"`
			Imports   []string            `json:"imports,omitempty"`
			Variables []types.MibVariable `json:"variables"`
		}{result.ModuleName, result.Imports, result.Variables})
		return
	}

	fmt.Printf("Module: %s\n", result.ModuleName)
	if len(result.Imports) > 0 {
		fmt.Printf("Imports: %s\n", strings.Join(result.Imports, ", "))
	}
	fmt.Printf("Objects: %d\n\n", len(result.Variables))

	for i := range result.Variables {
		v := &result.Variables[i]
		fmt.Printf("%-30s %s\n", v.Name, v.OID.String())
		if v.Type != "" {
			fmt.Printf("  syntax: %s\n", v.Type)
		}
		if v.Access != "" {
			fmt.Printf("  access: %s\n", v.Access)
		}
		if v.Status != "" {
			fmt.Printf("  status: %s\n", v.Status)
		}
		if len(v.EnumValues) > 0 {
			fmt.Printf("  enum: %s\n", formatEnum(v.EnumValues))
		}
	}
}

func dumpTree(result *mibparser.Result, asJSON bool) {
	module := result.Tree()
	if asJSON {
		writeJSON(module)
		return
	}

	objects := 0
	module.Root.Walk(func(n *types.MibNode) {
		if n.Variable != nil {
			objects++
		}
	})

	fmt.Printf("Module: %s\n", module.Name)
	fmt.Printf("Objects: %d\n\n", objects)
	printNode(module.Root, 0)
}

func printNode(node *types.MibNode, depth int) {
	if node == nil {
		return
	}
	marker := ""
	if node.Variable != nil {
		marker = " *"
	}
	fmt.Printf("%s%s(%d)%s\n", strings.Repeat("  ", depth), node.Name, node.Arc, marker)

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return node.Children[names[i]].Arc < node.Children[names[j]].Arc
	})
	for _, name := range names {
		printNode(node.Children[name], depth+1)
	}
}

func formatEnum(values map[int64]string) string {
	keys := make([]int64, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s(%d)", values[k], k)
	}
	return strings.Join(parts, ", ")
}

func writeJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "mibdump: %v\n", err)
		os.Exit(1)
	}
}
