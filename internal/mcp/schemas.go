package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexMibsTool returns the tool definition for index_mibs
func indexMibsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_mibs",
		Description: "Index a directory of MIB definition files to make them queryable",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a directory containing MIB files (.mib, .my, .txt)",
				},
				"workers": map[string]interface{}{
					"type":        "integer",
					"description": "Number of concurrent parser workers (default: number of CPUs)",
					"minimum":     1,
				},
			},
			Required: []string{"path"},
		},
	}
}

// translateNameTool returns the tool definition for translate_name
func translateNameTool() mcp.Tool {
	return mcp.Tool{
		Name:        "translate_name",
		Description: "Resolve a symbolic MIB object name (e.g. sysUpTime) to its numeric OID and attributes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed MIB directory",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Symbolic object name to translate",
				},
			},
			Required: []string{"path", "name"},
		},
	}
}

// describeOIDTool returns the tool definition for describe_oid
func describeOIDTool() mcp.Tool {
	return mcp.Tool{
		Name:        "describe_oid",
		Description: "Resolve a numeric OID (optionally with instance suffix) to the closest known object, with enum decoding for a sampled value",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed MIB directory",
				},
				"oid": map[string]interface{}{
					"type":        "string",
					"description": "Dotted-decimal OID, e.g. 1.3.6.1.2.1.1.3.0",
				},
				"value": map[string]interface{}{
					"type":        "integer",
					"description": "Optional sampled integer value to decode against the object's enumeration",
				},
			},
			Required: []string{"path", "oid"},
		},
	}
}

// searchObjectsTool returns the tool definition for search_objects
func searchObjectsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_objects",
		Description: "Full-text search over indexed MIB object names and descriptions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed MIB directory",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (keywords matched against names and descriptions)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"path", "query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query indexing status and statistics for a MIB directory",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the MIB directory",
				},
			},
			Required: []string{"path"},
		},
	}
}
