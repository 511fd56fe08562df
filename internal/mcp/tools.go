package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/internal/translator"
	"github.com/dshills/mibcontext-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeNotIndexed         = -32001 // Directory not indexed
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeObjectNotFound     = -32003 // No object matches the request
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
)

// handleIndexMibs handles the index_mibs tool invocation
func (s *Server) handleIndexMibs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	if !s.indexLock.TryAcquire() {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "another indexing operation is running", nil)
	}
	defer s.indexLock.Release()

	// Server-level configuration supplies the defaults; the request may
	// override the worker count.
	cfg := s.indexCfg
	if workers := getIntDefault(args, "workers", 0); workers > 0 {
		cfg.Workers = workers
	}

	stats, err := s.indexer.IndexSet(ctx, path, &cfg)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Lookup results may have changed.
	s.translator.InvalidateCache()

	response := map[string]interface{}{
		"indexed":          true,
		"files_indexed":    stats.FilesIndexed,
		"files_skipped":    stats.FilesSkipped,
		"files_failed":     stats.FilesFailed,
		"objects_resolved": stats.ObjectsResolved,
		"warnings":         stats.Warnings,
		"duration_ms":      stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleTranslateName handles the translate_name tool invocation
func (s *Server) handleTranslateName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	set, mcpErr := s.lookupSet(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}

	res, err := s.translator.TranslateName(ctx, set.ID, name)
	if err != nil {
		return nil, newMCPError(ErrorCodeObjectNotFound, "name not found", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(objectResponse(res.Object))), nil
}

// handleDescribeOID handles the describe_oid tool invocation
func (s *Server) handleDescribeOID(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	set, mcpErr := s.lookupSet(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	oidStr, ok := args["oid"].(string)
	if !ok || oidStr == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "oid parameter is required", map[string]interface{}{
			"param":  "oid",
			"reason": "missing or empty",
		})
	}

	oid, err := types.ParseOID(oidStr)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid oid", map[string]interface{}{
			"param": "oid",
			"value": oidStr,
		})
	}

	var value *int64
	if raw, ok := args["value"].(float64); ok {
		v := int64(raw)
		value = &v
	}

	desc, err := s.translator.DescribeOID(ctx, set.ID, oid, value)
	if err != nil {
		return nil, newMCPError(ErrorCodeObjectNotFound, "oid not found", map[string]interface{}{
			"oid":   oidStr,
			"error": err.Error(),
		})
	}

	response := objectResponse(desc.Object)
	if desc.Instance != "" {
		response["instance"] = desc.Instance
	}
	if desc.ValueLabel != "" {
		response["value_label"] = desc.ValueLabel
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchObjects handles the search_objects tool invocation
func (s *Server) handleSearchObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	set, mcpErr := s.lookupSet(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	resp, err := s.translator.Search(ctx, translator.SearchRequest{
		Query:    query,
		Limit:    limit,
		SetID:    set.ID,
		UseCache: true,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(resp.Results))
	for i := range resp.Results {
		results = append(results, objectResponse(&resp.Results[i]))
	}

	response := map[string]interface{}{
		"results":       results,
		"total_results": resp.TotalResults,
		"cache_hit":     resp.CacheHit,
		"duration_ms":   resp.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	set, err := s.storage.GetSet(ctx, path)
	if err == storage.ErrNotFound {
		response := map[string]interface{}{
			"indexed": false,
			"path":    path,
			"message": "Directory not indexed. Use index_mibs tool to index it.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, set.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed": true,
		"set": map[string]interface{}{
			"path":            set.RootPath,
			"index_version":   set.IndexVersion,
			"last_indexed_at": set.LastIndexedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"statistics": map[string]interface{}{
			"files_count":    status.FilesCount,
			"objects_count":  status.ObjectsCount,
			"enum_count":     status.EnumCount,
			"warnings_count": status.WarningsCount,
			"index_size_mb":  fmt.Sprintf("%.2f", status.IndexSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"fts_index_built":     status.Health.FTSIndexBuilt,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// lookupSet resolves the path argument to an indexed MIB set
func (s *Server) lookupSet(ctx context.Context, args map[string]interface{}) (*storage.MibSet, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	set, err := s.storage.GetSet(ctx, path)
	if err == storage.ErrNotFound {
		return nil, newMCPError(ErrorCodeNotIndexed, "directory not indexed", map[string]interface{}{
			"path": path,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to look up mib set", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return set, nil
}

// objectResponse flattens an ObjectInfo into a response map
func objectResponse(info *translator.ObjectInfo) map[string]interface{} {
	response := map[string]interface{}{
		"name": info.Name,
		"oid":  info.OID,
	}
	if info.Syntax != "" {
		response["syntax"] = info.Syntax
	}
	if info.Access != "" {
		response["access"] = info.Access
	}
	if info.Status != "" {
		response["status"] = info.Status
	}
	if info.Description != "" {
		response["description"] = info.Description
	}
	if info.Units != "" {
		response["units"] = info.Units
	}
	if len(info.EnumValues) > 0 {
		values := make(map[string]string, len(info.EnumValues))
		for v, label := range info.EnumValues {
			values[fmt.Sprintf("%d", v)] = label
		}
		response["enum_values"] = values
	}
	return response
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and contains MIB files
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	hasMibFiles := false
	_ = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".mib", ".my", ".txt":
			hasMibFiles = true
		}
		return nil
	})

	if !hasMibFiles {
		return ErrNoMibFiles
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
	ErrNoMibFiles      = errors.New("directory does not contain MIB files")
)
