package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/dshills/mibcontext-mcp/internal/config"
	"github.com/dshills/mibcontext-mcp/internal/indexer"
	"github.com/dshills/mibcontext-mcp/internal/storage"
	"github.com/dshills/mibcontext-mcp/internal/translator"
)

const (
	// ServerName is the MCP server name
	ServerName = "mibcontext-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.mibcontext"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp        *server.MCPServer
	storage    storage.Storage
	indexer    *indexer.Indexer
	translator *translator.Translator
	indexLock  indexer.IndexLock
	indexCfg   indexer.Config
	log        zerolog.Logger
}

// NewServer creates a new MCP server instance. indexCfg supplies the worker
// count and batch size used for index_mibs requests that don't override them.
func NewServer(dbPath string, indexCfg indexer.Config, log zerolog.Logger) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		dir, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = dir
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "mibcontext.db")

	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	idx := indexer.New(store, log)
	trans := translator.New(store)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:        mcpServer,
		storage:    store,
		indexer:    idx,
		translator: trans,
		indexCfg:   indexCfg,
		log:        log,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	s.log.Info().Str("server", ServerName).Str("version", ServerVersion).Msg("serving on stdio")
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(indexMibsTool(), s.handleIndexMibs)
	s.mcp.AddTool(translateNameTool(), s.handleTranslateName)
	s.mcp.AddTool(describeOIDTool(), s.handleDescribeOID)
	s.mcp.AddTool(searchObjectsTool(), s.handleSearchObjects)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}
