// Package mcpserver exposes the published podcast list to MCP clients
// over stdio. Tools are read-only; publishing stays in the TUI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jwulff/briefcast/internal/podcast"
)

const (
	serverName = "briefcast"
	// ToolSearch filters the list by name or description.
	ToolSearch = "search_podcasts"
	// ToolList returns the most recent podcasts.
	ToolList = "list_podcasts"

	defaultLimit = 20
)

// Source reads the published list, newest first.
type Source interface {
	Load() ([]podcast.Podcast, error)
}

// Server answers tool calls from a Source. The list is re-read on every
// call so podcasts published while the server runs are visible.
type Server struct {
	src     Source
	version string
	logger  *slog.Logger
}

// New creates a server over src.
func New(src Source, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{src: src, version: version, logger: logger}
}

// MCP builds the protocol server with both tools registered.
func (s *Server) MCP() *server.MCPServer {
	srv := server.NewMCPServer(serverName, s.version, server.WithToolCapabilities(false))

	srv.AddTool(mcp.NewTool(ToolSearch,
		mcp.WithDescription("Search published podcasts by name or description (case-insensitive)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 20)")),
	), s.handleSearch)

	srv.AddTool(mcp.NewTool(ToolList,
		mcp.WithDescription("List published podcasts, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 20)")),
	), s.handleList)

	return srv
}

// ServeStdio blocks serving requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCP())
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.src.Load()
	if err != nil {
		s.logger.Error("mcp search", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("load podcasts: %v", err)), nil
	}
	matches := podcast.Filter(list, query)
	s.logger.Debug("mcp search", "query", query, "matches", len(matches))
	return render(matches, req.GetInt("limit", defaultLimit))
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.src.Load()
	if err != nil {
		s.logger.Error("mcp list", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("load podcasts: %v", err)), nil
	}
	return render(list, req.GetInt("limit", defaultLimit))
}

func render(list []podcast.Podcast, limit int) (*mcp.CallToolResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No podcasts found."), nil
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode podcasts: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
