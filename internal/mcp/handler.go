package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/config"
)

// ServerName identifies the MCP server to clients.
const ServerName = "statement-report"

// NewServer creates an MCP server exposing the report tools.
func NewServer(tools *Tools) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		ServerName,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	tools.Register(s)
	return s
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler serves s over stateless streamable HTTP.
func NewHandler(s *mcpserver.MCPServer, logger *common.Logger) *Handler {
	streamable := mcpserver.NewStreamableHTTPServer(s,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", len(toolNames)).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.ForRequest(r.Context()).Debug().
		Str("method", r.Method).
		Msg("MCP request")
	h.streamable.ServeHTTP(w, r)
}
