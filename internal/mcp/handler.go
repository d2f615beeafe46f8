// Package mcp exposes the ticker report over the Model Context Protocol
// so MCP clients (Claude CLI/Desktop) can query the same pipeline the
// dashboard uses.
package mcp

import (
	"net/http"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/config"
	"github.com/darvasboard/darvas-portal/internal/darvas"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with the local tool set registered.
func NewHandler(cfg *config.Config, logger *common.Logger, service *darvas.Service) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"darvas-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(TickerReportTool(), TickerReportToolHandler(service))
	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", 2).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
