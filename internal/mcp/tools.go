package mcp

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/vectorinstitute/vec-inf/internal/server"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerJobTools(s, sc); err != nil {
		return err
	}
	if err := registerModelTools(s, sc); err != nil {
		return err
	}
	return nil
}
