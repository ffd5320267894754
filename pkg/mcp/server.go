package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
)

// Server exposes the pin catalog and configuration validation as MCP tools
type Server struct {
	mcpServer *server.MCPServer
	provider  device.PinProvider
	validator *schema.Validator
	devices   db.DeviceStore
}

// NewServer creates a new MCP server. devices may be nil, in which case
// list_devices is not offered.
func NewServer(provider device.PinProvider, validator *schema.Validator, devices db.DeviceStore) *Server {
	s := &Server{
		provider:  provider,
		validator: validator,
		devices:   devices,
	}

	s.mcpServer = server.NewMCPServer(
		"autovolt",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
