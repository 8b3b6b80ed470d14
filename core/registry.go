package core

import (
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/server"
)

// ToolRegistry manages tool registration and lifecycle. Registration is
// append-only and happens before the server starts accepting requests;
// the registry is read-only once serving begins.
type ToolRegistry struct {
	server *server.MCPServer
	tools  map[string]Tool
}

// NewToolRegistry creates a new tool registry attached to the given server.
func NewToolRegistry(mcpServer *server.MCPServer) *ToolRegistry {
	return &ToolRegistry{
		server: mcpServer,
		tools:  make(map[string]Tool),
	}
}

// Register adds a tool to the registry and the underlying server.
// Duplicate tool names are rejected so a misconfigured startup fails
// before the channel opens instead of silently shadowing a handler.
func (r *ToolRegistry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("cannot register a nil tool")
	}

	name := tool.Handle().Name
	if name == "" {
		return fmt.Errorf("cannot register a tool with an empty name")
	}

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}

	r.tools[name] = tool
	r.server.AddTool(tool.Handle(), tool.Handler)
	return nil
}

// Names returns the registered tool names in sorted order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
