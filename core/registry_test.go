package core

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	. "github.com/smartystreets/goconvey/convey"
)

// stubTool is a minimal Tool implementation for registry tests.
type stubTool struct {
	handle mcp.Tool
}

func newStubTool(name string) *stubTool {
	return &stubTool{
		handle: mcp.NewTool(name, mcp.WithDescription("stub tool for tests")),
	}
}

func (t *stubTool) Handle() mcp.Tool {
	return t.handle
}

func (t *stubTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("ok"), nil
}

func TestToolRegistry(t *testing.T) {
	Convey("Given a tool registry", t, func() {
		mcpServer := server.NewMCPServer("test-server", "0.0.1")
		registry := NewToolRegistry(mcpServer)

		Convey("It should register a tool by its handle name", func() {
			err := registry.Register(newStubTool("get_document_data"))
			So(err, ShouldBeNil)
			So(registry.Names(), ShouldResemble, []string{"get_document_data"})
		})

		Convey("It should reject duplicate tool names", func() {
			So(registry.Register(newStubTool("download_images")), ShouldBeNil)
			err := registry.Register(newStubTool("download_images"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "already registered")
		})

		Convey("It should reject a nil tool", func() {
			So(registry.Register(nil), ShouldNotBeNil)
		})

		Convey("It should list names in sorted order", func() {
			So(registry.Register(newStubTool("get_document_data")), ShouldBeNil)
			So(registry.Register(newStubTool("download_images")), ShouldBeNil)
			So(registry.Names(), ShouldResemble, []string{"download_images", "get_document_data"})
		})
	})
}
