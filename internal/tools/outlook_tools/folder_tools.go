package outlook_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/outlook"
	"github.com/mailscope/mailscope/internal/server"
	"github.com/mailscope/mailscope/internal/tools/common"
)

// RegisterFolderTools registers folder browsing tools with the MCP server
func RegisterFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFoldersTool := mcp.NewTool("outlook_list_folders",
		mcp.WithDescription("List all Outlook stores and their top-level folders with item counts"),
	)

	s.AddTool(listFoldersTool, common.InstrumentedToolHandlerWithOperation(
		"outlook_list_folders", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListFolders(ctx, sc)
		},
	))

	return nil
}

func handleListFolders(ctx context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	stores, err := sc.Store().ListFolders(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
	}

	// A store with no listable folders still renders as an empty array,
	// not null
	for i := range stores {
		if stores[i].Folders == nil {
			stores[i].Folders = []outlook.FolderInfo{}
		}
	}

	result, err := marshalIndent(stores, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}
