package outlook_tools

import (
	"encoding/json"
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailscope/mailscope/internal/server"
)

// marshalIndent renders tool results as JSON. A variable so tests can force
// the encode error branch.
var marshalIndent = json.MarshalIndent

// Timestamp layouts used in tool results. Dates and times are split in
// calendar summaries so agents can render schedules without parsing.
const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
)

// defaultMaxResults bounds search results when the caller does not pass
// max_results.
const defaultMaxResults = 20

// RegisterOutlookTools registers all Outlook mailbox tools with the MCP server
func RegisterOutlookTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterFolderTools(s, sc); err != nil {
		return fmt.Errorf("failed to register folder tools: %w", err)
	}

	if err := RegisterEmailTools(s, sc); err != nil {
		return fmt.Errorf("failed to register email tools: %w", err)
	}

	if err := RegisterCalendarTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar tools: %w", err)
	}

	if err := RegisterItemTools(s, sc); err != nil {
		return fmt.Errorf("failed to register item tools: %w", err)
	}

	return nil
}

// formatDateTime renders a timestamp for tool results, with "unknown" for
// items the store could not date.
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(dateTimeLayout)
}

// maxResultsFromArgs extracts max_results, defaulting when absent.
func maxResultsFromArgs(args map[string]interface{}) int {
	if v, ok := args["max_results"].(float64); ok && int(v) > 0 {
		return int(v)
	}
	return defaultMaxResults
}

// stringFromArgs extracts an optional string argument.
func stringFromArgs(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// boolFromArgs extracts an optional bool argument, falling back to the
// given default when absent.
func boolFromArgs(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}
