package outlook_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailscope/mailscope/internal/dasl"
	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/outlook"
	"github.com/mailscope/mailscope/internal/server"
	"github.com/mailscope/mailscope/internal/tools/common"
)

// emailSummary is one row of a search result. Bodies are deliberately
// absent; they require a read_item round trip.
type emailSummary struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	To      string `json:"to"`
	CC      string `json:"cc,omitempty"`
}

// searchResult wraps summaries with the count and the requested bound, so
// agents can tell when more matches may exist.
type searchResult struct {
	Count      int            `json:"count"`
	MaxResults int            `json:"max_results"`
	Results    []emailSummary `json:"results"`
}

// RegisterEmailTools registers email search tools with the MCP server
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchEmailsTool := mcp.NewTool("outlook_search_emails",
		mcp.WithDescription("Search Outlook emails with filters. Returns summaries with IDs for outlook_read_item. "+
			"Results do not include body; use outlook_read_item for full content. Sorted newest-first by default."),
		mcp.WithString("query",
			mcp.Description("Phrase match in subject/body (words must appear together)"),
		),
		mcp.WithString("folder",
			mcp.Description("Partial match on folder name (e.g. 'sent' matches 'Sent Items'). Defaults to Inbox."),
		),
		mcp.WithString("sender",
			mcp.Description("Filter by sender display name (partial match)"),
		),
		mcp.WithString("to",
			mcp.Description("Filter by recipient display name (partial match)"),
		),
		mcp.WithString("date_from",
			mcp.Description("Start date YYYY-MM-DD (inclusive)"),
		),
		mcp.WithString("date_to",
			mcp.Description("End date YYYY-MM-DD (inclusive). Searches with no bound if omitted."),
		),
		mcp.WithString("store",
			mcp.Description("Store to search (partial match). Leave empty for primary mailbox."),
		),
		mcp.WithBoolean("is_read",
			mcp.Description("Filter by read status. true = read only, false = unread only."),
		),
		mcp.WithBoolean("earliest_first",
			mcp.Description("Sort earliest-first instead of latest-first (default: false)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 20). If count equals max_results, more matches may exist."),
		),
	)

	s.AddTool(searchEmailsTool, common.InstrumentedToolHandlerWithOperation(
		"outlook_search_emails", instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEmails(ctx, request, sc)
		},
	))

	return nil
}

func handleSearchEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filter := dasl.MailFilter{
		Query:    stringFromArgs(args, "query"),
		Sender:   stringFromArgs(args, "sender"),
		To:       stringFromArgs(args, "to"),
		DateFrom: stringFromArgs(args, "date_from"),
		DateTo:   stringFromArgs(args, "date_to"),
	}
	if isReadVal, ok := args["is_read"].(bool); ok {
		filter.IsRead = &isReadVal
	}

	filterStr, err := filter.Compile()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	scope := outlook.Scope{
		Store:  common.GetStoreFromArgs(args),
		Folder: common.GetFolderFromArgs(args, ""),
	}
	opts := outlook.SearchOptions{
		MaxResults:    maxResultsFromArgs(args),
		EarliestFirst: boolFromArgs(args, "earliest_first", false),
		// Meeting requests and reports sharing the folder must not eat
		// into the result budget; the store drops them before capping
		MailOnly: true,
	}

	rows, err := sc.Store().SearchMessages(ctx, scope, filterStr, opts)
	if err != nil {
		if errors.Is(err, outlook.ErrFolderNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"%v. Use outlook_list_folders to see available stores and their folders.", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search emails: %v", err)), nil
	}

	summaries := make([]emailSummary, 0, len(rows))
	for _, row := range rows {
		// Safeguard against stores that ignore MailOnly
		if !row.IsNote() {
			continue
		}

		id, err := sc.Refs().Assign(row.EntryID)
		if err != nil {
			// Token space exhausted for this digest; hand out the full
			// entry ID instead
			id = row.EntryID
		}

		subject := row.Subject
		if subject == "" {
			subject = "(no subject)"
		}

		summaries = append(summaries, emailSummary{
			ID:      id,
			Date:    formatDateTime(row.SentOn),
			Subject: subject,
			Sender:  outlook.FormatRowSender(row.SenderName, row.SenderEmail),
			To:      row.To,
			CC:      row.CC,
		})
	}

	result, err := marshalIndent(searchResult{
		Count:      len(summaries),
		MaxResults: opts.MaxResults,
		Results:    summaries,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}
