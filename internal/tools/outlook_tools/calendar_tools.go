package outlook_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailscope/mailscope/internal/dasl"
	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/outlook"
	"github.com/mailscope/mailscope/internal/server"
	"github.com/mailscope/mailscope/internal/tools/common"
)

// eventSummary is one calendar occurrence in a search result. The date and
// the start/end times are split so schedules render without parsing. The
// busy status only appears when it differs from the default "busy".
type eventSummary struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Subject     string `json:"subject"`
	Location    string `json:"location"`
	Organizer   string `json:"organizer"`
	Response    string `json:"response"`
	BusyStatus  string `json:"busy_status,omitempty"`
	IsRecurring bool   `json:"is_recurring,omitempty"`
}

// calendarResult wraps occurrence summaries with the count and the
// requested bound.
type calendarResult struct {
	Count      int            `json:"count"`
	MaxResults int            `json:"max_results"`
	Results    []eventSummary `json:"results"`
}

// RegisterCalendarTools registers calendar search tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchCalendarTool := mcp.NewTool("outlook_search_calendar",
		mcp.WithDescription("Search Outlook calendar events in a date range. Returns summaries with IDs for outlook_read_item."),
		mcp.WithString("date_from",
			mcp.Description("Start date YYYY-MM-DD (inclusive). Defaults to today."),
		),
		mcp.WithString("date_to",
			mcp.Description("End date YYYY-MM-DD (inclusive). Defaults to date_from (single day)."),
		),
		mcp.WithString("query",
			mcp.Description("Filter by subject (partial match)"),
		),
		mcp.WithString("response",
			mcp.Description("Filter by response (accepted, tentative, declined, organized, none, not_responded)"),
		),
		mcp.WithBoolean("earliest_first",
			mcp.Description("Sort earliest-first (default: true, showing soonest events first)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 20)"),
		),
	)

	s.AddTool(searchCalendarTool, common.InstrumentedToolHandlerWithOperation(
		"outlook_search_calendar", instrumentation.OperationExpand, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchCalendar(ctx, request, sc)
		},
	))

	return nil
}

func handleSearchCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	responseCode := -1
	if response := stringFromArgs(args, "response"); response != "" {
		code, err := outlook.ParseResponseStatus(response)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		responseCode = code
	}

	calendarRange := dasl.CalendarRange{
		DateFrom: stringFromArgs(args, "date_from"),
		DateTo:   stringFromArgs(args, "date_to"),
	}
	restriction, err := calendarRange.Restriction()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	occurrences, err := sc.Store().ExpandCalendar(ctx, restriction)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search calendar: %v", err)), nil
	}

	query := stringFromArgs(args, "query")
	earliestFirst := boolFromArgs(args, "earliest_first", true)
	maxResults := maxResultsFromArgs(args)

	summaries := make([]eventSummary, 0, maxResults)
	for _, occ := range occurrences {
		// When collecting earliest-first the window is already the front
		// of the expanded range; otherwise all occurrences are collected
		// and the tail is kept after reversing
		if earliestFirst && len(summaries) >= maxResults {
			break
		}

		if responseCode >= 0 && occ.ResponseStatus != responseCode {
			continue
		}

		subject := occ.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		if query != "" && !strings.Contains(strings.ToLower(subject), strings.ToLower(query)) {
			continue
		}

		id, err := sc.Refs().Assign(occ.EntryID)
		if err != nil {
			id = occ.EntryID
		}

		summary := eventSummary{
			ID:          id,
			Date:        formatDatePart(occ.Start),
			Start:       formatTimePart(occ.Start),
			End:         formatTimePart(occ.End),
			Subject:     subject,
			Location:    occ.Location,
			Organizer:   occ.Organizer,
			Response:    outlook.ResponseStatusName(occ.ResponseStatus),
			IsRecurring: occ.IsRecurring,
		}
		if occ.BusyStatus != outlook.BusyStatusBusy {
			summary.BusyStatus = outlook.BusyStatusName(occ.BusyStatus)
		}

		summaries = append(summaries, summary)
	}

	if !earliestFirst {
		for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
			summaries[i], summaries[j] = summaries[j], summaries[i]
		}
		if len(summaries) > maxResults {
			summaries = summaries[:maxResults]
		}
	}

	result, err := marshalIndent(calendarResult{
		Count:      len(summaries),
		MaxResults: maxResults,
		Results:    summaries,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

// formatDatePart renders the date component of an occurrence timestamp.
func formatDatePart(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(dateLayout)
}

// formatTimePart renders the time-of-day component of an occurrence
// timestamp.
func formatTimePart(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(timeLayout)
}
