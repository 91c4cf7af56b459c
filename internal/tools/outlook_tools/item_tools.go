package outlook_tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/mailtext"
	"github.com/mailscope/mailscope/internal/outlook"
	"github.com/mailscope/mailscope/internal/refcache"
	"github.com/mailscope/mailscope/internal/server"
	"github.com/mailscope/mailscope/internal/tools/common"
)

// mailItem is the full rendering of an email. Optional fields only appear
// when they carry information: cc when set, importance when not normal.
type mailItem struct {
	Date        string   `json:"date"`
	Subject     string   `json:"subject"`
	Sender      string   `json:"sender"`
	To          string   `json:"to"`
	Body        string   `json:"body"`
	CC          string   `json:"cc,omitempty"`
	Importance  string   `json:"importance,omitempty"`
	Categories  string   `json:"categories,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// calendarItem is the full rendering of an appointment.
type calendarItem struct {
	Subject           string   `json:"subject"`
	Start             string   `json:"start"`
	End               string   `json:"end"`
	Duration          int      `json:"duration"`
	Location          string   `json:"location"`
	Organizer         string   `json:"organizer"`
	RequiredAttendees string   `json:"required_attendees,omitempty"`
	OptionalAttendees string   `json:"optional_attendees,omitempty"`
	Response          string   `json:"response"`
	BusyStatus        string   `json:"busy_status"`
	IsRecurring       bool     `json:"is_recurring,omitempty"`
	Body              string   `json:"body,omitempty"`
	Categories        string   `json:"categories,omitempty"`
	Attachments       []string `json:"attachments,omitempty"`
}

// urlItem is returned when a short ID resolves to a shortened URL rather
// than a store entry.
type urlItem struct {
	URL string `json:"url"`
}

// RegisterItemTools registers item reading tools with the MCP server
func RegisterItemTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	readItemTool := mcp.NewTool("outlook_read_item",
		mcp.WithDescription("Read the full content of an email, calendar event, or URL by its ID"),
		mcp.WithString("entry_id",
			mcp.Required(),
			mcp.Description("Item ID from outlook_search_emails/outlook_search_calendar results"),
		),
		mcp.WithBoolean("full_body",
			mcp.Description("Return the complete body without truncation (default: false)"),
		),
	)

	s.AddTool(readItemTool, common.InstrumentedToolHandlerWithOperation(
		"outlook_read_item", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadItem(ctx, request, sc)
		},
	))

	return nil
}

func handleReadItem(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	entryID, ok := args["entry_id"].(string)
	if !ok || entryID == "" {
		return mcp.NewToolResultError("entry_id is required"), nil
	}
	fullBody := boolFromArgs(args, "full_body", false)

	ref := sc.Refs().Resolve(entryID)

	// Tokens minted by URL shortening resolve to the URL itself
	if refcache.IsURL(ref) {
		result, err := marshalIndent(urlItem{URL: ref}, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
		}
		return mcp.NewToolResultText(string(result)), nil
	}

	item, err := sc.Store().GetItem(ctx, ref)
	if err != nil {
		if errors.Is(err, outlook.ErrItemNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"%v. IDs come from outlook_search_emails or outlook_search_calendar results.", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read item: %v", err)), nil
	}

	body := mailtext.BodyText(item.Body, item.HTMLBody)
	if !fullBody {
		body = sc.Refs().ShortenURLs(mailtext.Truncate(body))
	}

	var rendered interface{}
	if item.IsAppointment() {
		rendered = renderCalendarItem(item, body)
	} else {
		rendered = renderMailItem(item, body)
	}

	result, err := marshalIndent(rendered, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(result)), nil
}

func renderMailItem(item *outlook.Item, body string) mailItem {
	subject := item.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	rendered := mailItem{
		Date:        formatDateTime(item.SentOn),
		Subject:     subject,
		Sender:      outlook.FormatSender(item),
		To:          item.To,
		Body:        body,
		CC:          item.CC,
		Categories:  item.Categories,
		Attachments: item.Attachments,
	}

	// Normal importance is the default and stays silent
	if item.Importance != importanceNormal {
		rendered.Importance = importanceName(item.Importance)
	}

	return rendered
}

func renderCalendarItem(item *outlook.Item, body string) calendarItem {
	subject := item.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	return calendarItem{
		Subject:           subject,
		Start:             formatDateTime(item.Start),
		End:               formatDateTime(item.End),
		Duration:          item.DurationMinutes,
		Location:          item.Location,
		Organizer:         item.Organizer,
		RequiredAttendees: item.RequiredAttendees,
		OptionalAttendees: item.OptionalAttendees,
		Response:          outlook.ResponseStatusName(item.ResponseStatus),
		BusyStatus:        outlook.BusyStatusName(item.BusyStatus),
		IsRecurring:       item.IsRecurring,
		Body:              body,
		Categories:        item.Categories,
		Attachments:       item.Attachments,
	}
}

// MAPI importance levels.
const (
	importanceLow    = 0
	importanceNormal = 1
	importanceHigh   = 2
)

func importanceName(importance int) string {
	switch importance {
	case importanceLow:
		return "Low"
	case importanceHigh:
		return "High"
	default:
		return strconv.Itoa(importance)
	}
}
