package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// prompt pairs a registered prompt name with its instruction text. The
// descriptions surface in prompt listings; the text is what the agent runs.
type prompt struct {
	name        string
	description string
	text        string
}

var mailboxPrompts = []prompt{
	{
		name:        "weekly_summary",
		description: "Summarize what I did this past week based on my emails and calendar.",
		text: "Use outlook_search_calendar and outlook_search_emails (both inbox and sent) for the past Monday through Friday. " +
			"For each day, summarize my meetings and notable email activity. " +
			"End with any themes or highlights for the week.",
	},
	{
		name:        "agenda",
		description: "Show my agenda for today with relevant context.",
		text: "Search my calendar for today. " +
			"For each meeting, search for recent emails involving the organizer or related to the meeting subject. " +
			"Present my schedule in chronological order with any relevant email context that would help me prepare.",
	},
	{
		name:        "next_meeting",
		description: "Prep me for my next meeting.",
		text: "Search my calendar for today to find my next upcoming meeting. " +
			"Then search for recent emails (past 7 days, both inbox and sent) involving the attendees or related to the meeting subject. " +
			"Give me a briefing: who's attending, what the meeting is about, and any relevant email threads I should be aware of.",
	},
	{
		name:        "unanswered_emails",
		description: "Find emails I should respond to.",
		text: "Search my inbox for the past 5 days, then search my sent folder for the same period. " +
			"Compare them to identify inbox emails that appear to ask me a question or request action, where I haven't sent a reply to that thread. " +
			"List them with the sender, date, subject, and a brief note on what seems to be needed.",
	},
	{
		name:        "annual_review",
		description: "Analyze the past year of emails for evidence of contributions to support an annual review.",
		text: "Search my sent folder and inbox over the past 12 months. " +
			"Help me prepare for my annual performance review. " +
			"First identify my most frequent contacts to understand key relationships. " +
			"Then search for evidence of accomplishments, completed work, praise from others, and examples of helping or unblocking teammates. " +
			"Read promising results for detail. " +
			"Compile a summary with key accomplishments, recognition received, and examples of collaboration. " +
			"Include direct quotes where they strengthen the evidence.",
	},
}

// RegisterPrompts registers the canned mailbox workflows with the MCP server
func RegisterPrompts(s *mcpserver.MCPServer) error {
	for _, p := range mailboxPrompts {
		p := p
		s.AddPrompt(
			mcp.NewPrompt(p.name, mcp.WithPromptDescription(p.description)),
			func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				return mcp.NewGetPromptResult(p.description, []mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(p.text)),
				}), nil
			},
		)
	}
	return nil
}

// Names returns the registered prompt names, in registration order.
func Names() []string {
	names := make([]string, len(mailboxPrompts))
	for i, p := range mailboxPrompts {
		names[i] = p.name
	}
	return names
}
