package outlook_tools

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mailscope/mailscope/internal/mailtext"
	"github.com/mailscope/mailscope/internal/outlook"
)

func TestHandleReadItem_Mail(t *testing.T) {
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"entry-1": {
				EntryID:     "entry-1",
				Class:       "IPM.Note",
				Subject:     "Budget review",
				SentOn:      time.Date(2025, 6, 2, 9, 30, 0, 0, time.Local),
				SenderName:  "Jane Smith",
				SenderEmail: "jane@example.com",
				To:          "Team",
				CC:          "Boss",
				Importance:  2,
				Body:        "Numbers attached.",
				Categories:  "Finance",
				Attachments: []string{"q2.xlsx"},
			},
		},
	}
	sc := newTestContext(t, store)

	token, err := sc.Refs().Assign("entry-1")
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": token,
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got mailItem
	decodeResult(t, result, &got)

	if got.Date != "2025-06-02 09:30" {
		t.Errorf("date = %q, want %q", got.Date, "2025-06-02 09:30")
	}
	if got.Sender != "Jane Smith <jane@example.com>" {
		t.Errorf("sender = %q, want %q", got.Sender, "Jane Smith <jane@example.com>")
	}
	if got.Body != "Numbers attached." {
		t.Errorf("body = %q, want %q", got.Body, "Numbers attached.")
	}
	if got.Importance != "High" {
		t.Errorf("importance = %q, want %q", got.Importance, "High")
	}
	if len(got.Attachments) != 1 || got.Attachments[0] != "q2.xlsx" {
		t.Errorf("attachments = %v, want [q2.xlsx]", got.Attachments)
	}

	// The short token must have been resolved before hitting the store
	if store.lastEntryID != "entry-1" {
		t.Errorf("store received entry ID %q, want %q", store.lastEntryID, "entry-1")
	}
}

func TestHandleReadItem_MailDefaults(t *testing.T) {
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"entry-2": {
				EntryID:    "entry-2",
				Class:      "IPM.Note",
				SenderName: "Bob",
				Importance: 1,
				HTMLBody:   "<p>Hello &amp; goodbye</p>",
			},
		},
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "entry-2",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got mailItem
	decodeResult(t, result, &got)

	if got.Subject != "(no subject)" {
		t.Errorf("subject = %q, want %q", got.Subject, "(no subject)")
	}
	if got.Body != "Hello & goodbye" {
		t.Errorf("body = %q, want HTML fallback %q", got.Body, "Hello & goodbye")
	}
	if got.Importance != "" {
		t.Errorf("importance = %q, want omitted for normal", got.Importance)
	}
	if got.CC != "" {
		t.Errorf("cc = %q, want omitted", got.CC)
	}
}

func TestHandleReadItem_ExchangeDNSender(t *testing.T) {
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"entry-3": {
				EntryID:     "entry-3",
				Class:       "IPM.Note",
				Subject:     "Internal",
				SenderName:  "Jane Smith",
				SenderEmail: "/O=ORG/OU=EXCHANGE/CN=RECIPIENTS/CN=JSMITH",
				SenderSMTP:  "jane.smith@example.com",
				Importance:  1,
			},
		},
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "entry-3",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got mailItem
	decodeResult(t, result, &got)

	if got.Sender != "Jane Smith <jane.smith@example.com>" {
		t.Errorf("sender = %q, want the resolved SMTP address", got.Sender)
	}
}

func TestHandleReadItem_Appointment(t *testing.T) {
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"cal-1": {
				EntryID:           "cal-1",
				Class:             "IPM.Appointment",
				Subject:           "Budget planning",
				Start:             time.Date(2025, 6, 16, 11, 0, 0, 0, time.Local),
				End:               time.Date(2025, 6, 16, 12, 0, 0, 0, time.Local),
				DurationMinutes:   60,
				Location:          "Room 4",
				Organizer:         "Bob",
				RequiredAttendees: "Jane Smith; Bob",
				ResponseStatus:    3,
				BusyStatus:        outlook.BusyStatusBusy,
				IsRecurring:       true,
				Body:              "Agenda: numbers.",
			},
		},
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "cal-1",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got calendarItem
	decodeResult(t, result, &got)

	if got.Start != "2025-06-16 11:00" || got.End != "2025-06-16 12:00" {
		t.Errorf("start/end = %q/%q, want full timestamps", got.Start, got.End)
	}
	if got.Duration != 60 {
		t.Errorf("duration = %d, want 60", got.Duration)
	}
	if got.Response != "accepted" {
		t.Errorf("response = %q, want %q", got.Response, "accepted")
	}
	if got.BusyStatus != "busy" {
		t.Errorf("busy_status = %q, want %q", got.BusyStatus, "busy")
	}
	if !got.IsRecurring {
		t.Error("expected is_recurring to be true")
	}
	if got.RequiredAttendees != "Jane Smith; Bob" {
		t.Errorf("required_attendees = %q, want %q", got.RequiredAttendees, "Jane Smith; Bob")
	}
	if got.OptionalAttendees != "" {
		t.Errorf("optional_attendees = %q, want omitted", got.OptionalAttendees)
	}
}

func TestHandleReadItem_Truncation(t *testing.T) {
	longBody := strings.Repeat("x", mailtext.MaxBodyLength+100)
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"entry-4": {
				EntryID:    "entry-4",
				Class:      "IPM.Note",
				Subject:    "Long",
				Importance: 1,
				Body:       longBody,
			},
		},
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "entry-4",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got mailItem
	decodeResult(t, result, &got)

	if !strings.Contains(got.Body, "[body truncated") {
		t.Error("expected truncation marker in body")
	}

	// full_body skips truncation
	request = newRequest("outlook_read_item", map[string]interface{}{
		"entry_id":  "entry-4",
		"full_body": true,
	})

	result, err = handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var full mailItem
	decodeResult(t, result, &full)

	if len(full.Body) != len(longBody) {
		t.Errorf("full body length = %d, want %d", len(full.Body), len(longBody))
	}
}

func TestHandleReadItem_URLShortening(t *testing.T) {
	longURL := "https://example.com/very/long/path?" + strings.Repeat("p=1&", 30)
	store := &fakeStore{
		items: map[string]*outlook.Item{
			"entry-5": {
				EntryID:    "entry-5",
				Class:      "IPM.Note",
				Subject:    "Link",
				Importance: 1,
				Body:       "See " + longURL + " for details.",
			},
		},
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "entry-5",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var got mailItem
	decodeResult(t, result, &got)

	if !strings.Contains(got.Body, "[url:") {
		t.Fatalf("body = %q, want a [url:TOKEN] placeholder", got.Body)
	}

	// The minted token must read back as the original URL
	start := strings.Index(got.Body, "[url:") + len("[url:")
	end := strings.Index(got.Body[start:], "]") + start
	token := got.Body[start:end]

	request = newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "url:" + token,
	})

	result, err = handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}

	var gotURL urlItem
	decodeResult(t, result, &gotURL)

	if gotURL.URL != longURL {
		t.Errorf("url = %q, want %q", gotURL.URL, longURL)
	}
}

func TestHandleReadItem_MissingEntryID(t *testing.T) {
	sc := newTestContext(t, &fakeStore{})

	request := newRequest("outlook_read_item", map[string]interface{}{})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, result), "entry_id is required") {
		t.Errorf("error = %q, want entry_id requirement", resultText(t, result))
	}
}

func TestHandleReadItem_NotFound(t *testing.T) {
	store := &fakeStore{
		getErr: fmt.Errorf("%w: %s", outlook.ErrItemNotFound, "no item with that ID"),
	}
	sc := newTestContext(t, store)

	request := newRequest("outlook_read_item", map[string]interface{}{
		"entry_id": "bogus",
	})

	result, err := handleReadItem(context.Background(), request, sc)
	if err != nil {
		t.Fatalf("handleReadItem() unexpected error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, result), "outlook_search_emails") {
		t.Errorf("error = %q, want pointer to the search tools", resultText(t, result))
	}
}
