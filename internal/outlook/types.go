package outlook

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MAPI message class prefixes used to dispatch item rendering.
const (
	classNote        = "IPM.Note"
	classAppointment = "IPM.Appointment"
)

// FolderInfo is one top-level folder within a store.
type FolderInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StoreFolders lists the non-empty top-level folders of one mail store.
// Error carries a per-store failure so one broken store (a disconnected
// archive, say) does not hide the rest.
type StoreFolders struct {
	StoreName string       `json:"store_name"`
	Folders   []FolderInfo `json:"folders"`
	Error     string       `json:"error,omitempty"`
}

// MessageRow is a lightweight summary row from a table-based message
// search. It carries only listing columns; bodies require a GetItem call.
type MessageRow struct {
	EntryID     string    `json:"entry_id"`
	Class       string    `json:"class"`
	Subject     string    `json:"subject"`
	SentOn      time.Time `json:"sent_on"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	To          string    `json:"to"`
	CC          string    `json:"cc"`
}

// IsNote reports whether the row is a mail message rather than a meeting
// request, report, or other item class sharing the folder.
func (r MessageRow) IsNote() bool {
	return r.Class == "" || strings.HasPrefix(r.Class, classNote)
}

// Occurrence is one calendar entry from a recurrence-expanded range query,
// already sorted ascending by start time.
type Occurrence struct {
	EntryID        string    `json:"entry_id"`
	Subject        string    `json:"subject"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Location       string    `json:"location"`
	Organizer      string    `json:"organizer"`
	ResponseStatus int       `json:"response_status"`
	BusyStatus     int       `json:"busy_status"`
	IsRecurring    bool      `json:"is_recurring"`
}

// Item is the full content of a message or appointment. Class decides which
// field group is meaningful.
type Item struct {
	EntryID string `json:"entry_id"`
	Class   string `json:"class"`
	Subject string `json:"subject"`

	// Mail fields.
	SentOn      time.Time `json:"sent_on"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	// SenderSMTP is the resolved primary SMTP address when SenderEmail is
	// an Exchange distinguished name, empty when resolution failed.
	SenderSMTP string `json:"sender_smtp"`
	To         string `json:"to"`
	CC         string `json:"cc"`
	Importance int    `json:"importance"`

	// Appointment fields.
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	DurationMinutes   int       `json:"duration_minutes"`
	Location          string    `json:"location"`
	Organizer         string    `json:"organizer"`
	RequiredAttendees string    `json:"required_attendees"`
	OptionalAttendees string    `json:"optional_attendees"`
	ResponseStatus    int       `json:"response_status"`
	BusyStatus        int       `json:"busy_status"`
	IsRecurring       bool      `json:"is_recurring"`

	// Shared fields.
	Body        string   `json:"body"`
	HTMLBody    string   `json:"html_body"`
	Categories  string   `json:"categories"`
	Attachments []string `json:"attachments"`
}

// IsAppointment reports whether the item dispatches to appointment
// rendering; anything else renders as mail.
func (i *Item) IsAppointment() bool {
	return strings.HasPrefix(i.Class, classAppointment)
}

// responseStatusNames maps OlResponseStatus codes to the names exposed in
// tool results and accepted as the response filter.
var responseStatusNames = map[int]string{
	0: "none",
	1: "organized",
	2: "tentative",
	3: "accepted",
	4: "declined",
	5: "not_responded",
}

// busyStatusNames maps OlBusyStatus codes.
var busyStatusNames = map[int]string{
	0: "free",
	1: "tentative",
	2: "busy",
	3: "out_of_office",
	4: "working_elsewhere",
}

// BusyStatusBusy is the default busy status; summaries omit it.
const BusyStatusBusy = 2

// ResponseStatusName returns the name for a response status code, or the
// numeric code as a string for codes outside the known map.
func ResponseStatusName(code int) string {
	if name, ok := responseStatusNames[code]; ok {
		return name
	}
	return strconv.Itoa(code)
}

// BusyStatusName returns the name for a busy status code, falling back to
// the numeric code as a string.
func BusyStatusName(code int) string {
	if name, ok := busyStatusNames[code]; ok {
		return name
	}
	return strconv.Itoa(code)
}

// ParseResponseStatus maps a response status name (case-insensitive) back
// to its code. Unknown names produce an error listing the valid choices.
func ParseResponseStatus(name string) (int, error) {
	lower := strings.ToLower(name)
	for code, known := range responseStatusNames {
		if known == lower {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown response %q, use one of: %s", name, strings.Join(ResponseStatusValues(), ", "))
}

// ResponseStatusValues returns the accepted response filter names, sorted.
func ResponseStatusValues() []string {
	values := make([]string, 0, len(responseStatusNames))
	for _, name := range responseStatusNames {
		values = append(values, name)
	}
	sort.Strings(values)
	return values
}
